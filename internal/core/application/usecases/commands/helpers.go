package commands

import (
	"fulfillment/internal/core/domain/model/kernel"
)

func ptrUUID(id kernel.UUID) *kernel.UUID {
	return &id
}
