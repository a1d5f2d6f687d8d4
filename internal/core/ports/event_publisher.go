package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/sale"
)

// SaleEventPublisher notifies downstream systems when a sale reaches a
// terminal state. Delivery is at-least-once; the message key carries tenant,
// sale, and version so consumers can deduplicate.
type SaleEventPublisher interface {
	Publish(ctx context.Context, event sale.Event) error
}
