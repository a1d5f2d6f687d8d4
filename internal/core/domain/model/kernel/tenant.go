package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// TenantID is the isolation boundary of the system. Every entity row and every
// repository query is scoped to exactly one tenant; no operation may read or
// mutate rows of a different tenant.
type TenantID int32

// NewTenantID creates a validated tenant identifier.
func NewTenantID(id int32) (TenantID, error) {
	tenant := TenantID(id)
	if err := tenant.Validate(); err != nil {
		return 0, err
	}
	return tenant, nil
}

// Validate checks that the tenant identifier is positive.
func (t TenantID) Validate() error {
	if t <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("tenantId",
			fmt.Errorf("%d is not a positive tenant id", t))
	}
	return nil
}

// Int32 returns the raw tenant identifier for persistence.
func (t TenantID) Int32() int32 {
	return int32(t)
}
