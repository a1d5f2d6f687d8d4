package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestNewGetExpiringLotsQuery(t *testing.T) {
	tenant, _ := kernel.NewTenantID(1)

	query, err := queries.NewGetExpiringLotsQuery(tenant, 30)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	require.Equal(t, tenant, query.Tenant())
	require.Equal(t, 30, query.WithinDays())
}

func TestNewGetExpiringLotsQuery_InvalidHorizon(t *testing.T) {
	tenant, _ := kernel.NewTenantID(1)

	_, err := queries.NewGetExpiringLotsQuery(tenant, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestGetExpiringLotsQuery_NotConstructed(t *testing.T) {
	var query queries.GetExpiringLotsQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetExpiringLotsQueryIsNotConstructed)
}
