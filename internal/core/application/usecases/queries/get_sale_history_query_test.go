package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func TestNewGetSaleHistoryQuery(t *testing.T) {
	tenant, _ := kernel.NewTenantID(1)
	saleID := kernel.NewUUID()

	query, err := queries.NewGetSaleHistoryQuery(tenant, saleID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	require.Equal(t, saleID, query.SaleID())
}

func TestNewGetSaleHistoryQuery_EmptySaleID(t *testing.T) {
	tenant, _ := kernel.NewTenantID(1)

	_, err := queries.NewGetSaleHistoryQuery(tenant, kernel.UUID{})
	require.Error(t, err)
}

func TestGetSaleHistoryQuery_NotConstructed(t *testing.T) {
	var query queries.GetSaleHistoryQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetSaleHistoryQueryIsNotConstructed)
}
