package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func TestNewGetPlanProgressQuery(t *testing.T) {
	tenant, _ := kernel.NewTenantID(1)
	planID := kernel.NewUUID()

	query, err := queries.NewGetPlanProgressQuery(tenant, planID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	require.Equal(t, planID, query.PlanID())
}

func TestGetPlanProgressQuery_NotConstructed(t *testing.T) {
	var query queries.GetPlanProgressQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetPlanProgressQueryIsNotConstructed)
}
