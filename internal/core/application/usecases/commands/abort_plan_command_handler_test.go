package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAbortRouteRepository struct{ mock.Mock }

func (m *MockAbortRouteRepository) GetByPlan(ctx context.Context, tenant kernel.TenantID,
	planID kernel.UUID) ([]*picking.Route, error) {
	args := m.Called(ctx, tenant, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*picking.Route), args.Error(1)
}

func (m *MockAbortRouteRepository) Update(ctx context.Context, aggregate *picking.Route) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAbortRouteRepository) Add(_ context.Context, _ *picking.Route) error {
	return errors.New("not implemented in mock")
}
func (m *MockAbortRouteRepository) Get(_ context.Context, _ kernel.TenantID, _ kernel.UUID) (*picking.Route, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAbortRouteRepository) GetAssignable(_ context.Context, _ kernel.TenantID) ([]*picking.Route, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAbortRouteRepository) GetActiveByPath(_ context.Context, _ kernel.TenantID, _ int32) ([]*picking.Route, error) {
	return nil, errors.New("not implemented in mock")
}

type MockAbortUoW struct{ mock.Mock }

func (m *MockAbortUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockAbortUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockAbortUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockAbortUoW) PlanRepository() ports.PlanRepository {
	args := m.Called()
	return args.Get(0).(ports.PlanRepository)
}
func (m *MockAbortUoW) RouteRepository() ports.RouteRepository {
	args := m.Called()
	return args.Get(0).(ports.RouteRepository)
}
func (m *MockAbortUoW) SaleRepository() ports.SaleRepository { return nil }

type MockAbortUoWFactory struct{ mock.Mock }

func (m *MockAbortUoWFactory) Create() commands.AbortPlanUoW {
	args := m.Called()
	return args.Get(0).(commands.AbortPlanUoW)
}

type MockCancelUoW struct{ mock.Mock }

func (m *MockCancelUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCancelUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCancelUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCancelUoW) SaleRepository() ports.SaleRepository {
	args := m.Called()
	return args.Get(0).(ports.SaleRepository)
}
func (m *MockCancelUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

type MockCancelUoWFactory struct{ mock.Mock }

func (m *MockCancelUoWFactory) Create() commands.CancelSaleUoW {
	args := m.Called()
	return args.Get(0).(commands.CancelSaleUoW)
}

type MockSaleEventPublisher struct{ mock.Mock }

func (m *MockSaleEventPublisher) Publish(ctx context.Context, event sale.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAbortPlanCommandHandler_Handle_CascadesToSales(t *testing.T) {
	ctx := t.Context()
	tenant, _ := kernel.NewTenantID(1)
	plan := claimTestPlan(t, tenant)
	route := claimTestRoute(t, tenant, plan.ID(), nil)
	linked := scheduleTestSale(t, tenant, sale.StatusPickingAssigned, 3)
	saleID := plan.SaleIDs()[0]

	cmd, err := commands.NewAbortPlanCommand(tenant, plan.ID())
	require.NoError(t, err)

	planRepo := new(MockClaimPlanRepository)
	routeRepo := new(MockAbortRouteRepository)
	abortUoW := new(MockAbortUoW)

	mock.InOrder(
		abortUoW.On("Begin", ctx).Return(nil).Once(),
		abortUoW.On("PlanRepository").Return(planRepo).Once(),
		abortUoW.On("RouteRepository").Return(routeRepo).Once(),
		planRepo.On("Get", ctx, tenant, plan.ID()).Return(plan, nil).Once(),
		planRepo.On("Update", ctx, mock.AnythingOfType("*picking.Plan")).Return(nil).Once(),
		routeRepo.On("GetByPlan", ctx, tenant, plan.ID()).Return([]*picking.Route{route}, nil).Once(),
		routeRepo.On("Update", ctx, mock.AnythingOfType("*picking.Route")).Return(nil).Once(),
		abortUoW.On("Commit", ctx).Return(nil).Once(),
		abortUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	abortFactory := new(MockAbortUoWFactory)
	abortFactory.On("Create").Return(abortUoW).Once()

	saleRepo := new(MockScheduleSaleRepository)
	invRepo := new(MockScheduleInventoryRepository)
	cancelUoW := new(MockCancelUoW)

	mock.InOrder(
		cancelUoW.On("Begin", ctx).Return(nil).Once(),
		cancelUoW.On("SaleRepository").Return(saleRepo).Once(),
		cancelUoW.On("InventoryRepository").Return(invRepo).Once(),
		saleRepo.On("Get", ctx, tenant, saleID).Return(linked, nil).Once(),
		invRepo.On("GetNetAllocationsBySale", ctx, tenant, linked.ID()).Return([]inventory.Draw{}, nil).Once(),
		saleRepo.On("Update", ctx, mock.AnythingOfType("*sale.Sale")).Return(nil).Once(),
		cancelUoW.On("Commit", ctx).Return(nil).Once(),
		cancelUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	cancelFactory := new(MockCancelUoWFactory)
	cancelFactory.On("Create").Return(cancelUoW).Once()

	publisher := new(MockSaleEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("sale.Event")).Return(nil).Once()

	cancelHandler := commands.NewCancelSaleCommandHandler(cancelFactory, publisher, discardLogger())
	handler := commands.NewAbortPlanCommandHandler(abortFactory, cancelHandler, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, picking.PlanStatusAborted, plan.Status())
	require.Equal(t, picking.RouteStatusCancelled, route.Status())
	require.Equal(t, sale.StatusCancelled, linked.Status())
	planRepo.AssertExpectations(t)
	routeRepo.AssertExpectations(t)
	saleRepo.AssertExpectations(t)
	invRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	abortFactory.AssertExpectations(t)
	cancelFactory.AssertExpectations(t)
}

func TestAbortPlanCommandHandler_Handle_SkipsTerminalSales(t *testing.T) {
	ctx := t.Context()
	tenant, _ := kernel.NewTenantID(1)
	plan := claimTestPlan(t, tenant)
	shipped := scheduleTestSale(t, tenant, sale.StatusShipped, 6)
	saleID := plan.SaleIDs()[0]

	cmd, err := commands.NewAbortPlanCommand(tenant, plan.ID())
	require.NoError(t, err)

	planRepo := new(MockClaimPlanRepository)
	routeRepo := new(MockAbortRouteRepository)
	abortUoW := new(MockAbortUoW)

	mock.InOrder(
		abortUoW.On("Begin", ctx).Return(nil).Once(),
		abortUoW.On("PlanRepository").Return(planRepo).Once(),
		abortUoW.On("RouteRepository").Return(routeRepo).Once(),
		planRepo.On("Get", ctx, tenant, plan.ID()).Return(plan, nil).Once(),
		planRepo.On("Update", ctx, mock.AnythingOfType("*picking.Plan")).Return(nil).Once(),
		routeRepo.On("GetByPlan", ctx, tenant, plan.ID()).Return([]*picking.Route{}, nil).Once(),
		abortUoW.On("Commit", ctx).Return(nil).Once(),
		abortUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	abortFactory := new(MockAbortUoWFactory)
	abortFactory.On("Create").Return(abortUoW).Once()

	saleRepo := new(MockScheduleSaleRepository)
	invRepo := new(MockScheduleInventoryRepository)
	cancelUoW := new(MockCancelUoW)

	mock.InOrder(
		cancelUoW.On("Begin", ctx).Return(nil).Once(),
		cancelUoW.On("SaleRepository").Return(saleRepo).Once(),
		cancelUoW.On("InventoryRepository").Return(invRepo).Once(),
		saleRepo.On("Get", ctx, tenant, saleID).Return(shipped, nil).Once(),
		cancelUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	cancelFactory := new(MockCancelUoWFactory)
	cancelFactory.On("Create").Return(cancelUoW).Once()

	publisher := new(MockSaleEventPublisher)

	cancelHandler := commands.NewCancelSaleCommandHandler(cancelFactory, publisher, discardLogger())
	handler := commands.NewAbortPlanCommandHandler(abortFactory, cancelHandler, discardLogger())
	err = handler.Handle(ctx, cmd)

	// A sale already shipped stays shipped; the abort itself still stands.
	require.NoError(t, err)
	require.Equal(t, sale.StatusShipped, shipped.Status())
	publisher.AssertNotCalled(t, "Publish")
	saleRepo.AssertNotCalled(t, "Update")
	abortFactory.AssertExpectations(t)
	cancelFactory.AssertExpectations(t)
}

func TestAbortPlanCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AbortPlanCommand{} // not constructed properly

	abortFactory := new(MockAbortUoWFactory)
	cancelFactory := new(MockCancelUoWFactory)
	publisher := new(MockSaleEventPublisher)

	cancelHandler := commands.NewCancelSaleCommandHandler(cancelFactory, publisher, discardLogger())
	handler := commands.NewAbortPlanCommandHandler(abortFactory, cancelHandler, discardLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAbortPlanCommandIsNotConstructed)
	abortFactory.AssertNotCalled(t, "Create")
}
