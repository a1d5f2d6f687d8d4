package commands_test

import (
	"context"
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockScheduleSaleRepository struct{ mock.Mock }

func (m *MockScheduleSaleRepository) Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*sale.Sale, error) {
	args := m.Called(ctx, tenant, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.Sale), args.Error(1)
}

func (m *MockScheduleSaleRepository) Update(ctx context.Context, aggregate *sale.Sale) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockScheduleSaleRepository) Add(_ context.Context, _ *sale.Sale) error {
	return errors.New("not implemented in mock")
}
func (m *MockScheduleSaleRepository) GetAllInStatus(_ context.Context, _ kernel.TenantID, _ sale.Status) ([]*sale.Sale, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockScheduleSaleRepository) GetEvents(_ context.Context, _ kernel.TenantID, _ kernel.UUID) ([]sale.Event, error) {
	return nil, errors.New("not implemented in mock")
}

type MockSchedulePlanRepository struct{ mock.Mock }

func (m *MockSchedulePlanRepository) Add(ctx context.Context, aggregate *picking.Plan, goods []*picking.Good) error {
	args := m.Called(ctx, aggregate, goods)
	return args.Error(0)
}

func (m *MockSchedulePlanRepository) IsSalePlanned(ctx context.Context, tenant kernel.TenantID, saleID kernel.UUID) (bool, error) {
	args := m.Called(ctx, tenant, saleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSchedulePlanRepository) Update(_ context.Context, _ *picking.Plan) error {
	return errors.New("not implemented in mock")
}
func (m *MockSchedulePlanRepository) Get(_ context.Context, _ kernel.TenantID, _ kernel.UUID) (*picking.Plan, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockSchedulePlanRepository) GetGoods(_ context.Context, _ kernel.TenantID, _ kernel.UUID) ([]*picking.Good, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockSchedulePlanRepository) UpdateGood(_ context.Context, _ *picking.Good) error {
	return errors.New("not implemented in mock")
}
func (m *MockSchedulePlanRepository) GetAllInStatus(_ context.Context, _ kernel.TenantID, _ picking.PlanStatus) ([]*picking.Plan, error) {
	return nil, errors.New("not implemented in mock")
}

type MockScheduleInventoryRepository struct{ mock.Mock }

func (m *MockScheduleInventoryRepository) GetNetAllocationsBySale(ctx context.Context, tenant kernel.TenantID,
	saleID kernel.UUID) ([]inventory.Draw, error) {
	args := m.Called(ctx, tenant, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Draw), args.Error(1)
}

func (m *MockScheduleInventoryRepository) GetItemsInStatus(ctx context.Context, tenant kernel.TenantID,
	lotID, shelfID int32, status inventory.ItemStatus, limit int32) ([]*inventory.Item, error) {
	args := m.Called(ctx, tenant, lotID, shelfID, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

func (m *MockScheduleInventoryRepository) AddStock(_ context.Context, _ *inventory.Stock) error {
	return errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) GetStock(_ context.Context, _ kernel.TenantID, _ int32) (*inventory.Stock, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) AddShelf(_ context.Context, _ *inventory.Shelf) error {
	return errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) GetShelf(_ context.Context, _ kernel.TenantID, _ int32) (*inventory.Shelf, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) UpdateShelf(_ context.Context, _ *inventory.Shelf) error {
	return errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) AddLot(_ context.Context, _ *inventory.Lot) (int32, error) {
	return 0, errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) UpdateLot(_ context.Context, _ *inventory.Lot) error {
	return errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) GetLot(_ context.Context, _ kernel.TenantID, _ int32) (*inventory.Lot, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) GetAvailability(_ context.Context, _ kernel.TenantID, _ []int32) (map[int32][]inventory.Availability, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) DecrementShelf(_ context.Context, _ kernel.TenantID, _, _, _ int32) error {
	return errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) IncrementShelf(_ context.Context, _ kernel.TenantID, _, _, _ int32) error {
	return errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) AddItems(_ context.Context, _ []*inventory.Item) error {
	return errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) UpdateItem(_ context.Context, _ *inventory.Item) error {
	return errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) GetItem(_ context.Context, _ kernel.TenantID, _ int32) (*inventory.Item, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) GetItemByBarcode(_ context.Context, _ kernel.TenantID, _ string) (*inventory.Item, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockScheduleInventoryRepository) AddEntries(_ context.Context, _ []*inventory.StockEntry) error {
	return errors.New("not implemented in mock")
}

type MockScheduleUoW struct{ mock.Mock }

func (m *MockScheduleUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockScheduleUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockScheduleUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockScheduleUoW) SaleRepository() ports.SaleRepository {
	args := m.Called()
	return args.Get(0).(ports.SaleRepository)
}
func (m *MockScheduleUoW) PlanRepository() ports.PlanRepository {
	args := m.Called()
	return args.Get(0).(ports.PlanRepository)
}
func (m *MockScheduleUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

type MockScheduleUoWFactory struct{ mock.Mock }

func (m *MockScheduleUoWFactory) Create() commands.SchedulePlanUoW {
	args := m.Called()
	return args.Get(0).(commands.SchedulePlanUoW)
}

func scheduleTestSale(t *testing.T, tenant kernel.TenantID, status sale.Status, version kernel.Version) *sale.Sale {
	t.Helper()
	aggregate, err := sale.RestoreSale(kernel.NewUUID(), tenant, "ORD-200",
		[]sale.Line{{StockID: 7, Quantity: 2}}, decimal.NewFromInt(4), status, version)
	require.NoError(t, err)
	return aggregate
}

func TestSchedulePlanCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenant, _ := kernel.NewTenantID(1)
	allocated := scheduleTestSale(t, tenant, sale.StatusAllocated, 2)
	cmd, err := commands.NewSchedulePlanCommand(tenant, []kernel.UUID{allocated.ID()}, nil)
	require.NoError(t, err)

	draws := []inventory.Draw{{StockID: 7, LotID: 1, ShelfID: 4, NodeID: 9, Quantity: 2}}
	item1, _ := inventory.RestoreItem(21, tenant, 7, 1, 4, "BC-21", decimal.NewFromInt(2), inventory.ItemStatusReserved)
	item2, _ := inventory.RestoreItem(22, tenant, 7, 1, 4, "BC-22", decimal.NewFromInt(2), inventory.ItemStatusReserved)

	saleRepo := new(MockScheduleSaleRepository)
	planRepo := new(MockSchedulePlanRepository)
	invRepo := new(MockScheduleInventoryRepository)
	uow := new(MockScheduleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SaleRepository").Return(saleRepo).Once(),
		uow.On("PlanRepository").Return(planRepo).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		saleRepo.On("Get", ctx, tenant, allocated.ID()).Return(allocated, nil).Once(),
		planRepo.On("IsSalePlanned", ctx, tenant, allocated.ID()).Return(false, nil).Once(),
		invRepo.On("GetNetAllocationsBySale", ctx, tenant, allocated.ID()).Return(draws, nil).Once(),
		invRepo.On("GetItemsInStatus", ctx, tenant, int32(1), int32(4), inventory.ItemStatusReserved, int32(2)).
			Return([]*inventory.Item{item1, item2}, nil).Once(),
		planRepo.On("Add", ctx, mock.AnythingOfType("*picking.Plan"), mock.AnythingOfType("[]*picking.Good")).
			Return(nil).Once(),
		saleRepo.On("Update", ctx, mock.AnythingOfType("*sale.Sale")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScheduleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSchedulePlanCommandHandler(factory)
	planID, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, planID.Validate())
	require.Equal(t, sale.StatusPickingAssigned, allocated.Status())

	// The stored goods carry one pick item per reserved unit, anchored to
	// the shelf node of the draw.
	addCall := planRepo.Calls[1]
	goods := addCall.Arguments[2].([]*picking.Good)
	require.Len(t, goods, 1)
	require.Len(t, goods[0].Items(), 2)
	require.Equal(t, int32(9), goods[0].Items()[0].NodeID())

	saleRepo.AssertExpectations(t)
	planRepo.AssertExpectations(t)
	invRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestSchedulePlanCommandHandler_Handle_SaleAlreadyPlanned(t *testing.T) {
	ctx := t.Context()
	tenant, _ := kernel.NewTenantID(1)
	allocated := scheduleTestSale(t, tenant, sale.StatusAllocated, 2)
	cmd, err := commands.NewSchedulePlanCommand(tenant, []kernel.UUID{allocated.ID()}, nil)
	require.NoError(t, err)

	saleRepo := new(MockScheduleSaleRepository)
	planRepo := new(MockSchedulePlanRepository)
	invRepo := new(MockScheduleInventoryRepository)
	uow := new(MockScheduleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SaleRepository").Return(saleRepo).Once(),
		uow.On("PlanRepository").Return(planRepo).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		saleRepo.On("Get", ctx, tenant, allocated.ID()).Return(allocated, nil).Once(),
		planRepo.On("IsSalePlanned", ctx, tenant, allocated.ID()).Return(true, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScheduleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSchedulePlanCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, picking.ErrAlreadyPlanned)
	planRepo.AssertNotCalled(t, "Add")
	require.Equal(t, sale.StatusAllocated, allocated.Status())
	uow.AssertExpectations(t)
}

func TestSchedulePlanCommandHandler_Handle_SaleNotAllocated(t *testing.T) {
	ctx := t.Context()
	tenant, _ := kernel.NewTenantID(1)
	created := scheduleTestSale(t, tenant, sale.StatusCreated, 1)
	cmd, err := commands.NewSchedulePlanCommand(tenant, []kernel.UUID{created.ID()}, nil)
	require.NoError(t, err)

	saleRepo := new(MockScheduleSaleRepository)
	planRepo := new(MockSchedulePlanRepository)
	invRepo := new(MockScheduleInventoryRepository)
	uow := new(MockScheduleUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SaleRepository").Return(saleRepo).Once(),
		uow.On("PlanRepository").Return(planRepo).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		saleRepo.On("Get", ctx, tenant, created.ID()).Return(created, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockScheduleUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSchedulePlanCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	planRepo.AssertNotCalled(t, "IsSalePlanned")
	uow.AssertExpectations(t)
}

func TestSchedulePlanCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.SchedulePlanCommand{} // not constructed properly

	factory := new(MockScheduleUoWFactory)
	handler := commands.NewSchedulePlanCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrSchedulePlanCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
