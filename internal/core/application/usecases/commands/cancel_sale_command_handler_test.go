package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReleaseInventoryRepository struct{ mock.Mock }

func (m *MockReleaseInventoryRepository) GetNetAllocationsBySale(ctx context.Context, tenant kernel.TenantID,
	saleID kernel.UUID) ([]inventory.Draw, error) {
	args := m.Called(ctx, tenant, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Draw), args.Error(1)
}

func (m *MockReleaseInventoryRepository) GetItemsInStatus(ctx context.Context, tenant kernel.TenantID,
	lotID, shelfID int32, status inventory.ItemStatus, limit int32) ([]*inventory.Item, error) {
	args := m.Called(ctx, tenant, lotID, shelfID, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

func (m *MockReleaseInventoryRepository) UpdateItem(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockReleaseInventoryRepository) GetLot(ctx context.Context, tenant kernel.TenantID, id int32) (*inventory.Lot, error) {
	args := m.Called(ctx, tenant, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Lot), args.Error(1)
}

func (m *MockReleaseInventoryRepository) UpdateLot(ctx context.Context, lot *inventory.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockReleaseInventoryRepository) IncrementShelf(ctx context.Context, tenant kernel.TenantID,
	shelfID, stockID, quantity int32) error {
	args := m.Called(ctx, tenant, shelfID, stockID, quantity)
	return args.Error(0)
}

func (m *MockReleaseInventoryRepository) AddEntries(ctx context.Context, entries []*inventory.StockEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockReleaseInventoryRepository) AddStock(_ context.Context, _ *inventory.Stock) error {
	return errors.New("not implemented in mock")
}
func (m *MockReleaseInventoryRepository) GetStock(_ context.Context, _ kernel.TenantID, _ int32) (*inventory.Stock, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockReleaseInventoryRepository) AddShelf(_ context.Context, _ *inventory.Shelf) error {
	return errors.New("not implemented in mock")
}
func (m *MockReleaseInventoryRepository) GetShelf(_ context.Context, _ kernel.TenantID, _ int32) (*inventory.Shelf, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockReleaseInventoryRepository) UpdateShelf(_ context.Context, _ *inventory.Shelf) error {
	return errors.New("not implemented in mock")
}
func (m *MockReleaseInventoryRepository) AddLot(_ context.Context, _ *inventory.Lot) (int32, error) {
	return 0, errors.New("not implemented in mock")
}
func (m *MockReleaseInventoryRepository) GetAvailability(_ context.Context, _ kernel.TenantID, _ []int32) (map[int32][]inventory.Availability, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockReleaseInventoryRepository) DecrementShelf(_ context.Context, _ kernel.TenantID, _, _, _ int32) error {
	return errors.New("not implemented in mock")
}
func (m *MockReleaseInventoryRepository) AddItems(_ context.Context, _ []*inventory.Item) error {
	return errors.New("not implemented in mock")
}
func (m *MockReleaseInventoryRepository) GetItem(_ context.Context, _ kernel.TenantID, _ int32) (*inventory.Item, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockReleaseInventoryRepository) GetItemByBarcode(_ context.Context, _ kernel.TenantID, _ string) (*inventory.Item, error) {
	return nil, errors.New("not implemented in mock")
}

func cancelTestReservedItem(t *testing.T, tenant kernel.TenantID, id int32, barcode string) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem(id, tenant, 7, 1, 4, barcode, decimal.NewFromInt(2))
	require.NoError(t, err)
	require.NoError(t, item.Reserve())
	return item
}

func TestCancelSaleCommandHandler_Handle_ReleasesReservedInventory(t *testing.T) {
	ctx := t.Context()
	tenant, _ := kernel.NewTenantID(1)
	allocated := scheduleTestSale(t, tenant, sale.StatusAllocated, 2)
	cmd, err := commands.NewCancelSaleCommand(tenant, allocated.ID())
	require.NoError(t, err)

	item1 := cancelTestReservedItem(t, tenant, 21, "BC-21")
	item2 := cancelTestReservedItem(t, tenant, 22, "BC-22")
	lot, err := inventory.NewLot(1, tenant, 7, "L-100", 3, "acme",
		time.Now().UTC(), nil, decimal.NewFromInt(2))
	require.NoError(t, err)
	draws := []inventory.Draw{{StockID: 7, LotID: 1, ShelfID: 4, NodeID: 9, Quantity: 2}}

	saleRepo := new(MockScheduleSaleRepository)
	invRepo := new(MockReleaseInventoryRepository)
	uow := new(MockCancelUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SaleRepository").Return(saleRepo).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		saleRepo.On("Get", ctx, tenant, allocated.ID()).Return(allocated, nil).Once(),
		invRepo.On("GetNetAllocationsBySale", ctx, tenant, allocated.ID()).Return(draws, nil).Once(),
		invRepo.On("GetItemsInStatus", ctx, tenant, int32(1), int32(4), inventory.ItemStatusReserved, int32(2)).
			Return([]*inventory.Item{item1, item2}, nil).Once(),
		invRepo.On("UpdateItem", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil).Times(2),
		invRepo.On("GetLot", ctx, tenant, int32(1)).Return(lot, nil).Once(),
		invRepo.On("UpdateLot", ctx, mock.AnythingOfType("*inventory.Lot")).Return(nil).Once(),
		invRepo.On("IncrementShelf", ctx, tenant, int32(4), int32(7), int32(2)).Return(nil).Once(),
		invRepo.On("AddEntries", ctx, mock.AnythingOfType("[]*inventory.StockEntry")).Return(nil).Once(),
		saleRepo.On("Update", ctx, mock.AnythingOfType("*sale.Sale")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCancelUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockSaleEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("sale.Event")).Return(nil).Once()

	handler := commands.NewCancelSaleCommandHandler(factory, publisher, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, sale.StatusCancelled, allocated.Status())
	require.Equal(t, inventory.ItemStatusInStock, item1.Status())
	require.Equal(t, inventory.ItemStatusInStock, item2.Status())
	require.Equal(t, int32(5), lot.Quantity())
	saleRepo.AssertExpectations(t)
	invRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCancelSaleCommandHandler_Handle_ShippedSale(t *testing.T) {
	ctx := t.Context()
	tenant, _ := kernel.NewTenantID(1)
	shipped := scheduleTestSale(t, tenant, sale.StatusShipped, 6)
	cmd, err := commands.NewCancelSaleCommand(tenant, shipped.ID())
	require.NoError(t, err)

	saleRepo := new(MockScheduleSaleRepository)
	invRepo := new(MockReleaseInventoryRepository)
	uow := new(MockCancelUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SaleRepository").Return(saleRepo).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		saleRepo.On("Get", ctx, tenant, shipped.ID()).Return(shipped, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCancelUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockSaleEventPublisher)

	handler := commands.NewCancelSaleCommandHandler(factory, publisher, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrTerminalState)
	require.Equal(t, sale.StatusShipped, shipped.Status())
	saleRepo.AssertNotCalled(t, "Update")
	publisher.AssertNotCalled(t, "Publish")
	uow.AssertExpectations(t)
}

func TestCancelSaleCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelSaleCommand{} // not constructed properly

	factory := new(MockCancelUoWFactory)
	publisher := new(MockSaleEventPublisher)

	handler := commands.NewCancelSaleCommandHandler(factory, publisher, discardLogger())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCancelSaleCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
