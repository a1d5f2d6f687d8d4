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
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAcceptInventoryRepository struct{ mock.Mock }

func (m *MockAcceptInventoryRepository) GetAvailability(ctx context.Context, tenant kernel.TenantID,
	stockIDs []int32) (map[int32][]inventory.Availability, error) {
	args := m.Called(ctx, tenant, stockIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int32][]inventory.Availability), args.Error(1)
}

func (m *MockAcceptInventoryRepository) DecrementShelf(ctx context.Context, tenant kernel.TenantID,
	shelfID, stockID, quantity int32) error {
	args := m.Called(ctx, tenant, shelfID, stockID, quantity)
	return args.Error(0)
}

func (m *MockAcceptInventoryRepository) UpdateLot(ctx context.Context, lot *inventory.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockAcceptInventoryRepository) GetItemsInStatus(ctx context.Context, tenant kernel.TenantID,
	lotID, shelfID int32, status inventory.ItemStatus, limit int32) ([]*inventory.Item, error) {
	args := m.Called(ctx, tenant, lotID, shelfID, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

func (m *MockAcceptInventoryRepository) UpdateItem(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockAcceptInventoryRepository) AddEntries(ctx context.Context, entries []*inventory.StockEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockAcceptInventoryRepository) AddStock(_ context.Context, _ *inventory.Stock) error {
	return errors.New("not implemented in mock")
}
func (m *MockAcceptInventoryRepository) GetStock(_ context.Context, _ kernel.TenantID, _ int32) (*inventory.Stock, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAcceptInventoryRepository) AddShelf(_ context.Context, _ *inventory.Shelf) error {
	return errors.New("not implemented in mock")
}
func (m *MockAcceptInventoryRepository) GetShelf(_ context.Context, _ kernel.TenantID, _ int32) (*inventory.Shelf, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAcceptInventoryRepository) UpdateShelf(_ context.Context, _ *inventory.Shelf) error {
	return errors.New("not implemented in mock")
}
func (m *MockAcceptInventoryRepository) AddLot(_ context.Context, _ *inventory.Lot) (int32, error) {
	return 0, errors.New("not implemented in mock")
}
func (m *MockAcceptInventoryRepository) GetLot(_ context.Context, _ kernel.TenantID, _ int32) (*inventory.Lot, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAcceptInventoryRepository) IncrementShelf(_ context.Context, _ kernel.TenantID, _, _, _ int32) error {
	return errors.New("not implemented in mock")
}
func (m *MockAcceptInventoryRepository) AddItems(_ context.Context, _ []*inventory.Item) error {
	return errors.New("not implemented in mock")
}
func (m *MockAcceptInventoryRepository) GetItem(_ context.Context, _ kernel.TenantID, _ int32) (*inventory.Item, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAcceptInventoryRepository) GetItemByBarcode(_ context.Context, _ kernel.TenantID, _ string) (*inventory.Item, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAcceptInventoryRepository) GetNetAllocationsBySale(_ context.Context, _ kernel.TenantID, _ kernel.UUID) ([]inventory.Draw, error) {
	return nil, errors.New("not implemented in mock")
}

type MockAcceptSaleRepository struct{ mock.Mock }

func (m *MockAcceptSaleRepository) Add(ctx context.Context, aggregate *sale.Sale) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockAcceptSaleRepository) Update(_ context.Context, _ *sale.Sale) error {
	return errors.New("not implemented in mock")
}
func (m *MockAcceptSaleRepository) Get(_ context.Context, _ kernel.TenantID, _ kernel.UUID) (*sale.Sale, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAcceptSaleRepository) GetAllInStatus(_ context.Context, _ kernel.TenantID, _ sale.Status) ([]*sale.Sale, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockAcceptSaleRepository) GetEvents(_ context.Context, _ kernel.TenantID, _ kernel.UUID) ([]sale.Event, error) {
	return nil, errors.New("not implemented in mock")
}

type MockAcceptUoW struct{ mock.Mock }

func (m *MockAcceptUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockAcceptUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockAcceptUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockAcceptUoW) SaleRepository() ports.SaleRepository {
	args := m.Called()
	return args.Get(0).(ports.SaleRepository)
}
func (m *MockAcceptUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

type MockAcceptUoWFactory struct{ mock.Mock }

func (m *MockAcceptUoWFactory) Create() commands.AcceptSaleUoW {
	args := m.Called()
	return args.Get(0).(commands.AcceptSaleUoW)
}

func acceptTestAvailability(t *testing.T, tenant kernel.TenantID, quantity int32) map[int32][]inventory.Availability {
	t.Helper()
	lot, err := inventory.NewLot(1, tenant, 7, "L-100", quantity, "acme",
		time.Now().UTC(), nil, decimal.NewFromInt(2))
	require.NoError(t, err)

	return map[int32][]inventory.Availability{
		7: {{Lot: lot, ShelfID: 4, NodeID: 9, Quantity: quantity}},
	}
}

func TestAcceptSaleCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenant, _ := kernel.NewTenantID(1)
	cmd, err := commands.NewAcceptSaleCommand(tenant, "ORD-100", []sale.Line{{StockID: 7, Quantity: 2}})
	require.NoError(t, err)

	item1, _ := inventory.NewItem(21, tenant, 7, 1, 4, "BC-21", decimal.NewFromInt(2))
	item2, _ := inventory.NewItem(22, tenant, 7, 1, 4, "BC-22", decimal.NewFromInt(2))

	invRepo := new(MockAcceptInventoryRepository)
	saleRepo := new(MockAcceptSaleRepository)
	uow := new(MockAcceptUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		uow.On("SaleRepository").Return(saleRepo).Once(),
		invRepo.On("GetAvailability", ctx, tenant, []int32{7}).
			Return(acceptTestAvailability(t, tenant, 5), nil).Once(),
		invRepo.On("DecrementShelf", ctx, tenant, int32(4), int32(7), int32(2)).Return(nil).Once(),
		invRepo.On("UpdateLot", ctx, mock.AnythingOfType("*inventory.Lot")).Return(nil).Once(),
		invRepo.On("GetItemsInStatus", ctx, tenant, int32(1), int32(4), inventory.ItemStatusInStock, int32(2)).
			Return([]*inventory.Item{item1, item2}, nil).Once(),
		invRepo.On("UpdateItem", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil).Times(2),
		invRepo.On("AddEntries", ctx, mock.AnythingOfType("[]*inventory.StockEntry")).Return(nil).Once(),
		saleRepo.On("Add", ctx, mock.AnythingOfType("*sale.Sale")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAcceptUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptSaleCommandHandler(factory)
	saleID, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, saleID.Validate())
	require.Equal(t, inventory.ItemStatusReserved, item1.Status())
	require.Equal(t, inventory.ItemStatusReserved, item2.Status())
	invRepo.AssertExpectations(t)
	saleRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAcceptSaleCommandHandler_Handle_InsufficientInventory(t *testing.T) {
	ctx := t.Context()
	tenant, _ := kernel.NewTenantID(1)
	cmd, err := commands.NewAcceptSaleCommand(tenant, "ORD-101", []sale.Line{{StockID: 7, Quantity: 2}})
	require.NoError(t, err)

	invRepo := new(MockAcceptInventoryRepository)
	saleRepo := new(MockAcceptSaleRepository)
	uow := new(MockAcceptUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		uow.On("SaleRepository").Return(saleRepo).Once(),
		invRepo.On("GetAvailability", ctx, tenant, []int32{7}).
			Return(acceptTestAvailability(t, tenant, 1), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAcceptUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptSaleCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, inventory.ErrInsufficientInventory)
	saleRepo.AssertNotCalled(t, "Add")
	invRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAcceptSaleCommandHandler_Handle_RetriesShelfContention(t *testing.T) {
	ctx := t.Context()
	tenant, _ := kernel.NewTenantID(1)
	cmd, err := commands.NewAcceptSaleCommand(tenant, "ORD-103", []sale.Line{{StockID: 7, Quantity: 2}})
	require.NoError(t, err)

	item1, _ := inventory.NewItem(21, tenant, 7, 1, 4, "BC-21", decimal.NewFromInt(2))
	item2, _ := inventory.NewItem(22, tenant, 7, 1, 4, "BC-22", decimal.NewFromInt(2))

	invRepo := new(MockAcceptInventoryRepository)
	saleRepo := new(MockAcceptSaleRepository)
	uow := new(MockAcceptUoW)

	uow.On("Begin", ctx).Return(nil).Times(2)
	uow.On("InventoryRepository").Return(invRepo)
	uow.On("SaleRepository").Return(saleRepo)
	uow.On("Rollback", ctx).Return(nil).Times(2)
	uow.On("Commit", ctx).Return(nil).Once()

	invRepo.On("GetAvailability", ctx, tenant, []int32{7}).
		Return(acceptTestAvailability(t, tenant, 5), nil).Times(2)
	// The first attempt loses the shelf race; the second lands.
	invRepo.On("DecrementShelf", ctx, tenant, int32(4), int32(7), int32(2)).
		Return(inventory.ErrShelfContention).Once()
	invRepo.On("DecrementShelf", ctx, tenant, int32(4), int32(7), int32(2)).Return(nil).Once()
	invRepo.On("UpdateLot", ctx, mock.AnythingOfType("*inventory.Lot")).Return(nil).Once()
	invRepo.On("GetItemsInStatus", ctx, tenant, int32(1), int32(4), inventory.ItemStatusInStock, int32(2)).
		Return([]*inventory.Item{item1, item2}, nil).Once()
	invRepo.On("UpdateItem", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil).Times(2)
	invRepo.On("AddEntries", ctx, mock.AnythingOfType("[]*inventory.StockEntry")).Return(nil).Once()
	saleRepo.On("Add", ctx, mock.AnythingOfType("*sale.Sale")).Return(nil).Once()

	factory := new(MockAcceptUoWFactory)
	factory.On("Create").Return(uow).Times(2)

	handler := commands.NewAcceptSaleCommandHandler(factory)
	saleID, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, saleID.Validate())
	invRepo.AssertNumberOfCalls(t, "GetAvailability", 2)
	invRepo.AssertExpectations(t)
	saleRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAcceptSaleCommandHandler_Handle_ItemRowsShortOfDraw(t *testing.T) {
	ctx := t.Context()
	tenant, _ := kernel.NewTenantID(1)
	cmd, err := commands.NewAcceptSaleCommand(tenant, "ORD-104", []sale.Line{{StockID: 7, Quantity: 2}})
	require.NoError(t, err)

	item1, _ := inventory.NewItem(21, tenant, 7, 1, 4, "BC-21", decimal.NewFromInt(2))

	invRepo := new(MockAcceptInventoryRepository)
	saleRepo := new(MockAcceptSaleRepository)
	uow := new(MockAcceptUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("InventoryRepository").Return(invRepo).Once(),
		uow.On("SaleRepository").Return(saleRepo).Once(),
		invRepo.On("GetAvailability", ctx, tenant, []int32{7}).
			Return(acceptTestAvailability(t, tenant, 5), nil).Once(),
		invRepo.On("DecrementShelf", ctx, tenant, int32(4), int32(7), int32(2)).Return(nil).Once(),
		invRepo.On("UpdateLot", ctx, mock.AnythingOfType("*inventory.Lot")).Return(nil).Once(),
		// Only one loose unit remains where the counters promised two.
		invRepo.On("GetItemsInStatus", ctx, tenant, int32(1), int32(4), inventory.ItemStatusInStock, int32(2)).
			Return([]*inventory.Item{item1}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAcceptUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptSaleCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, inventory.ErrInsufficientInventory)
	require.Equal(t, inventory.ItemStatusInStock, item1.Status())
	invRepo.AssertNotCalled(t, "UpdateItem")
	saleRepo.AssertNotCalled(t, "Add")
	invRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAcceptSaleCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AcceptSaleCommand{} // not constructed properly

	factory := new(MockAcceptUoWFactory)
	handler := commands.NewAcceptSaleCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAcceptSaleCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptSaleCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	tenant, _ := kernel.NewTenantID(1)
	cmd, err := commands.NewAcceptSaleCommand(tenant, "ORD-102", []sale.Line{{StockID: 7, Quantity: 2}})
	require.NoError(t, err)

	uow := new(MockAcceptUoW)
	factory := new(MockAcceptUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewAcceptSaleCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}
