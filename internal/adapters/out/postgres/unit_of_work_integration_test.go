package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/salerepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration tests for the GORM unit
// of work: transaction lifecycle and atomicity of writes spanning multiple
// repositories.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	tenant    kernel.TenantID
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&salerepo.SaleDTO{}, &salerepo.SaleLineDTO{}, &salerepo.SaleEventDTO{},
		&inventoryrepo.StockShelfDTO{}, &inventoryrepo.StockEntryDTO{}))

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)

	suite.tenant, err = kernel.NewTenantID(1)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE sales, sale_lines, sale_events, stock_shelves, stock_entries").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestSale(orderRef string) *sale.Sale {
	aggregate, err := sale.NewSale(suite.tenant, orderRef,
		[]sale.Line{{StockID: 7, Quantity: 1}}, time.Now().UTC())
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.SaleRepository())
	suite.NotNil(uow2.InventoryRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	// A second Begin on an active transaction is a no-op.
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	// The transaction is closed; both outcomes now report an invalid state.
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	aggregate := suite.createTestSale("ORD-2001")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.SaleRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.InventoryRepository().IncrementShelf(ctx, suite.tenant, 1, 7, 3))
	suite.Require().NoError(uow.Commit(ctx))

	retrieved, err := suite.factory.Create().SaleRepository().Get(ctx, suite.tenant, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal("ORD-2001", retrieved.OrderRef())

	var quantity int32
	suite.Require().NoError(suite.db.Raw(
		"SELECT quantity FROM stock_shelves WHERE shelf_id = 1 AND stock_id = 7").
		Scan(&quantity).Error)
	suite.Equal(int32(3), quantity)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	aggregate := suite.createTestSale("ORD-2002")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.SaleRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.InventoryRepository().IncrementShelf(ctx, suite.tenant, 1, 7, 3))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().SaleRepository().Get(ctx, suite.tenant, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var placements int64
	suite.Require().NoError(suite.db.Raw("SELECT COUNT(*) FROM stock_shelves").Scan(&placements).Error)
	suite.Zero(placements)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
