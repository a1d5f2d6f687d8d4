// Package postgres provides the GORM-based Unit of Work and the repository
// adapters behind the persistence ports. A unit of work wraps one database
// transaction; the repositories it hands out run inside that transaction, so
// a command's writes commit or roll back together.
//
// Optimistic concurrency lives here as well: versioned aggregate updates run
// as conditional UPDATEs on the version column and surface
// errs.ErrVersionConflict when zero rows are affected.
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/pickingrepo"
	"fulfillment/internal/adapters/out/postgres/salerepo"
	"fulfillment/internal/adapters/out/postgres/toporepo"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each business operation gets a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory over the given connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the repository
// adapters. Repositories obtained before Begin run on the bare connection;
// after Begin they run inside the transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a new database transaction. Calling Begin again on an active
// unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the current transaction. After commit the transaction is
// closed and cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction. Rolling back twice, or after a
// commit, returns gorm.ErrInvalidTransaction; handlers that roll back in a
// defer ignore that.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// SaleRepository returns a sale repository bound to the current transaction.
func (uow *GormUnitOfWork) SaleRepository() ports.SaleRepository {
	return salerepo.NewGormSaleRepository(uow.conn())
}

// PlanRepository returns a plan repository bound to the current transaction.
func (uow *GormUnitOfWork) PlanRepository() ports.PlanRepository {
	return pickingrepo.NewGormPlanRepository(uow.conn())
}

// RouteRepository returns a route repository bound to the current transaction.
func (uow *GormUnitOfWork) RouteRepository() ports.RouteRepository {
	return pickingrepo.NewGormRouteRepository(uow.conn())
}

// InventoryRepository returns an inventory repository bound to the current
// transaction.
func (uow *GormUnitOfWork) InventoryRepository() ports.InventoryRepository {
	return inventoryrepo.NewGormInventoryRepository(uow.conn())
}

// TopologyRepository returns a topology repository bound to the current
// transaction.
func (uow *GormUnitOfWork) TopologyRepository() ports.TopologyRepository {
	return toporepo.NewGormTopologyRepository(uow.conn())
}
