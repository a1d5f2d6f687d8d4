package salerepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sale"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSaleRepository implements ports.SaleRepository using GORM.
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GORM sale repository.
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Add saves a new sale, its lines, and its pending events. A duplicate order
// ref within the tenant fails the unique index.
func (r *GormSaleRepository) Add(ctx context.Context, aggregate *sale.Sale) error {
	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.appendEvents(ctx, aggregate.PendingEvents()); err != nil {
		return err
	}

	aggregate.ClearPendingEvents()
	return nil
}

// Update saves a transitioned sale with a conditional UPDATE on the version
// the aggregate held before its buffered transitions. Zero affected rows mean
// a concurrent writer advanced the sale first.
func (r *GormSaleRepository) Update(ctx context.Context, aggregate *sale.Sale) error {
	pending := aggregate.PendingEvents()
	loadedVersion := aggregate.Version().Int64() - int64(len(pending))

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SaleDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("CostPrice", "Status", "Version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("sale %s at version %d: %w",
			aggregate.ID(), loadedVersion, errs.ErrVersionConflict)
	}

	if err := r.appendEvents(ctx, pending); err != nil {
		return err
	}

	aggregate.ClearPendingEvents()
	return nil
}

// Get retrieves a sale by id within a tenant.
func (r *GormSaleRepository) Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*sale.Sale, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SaleDTO
	err := r.db.WithContext(ctx).Preload("Lines").
		First(&dto, "tenant_id = ? AND id = ?", tenant, id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sale", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves every sale of a tenant in the given status.
func (r *GormSaleRepository) GetAllInStatus(ctx context.Context, tenant kernel.TenantID,
	status sale.Status) ([]*sale.Sale, error) {
	var dtos []SaleDTO
	err := r.db.WithContext(ctx).Preload("Lines").
		Find(&dtos, "tenant_id = ? AND status = ?", tenant, int(status)).Error
	if err != nil {
		return nil, err
	}

	sales := make([]*sale.Sale, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		sales = append(sales, aggregate)
	}

	return sales, nil
}

// GetEvents retrieves the full event stream of a sale ordered by version.
func (r *GormSaleRepository) GetEvents(ctx context.Context, tenant kernel.TenantID,
	id kernel.UUID) ([]sale.Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dtos []SaleEventDTO
	err := r.db.WithContext(ctx).Order("version").
		Find(&dtos, "tenant_id = ? AND sale_id = ?", tenant, id.Bytes()).Error
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, errs.NewObjectNotFoundError("sale events", id.String())
	}

	events := make([]sale.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

func (r *GormSaleRepository) appendEvents(ctx context.Context, events []sale.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]SaleEventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, eventFromDomain(event))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}
