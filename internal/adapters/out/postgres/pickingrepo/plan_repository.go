package pickingrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPlanRepository implements ports.PlanRepository using GORM.
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GORM plan repository.
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Add persists a new plan, its goods with their pick items, and the pending
// events of the plan.
func (r *GormPlanRepository) Add(ctx context.Context, aggregate *picking.Plan, goods []*picking.Good) error {
	dto := planFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if len(goods) > 0 {
		goodDTOs := make([]GoodDTO, 0, len(goods))
		for _, good := range goods {
			goodDTOs = append(goodDTOs, goodFromDomain(good))
		}
		if err := r.db.WithContext(ctx).Create(&goodDTOs).Error; err != nil {
			return err
		}
	}

	if err := r.appendEvents(ctx, aggregate.PendingEvents()); err != nil {
		return err
	}

	aggregate.ClearPendingEvents()
	return nil
}

// Update persists a transitioned plan with a conditional UPDATE on the version
// the aggregate held before its buffered transitions.
func (r *GormPlanRepository) Update(ctx context.Context, aggregate *picking.Plan) error {
	pending := aggregate.PendingEvents()
	loadedVersion := aggregate.Version().Int64() - int64(len(pending))

	dto := planFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PlanDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("Status", "Version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("picking plan %s at version %d: %w",
			aggregate.ID(), loadedVersion, errs.ErrVersionConflict)
	}

	if err := r.appendEvents(ctx, pending); err != nil {
		return err
	}

	aggregate.ClearPendingEvents()
	return nil
}

// Get retrieves a plan by id within a tenant.
func (r *GormPlanRepository) Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*picking.Plan, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PlanDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenant, id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("picking plan", id.String())
		}
		return nil, err
	}

	return planToDomain(dto)
}

// GetGoods retrieves the goods of a plan with their pick items.
func (r *GormPlanRepository) GetGoods(ctx context.Context, tenant kernel.TenantID,
	planID kernel.UUID) ([]*picking.Good, error) {
	if err := planID.Validate(); err != nil {
		return nil, err
	}

	var dtos []GoodDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Find(&dtos, "tenant_id = ? AND plan_id = ?", tenant, planID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	goods := make([]*picking.Good, 0, len(dtos))
	for _, dto := range dtos {
		good, err := goodToDomain(dto)
		if err != nil {
			return nil, err
		}
		goods = append(goods, good)
	}

	return goods, nil
}

// UpdateGood persists a good's readiness flag and the picked state of its
// items.
func (r *GormPlanRepository) UpdateGood(ctx context.Context, good *picking.Good) error {
	dto := goodFromDomain(good)

	err := r.db.WithContext(ctx).Model(&GoodDTO{}).
		Where("id = ?", dto.ID).
		Update("ready_to_pack", dto.ReadyToPack).Error
	if err != nil {
		return err
	}

	for _, item := range dto.Items {
		err = r.db.WithContext(ctx).Model(&PickItemDTO{}).
			Where("id = ?", item.ID).
			Update("picked", item.Picked).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// IsSalePlanned reports whether the sale is linked to a good of any
// non-aborted plan.
func (r *GormPlanRepository) IsSalePlanned(ctx context.Context, tenant kernel.TenantID,
	saleID kernel.UUID) (bool, error) {
	if err := saleID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&GoodDTO{}).
		Joins("JOIN picking_plans ON picking_plans.id = picking_goods.plan_id").
		Where("picking_goods.tenant_id = ? AND picking_goods.sale_id = ? AND picking_plans.status <> ?",
			tenant, saleID.Bytes(), int(picking.PlanStatusAborted)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetAllInStatus retrieves every plan of a tenant in the given status.
func (r *GormPlanRepository) GetAllInStatus(ctx context.Context, tenant kernel.TenantID,
	status picking.PlanStatus) ([]*picking.Plan, error) {
	var dtos []PlanDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "tenant_id = ? AND status = ?", tenant, int(status)).Error
	if err != nil {
		return nil, err
	}

	plans := make([]*picking.Plan, 0, len(dtos))
	for _, dto := range dtos {
		plan, err := planToDomain(dto)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

func (r *GormPlanRepository) appendEvents(ctx context.Context, events []picking.PlanEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]PlanEventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, planEventFromDomain(event))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}
