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

// GormRouteRepository implements ports.RouteRepository using GORM.
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GORM route repository.
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

// Add persists a new route and its pending events.
func (r *GormRouteRepository) Add(ctx context.Context, aggregate *picking.Route) error {
	dto := routeFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.appendEvents(ctx, aggregate.PendingEvents()); err != nil {
		return err
	}

	aggregate.ClearPendingEvents()
	return nil
}

// Update persists a transitioned route with a conditional UPDATE on the
// version the aggregate held before its buffered transitions. A lost claim
// race surfaces here as errs.ErrVersionConflict.
func (r *GormRouteRepository) Update(ctx context.Context, aggregate *picking.Route) error {
	pending := aggregate.PendingEvents()
	loadedVersion := aggregate.Version().Int64() - int64(len(pending))

	dto := routeFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RouteDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("Visited", "Assignee", "Status", "Version").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("picking route %s at version %d: %w",
			aggregate.ID(), loadedVersion, errs.ErrVersionConflict)
	}

	if err := r.appendEvents(ctx, pending); err != nil {
		return err
	}

	aggregate.ClearPendingEvents()
	return nil
}

// Get retrieves a route by id within a tenant.
func (r *GormRouteRepository) Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*picking.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenant, id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("picking route", id.String())
		}
		return nil, err
	}

	return routeToDomain(dto)
}

// GetAssignable retrieves every pending route of a tenant whose dependency,
// if any, is already completed. Shortest routes come first.
func (r *GormRouteRepository) GetAssignable(ctx context.Context, tenant kernel.TenantID) ([]*picking.Route, error) {
	var dtos []RouteDTO
	err := r.db.WithContext(ctx).
		Where(`tenant_id = ? AND status = ?
			AND (depend_id IS NULL OR EXISTS (
				SELECT 1 FROM picking_routes d
				WHERE d.id = picking_routes.depend_id AND d.status = ?
			))`,
			tenant, int(picking.RouteStatusPending), int(picking.RouteStatusCompleted)).
		Order("distance, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.restoreAll(dtos)
}

// GetByPlan retrieves every route of a plan.
func (r *GormRouteRepository) GetByPlan(ctx context.Context, tenant kernel.TenantID,
	planID kernel.UUID) ([]*picking.Route, error) {
	if err := planID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RouteDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "tenant_id = ? AND plan_id = ?", tenant, planID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return r.restoreAll(dtos)
}

// GetActiveByPath retrieves every pending or assigned route whose stored
// sequence crosses the given path.
func (r *GormRouteRepository) GetActiveByPath(ctx context.Context, tenant kernel.TenantID,
	pathID int32) ([]*picking.Route, error) {
	var dtos []RouteDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status IN ? AND ? = ANY(path_ids)",
			tenant, []int{int(picking.RouteStatusPending), int(picking.RouteStatusAssigned)}, pathID).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.restoreAll(dtos)
}

func (r *GormRouteRepository) restoreAll(dtos []RouteDTO) ([]*picking.Route, error) {
	routes := make([]*picking.Route, 0, len(dtos))
	for _, dto := range dtos {
		route, err := routeToDomain(dto)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, nil
}

func (r *GormRouteRepository) appendEvents(ctx context.Context, events []picking.RouteEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]RouteEventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, routeEventFromDomain(event))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}
