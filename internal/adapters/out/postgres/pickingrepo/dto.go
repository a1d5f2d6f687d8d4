// Package pickingrepo persists picking plan and route aggregates, the goods
// and pick items of a plan, and both event ledgers.
package pickingrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PlanDTO is the database row of a picking plan aggregate.
type PlanDTO struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID int32          `gorm:"index"`
	ZoneIDs  pq.Int32Array  `gorm:"type:integer[]"`
	SaleIDs  pq.StringArray `gorm:"type:uuid[]"`
	Status   int            `gorm:"index"`
	Version  int64
}

// TableName overrides GORM's default naming.
func (PlanDTO) TableName() string {
	return "picking_plans"
}

// GoodDTO is the picking view of one sale inside a plan.
type GoodDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    int32     `gorm:"index"`
	PlanID      uuid.UUID `gorm:"type:uuid;index"`
	SaleID      uuid.UUID `gorm:"type:uuid;index"`
	ReadyToPack bool
	Items       []PickItemDTO `gorm:"foreignKey:GoodID;references:ID"`
}

// TableName overrides GORM's default naming.
func (GoodDTO) TableName() string {
	return "picking_goods"
}

// PickItemDTO is one physical unit a picker must collect.
type PickItemDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	GoodID   uuid.UUID `gorm:"type:uuid;index"`
	TenantID int32
	ItemID   int32 `gorm:"index"`
	NodeID   int32
	Picked   bool
}

// TableName overrides GORM's default naming.
func (PickItemDTO) TableName() string {
	return "pick_items"
}

// RouteDTO is the database row of a picking route aggregate. The traversal
// arrays keep the computed sequence; stops index into node_ids.
type RouteDTO struct {
	ID       uuid.UUID     `gorm:"type:uuid;primaryKey"`
	TenantID int32         `gorm:"index"`
	PlanID   uuid.UUID     `gorm:"type:uuid;index"`
	DependID *uuid.UUID    `gorm:"type:uuid"`
	NodeIDs  pq.Int32Array `gorm:"type:integer[]"`
	PathIDs  pq.Int32Array `gorm:"type:integer[]"`
	Stops    pq.Int32Array `gorm:"type:integer[]"`
	Visited  int
	Assignee string
	Distance float64
	Status   int `gorm:"index"`
	Version  int64
}

// TableName overrides GORM's default naming.
func (RouteDTO) TableName() string {
	return "picking_routes"
}

// PlanEventDTO is one append-only row of the plan event ledger, partitioned
// by created_at month.
type PlanEventDTO struct {
	TenantID  int32     `gorm:"index"`
	PlanID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version   int64     `gorm:"primaryKey"`
	Status    int
	CreatedAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming.
func (PlanEventDTO) TableName() string {
	return "picking_plan_events"
}

// RouteEventDTO is one append-only row of the route event ledger, partitioned
// by created_at month. Step reports carry the visited node.
type RouteEventDTO struct {
	TenantID  int32     `gorm:"index"`
	RouteID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version   int64     `gorm:"primaryKey"`
	Status    int
	NodeID    int32
	CreatedAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming.
func (RouteEventDTO) TableName() string {
	return "picking_route_events"
}

func planFromDomain(aggregate *picking.Plan) PlanDTO {
	saleIDs := make(pq.StringArray, 0, len(aggregate.SaleIDs()))
	for _, id := range aggregate.SaleIDs() {
		saleIDs = append(saleIDs, id.String())
	}

	return PlanDTO{
		ID:       aggregate.ID().Bytes(),
		TenantID: int32(aggregate.Tenant()),
		ZoneIDs:  pq.Int32Array(aggregate.ZoneIDs()),
		SaleIDs:  saleIDs,
		Status:   int(aggregate.Status()),
		Version:  aggregate.Version().Int64(),
	}
}

func planToDomain(dto PlanDTO) (*picking.Plan, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenant, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	version, err := kernel.NewVersion(dto.Version)
	if err != nil {
		return nil, err
	}

	saleIDs := make([]kernel.UUID, 0, len(dto.SaleIDs))
	for _, raw := range dto.SaleIDs {
		saleID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		saleIDs = append(saleIDs, saleID)
	}

	return picking.RestorePlan(id, tenant, saleIDs, []int32(dto.ZoneIDs),
		picking.PlanStatus(dto.Status), version)
}

func goodFromDomain(good *picking.Good) GoodDTO {
	items := make([]PickItemDTO, 0, len(good.Items()))
	for _, item := range good.Items() {
		items = append(items, PickItemDTO{
			ID:       item.ID().Bytes(),
			GoodID:   good.ID().Bytes(),
			TenantID: int32(item.Tenant()),
			ItemID:   item.ItemID(),
			NodeID:   item.NodeID(),
			Picked:   item.IsPicked(),
		})
	}

	return GoodDTO{
		ID:          good.ID().Bytes(),
		TenantID:    int32(good.Tenant()),
		PlanID:      good.PlanID().Bytes(),
		SaleID:      good.SaleID().Bytes(),
		ReadyToPack: good.IsReadyToPack(),
		Items:       items,
	}
}

func goodToDomain(dto GoodDTO) (*picking.Good, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenant, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	planID, err := kernel.UUIDFromBytes(dto.PlanID[:])
	if err != nil {
		return nil, err
	}

	saleID, err := kernel.UUIDFromBytes(dto.SaleID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*picking.PickItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := picking.RestorePickItem(itemID, tenant, itemDTO.ItemID, itemDTO.NodeID, itemDTO.Picked)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return picking.RestoreGood(id, tenant, planID, saleID, dto.ReadyToPack, items)
}

func routeFromDomain(aggregate *picking.Route) RouteDTO {
	var dependID *uuid.UUID
	if id := aggregate.DependID(); id != nil {
		raw := id.Bytes()
		dependID = &raw
	}

	return RouteDTO{
		ID:       aggregate.ID().Bytes(),
		TenantID: int32(aggregate.Tenant()),
		PlanID:   aggregate.PlanID().Bytes(),
		DependID: dependID,
		NodeIDs:  pq.Int32Array(aggregate.NodeIDs()),
		PathIDs:  pq.Int32Array(aggregate.PathIDs()),
		Stops:    pq.Int32Array(aggregate.Stops()),
		Visited:  aggregate.Visited(),
		Assignee: aggregate.Assignee(),
		Distance: aggregate.Distance(),
		Status:   int(aggregate.Status()),
		Version:  aggregate.Version().Int64(),
	}
}

func routeToDomain(dto RouteDTO) (*picking.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenant, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	planID, err := kernel.UUIDFromBytes(dto.PlanID[:])
	if err != nil {
		return nil, err
	}

	var dependID *kernel.UUID
	if dto.DependID != nil {
		depend, dependErr := kernel.UUIDFromBytes((*dto.DependID)[:])
		if dependErr != nil {
			return nil, dependErr
		}
		dependID = &depend
	}

	version, err := kernel.NewVersion(dto.Version)
	if err != nil {
		return nil, err
	}

	return picking.RestoreRoute(id, tenant, planID, dependID,
		[]int32(dto.NodeIDs), []int32(dto.PathIDs), []int32(dto.Stops),
		dto.Visited, dto.Assignee, dto.Distance,
		picking.RouteStatus(dto.Status), version)
}

func planEventFromDomain(event picking.PlanEvent) PlanEventDTO {
	return PlanEventDTO{
		TenantID:  int32(event.Tenant()),
		PlanID:    event.PlanID().Bytes(),
		Version:   event.Version().Int64(),
		Status:    int(event.Status()),
		CreatedAt: event.CreatedAt(),
	}
}

func routeEventFromDomain(event picking.RouteEvent) RouteEventDTO {
	return RouteEventDTO{
		TenantID:  int32(event.Tenant()),
		RouteID:   event.RouteID().Bytes(),
		Version:   event.Version().Int64(),
		Status:    int(event.Status()),
		NodeID:    event.NodeID(),
		CreatedAt: event.CreatedAt(),
	}
}
