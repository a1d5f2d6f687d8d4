package picking

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Good is the picking view of one sale inside a plan: ready to pack once
// every one of its items has been picked. A sale appears in at most one good
// per tenant among non-aborted plans.
type Good struct {
	id          kernel.UUID
	tenant      kernel.TenantID
	planID      kernel.UUID
	saleID      kernel.UUID
	readyToPack bool

	items []*PickItem
}

// NewGood attaches a sale to a plan with its reserved items.
func NewGood(tenant kernel.TenantID, planID, saleID kernel.UUID, items []*PickItem) (*Good, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if err := planID.Validate(); err != nil {
		return nil, err
	}
	if err := saleID.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("pick items")
	}

	return &Good{
		id:     kernel.NewUUID(),
		tenant: tenant,
		planID: planID,
		saleID: saleID,
		items:  items,
	}, nil
}

// RestoreGood reconstructs a good from persistence.
func RestoreGood(id kernel.UUID, tenant kernel.TenantID, planID, saleID kernel.UUID,
	readyToPack bool, items []*PickItem) (*Good, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return &Good{id: id, tenant: tenant, planID: planID, saleID: saleID,
		readyToPack: readyToPack, items: items}, nil
}

// ID returns the good identifier.
func (g *Good) ID() kernel.UUID { return g.id }

// Tenant returns the owning tenant.
func (g *Good) Tenant() kernel.TenantID { return g.tenant }

// PlanID returns the owning plan.
func (g *Good) PlanID() kernel.UUID { return g.planID }

// SaleID returns the sale this good fulfills.
func (g *Good) SaleID() kernel.UUID { return g.saleID }

// Items returns the units to pick for this good.
func (g *Good) Items() []*PickItem { return g.items }

// IsReadyToPack reports whether every item of the good has been picked.
func (g *Good) IsReadyToPack() bool { return g.readyToPack }

// RecomputeReadiness re-derives the readiness flag from the item states. It
// returns true when the flag flipped to ready with this call.
func (g *Good) RecomputeReadiness() bool {
	for _, it := range g.items {
		if !it.IsPicked() {
			g.readyToPack = false
			return false
		}
	}

	flipped := !g.readyToPack
	g.readyToPack = true
	return flipped
}

// PickItem is one physical unit a picker must collect: the inventory item,
// the shelf node to walk to, and whether it has been picked. An inventory
// item appears in at most one pick item per tenant.
type PickItem struct {
	id     kernel.UUID
	tenant kernel.TenantID
	itemID int32
	nodeID int32
	picked bool
}

// NewPickItem binds a reserved inventory item to its shelf node.
func NewPickItem(tenant kernel.TenantID, itemID, nodeID int32) (*PickItem, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if itemID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("itemId",
			fmt.Errorf("%d is not a valid item id", itemID))
	}
	if nodeID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("nodeId",
			fmt.Errorf("%d is not a valid node id", nodeID))
	}

	return &PickItem{id: kernel.NewUUID(), tenant: tenant, itemID: itemID, nodeID: nodeID}, nil
}

// RestorePickItem reconstructs a pick item from persistence.
func RestorePickItem(id kernel.UUID, tenant kernel.TenantID, itemID, nodeID int32, picked bool) (*PickItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return &PickItem{id: id, tenant: tenant, itemID: itemID, nodeID: nodeID, picked: picked}, nil
}

// ID returns the pick item identifier.
func (p *PickItem) ID() kernel.UUID { return p.id }

// Tenant returns the owning tenant.
func (p *PickItem) Tenant() kernel.TenantID { return p.tenant }

// ItemID returns the reserved inventory item.
func (p *PickItem) ItemID() int32 { return p.itemID }

// NodeID returns the topology node of the item's shelf.
func (p *PickItem) NodeID() int32 { return p.nodeID }

// IsPicked reports whether the unit has been collected.
func (p *PickItem) IsPicked() bool { return p.picked }

// MarkPicked records the pick. Picking twice is rejected.
func (p *PickItem) MarkPicked() error {
	if p.picked {
		return fmt.Errorf("item %d is already picked: %w", p.itemID, errs.ErrInvalidState)
	}
	p.picked = true
	return nil
}
