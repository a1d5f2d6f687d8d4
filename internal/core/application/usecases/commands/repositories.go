// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler names only the repositories it touches, so tests mock exactly
// that surface and nothing more.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SaleRepoFactory provides access to the sale repository within a transaction.
	SaleRepoFactory interface {
		SaleRepository() ports.SaleRepository
	}

	// PlanRepoFactory provides access to the plan repository within a transaction.
	PlanRepoFactory interface {
		PlanRepository() ports.PlanRepository
	}

	// RouteRepoFactory provides access to the route repository within a transaction.
	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	// InventoryRepoFactory provides access to the inventory repository within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// TopologyRepoFactory provides access to the topology repository within a transaction.
	TopologyRepoFactory interface {
		TopologyRepository() ports.TopologyRepository
	}

	// SaleUoW manages transactions for sale-only operations.
	SaleUoW interface {
		TxManager
		SaleRepoFactory
	}

	// SaleUoWFactory creates new sale unit of work instances.
	SaleUoWFactory interface {
		Create() SaleUoW
	}

	// AcceptSaleUoW manages transactions for sale acceptance, which reserves
	// inventory and creates the sale atomically.
	AcceptSaleUoW interface {
		TxManager
		SaleRepoFactory
		InventoryRepoFactory
	}

	// AcceptSaleUoWFactory creates new acceptance unit of work instances.
	AcceptSaleUoWFactory interface {
		Create() AcceptSaleUoW
	}

	// CancelSaleUoW manages transactions for cancellation, which releases
	// reserved inventory alongside the sale transition.
	CancelSaleUoW interface {
		TxManager
		SaleRepoFactory
		InventoryRepoFactory
	}

	// CancelSaleUoWFactory creates new cancellation unit of work instances.
	CancelSaleUoWFactory interface {
		Create() CancelSaleUoW
	}

	// SchedulePlanUoW manages transactions for plan scheduling, which reads
	// the sales and their reservations and writes the plan with its goods.
	SchedulePlanUoW interface {
		TxManager
		PlanRepoFactory
		SaleRepoFactory
		InventoryRepoFactory
	}

	// SchedulePlanUoWFactory creates new scheduling unit of work instances.
	SchedulePlanUoWFactory interface {
		Create() SchedulePlanUoW
	}

	// AbortPlanUoW manages transactions for plan abort, which cancels the
	// plan's routes and cascades to its sales.
	AbortPlanUoW interface {
		TxManager
		PlanRepoFactory
		SaleRepoFactory
		RouteRepoFactory
	}

	// AbortPlanUoWFactory creates new abort unit of work instances.
	AbortPlanUoWFactory interface {
		Create() AbortPlanUoW
	}

	// ComputeRoutesUoW manages transactions for route computation, which
	// reads the plan, its goods, and the topology, and writes routes.
	ComputeRoutesUoW interface {
		TxManager
		PlanRepoFactory
		RouteRepoFactory
		TopologyRepoFactory
	}

	// ComputeRoutesUoWFactory creates new route computation unit of work instances.
	ComputeRoutesUoWFactory interface {
		Create() ComputeRoutesUoW
	}

	// RouteUoW manages transactions for route-only operations.
	RouteUoW interface {
		TxManager
		RouteRepoFactory
	}

	// RouteUoWFactory creates new route unit of work instances.
	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// ClaimRouteUoW manages transactions for claiming, which may also start
	// the owning plan.
	ClaimRouteUoW interface {
		TxManager
		RouteRepoFactory
		PlanRepoFactory
	}

	// ClaimRouteUoWFactory creates new claim unit of work instances.
	ClaimRouteUoWFactory interface {
		Create() ClaimRouteUoW
	}

	// ReportStepUoW manages transactions for step reporting, which touches
	// the route, the plan's goods, the reserved items, and the linked sales.
	ReportStepUoW interface {
		TxManager
		RouteRepoFactory
		PlanRepoFactory
		InventoryRepoFactory
		SaleRepoFactory
	}

	// ReportStepUoWFactory creates new step report unit of work instances.
	ReportStepUoWFactory interface {
		Create() ReportStepUoW
	}

	// CompleteRouteUoW manages transactions for completion, which checks the
	// dependency route and may complete the owning plan.
	CompleteRouteUoW interface {
		TxManager
		RouteRepoFactory
		PlanRepoFactory
	}

	// CompleteRouteUoWFactory creates new completion unit of work instances.
	CompleteRouteUoWFactory interface {
		Create() CompleteRouteUoW
	}

	// BlockPathUoW manages transactions for blocking a path, which marks the
	// routes crossing it stale in the same transaction.
	BlockPathUoW interface {
		TxManager
		TopologyRepoFactory
		RouteRepoFactory
	}

	// BlockPathUoWFactory creates new block unit of work instances.
	BlockPathUoWFactory interface {
		Create() BlockPathUoW
	}

	// TopologyUoW manages transactions for administrative topology edits.
	TopologyUoW interface {
		TxManager
		TopologyRepoFactory
	}

	// TopologyUoWFactory creates new topology unit of work instances.
	TopologyUoWFactory interface {
		Create() TopologyUoW
	}

	// InventoryUoW manages transactions for goods receipt and catalog edits.
	InventoryUoW interface {
		TxManager
		InventoryRepoFactory
	}

	// InventoryUoWFactory creates new inventory unit of work instances.
	InventoryUoWFactory interface {
		Create() InventoryUoW
	}
)
