package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/topology"
)

// TopologyAdminCommandHandler executes the administrative topology edits:
// zones, nodes, and paths. Each edit runs in its own transaction; the routing
// engine reloads the graph snapshot per operation, so edits become visible on
// the next computation.
type TopologyAdminCommandHandler struct {
	uowFactory TopologyUoWFactory
}

// NewTopologyAdminCommandHandler creates a handler for topology edits.
func NewTopologyAdminCommandHandler(uowFactory TopologyUoWFactory) TopologyAdminCommandHandler {
	return TopologyAdminCommandHandler{
		uowFactory: uowFactory,
	}
}

// HandleCreateZone persists a new zone.
func (h TopologyAdminCommandHandler) HandleCreateZone(ctx context.Context, cmd CreateZoneCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	zone, err := topology.NewZone(0, cmd.Tenant(), cmd.Name(), cmd.Bounds())
	if err != nil {
		return err
	}

	return h.inTx(ctx, func(ctx context.Context, uow TopologyUoW) error {
		return uow.TopologyRepository().AddZone(ctx, zone)
	})
}

// HandleCreateNode persists a new node.
func (h TopologyAdminCommandHandler) HandleCreateNode(ctx context.Context, cmd CreateNodeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	node, err := topology.NewNode(0, cmd.Tenant(), cmd.ZoneID(), cmd.Name(), cmd.Kind(), cmd.Position())
	if err != nil {
		return err
	}

	return h.inTx(ctx, func(ctx context.Context, uow TopologyUoW) error {
		return uow.TopologyRepository().AddNode(ctx, node)
	})
}

// HandleAddPath persists a new path between two nodes.
func (h TopologyAdminCommandHandler) HandleAddPath(ctx context.Context, cmd AddPathCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	path, err := topology.NewPath(0, cmd.Tenant(), cmd.FromNode(), cmd.ToNode(),
		cmd.Distance(), cmd.Waypoints(), cmd.OneWay())
	if err != nil {
		return err
	}

	return h.inTx(ctx, func(ctx context.Context, uow TopologyUoW) error {
		return uow.TopologyRepository().AddPath(ctx, path)
	})
}

// HandleMoveNode relocates a node.
func (h TopologyAdminCommandHandler) HandleMoveNode(ctx context.Context, cmd MoveNodeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.inTx(ctx, func(ctx context.Context, uow TopologyUoW) error {
		repo := uow.TopologyRepository()

		node, err := repo.GetNode(ctx, cmd.Tenant(), cmd.NodeID())
		if err != nil {
			return err
		}
		if err = node.MoveTo(cmd.Position()); err != nil {
			return err
		}
		return repo.UpdateNode(ctx, node)
	})
}

func (h TopologyAdminCommandHandler) inTx(ctx context.Context, op func(ctx context.Context, uow TopologyUoW) error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := op(ctx, uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
