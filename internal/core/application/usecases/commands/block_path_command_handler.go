package commands

import (
	"context"
	"time"
)

// BlockPathCommandHandler blocks a path and, in the same transaction, marks
// every pending or assigned route whose stored sequence crosses it as stale
// via the version primitive. A picker refreshing after the commit sees the
// stale status instead of walking into a blocked aisle.
type BlockPathCommandHandler struct {
	uowFactory BlockPathUoWFactory
}

// NewBlockPathCommandHandler creates a handler for path blocking.
func NewBlockPathCommandHandler(uowFactory BlockPathUoWFactory) BlockPathCommandHandler {
	return BlockPathCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the block command.
func (h BlockPathCommandHandler) Handle(ctx context.Context, cmd BlockPathCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, func(ctx context.Context) error {
		return h.block(ctx, cmd)
	})
}

func (h BlockPathCommandHandler) block(ctx context.Context, cmd BlockPathCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	topoRepo := uow.TopologyRepository()
	routeRepo := uow.RouteRepository()
	now := time.Now().UTC()

	path, err := topoRepo.GetPath(ctx, cmd.Tenant(), cmd.PathID())
	if err != nil {
		return err
	}

	path.Block()
	if err = topoRepo.UpdatePath(ctx, path); err != nil {
		return err
	}

	routes, err := routeRepo.GetActiveByPath(ctx, cmd.Tenant(), cmd.PathID())
	if err != nil {
		return err
	}
	for _, route := range routes {
		if err = route.MarkStale(route.Version(), now); err != nil {
			return err
		}
		if err = routeRepo.Update(ctx, route); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
