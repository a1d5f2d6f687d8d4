package commands

import (
	"context"
	"time"
)

// PackSaleCommandHandler moves a picked sale to packed under the version
// guard.
type PackSaleCommandHandler struct {
	uowFactory SaleUoWFactory
}

// NewPackSaleCommandHandler creates a handler for packing.
func NewPackSaleCommandHandler(uowFactory SaleUoWFactory) PackSaleCommandHandler {
	return PackSaleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the packing command.
func (h PackSaleCommandHandler) Handle(ctx context.Context, cmd PackSaleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		saleRepo := uow.SaleRepository()
		aggregate, err := saleRepo.Get(ctx, cmd.Tenant(), cmd.SaleID())
		if err != nil {
			return err
		}

		if err = aggregate.MarkPacked(aggregate.Version(), time.Now().UTC()); err != nil {
			return err
		}

		if err = saleRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
