package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/sale"

	"github.com/labstack/echo/v4"
)

// CreateSale handles POST /api/v1/sales - accepts a sale and allocates
// inventory for every line.
func (s *Server) CreateSale(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request CreateSaleRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	lines := make([]sale.Line, 0, len(request.Lines))
	for _, line := range request.Lines {
		lines = append(lines, sale.Line{StockID: line.StockID, Quantity: line.Quantity})
	}

	cmd, err := commands.NewAcceptSaleCommand(tenantID, request.OrderRef, lines)
	if err != nil {
		return badRequest(ctx, err)
	}

	saleID, err := s.handlers.AcceptSale.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: saleID.String()})
}

// CancelSale handles POST /api/v1/sales/:id/cancel.
func (s *Server) CancelSale(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	saleID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelSaleCommand(tenantID, saleID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.CancelSale.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PackSale handles POST /api/v1/sales/:id/pack.
func (s *Server) PackSale(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	saleID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewPackSaleCommand(tenantID, saleID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.PackSale.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ShipSale handles POST /api/v1/sales/:id/ship.
func (s *Server) ShipSale(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	saleID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewShipSaleCommand(tenantID, saleID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.ShipSale.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetSaleHistory handles GET /api/v1/sales/:id/history.
func (s *Server) GetSaleHistory(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	saleID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetSaleHistoryQuery(tenantID, saleID)
	if err != nil {
		return badRequest(ctx, err)
	}

	history, err := s.handlers.SaleHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]SaleHistoryEntry, 0, len(history))
	for _, entry := range history {
		response = append(response, SaleHistoryEntry{
			Version:   entry.Version.Int64(),
			Status:    entry.Status.String(),
			CreatedAt: entry.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}
