package http

import (
	"fmt"
	"net/http"
	"strconv"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/topology"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CreateStock handles POST /api/v1/stocks.
func (s *Server) CreateStock(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request CreateStockRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateStockCommand(tenantID, request.Name, request.Unit)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.InventoryAdmin.HandleCreateStock(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// CreateShelf handles POST /api/v1/shelves.
func (s *Server) CreateShelf(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request CreateShelfRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateShelfCommand(tenantID, request.ZoneID, request.NodeID, request.Name)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.InventoryAdmin.HandleCreateShelf(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// SetShelfPublication handles PUT /api/v1/shelves/:id/publication.
func (s *Server) SetShelfPublication(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	shelfID, err := pathInt32(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request ShelfPublicationRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSetShelfPublicationCommand(tenantID, shelfID, request.Published)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.InventoryAdmin.HandleSetShelfPublication(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReceiveLot handles POST /api/v1/lots - records a goods receipt.
func (s *Server) ReceiveLot(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request ReceiveLotRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	costPrice, err := decimal.NewFromString(request.CostPrice)
	if err != nil {
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("cost_price", err))
	}

	cmd, err := commands.NewReceiveLotCommand(tenantID, request.StockID, request.ShelfID,
		request.LotNumber, request.Quantity, request.Supplier, request.Expiry,
		costPrice, request.Barcodes)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.ReceiveLot.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetExpiringLots handles GET /api/v1/lots/expiring - lists available lots
// whose expiry date falls within the horizon, soonest first.
func (s *Server) GetExpiringLots(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	withinDays := 30
	if raw := ctx.QueryParam("within_days"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("within_days", parseErr))
		}
		withinDays = parsed
	}

	query, err := queries.NewGetExpiringLotsQuery(tenantID, withinDays)
	if err != nil {
		return badRequest(ctx, err)
	}

	lots, err := s.handlers.ExpiringLots.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ExpiringLotResponse, 0, len(lots))
	for _, lot := range lots {
		response = append(response, ExpiringLotResponse{
			LotID:     lot.LotID,
			StockID:   lot.StockID,
			LotNumber: lot.LotNumber,
			Quantity:  lot.Quantity,
			Supplier:  lot.Supplier,
			Expiry:    lot.Expiry,
			CostPrice: lot.CostPrice.String(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateZone handles POST /api/v1/zones.
func (s *Server) CreateZone(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request CreateZoneRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	origin, err := kernel.NewPoint(request.OriginX, request.OriginY)
	if err != nil {
		return badRequest(ctx, err)
	}

	bounds, err := kernel.NewRect(origin, request.Width, request.Height)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateZoneCommand(tenantID, request.Name, bounds)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.TopologyAdmin.HandleCreateZone(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// CreateNode handles POST /api/v1/nodes.
func (s *Server) CreateNode(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request CreateNodeRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	kind, err := nodeKindFromString(request.Kind)
	if err != nil {
		return badRequest(ctx, err)
	}

	position, err := kernel.NewPoint(request.X, request.Y)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateNodeCommand(tenantID, request.ZoneID, request.Name, kind, position)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.TopologyAdmin.HandleCreateNode(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// MoveNode handles PUT /api/v1/nodes/:id/position.
func (s *Server) MoveNode(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	nodeID, err := pathInt32(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request MoveNodeRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	position, err := kernel.NewPoint(request.X, request.Y)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewMoveNodeCommand(tenantID, nodeID, position)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.TopologyAdmin.HandleMoveNode(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddPath handles POST /api/v1/paths.
func (s *Server) AddPath(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request AddPathRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	waypoints := make([]kernel.Point, 0, len(request.Waypoints))
	for _, waypoint := range request.Waypoints {
		point, pointErr := kernel.NewPoint(waypoint.X, waypoint.Y)
		if pointErr != nil {
			return badRequest(ctx, pointErr)
		}
		waypoints = append(waypoints, point)
	}

	cmd, err := commands.NewAddPathCommand(tenantID, request.FromNode, request.ToNode,
		request.Distance, waypoints, request.OneWay)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.TopologyAdmin.HandleAddPath(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// BlockPath handles POST /api/v1/paths/:id/block - blocks the path and marks
// every active route crossing it stale in the same transaction.
func (s *Server) BlockPath(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	pathID, err := pathInt32(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewBlockPathCommand(tenantID, pathID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.BlockPath.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func nodeKindFromString(raw string) (topology.NodeKind, error) {
	switch raw {
	case "dock":
		return topology.NodeKindDock, nil
	case "shelf-access":
		return topology.NodeKindShelfAccess, nil
	case "junction":
		return topology.NodeKindJunction, nil
	}
	return topology.NodeKindUnknown, errs.NewValueIsInvalidErrorWithCause("kind",
		fmt.Errorf("%q is not a node kind", raw))
}
