// Package http exposes the fulfillment core over a JSON API. Handlers bind
// requests, build commands and queries, and map domain failures to status
// codes; every business rule stays in the application layer.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// tenantHeader scopes every request to one warehouse operator.
const tenantHeader = "X-Tenant-ID"

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	AcceptSale     commands.AcceptSaleCommandHandler
	CancelSale     commands.CancelSaleCommandHandler
	PackSale       commands.PackSaleCommandHandler
	ShipSale       commands.ShipSaleCommandHandler
	SchedulePlan   commands.SchedulePlanCommandHandler
	ComputeRoutes  commands.ComputeRoutesCommandHandler
	AbortPlan      commands.AbortPlanCommandHandler
	ClaimRoute     commands.ClaimRouteCommandHandler
	ReportStep     commands.ReportStepCommandHandler
	CompleteRoute  commands.CompleteRouteCommandHandler
	ReceiveLot     commands.ReceiveLotCommandHandler
	InventoryAdmin commands.InventoryAdminCommandHandler
	TopologyAdmin  commands.TopologyAdminCommandHandler
	BlockPath      commands.BlockPathCommandHandler

	AssignableRoutes queries.GetAssignableRoutesQueryHandler
	SaleHistory      queries.GetSaleHistoryQueryHandler
	PlanProgress     queries.GetPlanProgressQueryHandler
	ExpiringLots     queries.GetExpiringLotsQueryHandler
}

// Server implements the HTTP API on top of the application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/sales", s.CreateSale)
	api.POST("/sales/:id/cancel", s.CancelSale)
	api.POST("/sales/:id/pack", s.PackSale)
	api.POST("/sales/:id/ship", s.ShipSale)
	api.GET("/sales/:id/history", s.GetSaleHistory)

	api.POST("/plans", s.SchedulePlan)
	api.POST("/plans/:id/routes", s.ComputeRoutes)
	api.POST("/plans/:id/abort", s.AbortPlan)
	api.GET("/plans/:id/progress", s.GetPlanProgress)

	api.GET("/routes/assignable", s.GetAssignableRoutes)
	api.POST("/routes/:id/claim", s.ClaimRoute)
	api.POST("/routes/:id/steps", s.ReportStep)
	api.POST("/routes/:id/complete", s.CompleteRoute)

	api.POST("/stocks", s.CreateStock)
	api.POST("/shelves", s.CreateShelf)
	api.PUT("/shelves/:id/publication", s.SetShelfPublication)
	api.POST("/lots", s.ReceiveLot)
	api.GET("/lots/expiring", s.GetExpiringLots)

	api.POST("/zones", s.CreateZone)
	api.POST("/nodes", s.CreateNode)
	api.PUT("/nodes/:id/position", s.MoveNode)
	api.POST("/paths", s.AddPath)
	api.POST("/paths/:id/block", s.BlockPath)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// tenant extracts and validates the tenant scope of a request.
func tenant(ctx echo.Context) (kernel.TenantID, error) {
	raw := ctx.Request().Header.Get(tenantHeader)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(tenantHeader, err)
	}
	return kernel.NewTenantID(int32(id))
}

// pathUUID parses the :id path parameter as a UUID.
func pathUUID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// pathInt32 parses the :id path parameter as a positive integer.
func pathInt32(ctx echo.Context) (int32, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 32)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return int32(id), nil
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// respondError maps a use case failure to a status code.
func respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrVersionConflict),
		errors.Is(err, inventory.ErrInsufficientInventory),
		errors.Is(err, inventory.ErrShelfContention),
		errors.Is(err, picking.ErrAlreadyPlanned),
		errors.Is(err, picking.ErrRouteIsStale):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrTerminalState):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
