package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// SchedulePlan handles POST /api/v1/plans - schedules a picking plan over the
// given sales and zones.
func (s *Server) SchedulePlan(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request SchedulePlanRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	saleIDs := make([]kernel.UUID, 0, len(request.SaleIDs))
	for _, raw := range request.SaleIDs {
		saleID, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return badRequest(ctx, parseErr)
		}
		saleIDs = append(saleIDs, saleID)
	}

	cmd, err := commands.NewSchedulePlanCommand(tenantID, saleIDs, request.ZoneIDs)
	if err != nil {
		return badRequest(ctx, err)
	}

	planID, err := s.handlers.SchedulePlan.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: planID.String()})
}

// ComputeRoutes handles POST /api/v1/plans/:id/routes - computes the pick
// walk of every good in the plan.
func (s *Server) ComputeRoutes(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	planID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request ComputeRoutesRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewComputeRoutesCommand(tenantID, planID, request.StartNode)
	if err != nil {
		return badRequest(ctx, err)
	}

	routeIDs, err := s.handlers.ComputeRoutes.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	ids := make([]string, 0, len(routeIDs))
	for _, id := range routeIDs {
		ids = append(ids, id.String())
	}

	return ctx.JSON(http.StatusCreated, IDsResponse{IDs: ids})
}

// AbortPlan handles POST /api/v1/plans/:id/abort.
func (s *Server) AbortPlan(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	planID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAbortPlanCommand(tenantID, planID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.AbortPlan.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPlanProgress handles GET /api/v1/plans/:id/progress.
func (s *Server) GetPlanProgress(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	planID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetPlanProgressQuery(tenantID, planID)
	if err != nil {
		return badRequest(ctx, err)
	}

	progress, err := s.handlers.PlanProgress.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	goods := make([]GoodProgressResponse, 0, len(progress.Goods))
	for _, good := range progress.Goods {
		goods = append(goods, GoodProgressResponse{
			SaleID:      good.SaleID.String(),
			ReadyToPack: good.ReadyToPack,
			ItemsTotal:  good.ItemsTotal,
			ItemsPicked: good.ItemsPicked,
		})
	}

	return ctx.JSON(http.StatusOK, PlanProgressResponse{
		PlanID:  progress.PlanID.String(),
		Status:  progress.Status.String(),
		Version: progress.Version.Int64(),
		Goods:   goods,
	})
}

// GetAssignableRoutes handles GET /api/v1/routes/assignable.
func (s *Server) GetAssignableRoutes(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetAssignableRoutesQuery(tenantID)
	if err != nil {
		return badRequest(ctx, err)
	}

	routes, err := s.handlers.AssignableRoutes.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]AssignableRouteResponse, 0, len(routes))
	for _, route := range routes {
		var dependID *string
		if route.DependID != nil {
			raw := route.DependID.String()
			dependID = &raw
		}

		response = append(response, AssignableRouteResponse{
			RouteID:  route.RouteID.String(),
			PlanID:   route.PlanID.String(),
			DependID: dependID,
			Stops:    route.Stops,
			Distance: route.Distance,
			Version:  route.Version.Int64(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// ClaimRoute handles POST /api/v1/routes/:id/claim - assigns the route to a
// picker. A second claim at the same version is rejected with 409.
func (s *Server) ClaimRoute(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	routeID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request ClaimRouteRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	version, err := kernel.NewVersion(request.Version)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewClaimRouteCommand(tenantID, routeID, request.Assignee, version)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.ClaimRoute.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportStep handles POST /api/v1/routes/:id/steps - records arrival at the
// next stop of the route.
func (s *Server) ReportStep(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	routeID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request ReportStepRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	version, err := kernel.NewVersion(request.Version)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewReportStepCommand(tenantID, routeID, request.NodeID, version)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.ReportStep.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteRoute handles POST /api/v1/routes/:id/complete.
func (s *Server) CompleteRoute(ctx echo.Context) error {
	tenantID, err := tenant(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	routeID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request CompleteRouteRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, err)
	}

	version, err := kernel.NewVersion(request.Version)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCompleteRouteCommand(tenantID, routeID, version)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.handlers.CompleteRoute.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
