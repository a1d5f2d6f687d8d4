package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	maintainer *postgres.GormPartitionMaintainer
	publisher  ports.SaleEventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		maintainer: postgres.NewGormPartitionMaintainer(gormDB),
		publisher:  kafka.NewSaleEventPublisher([]string{config.KafkaHost}, config.KafkaSaleEventsTopic),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateAcceptSaleCommandHandler() commands.AcceptSaleCommandHandler {
	var f commands.AcceptSaleUoWFactory = FuncAcceptSaleUoWFactory(func() commands.AcceptSaleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptSaleCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelSaleCommandHandler() commands.CancelSaleCommandHandler {
	var f commands.CancelSaleUoWFactory = FuncCancelSaleUoWFactory(func() commands.CancelSaleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelSaleCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreatePackSaleCommandHandler() commands.PackSaleCommandHandler {
	var f commands.SaleUoWFactory = FuncSaleUoWFactory(func() commands.SaleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPackSaleCommandHandler(f)
}

func (c *CompositionRoot) CreateShipSaleCommandHandler() commands.ShipSaleCommandHandler {
	var f commands.CancelSaleUoWFactory = FuncCancelSaleUoWFactory(func() commands.CancelSaleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewShipSaleCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSchedulePlanCommandHandler() commands.SchedulePlanCommandHandler {
	var f commands.SchedulePlanUoWFactory = FuncSchedulePlanUoWFactory(func() commands.SchedulePlanUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSchedulePlanCommandHandler(f)
}

func (c *CompositionRoot) CreateComputeRoutesCommandHandler() commands.ComputeRoutesCommandHandler {
	var f commands.ComputeRoutesUoWFactory = FuncComputeRoutesUoWFactory(func() commands.ComputeRoutesUoW {
		return c.uowFactory.Create()
	})
	planner := services.NewRoutePlanner(services.NewNearestNeighborOrderer())
	return commands.NewComputeRoutesCommandHandler(f, planner)
}

func (c *CompositionRoot) CreateAbortPlanCommandHandler() commands.AbortPlanCommandHandler {
	var f commands.AbortPlanUoWFactory = FuncAbortPlanUoWFactory(func() commands.AbortPlanUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAbortPlanCommandHandler(f, c.CreateCancelSaleCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateClaimRouteCommandHandler() commands.ClaimRouteCommandHandler {
	var f commands.ClaimRouteUoWFactory = FuncClaimRouteUoWFactory(func() commands.ClaimRouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimRouteCommandHandler(f)
}

func (c *CompositionRoot) CreateReportStepCommandHandler() commands.ReportStepCommandHandler {
	var f commands.ReportStepUoWFactory = FuncReportStepUoWFactory(func() commands.ReportStepUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportStepCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteRouteCommandHandler() commands.CompleteRouteCommandHandler {
	return commands.NewCompleteRouteCommandHandler(c.completeRouteUoWFactory())
}

func (c *CompositionRoot) CreateSweepPlansCommandHandler() commands.SweepPlansCommandHandler {
	return commands.NewSweepPlansCommandHandler(c.completeRouteUoWFactory())
}

func (c *CompositionRoot) CreateBlockPathCommandHandler() commands.BlockPathCommandHandler {
	var f commands.BlockPathUoWFactory = FuncBlockPathUoWFactory(func() commands.BlockPathUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBlockPathCommandHandler(f)
}

func (c *CompositionRoot) CreateReceiveLotCommandHandler() commands.ReceiveLotCommandHandler {
	return commands.NewReceiveLotCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateInventoryAdminCommandHandler() commands.InventoryAdminCommandHandler {
	return commands.NewInventoryAdminCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateTopologyAdminCommandHandler() commands.TopologyAdminCommandHandler {
	var f commands.TopologyUoWFactory = FuncTopologyUoWFactory(func() commands.TopologyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTopologyAdminCommandHandler(f)
}

func (c *CompositionRoot) CreateRotatePartitionsCommandHandler() commands.RotatePartitionsCommandHandler {
	return commands.NewRotatePartitionsCommandHandler(c.maintainer, c.logger)
}

func (c *CompositionRoot) CreateGetAssignableRoutesQueryHandler() queries.GetAssignableRoutesQueryHandler {
	return queries.NewGetAssignableRoutesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSaleHistoryQueryHandler() queries.GetSaleHistoryQueryHandler {
	return queries.NewGetSaleHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPlanProgressQueryHandler() queries.GetPlanProgressQueryHandler {
	return queries.NewGetPlanProgressQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetExpiringLotsQueryHandler() queries.GetExpiringLotsQueryHandler {
	return queries.NewGetExpiringLotsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) completeRouteUoWFactory() commands.CompleteRouteUoWFactory {
	return FuncCompleteRouteUoWFactory(func() commands.CompleteRouteUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) inventoryUoWFactory() commands.InventoryUoWFactory {
	return FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
}

type FuncAcceptSaleUoWFactory func() commands.AcceptSaleUoW

func (f FuncAcceptSaleUoWFactory) Create() commands.AcceptSaleUoW {
	return f()
}

type FuncSaleUoWFactory func() commands.SaleUoW

func (f FuncSaleUoWFactory) Create() commands.SaleUoW {
	return f()
}

type FuncCancelSaleUoWFactory func() commands.CancelSaleUoW

func (f FuncCancelSaleUoWFactory) Create() commands.CancelSaleUoW {
	return f()
}

type FuncSchedulePlanUoWFactory func() commands.SchedulePlanUoW

func (f FuncSchedulePlanUoWFactory) Create() commands.SchedulePlanUoW {
	return f()
}

type FuncComputeRoutesUoWFactory func() commands.ComputeRoutesUoW

func (f FuncComputeRoutesUoWFactory) Create() commands.ComputeRoutesUoW {
	return f()
}

type FuncAbortPlanUoWFactory func() commands.AbortPlanUoW

func (f FuncAbortPlanUoWFactory) Create() commands.AbortPlanUoW {
	return f()
}

type FuncClaimRouteUoWFactory func() commands.ClaimRouteUoW

func (f FuncClaimRouteUoWFactory) Create() commands.ClaimRouteUoW {
	return f()
}

type FuncReportStepUoWFactory func() commands.ReportStepUoW

func (f FuncReportStepUoWFactory) Create() commands.ReportStepUoW {
	return f()
}

type FuncCompleteRouteUoWFactory func() commands.CompleteRouteUoW

func (f FuncCompleteRouteUoWFactory) Create() commands.CompleteRouteUoW {
	return f()
}

type FuncBlockPathUoWFactory func() commands.BlockPathUoW

func (f FuncBlockPathUoWFactory) Create() commands.BlockPathUoW {
	return f()
}

type FuncTopologyUoWFactory func() commands.TopologyUoW

func (f FuncTopologyUoWFactory) Create() commands.TopologyUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}
