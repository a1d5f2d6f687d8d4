package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := openDB(configs)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := jobs.NewJobManager(
		app.CreateSweepPlansCommandHandler(),
		app.CreateRotatePartitionsCommandHandler(),
		parseTenants(configs.TenantIDs, logger),
		configs.RetainPeriods,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:            goDotEnvVariable("KAFKA_HOST"),
		KafkaSaleEventsTopic: goDotEnvVariable("KAFKA_SALE_EVENTS_TOPIC"),
		TenantIDs:            goDotEnvVariable("TENANT_IDS"),
		RetainPeriods:        intEnvVariable("RETAIN_PERIODS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnvVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer", key)
	}
	return value
}

func openDB(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

func parseTenants(raw string, logger *slog.Logger) []kernel.TenantID {
	tenants := make([]kernel.TenantID, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.ParseInt(part, 10, 32)
		if err != nil {
			logger.Warn("skipping invalid tenant id", "value", part)
			continue
		}
		tenant, err := kernel.NewTenantID(int32(id))
		if err != nil {
			logger.Warn("skipping invalid tenant id", "value", part)
			continue
		}
		tenants = append(tenants, tenant)
	}
	return tenants
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(httpin.Handlers{
		AcceptSale:     app.CreateAcceptSaleCommandHandler(),
		CancelSale:     app.CreateCancelSaleCommandHandler(),
		PackSale:       app.CreatePackSaleCommandHandler(),
		ShipSale:       app.CreateShipSaleCommandHandler(),
		SchedulePlan:   app.CreateSchedulePlanCommandHandler(),
		ComputeRoutes:  app.CreateComputeRoutesCommandHandler(),
		AbortPlan:      app.CreateAbortPlanCommandHandler(),
		ClaimRoute:     app.CreateClaimRouteCommandHandler(),
		ReportStep:     app.CreateReportStepCommandHandler(),
		CompleteRoute:  app.CreateCompleteRouteCommandHandler(),
		ReceiveLot:     app.CreateReceiveLotCommandHandler(),
		InventoryAdmin: app.CreateInventoryAdminCommandHandler(),
		TopologyAdmin:  app.CreateTopologyAdminCommandHandler(),
		BlockPath:      app.CreateBlockPathCommandHandler(),

		AssignableRoutes: app.CreateGetAssignableRoutesQueryHandler(),
		SaleHistory:      app.CreateGetSaleHistoryQueryHandler(),
		PlanProgress:     app.CreateGetPlanProgressQueryHandler(),
		ExpiringLots:     app.CreateGetExpiringLotsQueryHandler(),
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
