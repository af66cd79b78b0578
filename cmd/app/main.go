package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlinkierSwine/cargo-track/cmd"
	httpin "github.com/SlinkierSwine/cargo-track/internal/adapters/in/http"
	"github.com/SlinkierSwine/cargo-track/internal/adapters/out/fleethttp"
	"github.com/SlinkierSwine/cargo-track/internal/adapters/out/postgres/cargorepo"
	"github.com/SlinkierSwine/cargo-track/internal/adapters/out/postgres/orderrepo"
	"github.com/SlinkierSwine/cargo-track/internal/adapters/out/rabbitmq"
	"github.com/SlinkierSwine/cargo-track/internal/adapters/out/warehousehttp"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	brokerCfg := rabbitmq.Config{
		Host:               configs.RabbitMQHost,
		Port:               configs.RabbitMQPort,
		User:               configs.RabbitMQUser,
		Password:           configs.RabbitMQPassword,
		Exchange:           configs.RabbitMQExchange,
		DeadLetterExchange: configs.RabbitMQDeadLetterExchange,
	}

	publisher, err := rabbitmq.NewPublisher(brokerCfg, logger)
	if err != nil {
		log.Fatalf("Failed to create publisher: %v", err)
	}

	subscriber, err := rabbitmq.NewSubscriber(brokerCfg, logger)
	if err != nil {
		log.Fatalf("Failed to create subscriber: %v", err)
	}

	fleetClient, err := fleethttp.NewClient(configs.FleetServiceURL)
	if err != nil {
		log.Fatalf("Failed to create fleet client: %v", err)
	}

	warehouseClient, err := warehousehttp.NewClient(configs.WarehouseServiceURL)
	if err != nil {
		log.Fatalf("Failed to create warehouse client: %v", err)
	}

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		publisher,
		fleetClient,
		warehouseClient,
		logger,
	)

	if err = app.CreateOrderEventService().RegisterHandlers(subscriber); err != nil {
		log.Fatalf("Failed to register order event handlers: %v", err)
	}
	if err = app.CreateFleetEventService().RegisterHandlers(subscriber); err != nil {
		log.Fatalf("Failed to register fleet event handlers: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = subscriber.StartListening(ctx); err != nil {
		log.Fatalf("Failed to start consuming events: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e := echo.New()
	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateAssignVehicleCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateRegisterCargoCommandHandler(),
		app.CreateGetUncompletedOrdersQueryHandler(),
		app.CreateCheckCompatibilityQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	jobManager.StopAll()

	if err = subscriber.Close(); err != nil {
		logger.Error("Failed to close subscriber", "error", err)
	}
	if err = publisher.Close(); err != nil {
		logger.Error("Failed to close publisher", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server", "error", err)
	}
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                   goDotEnvVariable("HTTP_PORT"),
		DBHost:                     goDotEnvVariable("DB_HOST"),
		DBPort:                     goDotEnvVariable("DB_PORT"),
		DBUser:                     goDotEnvVariable("DB_USER"),
		DBPassword:                 goDotEnvVariable("DB_PASSWORD"),
		DBName:                     goDotEnvVariable("DB_NAME"),
		DBSslMode:                  goDotEnvVariable("DB_SSLMODE"),
		RabbitMQHost:               goDotEnvVariable("RABBITMQ_HOST"),
		RabbitMQPort:               goDotEnvVariable("RABBITMQ_PORT"),
		RabbitMQUser:               goDotEnvVariable("RABBITMQ_USER"),
		RabbitMQPassword:           goDotEnvVariable("RABBITMQ_PASSWORD"),
		RabbitMQExchange:           goDotEnvVariable("RABBITMQ_EXCHANGE"),
		RabbitMQDeadLetterExchange: goDotEnvVariable("RABBITMQ_DEAD_LETTER_EXCHANGE"),
		FleetServiceURL:            goDotEnvVariable("FLEET_SERVICE_URL"),
		WarehouseServiceURL:        goDotEnvVariable("WAREHOUSE_SERVICE_URL"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &cargorepo.CargoDTO{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	return gormDB
}
