package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/businessrepo"
	"dispatch/internal/adapters/out/postgres/employeerepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/rabbitmq"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	publisher := createEventPublisher(configs, logger)

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		publisher,
		logger,
	)

	jobManager := jobs.NewJobManager(
		app.CreateGetStalePendingOrdersQueryHandler(),
		configs.StalePendingThreshold,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:             goDotEnvVariable("JWT_SECRET"),
		AMQPUrl:               goDotEnvVariable("AMQP_URL"),
		StalePendingThreshold: goDotEnvDuration("STALE_PENDING_THRESHOLD", 15*time.Minute),
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

func goDotEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return d
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&employeerepo.EmployeeDTO{},
		&businessrepo.BusinessDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	return gormDB
}

// createEventPublisher connects to the broker when AMQP_URL is set and
// falls back to a noop publisher otherwise. The service stays usable
// without a broker; status-changed events are simply dropped.
func createEventPublisher(configs cmd.Config, logger *slog.Logger) ports.OrderEventPublisher {
	if configs.AMQPUrl == "" {
		logger.Warn("AMQP_URL not set, order events will not be published")
		return ports.NoopOrderEventPublisher{}
	}

	conn, err := amqp.Dial(configs.AMQPUrl)
	if err != nil {
		log.Fatalf("Error connecting to broker: %v", err)
	}
	publisher, err := rabbitmq.NewOrderEventPublisher(conn)
	if err != nil {
		log.Fatalf("Error creating event publisher: %v", err)
	}
	return publisher
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()

	server := httpadapter.NewServer(httpadapter.ServerParams{
		CreateOrderHandler:     app.CreateCreateOrderCommandHandler(),
		TransitionOrderHandler: app.CreateTransitionOrderCommandHandler(),
		SyncDriverHandler:      app.CreateSyncDriverUpdatesCommandHandler(),
		CreateBusinessHandler:  app.CreateCreateBusinessCommandHandler(),
		CreateEmployeeHandler:  app.CreateCreateEmployeeCommandHandler(),
		RemoveEmployeeHandler:  app.CreateRemoveEmployeeCommandHandler(),

		GetOrderHandler:          app.CreateGetOrderQueryHandler(),
		GetBusinessOrdersHandler: app.CreateGetBusinessOrdersQueryHandler(),
		GetDriverOrdersHandler:   app.CreateGetDriverOrdersQueryHandler(),
		GetBusinessesHandler:     app.CreateGetBusinessesQueryHandler(),
		GetEmployeesHandler:      app.CreateGetBusinessEmployeesQueryHandler(),
		GetMembershipHandler:     app.CreateGetMembershipQueryHandler(),
	})
	server.RegisterRoutes(e, configs.JWTSecret)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
