package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"warehouse/cmd"
	"warehouse/internal/adapters/in/queue"
	"warehouse/internal/adapters/out/postgres/allocationrepo"
	"warehouse/internal/adapters/out/postgres/binrepo"
	"warehouse/internal/adapters/out/postgres/inventoryrepo"
	"warehouse/internal/adapters/out/postgres/orderrepo"
	"warehouse/internal/adapters/out/postgres/taskrepo"
	"warehouse/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)
	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	amqpConn := mustConnectAmqp(configs.AmqpURL)
	defer amqpConn.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient)

	startConsumer(&app, amqpConn)
	startJobs(&app)
	startWebServer(configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:            goDotEnvVariable("AMQP_URL"),
		RedisAddr:          goDotEnvVariable("REDIS_ADDR"),
		RedisEventsChannel: goDotEnvVariable("REDIS_EVENTS_CHANNEL"),
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

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
		&inventoryrepo.UnitDTO{}, &inventoryrepo.LocationDTO{}, &inventoryrepo.DiscrepancyDTO{},
		&allocationrepo.AllocationDTO{},
		&taskrepo.TaskDTO{}, &taskrepo.TaskOrderDTO{}, &taskrepo.TaskItemDTO{},
		&binrepo.BinDTO{}, &binrepo.BinItemDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func mustConnectAmqp(url string) *amqp.Connection {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	return conn
}

func startConsumer(app *cmd.CompositionRoot, amqpConn *amqp.Connection) {
	consumer, err := queue.NewConsumer(
		amqpConn,
		app.CreateAllocateOrdersCommandHandler(),
		app.CreateCreatePickingTaskCommandHandler(),
		app.CreateRecordItemCompletionCommandHandler(),
		app.CreateRecordShortPickCommandHandler(),
	)
	if err != nil {
		log.Fatalf("Error creating queue consumer: %v", err)
	}

	if err = consumer.Start(context.Background()); err != nil {
		log.Fatalf("Error starting queue consumer: %v", err)
	}
}

func startJobs(app *cmd.CompositionRoot) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := jobs.NewJobManager(
		app.CreateGetBackorderedOrdersQueryHandler(),
		app.CreateAllocateOrdersCommandHandler(),
		logger,
	)

	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
}

func startWebServer(port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
