package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateApplyOrderActionCommandHandler(),
		root.CreateUpdateShipmentStatusCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetAllOrdersQueryHandler(),
		root.CreateGetShipmentQueryHandler(),
		root.CreateGetAllShipmentsQueryHandler(),
	)

	jobManager := jobs.NewJobManager(root.CreateProcessFulfillmentsCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	runWebServer(server, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		WorkflowEngineURL: goDotEnvVariable("WORKFLOW_ENGINE_URL"),
	}

	if raw := goDotEnvVariable("FRAUD_LIMIT"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatalf("Invalid FRAUD_LIMIT value %q", raw)
		}
		config.FraudLimit = limit
	}

	if raw := goDotEnvVariable("OUT_OF_STOCK_SKUS"); raw != "" {
		for _, sku := range strings.Split(raw, ",") {
			if sku = strings.TrimSpace(sku); sku != "" {
				config.OutOfStockSKUs = append(config.OutOfStockSKUs, sku)
			}
		}
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

func mustOpenDatabase(config cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword,
		config.DBName, config.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.FulfillmentDTO{},
		&orderrepo.FulfillmentItemDTO{},
		&orderrepo.ShipmentDTO{},
		&orderrepo.PaymentDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func runWebServer(server *httpadapter.Server, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Web server failed: %v", err)
	}
}
