package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	northwindserver "github.com/LilDoor/Northwind-order-system-WebApi/go"

	ordersmemory "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/adapters/memory"
	ordersobs "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/application"
	ordersports "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/ports"
	"github.com/LilDoor/Northwind-order-system-WebApi/internal/platform/migrations"
	platformobservability "github.com/LilDoor/Northwind-order-system-WebApi/internal/platform/observability"
	platformpostgres "github.com/LilDoor/Northwind-order-system-WebApi/internal/platform/postgres"
)

// ServiceName identifies the API process in telemetry.
const ServiceName = "northwind-orders-api"

// Run boots the Northwind orders HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderRepo, cleanupRepo := buildOrderRepository(ctx, cfg, logger)
	defer cleanupRepo()
	coreOrderService := ordersapp.NewService(orderRepo)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline AddOrder", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := northwindserver.ApiHandleFunctions{
		OrderAPI: northwindserver.NewOrderAPI(orderService, orderWorkflows),
	}

	router := northwindserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(ServiceName))
	addr := ":" + cfg.Port
	logger.Info("Northwind orders API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Northwind orders API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repository")
		return ordersmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to apply schema migrations, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
