package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/codex-grpc-employee-profile/internal/adapters/grpc/handler"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/core/catalog"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/platform/config"
	pg "github.com/ogurasousui/codex-grpc-employee-profile/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/platform/logger"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/platform/metrics"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/platform/ops"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/platform/server"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/platform/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database pool: %w", err)
	}
	defer dbPool.Close()

	m := metrics.New()
	txManager := pg.NewTransactionManager(dbPool)

	employeeSvc := employee.NewService(
		postgres.NewEmployeeRepository(dbPool),
		txManager,
		employee.Settings{
			MaxReviews:        cfg.Profile.MaxReviews,
			StrictSingleFetch: cfg.Profile.StrictSingleFetch,
		},
		log,
		employee.WithObserver(m),
	)
	catalogSvc := catalog.NewService(postgres.NewCatalogRepository(dbPool), txManager, log)

	grpcServer := server.New(cfg.Server.ListenAddr, server.Services{
		Employee: handler.NewEmployeeProfileHandler(employeeSvc),
		Catalog:  handler.NewCatalogHandler(catalogSvc),
	}, log,
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			server.RequestIDUnaryInterceptor(),
			server.LoggingUnaryInterceptor(log),
			m.UnaryServerInterceptor(),
		),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return grpcServer.Run(gctx)
	})
	if cfg.Server.OpsAddr != "" {
		opsServer := ops.NewServer(cfg.Server.OpsAddr, ops.NewRouter(dbPool, m.Registry()), cfg.Server.ShutdownTimeout, log)
		g.Go(func() error {
			return opsServer.Run(gctx)
		})
	}

	return g.Wait()
}
