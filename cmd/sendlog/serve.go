package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/totegamma/sendlog/internal/config"
	"github.com/totegamma/sendlog/internal/infra/cache"
	"github.com/totegamma/sendlog/internal/infra/database"
	"github.com/totegamma/sendlog/internal/infra/repository"
	"github.com/totegamma/sendlog/internal/observability"
	"github.com/totegamma/sendlog/internal/present/rest"
	"github.com/totegamma/sendlog/internal/service"
	"github.com/totegamma/sendlog/internal/usecase"
)

func serveCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	return cmd
}

func serve(ctx context.Context, configPath string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Trace.Enable {
		shutdown, err := service.SetupTraceProvider(ctx, cfg.Trace.Endpoint, cfg.Trace.ServiceName, version)
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("failed to flush traces", slog.String("error", err.Error()))
			}
		}()
	}

	db, err := database.NewPostgres(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	if cfg.MigrateOnStart() {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	var events usecase.EventPublisher
	var signals *service.SignalService
	if cfg.Redis.Addr != "" {
		rdb, err := database.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to connect redis: %w", err)
		}
		defer rdb.Close()
		signals = service.NewSignalService(rdb)
		events = signals
	}

	var mc *memcache.Client
	if cfg.Memcached.Addr != "" {
		mc, err = database.NewMemcached(cfg.Memcached.Addr)
		if err != nil {
			slog.Warn(
				"memcached unavailable, catalog cache disabled",
				slog.String("error", err.Error()),
				slog.String("module", "main"),
			)
			mc = nil
		}
	}

	hasher, err := service.NewPasswordService(cfg.Auth.PasswordScheme)
	if err != nil {
		return err
	}
	metrics, err := observability.NewMetrics()
	if err != nil {
		return err
	}

	climberRepo := repository.NewClimberRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	catalogRepo := cache.NewCatalog(
		repository.NewCatalogRepository(db),
		mc,
		time.Duration(cfg.Memcached.TTLSeconds)*time.Second,
	)

	handler := rest.NewHandler(
		version,
		usecase.NewAuthUsecase(climberRepo, hasher),
		usecase.NewAttemptUsecase(attemptRepo, routeRepo, events),
		usecase.NewRouteUsecase(routeRepo, catalogRepo, events),
		usecase.NewCatalogUsecase(catalogRepo),
		signals,
		metrics,
	)

	e := rest.NewEcho(cfg.Server.AllowedOrigin)
	e.Use(echomiddleware.Logger())
	if cfg.Trace.Enable {
		e.Use(otelecho.Middleware(cfg.Trace.ServiceName))
	}
	handler.RegisterRoutes(e, cfg.Server.BasePath)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", slog.String("addr", cfg.Server.ListenAddr), slog.String("module", "main"))
		if err := e.Start(cfg.Server.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
