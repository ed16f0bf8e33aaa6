package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dolcemiga/dolceweb/internal/app"
	"github.com/dolcemiga/dolceweb/internal/auth"
	"github.com/dolcemiga/dolceweb/internal/inventory/products"
	"github.com/dolcemiga/dolceweb/internal/platform/db"
	"github.com/dolcemiga/dolceweb/internal/reports"
	"github.com/dolcemiga/dolceweb/internal/reports/export"
	"github.com/dolcemiga/dolceweb/internal/sales/orders"
	"github.com/dolcemiga/dolceweb/internal/shared"
	"github.com/dolcemiga/dolceweb/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "dolceweb_session", cfg.SessionTTL, cfg.IsProduction())

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService)

	authService := auth.NewService(usersRepo)
	authHandler := auth.NewHandler(logger, authService)

	productsRepo := products.NewRepository(pool)
	productsService := products.NewService(productsRepo)
	productsHandler := products.NewHandler(logger, productsService)

	ordersRepo := orders.NewRepository(pool)
	ordersService := orders.NewService(ordersRepo, productsRepo)
	ordersHandler := orders.NewHandler(logger, ordersService)

	exporter, err := export.NewPDFExporter(cfg.GotenbergURL, &http.Client{Timeout: 30 * time.Second})
	if err != nil {
		logger.Error("init pdf exporter", slog.Any("error", err))
		os.Exit(1)
	}
	if err := exporter.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}

	reportsService := reports.NewService(ordersRepo, productsRepo)
	reportsHandler := reports.NewHandler(logger, reportsService, exporter, ordersRepo)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		SessionManager:  sessionManager,
		AuthHandler:     authHandler,
		UsersHandler:    usersHandler,
		ProductsHandler: productsHandler,
		OrdersHandler:   ordersHandler,
		ReportsHandler:  reportsHandler,
	})

	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
