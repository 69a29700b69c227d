// Package main initializes and starts the peerdex directory server,
// setting up configuration, logging, the database connection and schema,
// repositories, services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/peerdex/internal/config"
	"github.com/atinyakov/peerdex/internal/db"
	"github.com/atinyakov/peerdex/internal/logger"
	"github.com/atinyakov/peerdex/internal/repository"
	"github.com/atinyakov/peerdex/internal/server/handler/http"
	"github.com/atinyakov/peerdex/internal/service"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Load .env if present; existing environment variables win.
	_ = godotenv.Load()

	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	// Initialize PostgreSQL connection and create the schema if absent.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer func() { _ = postgresDB.Close() }()
	zapLogger.Info("database initialized with users and files tables")

	// One gate serializes every store access across both repositories.
	gate := db.NewGate()
	userRepo := repository.NewPostgresUserRepository(postgresDB, gate)
	fileRepo := repository.NewPostgresFileRepository(postgresDB, gate)

	// Initialize business-logic services.
	accountService := service.NewAccountService(userRepo, options.BcryptCost)
	catalogService := service.NewCatalogService(fileRepo, userRepo, options.EnforceOwners)

	// Create HTTP handlers for the four directory operations.
	accountHandler := http.NewAccountHandler(accountService, zapLogger)
	catalogHandler := http.NewCatalogHandler(catalogService, zapLogger)

	// Build the router with middleware and routes.
	router := http.NewRouter(accountHandler, catalogHandler, zapLogger, options.AllowedOrigin)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
		if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for an interrupt and shut down gracefully.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zapLogger.Fatal("graceful shutdown failed", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
