package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/storefront/storefront/internal/catalog"
	"github.com/storefront/storefront/internal/config"
	"github.com/storefront/storefront/internal/database"
	"github.com/storefront/storefront/internal/email"
	"github.com/storefront/storefront/internal/handler"
	"github.com/storefront/storefront/internal/logger"
	"github.com/storefront/storefront/internal/middleware"
	"github.com/storefront/storefront/internal/order"
	"github.com/storefront/storefront/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", "0.1.0").Msg("starting storefront server")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	// Connect to MongoDB; a failed first ping is fatal
	mongo, err := database.NewMongo(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Str("database", cfg.Database.Name).Msg("connected to MongoDB")

	checks := map[string]handler.HealthChecker{"mongodb": mongo}

	// Redis is only needed for rate limiting
	var rdb *database.Redis
	if cfg.Security.RateLimiting.Enabled {
		rdb, err = database.NewRedis(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rdb.Close()
		checks["redis"] = rdb
		log.Info().Msg("connected to Redis")
	}

	sender, err := email.NewSender(ctx, cfg.Email, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize email provider")
	}
	log.Info().Str("provider", cfg.Email.Provider).Msg("email provider initialized")

	// Initialize services
	catalogSvc := catalog.NewService(catalog.NewMongoStore(mongo.DB, cfg.Database.QueryTimeout), log)
	orderSvc := order.NewService(sender, order.Options{
		StoreName:       cfg.Order.StoreName,
		Subject:         cfg.Order.Subject,
		DispatchTimeout: cfg.Order.DispatchTimeout,
	}, log)

	h := handler.New(log, catalogSvc, orderSvc, checks)
	mw := middleware.New(rdb, log, cfg)
	r := router.New(h, mw, cfg.Server.CORSAllowedOrigins)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	if err := mongo.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to disconnect from MongoDB")
	}

	log.Info().Msg("server stopped")
}
