// cmd/listing-api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"property-listings/internal/api"
	"property-listings/internal/common/auth"
	"property-listings/internal/common/config"
	"property-listings/internal/common/database"
	"property-listings/internal/common/logger"
	"property-listings/internal/common/observability"
	getlisting "property-listings/internal/listings/get-listing"
	parselistingfilters "property-listings/internal/listings/parse-listing-filters"
	querylistings "property-listings/internal/listings/query-listings"
	referencetypes "property-listings/internal/listings/reference-types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting listing api...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.Observability.ServiceName, prometheus.DefaultRegisterer)

	ctx := context.Background()

	// --- Postgres ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres client failed", zap.Error(err))
	}
	defer pg.Close()

	err = retryWithBackoff(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return pg.Ping(pingCtx)
	}, 15, 2*time.Second, zapLog, "Postgres connection")
	if err != nil {
		zapLog.Fatal("postgres unavailable", zap.Error(err))
	}
	zapLog.Info("Postgres connected")

	// --- Redis ---
	redisClient, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Fatal("redis client failed", zap.Error(err))
	}
	defer redisClient.Close()

	err = retryWithBackoff(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return redisClient.Ping(pingCtx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis unavailable", zap.Error(err))
	}
	zapLog.Info("Redis connected")

	// --- Handlers ---
	searchCfg := querylistings.ConfigFrom(cfg)
	refs := referencetypes.NewHandler(pg, redisClient, time.Duration(cfg.Search.ReferenceCacheTTL)*time.Second, log)

	catalog, err := refs.ResolveCatalog(ctx)
	if err != nil {
		zapLog.Fatal("reference catalog check failed", zap.Error(err))
	}
	zapLog.Info("reference catalog resolved",
		zap.Int("propertyTypes", len(catalog.PropertyTypes)),
		zap.Int("listingTypes", len(catalog.ListingTypes)),
		zap.Strings("missing", catalog.Missing),
	)

	deps := api.Deps{
		Filters:    parselistingfilters.NewHandler(log),
		Search:     querylistings.NewHandler(searchCfg, pg, log, obs),
		Listing:    getlisting.NewHandler(searchCfg.Timeout, pg, log),
		References: refs,
		Database:   pg,
		Logger:     log,
	}
	if cfg.Auth.Enabled {
		kc := cfg.Auth.Keycloak
		deps.Auth = auth.NewKeycloakClient(kc.URL, kc.Realm, kc.ClientID, kc.ClientSecret, config.GetDuration(kc.Timeout))
		zapLog.Info("bearer authentication enabled", zap.String("realm", kc.Realm))
	}

	if cfg.App.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.NewRouter(deps),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(ctx, config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	obs.Shutdown(shutdownCtx)

	zapLog.Info("Listing api stopped")
}
