package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"travelhub/config"
	"travelhub/jobs"
	"travelhub/models"
	"travelhub/routes"
	"travelhub/services"
	"travelhub/services/logger"
	"travelhub/services/metrics"
	"travelhub/services/notification"

	"github.com/olahol/melody"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// @title                       TravelHub API
// @version                     1.0
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		zlog.Fatal("connect database failed", zap.Error(err))
	}
	if cfg.AutoMigrate {
		if err := models.AutoMigrate(db); err != nil {
			zlog.Fatal("migrate failed", zap.Error(err))
		}
	}
	if err := models.SeedRoles(db); err != nil {
		zlog.Fatal("seed roles failed", zap.Error(err))
	}

	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		zlog.Warn("redis unavailable, geo cache disabled", zap.Error(err))
		rdb = nil
	}

	var storage services.ImageStorage
	cld, err := config.ConnectCloudinary(cfg)
	if err != nil {
		zlog.Warn("cloudinary unavailable, uploads disabled", zap.Error(err))
	} else if cld != nil {
		storage = services.NewCloudinaryStorage(cld)
	}

	m := melody.New()
	publishers := notification.MultiPublisher{
		notification.NewMelodyService(m, notification.EventProviderSubmitted, notification.EventProviderReviewed),
	}
	if cfg.RabbitMQURL != "" {
		amqpPub, err := notification.NewAMQPPublisher(cfg.RabbitMQURL)
		if err != nil {
			zlog.Warn("rabbitmq unavailable, events only go to websocket", zap.Error(err))
		} else {
			defer amqpPub.Close()
			publishers = append(publishers, amqpPub)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(reg)

	roles := services.NewRoleService(services.RoleServiceOptions{DB: db, Logger: zlog})
	tokens := services.NewTokenService(cfg.AccessTokenSecret, cfg.AccessTokenTTL)
	authService := services.NewAuthService(services.AuthServiceOptions{
		DB:        db,
		Logger:    zlog,
		Roles:     roles,
		Tokens:    tokens,
		Publisher: publishers,
	})
	if err := authService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		zlog.Fatal("ensure admin failed", zap.Error(err))
	}

	geoService := services.NewGeographyService(services.GeographyServiceOptions{
		DB:           db,
		Logger:       zlog,
		Cache:        services.NewGeoCache(rdb, cfg.GeoCacheTTL, zlog),
		DeletePolicy: cfg.GeoDeletePolicy,
	})
	providerService := services.NewProviderService(services.ProviderServiceOptions{
		DB:        db,
		Logger:    zlog,
		Storage:   storage,
		Publisher: publishers,
		Metrics:   appMetrics,
	})
	itemService := services.NewBookableItemService(services.BookableItemServiceOptions{
		DB:      db,
		Logger:  zlog,
		Storage: storage,
		Metrics: appMetrics,
	})

	c := cron.New()
	if err := jobs.InitCronJobs(c, authService, zlog); err != nil {
		zlog.Fatal("init cron jobs failed", zap.Error(err))
	}
	defer c.Stop()

	router := config.InitApp()
	routes.SetupRoutes(router, routes.Dependencies{
		Logger:    zlog,
		Tokens:    tokens,
		Auth:      authService,
		Geography: geoService,
		Providers: providerService,
		Items:     itemService,
		Metrics:   appMetrics,
		Gatherer:  reg,
		Melody:    m,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env),
			zap.String("geo_delete_policy", cfg.GeoDeletePolicy), zap.Bool("cache", rdb != nil),
			zap.Bool("uploads", storage != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.Close(); err != nil {
		zlog.Warn("close websocket hub failed", zap.Error(err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
