package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/iliyamo/hotel-booking-admin/internal/config"
	"github.com/iliyamo/hotel-booking-admin/internal/database"
	"github.com/iliyamo/hotel-booking-admin/internal/handler"
	"github.com/iliyamo/hotel-booking-admin/internal/jobs"
	"github.com/iliyamo/hotel-booking-admin/internal/middleware"
	"github.com/iliyamo/hotel-booking-admin/internal/queue"
	"github.com/iliyamo/hotel-booking-admin/internal/realtime"
	"github.com/iliyamo/hotel-booking-admin/internal/repository"
	"github.com/iliyamo/hotel-booking-admin/internal/router"
	"github.com/iliyamo/hotel-booking-admin/internal/service"
	"github.com/iliyamo/hotel-booking-admin/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional outside local development
	cfg := config.Load()
	logger := config.NewLogger("hotel-admin", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DSN())
	if err != nil {
		logger.Fatalf("db: %v", err)
	}
	defer db.Close()
	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatalf("migrate: %v", err)
		}
		logger.Info("schema applied")
	}

	// Redis backs the rate limiter and response cache; both are skipped
	// when it is unreachable.
	var rdb *redis.Client
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()
	if cacheCfg.Enabled || rateCfg.Enabled {
		rdb, err = config.NewRedisClient(ctx)
		if err != nil {
			logger.Warnf("redis unavailable, cache and rate limit disabled: %v", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	images, err := storage.New(cfg.CloudinaryURL, cfg.UploadDir)
	if err != nil {
		logger.Fatalf("image store: %v", err)
	}

	admins := repository.NewAdminRepo(db)
	tokens := repository.NewTokenRepo(db)
	hotels := repository.NewHotelRepo(db)
	roomTypes := repository.NewRoomTypeRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)

	ownership := service.NewOwnership(hotels, cfg.OwnerCacheTTL)
	defer ownership.Close()

	hub := realtime.NewHub(cfg.JWTSecret, logger)
	defer hub.Close()
	sinks := []queue.Sink{queue.NewFileSink("logs"), hub}

	var events service.Publisher = service.LocalPublisher{Sinks: sinks}
	if cfg.RabbitMQURL != "" {
		events = &service.AMQPPublisher{URL: cfg.RabbitMQURL}
		consumer := &queue.Consumer{URL: cfg.RabbitMQURL, Sinks: sinks, Log: logger}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("booking consumer stopped: %v", err)
			}
		}()
	}

	scheduler := cron.New()
	if err := jobs.ScheduleReconcile(scheduler, cfg.ReconcileCron, repository.NewReconcileRepo(db), logger); err != nil {
		logger.Fatalf("reconcile schedule: %v", err)
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	e := echo.New()
	e.HideBanner = true
	e.Logger = logger
	e.Validator = handler.NewValidator()
	e.JSONSerializer = handler.JSONSerializer{}
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(echomw.BodyLimit("10M"))

	guard := router.Guard{
		JWTSecret: cfg.JWTSecret,
		RateLimit: middleware.NewTokenBucket(rateCfg, rdb),
		Cache:     middleware.NewRedisCache(cacheCfg, rdb),
	}
	router.RegisterRoutes(e, db, cfg.UploadDir, hub.Handle)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, admins, tokens), guard)
	router.RegisterHotels(e,
		handler.NewHotelHandler(hotels, images),
		handler.NewRoomHandler(roomTypes, rooms, ownership, service.NewRoomService(db)),
		guard)
	router.RegisterBookings(e,
		handler.NewBookingHandler(service.NewBookingService(db, events, logger), bookings, rooms, ownership),
		handler.NewRevenueHandler(service.NewRevenueService(repository.NewRevenueRepo(db), ownership)),
		guard)

	addr := ":" + cfg.Port
	go func() {
		logger.Infof("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
