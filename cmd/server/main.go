package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"

	"github.com/iliyamo/sports-session-scheduler/internal/config"
	"github.com/iliyamo/sports-session-scheduler/internal/database"
	"github.com/iliyamo/sports-session-scheduler/internal/handler"
	"github.com/iliyamo/sports-session-scheduler/internal/logger"
	"github.com/iliyamo/sports-session-scheduler/internal/middleware"
	"github.com/iliyamo/sports-session-scheduler/internal/queue"
	"github.com/iliyamo/sports-session-scheduler/internal/repository"
	"github.com/iliyamo/sports-session-scheduler/internal/router"
	"github.com/iliyamo/sports-session-scheduler/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	log := logger.Get()

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if cfg.DBAutoMigrate {
		if err := database.Migrate(bootCtx, db); err != nil {
			logger.Fatal().Err(err).Msg("apply schema")
		}
	}
	if cfg.SeedFile != "" {
		seed, err := database.LoadSeed(cfg.SeedFile)
		if err != nil {
			logger.Fatal().Err(err).Str("file", cfg.SeedFile).Msg("load seed")
		}
		if err := seed.Apply(bootCtx, db, cfg.BcryptCost); err != nil {
			logger.Fatal().Err(err).Msg("apply seed")
		}
	}
	bootCancel()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Session events: RabbitMQ when enabled, otherwise discarded.
	var events service.EventPublisher = service.NopPublisher{}
	if cfg.AMQPEnabled {
		pub := service.NewAMQPPublisher(cfg.AMQPURL, logger.With("publisher"))
		defer pub.Close()
		events = pub

		consumer := queue.NewAuditConsumer(cfg.AMQPURL, cfg.AuditLogPath, logger.With("audit"))
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("audit consumer stopped")
			}
		}()
	}

	opts := service.Options{
		Clock:    clockwork.NewRealClock(),
		Location: cfg.Location(),
		Events:   events,
		Metrics:  service.NewMetrics(prometheus.DefaultRegisterer),
		Log:      logger.With("sessions"),
	}
	capacity := service.NewCapacityManager(db, opts)
	queries := service.NewQueryService(db, opts)

	reconciler := service.NewReconciler(db, opts.Metrics, logger.With("reconciler"))
	if cfg.ReconcileSchedule != "" {
		if err := reconciler.StartScheduler(cfg.ReconcileSchedule); err != nil {
			logger.Fatal().Err(err).Str("schedule", cfg.ReconcileSchedule).Msg("invalid RECONCILE_SCHEDULE")
		}
		defer reconciler.StopScheduler()
	}

	rdb := config.NewRedisClient() // nil when Redis is disabled or unreachable
	if rdb != nil {
		defer rdb.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger.With("http")))
	e.Use(middleware.Metrics())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger.With("ratelimit")))

	store := repository.NewStore(db)
	authH := handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db), opts.Clock, logger.With("auth"))
	sessionH := handler.NewSessionHandler(capacity, queries, logger.With("sessions"))
	sportH := handler.NewSportHandler(repository.NewSportRepo(db), logger.With("sports"))
	reportH := handler.NewReportHandler(queries, logger.With("reports"))
	reportCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb, logger.With("cache"))

	router.RegisterRoutes(e, handler.Health(store))
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterSessions(e, sessionH, cfg.JWTSecret)
	router.RegisterSports(e, sportH, cfg.JWTSecret)
	router.RegisterReports(e, reportH, cfg.JWTSecret, reportCache)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.ClientURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Cache", "Retry-After"},
		AllowCredentials: true,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(e),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Str("db", cfg.DBDriver).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}
