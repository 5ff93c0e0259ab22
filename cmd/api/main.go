package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/klinikdev/klinik-api/internal/config"
	"github.com/klinikdev/klinik-api/internal/email"
	appointmentHandler "github.com/klinikdev/klinik-api/internal/handler/appointment"
	authHandler "github.com/klinikdev/klinik-api/internal/handler/auth"
	billingHandler "github.com/klinikdev/klinik-api/internal/handler/billing"
	bookingHandler "github.com/klinikdev/klinik-api/internal/handler/booking"
	doctorHandler "github.com/klinikdev/klinik-api/internal/handler/doctor"
	nurseHandler "github.com/klinikdev/klinik-api/internal/handler/nurse"
	patientHandler "github.com/klinikdev/klinik-api/internal/handler/patient"
	queueHandler "github.com/klinikdev/klinik-api/internal/handler/queue"
	roomHandler "github.com/klinikdev/klinik-api/internal/handler/room"
	"github.com/klinikdev/klinik-api/internal/middleware"
	"github.com/klinikdev/klinik-api/internal/persistence"
	"github.com/klinikdev/klinik-api/internal/router"
	appointmentService "github.com/klinikdev/klinik-api/internal/service/appointment"
	authService "github.com/klinikdev/klinik-api/internal/service/auth"
	bookingService "github.com/klinikdev/klinik-api/internal/service/booking"
	doctorService "github.com/klinikdev/klinik-api/internal/service/doctor"
	patientService "github.com/klinikdev/klinik-api/internal/service/patient"
	queueService "github.com/klinikdev/klinik-api/internal/service/queue"
	roomService "github.com/klinikdev/klinik-api/internal/service/room"
	"github.com/klinikdev/klinik-api/internal/store"
	"github.com/klinikdev/klinik-api/pkg/lock"
	"github.com/klinikdev/klinik-api/pkg/logger"
	"github.com/klinikdev/klinik-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("klinik")

	adapter, err := newAdapter(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize persistence adapter")
	}

	ctx := context.Background()
	entityStore := store.New(ctx, adapter, appLogger, appMetrics)

	locker := newLocker(cfg)

	mailer := email.NewNoopService()
	if cfg.SMTP.Enabled {
		mailer = email.NewSMTPService(cfg.SMTP.SMTPConfig)
	}

	authSvc, err := authService.NewService(cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize auth service")
	}
	bookingSvc := bookingService.NewService(entityStore, locker, mailer, appMetrics, appLogger)
	wizard := bookingService.NewWizard(entityStore, bookingSvc, cfg.Booking.SessionTTL)
	appointmentSvc := appointmentService.NewService(entityStore)
	patientSvc := patientService.NewService(entityStore)
	doctorSvc := doctorService.NewService(entityStore)
	roomSvc := roomService.NewService(entityStore)
	queueSvc := queueService.NewService(entityStore)

	middleware.RegisterValidators()
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "klinik",
		},
		bookingHandler.NewHandler(bookingSvc, wizard),
		appointmentHandler.NewHandler(appointmentSvc),
		patientHandler.NewHandler(patientSvc),
		doctorHandler.NewHandler(doctorSvc),
		roomHandler.NewHandler(roomSvc),
		queueHandler.NewHandler(queueSvc),
		billingHandler.NewHandler(entityStore),
		nurseHandler.NewHandler(entityStore),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

func newAdapter(cfg *config.Config) (persistence.Adapter, error) {
	switch cfg.Persistence.Backend {
	case "postgres":
		db, err := persistence.NewDB(cfg.Persistence.Database)
		if err != nil {
			return nil, err
		}
		return persistence.NewPostgresAdapter(db)
	default:
		return persistence.NewFileAdapter(cfg.Persistence.DataDir)
	}
}

func newLocker(cfg *config.Config) lock.Locker {
	if cfg.Redis.Addr == "" {
		return lock.NewMemoryLocker()
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	return lock.NewRedisLocker(client, cfg.Redis.LockTTL)
}
