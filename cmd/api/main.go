package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/the247care/clinic-api/internal/config"
	"github.com/the247care/clinic-api/internal/email"
	authhandler "github.com/the247care/clinic-api/internal/handler/auth"
	contenthandler "github.com/the247care/clinic-api/internal/handler/content"
	dashboardhandler "github.com/the247care/clinic-api/internal/handler/dashboard"
	doctorhandler "github.com/the247care/clinic-api/internal/handler/doctor"
	enquiryhandler "github.com/the247care/clinic-api/internal/handler/enquiry"
	healthhandler "github.com/the247care/clinic-api/internal/handler/health"
	patienthandler "github.com/the247care/clinic-api/internal/handler/patient"
	"github.com/the247care/clinic-api/internal/repository/postgres"
	"github.com/the247care/clinic-api/internal/router"
	authservice "github.com/the247care/clinic-api/internal/service/auth"
	contentservice "github.com/the247care/clinic-api/internal/service/content"
	dashboardservice "github.com/the247care/clinic-api/internal/service/dashboard"
	doctorservice "github.com/the247care/clinic-api/internal/service/doctor"
	enquiryservice "github.com/the247care/clinic-api/internal/service/enquiry"
	patientservice "github.com/the247care/clinic-api/internal/service/patient"
	"github.com/the247care/clinic-api/pkg/auth"
	"github.com/the247care/clinic-api/pkg/logger"
	redisbroker "github.com/the247care/clinic-api/pkg/messaging/redis"
	"github.com/the247care/clinic-api/pkg/metrics"
	"github.com/the247care/clinic-api/pkg/security"
	"github.com/the247care/clinic-api/pkg/worker"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Repositories
	enquiryRepo := postgres.NewEnquiryRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	userRepo := postgres.NewUserRepository(db)
	contentRepo := postgres.NewContentRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Shared infrastructure
	appMetrics := metrics.NewMetrics("clinic_api")
	tokens := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        cfg.JWT.Expiry(),
		RefreshExpiry: cfg.JWT.RefreshExpiry(),
	})
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	notifier := email.NewSender(cfg.Email, log)

	// Services
	enquirySvc := enquiryservice.NewService(enquiryRepo, doctorRepo, patientRepo, log, appMetrics)
	doctorSvc := doctorservice.NewService(doctorRepo, log)
	patientSvc := patientservice.NewService(patientRepo)
	authSvc := authservice.NewService(userRepo, tokens, hasher, log)
	contentSvc := contentservice.NewService(contentRepo, doctorRepo, log)
	dashboardSvc := dashboardservice.NewService(enquiryRepo, doctorRepo, contentRepo)

	ctx, cancel := signalContext()
	defer cancel()

	if err := authSvc.EnsureDefaultAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal(err, "failed to seed default admin")
	}

	// Handlers
	handlers := router.Handlers{
		Health:    healthhandler.NewHandler(db),
		Auth:      authhandler.NewHandler(authSvc),
		Enquiry:   enquiryhandler.NewHandler(enquirySvc, doctorSvc, outboxRepo, notifier, log),
		Doctor:    doctorhandler.NewHandler(doctorSvc, outboxRepo, log),
		Patient:   patienthandler.NewHandler(patientSvc),
		Content:   contenthandler.NewHandler(contentSvc),
		Dashboard: dashboardhandler.NewHandler(dashboardSvc),
	}

	r := router.NewRouter(handlers, tokens, cfg.Server, log)
	r.Setup()

	// Outbox processor, only when the broker is reachable.
	if cfg.Redis.Enabled {
		broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, log.Zerolog())
		if err != nil {
			log.Fatal(err, "failed to connect to Redis")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
			BatchSize:    cfg.Outbox.BatchSize,
			PollInterval: cfg.Outbox.PollInterval,
			MaxRetries:   cfg.Outbox.MaxRetries,
			RetryDelay:   cfg.Outbox.RetryDelay,
			RetainFor:    cfg.Outbox.RetainFor,
		}, log, appMetrics)
		go processor.Start(ctx)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "graceful shutdown failed")
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
