package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/havenmed/records-api/internal/config"
	"github.com/havenmed/records-api/internal/email"
	"github.com/havenmed/records-api/internal/handler"
	adminHandler "github.com/havenmed/records-api/internal/handler/admin"
	authHandler "github.com/havenmed/records-api/internal/handler/auth"
	casefolderHandler "github.com/havenmed/records-api/internal/handler/casefolder"
	clinicalHandler "github.com/havenmed/records-api/internal/handler/clinical"
	patientHandler "github.com/havenmed/records-api/internal/handler/patient"
	"github.com/havenmed/records-api/internal/middleware"
	"github.com/havenmed/records-api/internal/repository/postgres"
	redisrepo "github.com/havenmed/records-api/internal/repository/redis"
	"github.com/havenmed/records-api/internal/router"
	authService "github.com/havenmed/records-api/internal/service/auth"
	casefolderService "github.com/havenmed/records-api/internal/service/casefolder"
	clinicalService "github.com/havenmed/records-api/internal/service/clinical"
	patientService "github.com/havenmed/records-api/internal/service/patient"
	userService "github.com/havenmed/records-api/internal/service/user"
	"github.com/havenmed/records-api/pkg/auth"
	"github.com/havenmed/records-api/pkg/logger"
	"github.com/havenmed/records-api/pkg/metrics"
	"github.com/havenmed/records-api/pkg/security"
	"github.com/havenmed/records-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	if err := validator.RegisterCustom(); err != nil {
		log.Fatal().Err(err).Msg("failed to register custom validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	blacklist, err := redisrepo.NewTokenBlacklist(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	patientRepo := postgres.NewPatientRepository(base)
	folderRepo := postgres.NewCaseFolderRepository(base)
	historyRepo := postgres.NewMedicalHistoryRepository(base)
	diagRepo := postgres.NewDiagnosisRepository(base)
	vitalsRepo := postgres.NewVitalSignsRepository(base)
	noteRepo := postgres.NewPatientNoteRepository(base)

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        cfg.JWT.Expiry(),
		RefreshExpiry: cfg.JWT.RefreshExpiry(),
		Issuer:        cfg.JWT.Issuer,
	})
	hasher := security.NewBcryptHasher(security.DefaultCost)
	emailSvc := email.NewNoopService()
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, appLogger)
	}

	authSvc := authService.NewService(userRepo, blacklist, jwtSvc, hasher, emailSvc)
	userSvc := userService.NewService(userRepo, emailSvc)
	patientSvc := patientService.NewService(patientRepo)
	folderSvc := casefolderService.NewService(folderRepo, patientRepo)
	clinicalSvc := clinicalService.NewService(folderRepo, historyRepo, diagRepo, vitalsRepo, noteRepo)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.NewMetrics("records_api", registry)

	authMW := middleware.NewAuthMiddleware(jwtSvc, userRepo, m)

	r := router.NewRouter(
		authMW,
		authHandler.NewHandler(authSvc, m),
		handler.NewHealthHandler(db, registry),
		adminHandler.NewHandler(userSvc, authMW),
		patientHandler.NewHandler(patientSvc, m),
		casefolderHandler.NewHandler(folderSvc, m),
		clinicalHandler.NewHandler(clinicalSvc, m),
		m,
		router.Config{
			RateLimitRPS:   cfg.Server.RateLimitRPS,
			RateLimitBurst: cfg.Server.RateLimitBurst,
			CORS:           middleware.DefaultCORSConfig(),
			AdminKey:       cfg.Admin.Key,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		appLogger.Info(fmt.Sprintf("listening on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info("server exited properly")
}
