package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	httpapi "drivehub-backend/internal/api/http"
	"drivehub-backend/internal/cache"
	"drivehub-backend/internal/config"
	"drivehub-backend/internal/events"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/metrics"
	"drivehub-backend/internal/repository/postgres"
	"drivehub-backend/internal/security"
	"drivehub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DriveHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Error("Failed to ping redis", "error", err)
		log.Fatalf("Failed to ping redis: %v", err)
	}
	logger.Info("Redis connection established", "addr", cfg.Redis.Addr)

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager, cfg.JWT.CookieName)

	// Initialize Metrics
	metrics.Register()

	// Initialize Cache and Events
	vehicleCache := cache.NewVehicleCache(rdb)
	publisher := events.NewPublisher(rdb, "drivehub-server")

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		fmt.Sprintf("%d", cfg.SMTP.Port),
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	availabilitySvc := service.NewAvailabilityService(store.VehicleRepository, vehicleCache)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.VehicleRepository,
		store.UserRepository,
		store.SettingsRepository,
		store.NotificationRepository,
		availabilitySvc,
		vehicleCache,
		publisher,
		emailSvc,
	)
	vehicleSvc := service.NewVehicleService(
		store.VehicleRepository,
		store.SaleRepository,
		store.BookingRepository,
		vehicleCache,
		publisher,
	)
	userSvc := service.NewUserService(store.UserRepository)
	settingsSvc := service.NewSettingsService(store.SettingsRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	adminSvc := service.NewAdminService(store.BookingRepository, store.UserRepository)

	// Initialize HTTP handlers
	handler := httpapi.NewHandler(
		userSvc,
		vehicleSvc,
		bookingSvc,
		availabilitySvc,
		settingsSvc,
		noteSvc,
		adminSvc,
		tokenManager,
		cfg.JWT.CookieName,
		cfg.JWT.CookieSecure,
	)
	router := httpapi.NewRouter(handler, authMiddleware)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down cleanly", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
