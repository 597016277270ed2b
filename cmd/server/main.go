package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/placement-engine/internal/blob"
	"github.com/segyhp/placement-engine/internal/config"
	"github.com/segyhp/placement-engine/internal/handler"
	"github.com/segyhp/placement-engine/internal/logger"
	"github.com/segyhp/placement-engine/internal/notify"
	"github.com/segyhp/placement-engine/internal/repository"
	"github.com/segyhp/placement-engine/internal/service"
	"github.com/segyhp/placement-engine/pkg/response"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		logg.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	documentRepo := repository.NewDocumentRepository(db)
	contractRepo := repository.NewContractRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	sender, closeSender, err := notify.NewSenderFromConfig(context.Background(), cfg.Notifier, notificationRepo, logg)
	if err != nil {
		logg.Fatalf("Failed to initialize notifier: %v", err)
	}
	defer closeSender()

	resolver, err := initResolver(cfg)
	if err != nil {
		logg.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize services
	dispatcher := notify.NewDispatcher(sender, logg)
	approvalService := service.NewApprovalService(documentRepo, dispatcher, logg)
	scheduleService := service.NewScheduleService(contractRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	documentHandler := handler.NewDocumentHandler(approvalService, resolver, logg)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(documentHandler, scheduleHandler, notificationHandler, healthHandler)
	router.Use(response.LoggingMiddleware(logg), response.JSONMiddleware, response.CORSMiddleware)

	// Start server
	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	// Start server in a goroutine
	go func() {
		logg.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.Errorf("Server forced to shutdown: %v", err)
		return
	}

	logg.Info("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.GetConnMaxLifetime())

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func initResolver(cfg *config.Config) (blob.Resolver, error) {
	if cfg.Storage.Driver == "gcs" {
		return blob.NewGCSResolver(cfg.Storage.Bucket, cfg.Storage.SignerEmail, cfg.Storage.PrivateKey, cfg.GetURLTTL())
	}
	return blob.NewStaticResolver(cfg.Storage.BaseURL), nil
}

func setupRoutes(
	documentHandler *handler.DocumentHandler,
	scheduleHandler *handler.ScheduleHandler,
	notificationHandler *handler.NotificationHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/contracts/{contractId}/schedule", scheduleHandler.GetContractSchedule).Methods("GET")
	api.HandleFunc("/simulations", scheduleHandler.Simulate).Methods("POST")

	api.HandleFunc("/documents", documentHandler.Submit).Methods("POST")
	api.HandleFunc("/documents", documentHandler.List).Methods("GET")
	api.HandleFunc("/documents/{documentId}", documentHandler.Get).Methods("GET")
	api.HandleFunc("/documents/{documentId}/review", documentHandler.Review).Methods("POST")
	api.HandleFunc("/documents/{documentId}/payment", documentHandler.MarkPaid).Methods("POST")

	api.HandleFunc("/users/{userId}/notifications", notificationHandler.ListByUser).Methods("GET")

	return router
}
