package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/onchainreach/creator-hub/internal/api"
	"github.com/onchainreach/creator-hub/internal/campaigns"
	"github.com/onchainreach/creator-hub/internal/config"
	"github.com/onchainreach/creator-hub/internal/engagement"
	"github.com/onchainreach/creator-hub/internal/notifications"
	"github.com/onchainreach/creator-hub/internal/scheduler"
	"github.com/onchainreach/creator-hub/internal/storage"
	"github.com/onchainreach/creator-hub/internal/submissions"
	"github.com/onchainreach/creator-hub/internal/tracking"
	"github.com/onchainreach/creator-hub/internal/validation"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Creator Hub")

	ctx := context.Background()

	backend, err := newStorage(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	store := submissions.NewStore(backend)
	var repo submissions.Repository = store
	if cfg.SeedFixtures {
		fixtures := submissions.DefaultSubmissions()
		if err := store.Seed(ctx, fixtures); err != nil {
			logrus.Warnf("Failed to seed fixture submissions: %v", err)
		}
		repo = submissions.WithFallback(store, fixtures)
	}

	catalog := campaigns.NewCatalog(campaigns.DefaultCampaigns)

	validator := validation.NewValidator(validation.Config{
		BaseURL: cfg.InspectorBaseURL,
		Timeout: cfg.InspectorTimeout,
		Policy:  validation.Policy(cfg.PlatformPolicy),
	})

	scorer := engagement.NewScorer(engagement.Config{MaxScore: cfg.EngagementMaxScore})

	notificationService := notifications.NewService(cfg)

	trackingService := tracking.NewService(cfg, repo, catalog, validator, scorer, notificationService)

	schedulerService, err := scheduler.NewService(cfg, trackingService)
	if err != nil {
		logrus.Fatalf("Failed to create scheduler: %v", err)
	}
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	router := api.NewServer(catalog, validator, trackingService).Router()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.StorageInterface, error) {
	switch cfg.StorageBackend {
	case "azure":
		logrus.Infof("Using Azure blob storage %s/%s", cfg.StorageAccount, cfg.StorageContainer)
		return storage.NewAzureStorage(ctx, cfg.StorageAccount, cfg.StorageContainer)
	default:
		logrus.Infof("Using file storage in %s", cfg.StorageDir)
		return storage.NewFileStorage(cfg.StorageDir)
	}
}
