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

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/mentiontracker/brand-mentions/internal/api"
	"github.com/mentiontracker/brand-mentions/internal/config"
	"github.com/mentiontracker/brand-mentions/internal/monitoring"
	"github.com/mentiontracker/brand-mentions/internal/notifications"
	"github.com/mentiontracker/brand-mentions/internal/query"
	"github.com/mentiontracker/brand-mentions/internal/scheduler"
	"github.com/mentiontracker/brand-mentions/internal/sentiment"
	"github.com/mentiontracker/brand-mentions/internal/storage"
	"github.com/mentiontracker/brand-mentions/internal/store"
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

	logrus.Infof("Starting brand mentions tracker for %q", cfg.BrandQuery)

	archive, err := newArchive(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize archive: %v", err)
	}

	mentionStore := store.NewMemoryStore(cfg.StoreCapacity)

	var notificationService notifications.NotificationInterface
	if cfg.NotificationsEnabled() {
		notificationService = notifications.NewService(cfg)
	}

	clock := clockwork.NewRealClock()
	monitoringService := monitoring.NewService(cfg, mentionStore, archive, notificationService, clock)
	srcs := monitoring.BuildSources(cfg, sentiment.NewClassifier(nil), clock)

	// Start runs the first fetch synchronously, so the API never serves an
	// empty store when a provider is reachable.
	schedulerService := scheduler.NewService(cfg, monitoringService, srcs)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	apiServer := api.NewServer(query.NewService(mentionStore), cfg.MentionsLimit, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      apiServer.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

// newArchive picks Azure Blob when an account is configured, a local
// directory when ARCHIVE_DIR is set, and no archive otherwise.
func newArchive(cfg *config.Config) (storage.Archive, error) {
	switch {
	case cfg.StorageAccount != "":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return storage.NewAzureStorage(ctx, cfg.StorageAccount, cfg.StorageContainer)
	case cfg.ArchiveDir != "":
		return storage.NewLocalStorage(cfg.ArchiveDir), nil
	default:
		return nil, nil
	}
}
