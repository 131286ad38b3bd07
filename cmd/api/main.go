// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/tulqinjon2001/zakaz-web-app/internal/backend"
	"github.com/tulqinjon2001/zakaz-web-app/internal/config"
	"github.com/tulqinjon2001/zakaz-web-app/internal/interfaces/http"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := newLogger(cfg)

	log.WithFields(logrus.Fields{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting storefront service")

	// Open session storage
	kv, redisClient, err := newStorage(cfg, log)
	if err != nil {
		log.Fatalf("Failed to open session storage: %v", err)
	}
	defer kv.Close()

	// Backend API client
	client := backend.NewClient(cfg, log)

	// Create and start HTTP server
	server := http.NewServer(cfg, kv, client, redisClient, log)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Info("Server shutdown completed")
}

// newLogger builds the application logger from config
func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

// newStorage opens the configured session storage backend. The raw Redis
// client is returned alongside so middleware can share the connection; it is
// nil for the memory and file providers.
func newStorage(cfg *config.Config, log *logrus.Logger) (*storage.Store, *redis.Client, error) {
	switch cfg.Storage.Provider {
	case "redis":
		rb, err := storage.NewRedisBackend(cfg)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("addr", cfg.GetRedisAddr()).Info("Session storage: redis")
		return storage.NewStore(rb, log), rb.Client(), nil
	case "file":
		fb, err := storage.NewFileBackend(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("path", cfg.Storage.FilePath).Info("Session storage: file")
		return storage.NewStore(fb, log), nil, nil
	default:
		log.Info("Session storage: in-memory")
		return storage.NewStore(storage.NewMemoryBackend(), log), nil, nil
	}
}
