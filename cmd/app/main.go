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

	"github.com/alexivanou/places-api/internal/api"
	"github.com/alexivanou/places-api/internal/cache"
	"github.com/alexivanou/places-api/internal/config"
	"github.com/alexivanou/places-api/internal/database"
	"github.com/alexivanou/places-api/internal/repository"
	"github.com/alexivanou/places-api/internal/seeder"
	"github.com/alexivanou/places-api/internal/service"
	"github.com/alexivanou/places-api/internal/stats"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	ctx := context.Background()
	// Run migrations
	if err := database.Migrate(db, cfg.DB, "migrations"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	queryCache, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		logger.Warn("Cache unavailable, serving without it", zap.Error(err))
	} else if queryCache != nil {
		logger.Info("Query cache enabled", zap.String("addr", cfg.Cache.RedisAddr), zap.Duration("ttl", cfg.Cache.TTL))
	}
	defer queryCache.Close()

	repos := repository.NewRepositories(db, cfg.DB.Type)
	svc := service.NewService(repos.Place, queryCache, cfg.Ingest.BatchSize, logger)

	if cfg.Ingest.SeedFile != "" {
		isEmpty, err := repository.IsDatabaseEmpty(ctx, db)
		if err != nil {
			logger.Warn("Failed to check if database is empty", zap.Error(err))
		} else if isEmpty {
			logger.Info("Database is empty, importing seed file", zap.String("file", cfg.Ingest.SeedFile))
			if err := importSeedFile(ctx, svc, cfg.Ingest.SeedFile, logger); err != nil {
				logger.Fatal("Failed to import seed file", zap.Error(err))
			}
		}
	}

	statsCollector := stats.NewCollector(db, cfg.DB)
	router := api.NewRouter(svc, statsCollector, api.RouterOptions{
		Logger:         logger,
		MaxUploadBytes: cfg.Ingest.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func importSeedFile(ctx context.Context, svc *service.Service, path string, logger *zap.Logger) error {
	f, err := seeder.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	report, err := svc.ImportPlaces(ctx, f)
	if err != nil {
		return err
	}

	logger.Info("Seed file imported",
		zap.Int("total", report.TotalRecords),
		zap.Int("success", report.SuccessRecords),
		zap.Int("failed", report.FailedRecords),
	)
	return nil
}
