package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/alexivanou/places-api/internal/cache"
	"github.com/alexivanou/places-api/internal/config"
	"github.com/alexivanou/places-api/internal/database"
	"github.com/alexivanou/places-api/internal/repository"
	"github.com/alexivanou/places-api/internal/seeder"
	"github.com/alexivanou/places-api/internal/service"
	"go.uber.org/zap"
)

func main() {
	var (
		file          = flag.String("file", "", "CSV file (or zip archive holding one) to import")
		migrationsDir = flag.String("migrations", "migrations", "Migrations directory")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if *file == "" {
		logger.Fatal("Missing -file flag")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	if err := database.Migrate(db, cfg.DB, *migrationsDir); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Running servers keep serving cached listings until they are invalidated
	queryCache, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		logger.Warn("Cache unavailable, cached listings will expire by TTL", zap.Error(err))
	}
	defer queryCache.Close()

	src, err := seeder.Open(*file)
	if err != nil {
		logger.Fatal("Failed to open input", zap.Error(err))
	}
	defer src.Close()

	repos := repository.NewRepositories(db, cfg.DB.Type)
	svc := service.NewService(repos.Place, queryCache, cfg.Ingest.BatchSize, logger)

	logger.Info("Starting data import...", zap.String("file", *file))
	report, err := svc.ImportPlaces(ctx, src)
	if err != nil {
		logger.Fatal("Import failed", zap.Error(err))
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		logger.Fatal("Failed to encode report", zap.Error(err))
	}

	logger.Info("Data import completed successfully!",
		zap.Int("total", report.TotalRecords),
		zap.Int("success", report.SuccessRecords),
		zap.Int("overrides", report.OverrideRecords),
		zap.Int("failed", report.FailedRecords),
	)
}
