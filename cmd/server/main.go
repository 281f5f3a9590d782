package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "bloodbridge-backend/internal/api/http"
	"bloodbridge-backend/internal/config"
	"bloodbridge-backend/internal/logger"
	"bloodbridge-backend/internal/repository"
	fsrepo "bloodbridge-backend/internal/repository/firestore"
	"bloodbridge-backend/internal/repository/memory"
	"bloodbridge-backend/internal/repository/postgres"
	"bloodbridge-backend/internal/security"
	"bloodbridge-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting BloodBridge backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Storage configuration", "engine", cfg.Storage.Engine)

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "engine", cfg.Storage.Engine)
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}
	defer store.Close()

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	authSvc := service.NewAuthService(store, tokenManager)
	donorSvc := service.NewDonorService(store, cfg.Donation.IntervalDays)
	inventorySvc := service.NewInventoryService(store, cfg.Donation.LowStockThreshold, cfg.Donation.CriticalThreshold)
	requestSvc := service.NewRequestService(store)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Store:       store,
		Tokens:      tokenManager,
		Auth:        authSvc,
		Donor:       donorSvc,
		Inventory:   inventorySvc,
		Requests:    requestSvc,
		CORSOrigins: cfg.CORS.Origins,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}

// openStore builds the storage backend selected by configuration. The
// choice is made once here; everything downstream sees only the
// repository.Store contract.
func openStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.Storage.Engine {
	case config.EngineMemory:
		logger.Info("Using in-memory storage")
		return memory.NewStore(), nil

	case config.EnginePostgres:
		logger.Debug("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(cfg.Database.MaxConns)
		db.SetMaxIdleConns(cfg.Database.MaxConns / 4)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("Database connection established")
		return postgres.NewStore(db), nil

	case config.EngineFirestore:
		logger.Debug("Connecting to Firestore...", "project_id", cfg.Firestore.ProjectID)
		return fsrepo.NewStore(context.Background(), cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)

	default:
		// config.Validate rejects unknown engines before we get here.
		return nil, fmt.Errorf("unknown storage engine: %q", cfg.Storage.Engine)
	}
}
