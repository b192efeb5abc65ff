package main

import (
	"go.uber.org/zap"

	"github.com/pageza/nutriai/backend/config"
	"github.com/pageza/nutriai/backend/internal/database"
)

// migrate creates or updates the kv_entries table for the SQL backends.
func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	switch cfg.StorageBackend {
	case config.BackendSQLite, config.BackendPostgres:
	default:
		log.Info("storage backend has no schema, nothing to migrate", zap.String("backend", cfg.StorageBackend))
		return
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("migrations applied", zap.String("backend", cfg.StorageBackend))
}
