package main

import (
	"log"

	"classroom-service/internal/config"
	"classroom-service/internal/database"
	"classroom-service/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logg := logger.New(cfg.LogLevel)
	logg.Info("Starting database migration...")

	// NewPostgresConnection runs the schema migration on connect
	db, err := database.NewPostgresConnection(cfg.Database.URI)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database instance:", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	logg.Info("Database migration completed successfully!")
}
