package main

import (
	"log"

	"github.com/idris-r/jobs4/config"
	"github.com/idris-r/jobs4/internal/api"
	"github.com/idris-r/jobs4/internal/database"
	"github.com/idris-r/jobs4/internal/models"
	"github.com/idris-r/jobs4/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("refusing to start: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter(cfg)
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	// Migrate the schema
	err = database.DB.AutoMigrate(&models.User{}, &models.TokenEntry{}, &models.WebhookEvent{})
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	logger.Log.Info("Server starting on port " + cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
