package setup

import (
	"context"
	"log"

	"github.com/sentinelbot/sentinel/internal/database"
	"github.com/sentinelbot/sentinel/internal/setup/config"
	"go.uber.org/zap"
)

// App bundles all core dependencies needed by the bot. Each field represents
// a subsystem that needs initialization and cleanup.
type App struct {
	Config   *config.Config  // Application configuration
	Logger   *zap.Logger     // Main application logger
	DBLogger *zap.Logger     // Database-specific logger
	DB       database.Client // Database connection pool
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, logDir string) (*App, error) {
	// Load app configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logger, dbLogger, err := GetLoggers(logDir, cfg.Debug.LogLevel, cfg.Debug.MaxLogsToKeep)
	if err != nil {
		return nil, err
	}

	// Initialize database and run any pending migrations
	db, err := database.NewConnection(ctx, &cfg.PostgreSQL, dbLogger, true)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		DBLogger: dbLogger,
		DB:       db,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse
// initialization order. Logs but does not fail on cleanup errors.
func (a *App) Cleanup() {
	// Sync buffered logs before shutdown
	if err := a.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := a.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	if err := a.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}
}
