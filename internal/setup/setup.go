// Package setup wires the shared application components used by every
// entrypoint.
package setup

import (
	"context"
	"log"

	"github.com/redis/rueidis"
	"github.com/sweeplabs/modsweep/internal/database"
	"github.com/sweeplabs/modsweep/internal/quota"
	"github.com/sweeplabs/modsweep/internal/redis"
	"github.com/sweeplabs/modsweep/internal/setup/config"
	"github.com/sweeplabs/modsweep/internal/setup/logger"
	"go.uber.org/zap"
)

// App bundles the shared components an entrypoint needs.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	DBLogger     *zap.Logger
	DB           database.Client
	RedisManager *redis.Manager
	StatusClient rueidis.Client
	Quota        *quota.Limiter
}

// InitializeApp loads config, builds loggers and opens the database and Redis
// connections.
func InitializeApp(ctx context.Context, logDir string, autoMigrate bool) (*App, error) {
	cfg, configDir, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logManager := logger.NewManager(logDir, &cfg.Common.Debug)

	appLogger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		return nil, err
	}

	appLogger.Info("Loaded configuration", zap.String("configDir", configDir))

	db, err := database.NewConnection(
		ctx, &cfg.Common.PostgreSQL, cfg.Common.Limits.MonthlyActions, dbLogger, autoMigrate,
	)
	if err != nil {
		return nil, err
	}

	redisManager := redis.NewManager(&cfg.Common.Redis, appLogger)

	quotaClient, err := redisManager.GetClient(redis.QuotaDBIndex)
	if err != nil {
		return nil, err
	}

	statusClient, err := redisManager.GetClient(redis.WorkerStatusDBIndex)
	if err != nil {
		return nil, err
	}

	limiter := quota.NewLimiter(
		quotaClient, cfg.Common.Quota.DailyLimit, cfg.Common.Quota.PerMinuteLimit, appLogger,
	)

	return &App{
		Config:       cfg,
		Logger:       appLogger,
		DBLogger:     dbLogger,
		DB:           db,
		RedisManager: redisManager,
		StatusClient: statusClient,
		Quota:        limiter,
	}, nil
}

// Cleanup releases the app's resources.
func (a *App) Cleanup() {
	if err := a.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	a.RedisManager.Close()

	if err := a.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := a.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}
}
