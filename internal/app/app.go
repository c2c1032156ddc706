// Package app wires the configured adapters, repositories and services together for the
// binaries under cmd/.
package app

import (
	"context"
	"fmt"

	"exam-ingest/internal/adapter"
	"exam-ingest/internal/adapter/fetcher"
	"exam-ingest/internal/adapter/notify"
	"exam-ingest/internal/adapter/pdftext"
	"exam-ingest/internal/cache"
	"exam-ingest/internal/config"
	"exam-ingest/internal/database"
	"exam-ingest/internal/domain"
	"exam-ingest/internal/repository"
	"exam-ingest/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds everything a binary needs. Cache is nil when Redis is not configured.
type Container struct {
	DB            *sqlx.DB
	Cache         domain.Cache
	ImportService domain.ImportService
	BankService   domain.QuestionBankService

	redisClient *redis.Client
}

// Build opens the database, runs pending migrations and assembles the services.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(ctx, db, cfg.DB.Driver, logger); err != nil {
		db.Close()
		return nil, err
	}

	c := &Container{DB: db}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		// The text cache only saves downloads; run without it.
		logger.Warn("Redis unavailable, text cache disabled", zap.Error(err))
	} else if redisClient != nil {
		c.redisClient = redisClient
		c.Cache = adapter.NewRedisCacheAdapter(redisClient)
		logger.Info("Text cache enabled", zap.String("address", cfg.Redis.Address))
	}

	var notifier domain.Notifier
	if cfg.TelegramEnabled() {
		tn, err := notify.NewTelegramNotifier(cfg.Telegram, logger)
		if err != nil {
			logger.Warn("Telegram notifier disabled", zap.Error(err))
		} else {
			notifier = tn
		}
	}

	examRepo := repository.NewExamRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	merger := service.NewMerger(examRepo, questionRepo, txManager, logger)
	c.ImportService = service.NewImportService(
		fetcher.NewHTTPFetcher(cfg.Fetch, logger),
		pdftext.NewExtractor(),
		merger,
		c.Cache,
		notifier,
		cfg.Import,
		logger,
	)
	c.BankService = service.NewQuestionBankService(questionRepo, logger)

	return c, nil
}

// Close releases the database and Redis connections.
func (c *Container) Close() error {
	var firstErr error
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close redis: %w", err)
		}
	}
	if err := c.DB.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close database: %w", err)
	}
	return firstErr
}
