package app

import (
	"context"
	"errors"
	"time"

	"talent-match/internal/ai/gemini"
	"talent-match/internal/config"
	"talent-match/internal/database"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/export"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis

	Candidates repository.CandidateRepository
	Jobs       usecase.JobCatalogProvider

	Matching        *usecase.Matching
	SkillExtraction *usecase.SkillExtraction
	Exporter        export.Exporter
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, logger.Named("postgres"))
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(connectCtx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(connectCtx, cfg.Redis.URL, cfg.Redis.TTL, logger.Named("cache"))

	candidates := repository.NewPostgresCandidateRepository(db)
	jobs := repository.NewCachedJobCatalog(
		repository.NewPostgresJobRepository(db, 0),
		redisCache,
		cfg.Redis.TTL,
		logger.Named("catalog"),
	)

	var extractor usecase.SkillExtractor
	if cfg.Gemini.APIKey != "" {
		g, err := gemini.NewSkillExtractor(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, logger.Named("gemini"))
		if err != nil {
			logger.Warn("gemini client unavailable, skill extraction disabled", zap.Error(err))
		} else {
			extractor = g
		}
	}

	return &Container{
		Config:          cfg,
		Logger:          logger,
		DB:              db,
		Cache:           redisCache,
		Candidates:      candidates,
		Jobs:            jobs,
		Matching:        usecase.NewMatchingUsecase(candidates, jobs, cfg.Matching.Workers, logger.Named("matching")),
		SkillExtraction: usecase.NewSkillExtractionUsecase(extractor, logger.Named("skills")),
		Exporter:        export.NewExporter(cfg.Matching.ExportDateLayout),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
