package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"talent-match/internal/domain/job"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const catalogKeyPrefix = "jobs:catalog:"

// CatalogCachePattern matches every cached catalog listing.
const CatalogCachePattern = catalogKeyPrefix + "*"

// JSONCache is the subset of the Redis cache used for catalog listings.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedJobCatalog memoizes catalog listings per filter. Cache failures fall
// through to the underlying repository.
type CachedJobCatalog struct {
	next   JobRepository
	cache  JSONCache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedJobCatalog(next JobRepository, cache JSONCache, ttl time.Duration, logger *zap.Logger) *CachedJobCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedJobCatalog{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (c *CachedJobCatalog) List(ctx context.Context, filter job.Filter) ([]job.Posting, error) {
	if c.cache == nil {
		return c.next.List(ctx, filter)
	}

	key := CatalogCacheKey(filter)
	var cached []job.Posting
	hit, err := c.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}
	if err == nil && hit {
		c.logger.Debug("catalog cache hit", zap.String("key", key), zap.Int("count", len(cached)))
		return cached, nil
	}

	items, err := c.next.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetJSON(ctx, key, items, c.ttl); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return items, nil
}

func (c *CachedJobCatalog) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	return c.next.GetByID(ctx, id)
}

func normalizeKeyValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// CatalogCacheKey derives a stable Redis key from a filter.
func CatalogCacheKey(filter job.Filter) string {
	in := job.Filter{
		Query:    normalizeKeyValue(filter.Query),
		Location: normalizeKeyValue(filter.Location),
		Type:     job.Type(normalizeKeyValue(string(filter.Type))),
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return catalogKeyPrefix + hex.EncodeToString(sum[:])
}
