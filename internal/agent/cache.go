package agent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/observability"
)

const cacheKeyPrefix = "triage:classification:v1:"

// CachedClassifier remembers classifications in Redis keyed by the ticket text.
// Cache failures never fail a classification; they fall through to the inner Classifier.
type CachedClassifier struct {
	inner   Classifier
	client  redis.Cmdable
	ttl     time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewCachedClassifier wraps inner with a Redis-backed cache.
func NewCachedClassifier(inner Classifier, client redis.Cmdable, ttl time.Duration, logger *zap.Logger, metrics *observability.Metrics) *CachedClassifier {
	return &CachedClassifier{
		inner:   inner,
		client:  client,
		ttl:     ttl,
		logger:  logger.Named("cache"),
		metrics: metrics,
	}
}

// CacheKey derives the Redis key for a ticket body.
func CacheKey(rawText string) string {
	sum := sha256.Sum256([]byte(rawText))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *CachedClassifier) Classify(ctx context.Context, rawText string) (domain.Classification, error) {
	key := CacheKey(rawText)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		result, decodeErr := DecodeClassification(cached)
		if decodeErr == nil {
			c.metrics.RecordCacheLookup("hit")
			return result, nil
		}
		c.metrics.RecordCacheLookup("error")
		c.logger.Warn("discarding invalid cached classification", zap.String("key", key), zap.Error(decodeErr))
	case errors.Is(err, redis.Nil):
		c.metrics.RecordCacheLookup("miss")
	default:
		c.metrics.RecordCacheLookup("error")
		c.logger.Warn("classification cache read failed", zap.Error(err))
	}

	result, err := c.inner.Classify(ctx, rawText)
	if err != nil {
		return domain.Classification{}, err
	}

	encoded, err := EncodeClassification(result)
	if err != nil {
		c.logger.Warn("encode classification for cache", zap.Error(err))
		return result, nil
	}
	if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.logger.Warn("classification cache write failed", zap.Error(err))
	}
	return result, nil
}
