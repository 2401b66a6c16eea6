package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-service/internal/models"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RecommendationCacheTTL is generous: a cached set stays valid until the
// next profile snapshot overwrites it.
const RecommendationCacheTTL = 7 * 24 * time.Hour

// ErrRecommendationsNotFound means no scoring run has been cached for the
// user yet.
var ErrRecommendationsNotFound = errors.New("recommendations not found")

// RecommendationCache keeps the latest scoring run per user in Redis. A
// failed scoring run never overwrites the prior cached set.
type RecommendationCache struct {
	client *redis.Client
}

func NewRecommendationCache(client *redis.Client) *RecommendationCache {
	return &RecommendationCache{client: client}
}

func recommendationKey(userID string) string {
	return fmt.Sprintf("recommendations:%s", userID)
}

// Put replaces the cached recommendation set for a user.
func (c *RecommendationCache) Put(ctx context.Context, userID string, set *models.RecommendationSet) error {
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation set: %w", err)
	}

	if err := c.client.Set(ctx, recommendationKey(userID), payload, RecommendationCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache recommendation set: %w", err)
	}

	return nil
}

// Get loads the cached recommendation set for a user.
func (c *RecommendationCache) Get(ctx context.Context, userID string) (*models.RecommendationSet, error) {
	payload, err := c.client.Get(ctx, recommendationKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRecommendationsNotFound
		}
		return nil, fmt.Errorf("failed to load recommendation set: %w", err)
	}

	var set models.RecommendationSet
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation set: %w", err)
	}

	return &set, nil
}
