package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"marketplace-service/internal/event"
	"marketplace-service/internal/models"
	"marketplace-service/internal/recommend"
	"marketplace-service/internal/repository"
)

// scoringDelay models the one-shot deferred computation the recommendation
// surface presents as "AI analysis in progress".
const scoringDelay = 150 * time.Millisecond

// RecommendationService runs the scoring engine when a profile snapshot is
// completed and serves the cached result. Scoring is not retried; a failed
// run logs and leaves the prior cached set (possibly none) in place.
type RecommendationService struct {
	engine   *recommend.Engine
	profiles *repository.ProfileRepository
	cache    *repository.RecommendationCache
}

func NewRecommendationService(
	engine *recommend.Engine,
	profiles *repository.ProfileRepository,
	cache *repository.RecommendationCache,
) *RecommendationService {
	return &RecommendationService{
		engine:   engine,
		profiles: profiles,
		cache:    cache,
	}
}

// GetForUser serves the cached recommendation set; on a cache miss it scores
// whatever profile snapshot exists right now.
func (s *RecommendationService) GetForUser(ctx context.Context, userID string) (*models.RecommendationSet, error) {
	set, err := s.cache.Get(ctx, userID)
	if err == nil {
		return set, nil
	}
	if !errors.Is(err, repository.ErrRecommendationsNotFound) {
		slog.Error("Failed to read recommendation cache", "user_id", userID, "error", err)
	}

	return s.Refresh(ctx, userID)
}

// Refresh scores the user's current profile snapshot and caches the result.
// A user without a stored profile gets the starter recommendation.
func (s *RecommendationService) Refresh(ctx context.Context, userID string) (*models.RecommendationSet, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to load profile for scoring: %w", err)
	}

	select {
	case <-time.After(scoringDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	set := s.engine.Score(profile)

	if err := s.cache.Put(ctx, userID, &set); err != nil {
		// The run itself succeeded; serve it even if caching failed.
		slog.Error("Failed to cache recommendation set", "user_id", userID, "error", err)
	}

	return &set, nil
}

// HandleProfileEvent implements event.ProfileEventHandler: a completed
// profile triggers one scoring run. Errors are logged and the prior cached
// set is retained; the event is not retried by us (the consumer requeues
// only on handler error, so we swallow scoring failures deliberately).
func (s *RecommendationService) HandleProfileEvent(ctx context.Context, evt event.ProfileEvent) error {
	if evt.EventType != event.ProfileCompleted {
		return nil
	}

	if _, err := s.Refresh(ctx, evt.UserID); err != nil {
		slog.Error("Recommendation scoring failed, keeping prior set",
			"user_id", evt.UserID, "error", err)
	}
	return nil
}
