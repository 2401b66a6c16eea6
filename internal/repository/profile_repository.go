package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"marketplace-service/internal/models"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
)

// ErrProfileNotFound is returned when a user has no stored profile yet.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository stores user profiles with each questionnaire section as
// a JSONB column.
type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert writes the full profile for a user.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	record, err := toRecord(profile)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_profile (
			user_id, personal, policy_preferences, health, lifestyle,
			financial, completed, created_at, updated_at
		) VALUES (
			:user_id, :personal, :policy_preferences, :health, :lifestyle,
			:financial, :completed, :created_at, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			personal = EXCLUDED.personal,
			policy_preferences = EXCLUDED.policy_preferences,
			health = EXCLUDED.health,
			lifestyle = EXCLUDED.lifestyle,
			financial = EXCLUDED.financial,
			completed = EXCLUDED.completed,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves a user's profile, or ErrProfileNotFound.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var record models.ProfileRecord
	query := `
		SELECT user_id, personal, policy_preferences, health, lifestyle,
		       financial, completed, created_at, updated_at
		FROM user_profile
		WHERE user_id = $1
	`

	err := r.db.GetContext(ctx, &record, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return fromRecord(&record)
}

// SetCompleted flips the completed flag for a user's profile.
func (r *ProfileRepository) SetCompleted(ctx context.Context, userID string, completed bool) error {
	query := `UPDATE user_profile SET completed = $1, updated_at = $2 WHERE user_id = $3`

	result, err := r.db.ExecContext(ctx, query, completed, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set profile completed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func toRecord(profile *models.UserProfile) (*models.ProfileRecord, error) {
	personal, err := json.Marshal(profile.Personal)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal personal section: %w", err)
	}
	preferences, err := json.Marshal(profile.PolicyPreferences)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferences section: %w", err)
	}
	health, err := json.Marshal(profile.Health)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal health section: %w", err)
	}
	lifestyle, err := json.Marshal(profile.Lifestyle)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lifestyle section: %w", err)
	}
	financial, err := json.Marshal(profile.Financial)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal financial section: %w", err)
	}

	now := time.Now()
	return &models.ProfileRecord{
		UserID:      profile.UserID,
		Personal:    personal,
		Preferences: preferences,
		Health:      health,
		Lifestyle:   lifestyle,
		Financial:   financial,
		Completed:   profile.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func fromRecord(record *models.ProfileRecord) (*models.UserProfile, error) {
	profile := &models.UserProfile{
		UserID:    record.UserID,
		Completed: record.Completed,
		UpdatedAt: record.UpdatedAt,
	}

	if err := json.Unmarshal(record.Personal, &profile.Personal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal personal section: %w", err)
	}
	if err := json.Unmarshal(record.Preferences, &profile.PolicyPreferences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences section: %w", err)
	}
	if err := json.Unmarshal(record.Health, &profile.Health); err != nil {
		return nil, fmt.Errorf("failed to unmarshal health section: %w", err)
	}
	if err := json.Unmarshal(record.Lifestyle, &profile.Lifestyle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lifestyle section: %w", err)
	}
	if err := json.Unmarshal(record.Financial, &profile.Financial); err != nil {
		return nil, fmt.Errorf("failed to unmarshal financial section: %w", err)
	}

	return profile, nil
}
