package repository

import (
	"context"
	"fmt"

	"marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ClaimRepository struct {
	db *sqlx.DB
}

func NewClaimRepository(db *sqlx.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// Create inserts a newly filed claim.
func (r *ClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	query := `
		INSERT INTO claim (
			id, claim_number, purchase_id, user_id, hospital_id,
			claimed_amount, currency, description, status, created_at, updated_at
		) VALUES (
			:id, :claim_number, :purchase_id, :user_id, :hospital_id,
			:claimed_amount, :currency, :description, :status, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, claim)
	if err != nil {
		return fmt.Errorf("failed to create claim: %w", err)
	}

	return nil
}

// GetByID retrieves a claim by its ID.
func (r *ClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	var claim models.Claim
	query := `
		SELECT id, claim_number, purchase_id, user_id, hospital_id,
		       claimed_amount, currency, description, status, created_at, updated_at
		FROM claim
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &claim, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get claim by id: %w", err)
	}

	return &claim, nil
}

// GetByUserID retrieves all claims filed by a user, newest first.
func (r *ClaimRepository) GetByUserID(ctx context.Context, userID string) ([]models.Claim, error) {
	var claims []models.Claim
	query := `
		SELECT id, claim_number, purchase_id, user_id, hospital_id,
		       claimed_amount, currency, description, status, created_at, updated_at
		FROM claim
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	err := r.db.SelectContext(ctx, &claims, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get claims for user: %w", err)
	}

	return claims, nil
}

// CountForYear counts claims filed in a calendar year; used to build the
// sequential claim number.
func (r *ClaimRepository) CountForYear(ctx context.Context, year int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM claim WHERE EXTRACT(YEAR FROM created_at) = $1`

	err := r.db.GetContext(ctx, &count, query, year)
	if err != nil {
		return 0, fmt.Errorf("failed to count claims for year %d: %w", year, err)
	}

	return count, nil
}
