package repository

import (
	"context"
	"fmt"

	"marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PurchaseRepository persists completed purchases. Rows are immutable once
// written; in-progress wizard state never reaches this table.
type PurchaseRepository struct {
	db *sqlx.DB
}

func NewPurchaseRepository(db *sqlx.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Create inserts the purchase record produced by a submitted wizard session.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	query := `
		INSERT INTO purchase (
			id, user_id, policy_id, full_name, email, phone,
			nominee_name, nominee_relation, payment_method,
			base_premium, add_on_premium, rider_premium, gst_amount,
			total_premium, currency, status, created_at
		) VALUES (
			:id, :user_id, :policy_id, :full_name, :email, :phone,
			:nominee_name, :nominee_relation, :payment_method,
			:base_premium, :add_on_premium, :rider_premium, :gst_amount,
			:total_premium, :currency, :status, :created_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, purchase)
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	return nil
}

// GetByID retrieves a purchase by ID.
func (r *PurchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	query := `
		SELECT id, user_id, policy_id, full_name, email, phone,
		       nominee_name, nominee_relation, payment_method,
		       base_premium, add_on_premium, rider_premium, gst_amount,
		       total_premium, currency, status, created_at
		FROM purchase
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &purchase, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase by id: %w", err)
	}

	return &purchase, nil
}

// GetByUserID retrieves all purchases owned by a user, newest first.
func (r *PurchaseRepository) GetByUserID(ctx context.Context, userID string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	query := `
		SELECT id, user_id, policy_id, full_name, email, phone,
		       nominee_name, nominee_relation, payment_method,
		       base_premium, add_on_premium, rider_premium, gst_amount,
		       total_premium, currency, status, created_at
		FROM purchase
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	err := r.db.SelectContext(ctx, &purchases, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases for user: %w", err)
	}

	return purchases, nil
}
