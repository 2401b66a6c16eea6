package repository

import (
	"context"
	"fmt"

	"marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CatalogRepository reads the compile-time seeded marketplace catalogs.
// All catalog tables are read-only at runtime.
type CatalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetPolicies retrieves catalog policies with optional type and insurer
// filters.
func (r *CatalogRepository) GetPolicies(ctx context.Context, policyType *models.PolicyType, insurerID *uuid.UUID) ([]models.Policy, error) {
	var policies []models.Policy
	query := `
		SELECT id, insurer_id, name, type, sum_insured, base_premium, currency,
		       benefits, ped_waiting_months, co_pay_pct, no_claim_bonus_pct,
		       cashless, rating, created_at
		FROM policy
		WHERE 1=1
	`

	args := []interface{}{}
	argCount := 1

	if policyType != nil {
		query += fmt.Sprintf(" AND type = $%d", argCount)
		args = append(args, *policyType)
		argCount++
	}

	if insurerID != nil {
		query += fmt.Sprintf(" AND insurer_id = $%d", argCount)
		args = append(args, *insurerID)
		argCount++
	}

	query += " ORDER BY rating DESC, name ASC"

	err := r.db.SelectContext(ctx, &policies, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get policies: %w", err)
	}

	return policies, nil
}

// GetPolicyByID retrieves one catalog policy.
func (r *CatalogRepository) GetPolicyByID(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	var policy models.Policy
	query := `
		SELECT id, insurer_id, name, type, sum_insured, base_premium, currency,
		       benefits, ped_waiting_months, co_pay_pct, no_claim_bonus_pct,
		       cashless, rating, created_at
		FROM policy
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &policy, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get policy by id: %w", err)
	}

	return &policy, nil
}

// GetInsurers retrieves all insurers.
func (r *CatalogRepository) GetInsurers(ctx context.Context) ([]models.Insurer, error) {
	var insurers []models.Insurer
	query := `
		SELECT id, name, display_name, logo_url, hotline, claim_settle_pct,
		       rating, created_at
		FROM insurer
		ORDER BY rating DESC
	`

	err := r.db.SelectContext(ctx, &insurers, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get insurers: %w", err)
	}

	return insurers, nil
}

// GetBranches retrieves all branches, optionally filtered by city.
func (r *CatalogRepository) GetBranches(ctx context.Context, city *string) ([]models.Branch, error) {
	var branches []models.Branch
	query := `
		SELECT id, name, address, city, phone, timings, location
		FROM branch
		WHERE 1=1
	`

	args := []interface{}{}
	if city != nil {
		query += " AND city = $1"
		args = append(args, *city)
	}

	query += " ORDER BY name ASC"

	err := r.db.SelectContext(ctx, &branches, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}

	return branches, nil
}

// GetHospitalsByCity retrieves network hospitals for a city.
func (r *CatalogRepository) GetHospitalsByCity(ctx context.Context, city string) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	query := `
		SELECT id, name, city, address, cashless, specialty
		FROM hospital
		WHERE city = $1
		ORDER BY name ASC
	`

	err := r.db.SelectContext(ctx, &hospitals, query, city)
	if err != nil {
		return nil, fmt.Errorf("failed to get hospitals for city %s: %w", city, err)
	}

	return hospitals, nil
}

// GetHospitalByID retrieves one hospital.
func (r *CatalogRepository) GetHospitalByID(ctx context.Context, id uuid.UUID) (*models.Hospital, error) {
	var hospital models.Hospital
	query := `
		SELECT id, name, city, address, cashless, specialty
		FROM hospital
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &hospital, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital by id: %w", err)
	}

	return &hospital, nil
}

// GetAddOns retrieves the add-on catalog.
func (r *CatalogRepository) GetAddOns(ctx context.Context) ([]models.AddOn, error) {
	var addOns []models.AddOn
	query := `SELECT id, name, description, unit_price FROM add_on ORDER BY name ASC`

	err := r.db.SelectContext(ctx, &addOns, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get add-ons: %w", err)
	}

	return addOns, nil
}

// GetRiders retrieves the rider catalog.
func (r *CatalogRepository) GetRiders(ctx context.Context) ([]models.Rider, error) {
	var riders []models.Rider
	query := `SELECT id, name, description, unit_price FROM rider ORDER BY name ASC`

	err := r.db.SelectContext(ctx, &riders, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get riders: %w", err)
	}

	return riders, nil
}

// GetTestimonials retrieves testimonials in display order.
func (r *CatalogRepository) GetTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	query := `SELECT id, author, city, quote, rating, ordering FROM testimonial ORDER BY ordering ASC`

	err := r.db.SelectContext(ctx, &testimonials, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get testimonials: %w", err)
	}

	return testimonials, nil
}

// GetClaimProcessSteps retrieves the claim-process walkthrough.
func (r *CatalogRepository) GetClaimProcessSteps(ctx context.Context) ([]models.ClaimProcessStep, error) {
	var steps []models.ClaimProcessStep
	query := `SELECT id, step_number, title, description FROM claim_process_step ORDER BY step_number ASC`

	err := r.db.SelectContext(ctx, &steps, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get claim process steps: %w", err)
	}

	return steps, nil
}

// GetMedicalQuestions retrieves the fixed medical questionnaire.
func (r *CatalogRepository) GetMedicalQuestions(ctx context.Context) ([]models.MedicalQuestion, error) {
	var questions []models.MedicalQuestion
	query := `SELECT id, question, ordering FROM medical_question ORDER BY ordering ASC`

	err := r.db.SelectContext(ctx, &questions, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get medical questions: %w", err)
	}

	return questions, nil
}
