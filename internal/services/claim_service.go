package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace-service/internal/event"
	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"

	"github.com/google/uuid"
)

// ClaimService files and reads claims against purchased policies.
type ClaimService struct {
	claims    *repository.ClaimRepository
	purchases *repository.PurchaseRepository
	catalog   *repository.CatalogRepository
	publisher *event.NotificationPublisher
}

func NewClaimService(
	claims *repository.ClaimRepository,
	purchases *repository.PurchaseRepository,
	catalog *repository.CatalogRepository,
	publisher *event.NotificationPublisher,
) *ClaimService {
	return &ClaimService{
		claims:    claims,
		purchases: purchases,
		catalog:   catalog,
		publisher: publisher,
	}
}

// FileClaim files a new claim against a purchase owned by the user.
func (s *ClaimService) FileClaim(ctx context.Context, userID string, req models.FileClaimRequest) (*models.Claim, error) {
	purchase, err := s.purchases.GetByID(ctx, req.PurchaseID)
	if err != nil {
		return nil, fmt.Errorf("purchase not found: %w", err)
	}
	if purchase.UserID != userID {
		return nil, fmt.Errorf("unauthorized: purchase does not belong to this user")
	}

	if req.ClaimedAmount <= 0 {
		return nil, fmt.Errorf("claimed amount must be positive")
	}

	if req.HospitalID != nil {
		if _, err := s.catalog.GetHospitalByID(ctx, *req.HospitalID); err != nil {
			return nil, fmt.Errorf("hospital not found: %w", err)
		}
	}

	now := time.Now()
	claimNumber, err := s.nextClaimNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	claim := &models.Claim{
		ID:            uuid.New(),
		ClaimNumber:   claimNumber,
		PurchaseID:    purchase.ID,
		UserID:        userID,
		HospitalID:    req.HospitalID,
		ClaimedAmount: req.ClaimedAmount,
		Currency:      purchase.Currency,
		Description:   req.Description,
		Status:        models.ClaimSubmitted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		noti := event.NotificationEventPushModel{
			ID:        uuid.NewString(),
			EventType: event.NotiClaimFiled,
			UserID:    userID,
			Title:     "Claim filed",
			Body:      fmt.Sprintf("Your claim %s has been submitted for review.", claim.ClaimNumber),
			Timestamp: now,
		}
		if err := s.publisher.PublishNotification(ctx, noti); err != nil {
			slog.Error("Failed to publish claim notification",
				"claim_id", claim.ID, "error", err)
		}
	}

	return claim, nil
}

// GetUserClaims lists all claims filed by a user.
func (s *ClaimService) GetUserClaims(ctx context.Context, userID string) ([]models.Claim, error) {
	return s.claims.GetByUserID(ctx, userID)
}

// GetClaimForUser reads one claim with an ownership check.
func (s *ClaimService) GetClaimForUser(ctx context.Context, claimID uuid.UUID, userID string) (*models.Claim, error) {
	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("claim not found: %w", err)
	}
	if claim.UserID != userID {
		return nil, fmt.Errorf("unauthorized: claim does not belong to this user")
	}
	return claim, nil
}

func (s *ClaimService) nextClaimNumber(ctx context.Context, now time.Time) (string, error) {
	count, err := s.claims.CountForYear(ctx, now.Year())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CLM-%d-%05d", now.Year(), count+1), nil
}
