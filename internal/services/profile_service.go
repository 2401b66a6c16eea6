package services

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace-service/internal/event"
	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/utils"

	"github.com/google/uuid"
)

// ProfileService stores the onboarding questionnaire and announces when a
// profile becomes completed so recommendations get rescored.
type ProfileService struct {
	profiles  *repository.ProfileRepository
	publisher *event.NotificationPublisher
}

func NewProfileService(profiles *repository.ProfileRepository, publisher *event.NotificationPublisher) *ProfileService {
	return &ProfileService{
		profiles:  profiles,
		publisher: publisher,
	}
}

// Upsert validates and stores the user's profile snapshot. Section fields
// are all optional; only format errors on provided contact fields reject
// the write.
func (s *ProfileService) Upsert(ctx context.Context, userID string, profile *models.UserProfile) (*models.UserProfile, error) {
	profile.UserID = userID

	if profile.Personal.Age != nil && (*profile.Personal.Age < 0 || *profile.Personal.Age > 120) {
		return nil, fmt.Errorf("age out of range")
	}

	wasCompleted := false
	if existing, err := s.profiles.GetByUserID(ctx, userID); err == nil {
		wasCompleted = existing.Completed
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	if profile.Completed && !wasCompleted {
		s.announceCompleted(ctx, userID)
	}

	return profile, nil
}

// Get reads the user's stored profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// MarkCompleted flips the completed flag and fires the scoring trigger.
func (s *ProfileService) MarkCompleted(ctx context.Context, userID string) error {
	if err := s.profiles.SetCompleted(ctx, userID, true); err != nil {
		return err
	}
	s.announceCompleted(ctx, userID)
	return nil
}

func (s *ProfileService) announceCompleted(ctx context.Context, userID string) {
	if s.publisher == nil {
		return
	}
	evt := event.ProfileEvent{
		ID:        uuid.NewString(),
		EventType: event.ProfileCompleted,
		UserID:    userID,
	}
	if err := s.publisher.PublishProfileEvent(ctx, evt); err != nil {
		slog.Error("Failed to publish profile completed event",
			"user_id", userID, "error", err)
	}
}

// ValidateContact applies format checks on the optional contact fields of a
// purchase's personal details; used by the profile and purchase surfaces
// for advisory validation, never by the wizard's step predicates.
func ValidateContact(details models.PersonalDetails) []utils.ValidationError {
	var errs []utils.ValidationError

	if details.Email != "" {
		if ok, _ := utils.ValidateEmail(details.Email); !ok {
			errs = append(errs, utils.ValidationError{Field: "email", Message: "email format incorrect"})
		}
	}
	if details.Phone != "" {
		if ok, _ := utils.ValidatePhone(details.Phone); !ok {
			errs = append(errs, utils.ValidationError{Field: "phone", Message: "phone format incorrect"})
		}
	}
	if details.PanNumber != "" && !utils.ValidatePAN(details.PanNumber) {
		errs = append(errs, utils.ValidationError{Field: "pan_number", Message: "PAN format incorrect"})
	}
	if details.AadharNumber != "" && !utils.ValidateAadhar(details.AadharNumber) {
		errs = append(errs, utils.ValidationError{Field: "aadhar_number", Message: "Aadhaar format incorrect"})
	}
	if details.Pincode != "" && !utils.ValidatePincode(details.Pincode) {
		errs = append(errs, utils.ValidationError{Field: "pincode", Message: "pincode format incorrect"})
	}

	return errs
}
