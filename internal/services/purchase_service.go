package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace-service/internal/event"
	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/wizard"

	"github.com/google/uuid"
)

// WizardState is the wizard snapshot handed back after every session
// operation: the form plus the derived premium breakdown.
type WizardState struct {
	Form    *models.PurchaseForm    `json:"form"`
	Premium models.PremiumBreakdown `json:"premium"`
}

// PurchaseService orchestrates wizard sessions: state lives in Redis while
// the wizard is active; a successful submit writes the immutable purchase
// row and discards the session.
type PurchaseService struct {
	sessions  *repository.SessionRepository
	purchases *repository.PurchaseRepository
	catalog   *repository.CatalogRepository
	documents *DocumentService
	publisher *event.NotificationPublisher
}

func NewPurchaseService(
	sessions *repository.SessionRepository,
	purchases *repository.PurchaseRepository,
	catalog *repository.CatalogRepository,
	documents *DocumentService,
	publisher *event.NotificationPublisher,
) *PurchaseService {
	return &PurchaseService{
		sessions:  sessions,
		purchases: purchases,
		catalog:   catalog,
		documents: documents,
		publisher: publisher,
	}
}

// Start opens a wizard session for a catalog policy.
func (s *PurchaseService) Start(ctx context.Context, userID string, policyID uuid.UUID) (*WizardState, error) {
	policy, err := s.catalog.GetPolicyByID(ctx, policyID)
	if err != nil {
		return nil, fmt.Errorf("policy not found: %w", err)
	}

	form := models.NewPurchaseForm(userID, policy.ID)
	if err := s.sessions.Save(ctx, form); err != nil {
		return nil, err
	}

	return s.state(form, policy.BasePremium), nil
}

// Get loads a wizard session owned by the user.
func (s *PurchaseService) Get(ctx context.Context, sessionID uuid.UUID, userID string) (*WizardState, error) {
	form, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	return s.stateFor(ctx, form)
}

// Advance attempts to move the wizard one step forward. A validation
// failure is returned to the caller and the step does not change.
func (s *PurchaseService) Advance(ctx context.Context, sessionID uuid.UUID, userID string) (*WizardState, *wizard.ValidationError, error) {
	form, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, nil, err
	}

	if verr := wizard.Apply(form, models.EventAdvance); verr != nil {
		state, serr := s.stateFor(ctx, form)
		if serr != nil {
			return nil, verr, serr
		}
		return state, verr, nil
	}

	if err := s.sessions.Save(ctx, form); err != nil {
		return nil, nil, err
	}
	state, err := s.stateFor(ctx, form)
	return state, nil, err
}

// Retreat moves the wizard one step back; a no-op on the first step.
func (s *PurchaseService) Retreat(ctx context.Context, sessionID uuid.UUID, userID string) (*WizardState, error) {
	form, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if verr := wizard.Apply(form, models.EventRetreat); verr != nil {
		return nil, verr
	}

	if err := s.sessions.Save(ctx, form); err != nil {
		return nil, err
	}
	return s.stateFor(ctx, form)
}

// UpdatePersonalDetails replaces the step-2 section.
func (s *PurchaseService) UpdatePersonalDetails(ctx context.Context, sessionID uuid.UUID, userID string, details models.PersonalDetails) (*WizardState, error) {
	return s.mutate(ctx, sessionID, userID, func(form *models.PurchaseForm) error {
		form.PersonalDetails = details
		return nil
	})
}

// UpdateNominee replaces the step-3 section.
func (s *PurchaseService) UpdateNominee(ctx context.Context, sessionID uuid.UUID, userID string, details models.NomineeDetails) (*WizardState, error) {
	return s.mutate(ctx, sessionID, userID, func(form *models.PurchaseForm) error {
		form.NomineeDetails = details
		return nil
	})
}

// AnswerMedicalQuestion records one questionnaire answer.
func (s *PurchaseService) AnswerMedicalQuestion(ctx context.Context, sessionID uuid.UUID, userID string, questionID int, answer bool) (*WizardState, error) {
	return s.mutate(ctx, sessionID, userID, func(form *models.PurchaseForm) error {
		return wizard.RecordMedicalAnswer(form, questionID, answer)
	})
}

// SetSelections replaces the selected add-on and rider sets; the premium
// breakdown is recomputed from them on every read.
func (s *PurchaseService) SetSelections(ctx context.Context, sessionID uuid.UUID, userID string, addOns, riders []uuid.UUID) (*WizardState, error) {
	return s.mutate(ctx, sessionID, userID, func(form *models.PurchaseForm) error {
		form.SelectedAddOns = addOns
		form.SelectedRiders = riders
		return nil
	})
}

// SetPaymentMethod selects the payment method on the review step.
func (s *PurchaseService) SetPaymentMethod(ctx context.Context, sessionID uuid.UUID, userID string, method models.PaymentMethod) (*WizardState, error) {
	return s.mutate(ctx, sessionID, userID, func(form *models.PurchaseForm) error {
		return wizard.SetPaymentMethod(form, method)
	})
}

// UploadDocument stores a KYC document into a slot. The begin/complete split
// keeps the slot's in-progress flag honest and resolves overlapping uploads
// to the same slot newest-attempt-wins.
func (s *PurchaseService) UploadDocument(ctx context.Context, sessionID uuid.UUID, userID string, key models.DocumentKey, displayName string, data []byte) (*WizardState, error) {
	form, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	// Allocate the sequence through Redis so overlapping requests that each
	// loaded the same form snapshot still get distinct numbers.
	seq, err := s.sessions.NextUploadSeq(ctx, sessionID, string(key))
	if err != nil {
		return nil, err
	}
	if err := wizard.BeginUpload(form, key, seq); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, form); err != nil {
		return nil, err
	}

	objectName, contentType, err := s.documents.Store(ctx, sessionID, key, displayName, data)
	if err != nil {
		// The attempt failed; reload to avoid clobbering concurrent writes
		// and clear the in-progress flag if no newer attempt is in flight.
		if form, lerr := s.loadOwned(ctx, sessionID, userID); lerr == nil {
			if slot := form.Documents[key]; slot != nil && slot.UploadSeq == seq {
				slot.InProgress = false
				_ = s.sessions.Save(ctx, form)
			}
		}
		return nil, err
	}

	form, err = s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := wizard.CompleteUpload(form, key, seq, objectName, displayName, contentType, int64(len(data))); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, form); err != nil {
		return nil, err
	}

	return s.stateFor(ctx, form)
}

// RemoveDocument resets a slot to pending and deletes the stored object.
func (s *PurchaseService) RemoveDocument(ctx context.Context, sessionID uuid.UUID, userID string, key models.DocumentKey) (*WizardState, error) {
	form, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	objectName, err := wizard.RemoveDocument(form, key)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, form); err != nil {
		return nil, err
	}

	if objectName != "" {
		if err := s.documents.Remove(ctx, objectName); err != nil {
			slog.Error("Failed to delete removed document object",
				"session_id", sessionID, "object", objectName, "error", err)
		}
	}

	return s.stateFor(ctx, form)
}

// Submit finalizes the wizard at the review step: the purchase row is
// written, a notification event goes out, and the session is discarded.
// There is no payment gateway behind this; submission is a local success.
func (s *PurchaseService) Submit(ctx context.Context, sessionID uuid.UUID, userID string) (*models.Purchase, *wizard.ValidationError, error) {
	form, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, nil, err
	}

	if verr := wizard.Apply(form, models.EventSubmit); verr != nil {
		return nil, verr, nil
	}

	policy, err := s.catalog.GetPolicyByID(ctx, form.PolicyID)
	if err != nil {
		return nil, nil, fmt.Errorf("policy not found: %w", err)
	}

	breakdown := wizard.FormPremium(form, policy.BasePremium)
	purchase := &models.Purchase{
		ID:              uuid.New(),
		UserID:          form.UserID,
		PolicyID:        form.PolicyID,
		FullName:        form.PersonalDetails.FullName,
		Email:           form.PersonalDetails.Email,
		Phone:           form.PersonalDetails.Phone,
		NomineeName:     form.NomineeDetails.Name,
		NomineeRelation: form.NomineeDetails.Relationship,
		PaymentMethod:   form.PaymentMethod,
		BasePremium:     breakdown.Base.Amount,
		AddOnPremium:    breakdown.AddOns.Amount,
		RiderPremium:    breakdown.Riders.Amount,
		GSTAmount:       breakdown.GST.Amount,
		TotalPremium:    breakdown.Total.Amount,
		Currency:        breakdown.Total.Currency,
		Status:          models.PurchaseSucceeded,
		CreatedAt:       time.Now(),
	}

	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, nil, err
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		slog.Error("Failed to delete submitted wizard session",
			"session_id", sessionID, "error", err)
	}

	if s.publisher != nil {
		noti := event.NotificationEventPushModel{
			ID:        uuid.NewString(),
			EventType: event.NotiPurchaseCompleted,
			UserID:    userID,
			Title:     "Policy purchased",
			Body:      fmt.Sprintf("Your purchase of %s is confirmed.", policy.Name),
			Timestamp: time.Now(),
		}
		if err := s.publisher.PublishNotification(ctx, noti); err != nil {
			slog.Error("Failed to publish purchase notification",
				"purchase_id", purchase.ID, "error", err)
		}
	}

	return purchase, nil, nil
}

// GetUserPurchases lists the user's completed purchases.
func (s *PurchaseService) GetUserPurchases(ctx context.Context, userID string) ([]models.Purchase, error) {
	return s.purchases.GetByUserID(ctx, userID)
}

func (s *PurchaseService) mutate(ctx context.Context, sessionID uuid.UUID, userID string, fn func(*models.PurchaseForm) error) (*WizardState, error) {
	form, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(form); err != nil {
		return nil, err
	}
	form.UpdatedAt = time.Now()
	if err := s.sessions.Save(ctx, form); err != nil {
		return nil, err
	}
	return s.stateFor(ctx, form)
}

func (s *PurchaseService) loadOwned(ctx context.Context, sessionID uuid.UUID, userID string) (*models.PurchaseForm, error) {
	form, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if form.UserID != userID {
		return nil, fmt.Errorf("unauthorized: session does not belong to this user")
	}
	return form, nil
}

func (s *PurchaseService) stateFor(ctx context.Context, form *models.PurchaseForm) (*WizardState, error) {
	base := wizard.DefaultBasePremium
	if policy, err := s.catalog.GetPolicyByID(ctx, form.PolicyID); err == nil {
		base = policy.BasePremium
	}
	return s.state(form, base), nil
}

func (s *PurchaseService) state(form *models.PurchaseForm, basePremium float64) *WizardState {
	return &WizardState{
		Form:    form,
		Premium: wizard.FormPremium(form, basePremium),
	}
}
