package wizard

import (
	"fmt"
	"time"

	"marketplace-service/internal/models"
)

// ValidationMessageTTL is how long a validation message stays on screen
// before the client clears it.
const ValidationMessageTTL = 3 * time.Second

// ValidationError is a recoverable, user-correctable step failure. It never
// blocks anything beyond the attempted transition.
type ValidationError struct {
	Step      models.WizardStep `json:"step"`
	Field     string            `json:"field"`
	Message   string            `json:"message"`
	ExpiresAt time.Time         `json:"expires_at"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d (%s): %s", e.Step, e.Step, e.Message)
}

func newValidationError(step models.WizardStep, field, message string) *ValidationError {
	return &ValidationError{
		Step:      step,
		Field:     field,
		Message:   message,
		ExpiresAt: time.Now().Add(ValidationMessageTTL),
	}
}

// CanProceed reports whether the given step's completion predicate holds.
// On failure it returns the FIRST unmet condition in the fixed order the
// steps present their fields.
func CanProceed(form *models.PurchaseForm, step models.WizardStep) (bool, *ValidationError) {
	switch step {
	case models.StepCoverage:
		return true, nil

	case models.StepPersonalDetails:
		pd := form.PersonalDetails
		if pd.FullName == "" {
			return false, newValidationError(step, "full_name", "Full name is required")
		}
		if pd.Email == "" {
			return false, newValidationError(step, "email", "Email is required")
		}
		if pd.Phone == "" {
			return false, newValidationError(step, "phone", "Phone number is required")
		}
		if pd.DateOfBirth == "" {
			return false, newValidationError(step, "date_of_birth", "Date of birth is required")
		}
		return true, nil

	case models.StepNominee:
		if form.NomineeDetails.Name == "" {
			return false, newValidationError(step, "name", "Nominee name is required")
		}
		if form.NomineeDetails.Relationship == "" {
			return false, newValidationError(step, "relationship", "Nominee relationship is required")
		}
		return true, nil

	case models.StepDocuments:
		if slot := form.Documents[models.DocPanCard]; slot == nil || slot.Status != models.DocumentUploaded {
			return false, newValidationError(step, string(models.DocPanCard), "PAN card upload is required")
		}
		if slot := form.Documents[models.DocAadharCard]; slot == nil || slot.Status != models.DocumentUploaded {
			return false, newValidationError(step, string(models.DocAadharCard), "Aadhar card upload is required")
		}
		return true, nil

	case models.StepMedicalHistory:
		if len(form.MedicalHistory) != MedicalQuestionCount {
			return false, newValidationError(step, "medical_history",
				fmt.Sprintf("Please answer all %d medical history questions", MedicalQuestionCount))
		}
		return true, nil

	case models.StepReviewPay:
		// Payment has its own terminal action.
		return true, nil
	}

	return false, newValidationError(step, "step", "Unknown wizard step")
}

// Transition is the single state-machine transition function. It computes the
// next step for an event without mutating the form; Apply commits it.
//
// Advance past step N requires CanProceed(N); Retreat always succeeds and is
// a no-op at step 1; Submit is only available at step 6 and is an
// unconditional local success (there is no payment gateway behind it).
func Transition(form *models.PurchaseForm, event models.WizardEvent) (models.WizardStep, *ValidationError) {
	step := form.CurrentStep

	switch event {
	case models.EventAdvance:
		if ok, verr := CanProceed(form, step); !ok {
			return step, verr
		}
		if step < models.MaxWizardStep {
			return step + 1, nil
		}
		return step, nil

	case models.EventRetreat:
		if step > models.MinWizardStep {
			return step - 1, nil
		}
		return step, nil

	case models.EventSubmit:
		if step != models.StepReviewPay {
			return step, newValidationError(step, "step", "Submission is only available on the review step")
		}
		return step, nil
	}

	return step, newValidationError(step, "event", fmt.Sprintf("Unknown wizard event: %s", event))
}

// Apply runs Transition and commits the result to the form. A successful
// Submit marks the session succeeded.
func Apply(form *models.PurchaseForm, event models.WizardEvent) *ValidationError {
	next, verr := Transition(form, event)
	if verr != nil {
		return verr
	}
	form.CurrentStep = next
	if event == models.EventSubmit {
		form.Status = models.PurchaseSucceeded
	}
	form.UpdatedAt = time.Now()
	return nil
}

// MedicalQuestionCount is the size of the fixed questionnaire.
const MedicalQuestionCount = 6

// RecordMedicalAnswer stores one questionnaire answer. Both true and false
// count as answered; the step completes when all six ids are recorded.
func RecordMedicalAnswer(form *models.PurchaseForm, questionID int, answer bool) error {
	if questionID < 1 || questionID > MedicalQuestionCount {
		return fmt.Errorf("medical question id out of range: %d", questionID)
	}
	if form.MedicalHistory == nil {
		form.MedicalHistory = make(map[int]bool)
	}
	form.MedicalHistory[questionID] = answer
	form.UpdatedAt = time.Now()
	return nil
}

// BeginUpload records an upload attempt on a slot and marks it in-flight.
// The sequence is allocated externally (an atomic counter per slot), so two
// concurrent attempts never share one. The same sequence must be handed back
// to CompleteUpload.
func BeginUpload(form *models.PurchaseForm, key models.DocumentKey, seq int) error {
	if !key.Valid() {
		return fmt.Errorf("unknown document slot: %s", key)
	}
	if seq <= 0 {
		return fmt.Errorf("invalid upload sequence: %d", seq)
	}
	slot := form.Documents[key]
	if slot == nil {
		slot = &models.DocumentSlot{Status: models.DocumentPending}
		form.Documents[key] = slot
	}
	if seq > slot.UploadSeq {
		slot.UploadSeq = seq
	}
	slot.InProgress = true
	form.UpdatedAt = time.Now()
	return nil
}

// CompleteUpload applies a finished upload to its slot. A completion whose
// sequence is older than one already applied is discarded, so the newest
// attempt wins regardless of completion order.
func CompleteUpload(form *models.PurchaseForm, key models.DocumentKey, seq int, objectName, displayName, contentType string, sizeBytes int64) error {
	if !key.Valid() {
		return fmt.Errorf("unknown document slot: %s", key)
	}
	slot := form.Documents[key]
	if slot == nil {
		return fmt.Errorf("upload completion for slot %s with no attempt begun", key)
	}
	if seq <= slot.Version {
		// A newer attempt already landed.
		return nil
	}
	slot.Version = seq
	slot.Status = models.DocumentUploaded
	slot.ObjectName = objectName
	slot.DisplayName = displayName
	slot.ContentType = contentType
	slot.SizeBytes = sizeBytes
	slot.InProgress = slot.UploadSeq > slot.Version
	form.UpdatedAt = time.Now()
	return nil
}

// RemoveDocument resets a slot to pending and forgets the stored payload
// reference. The previous object name is returned so the caller can delete
// the stored object.
func RemoveDocument(form *models.PurchaseForm, key models.DocumentKey) (string, error) {
	if !key.Valid() {
		return "", fmt.Errorf("unknown document slot: %s", key)
	}
	slot := form.Documents[key]
	if slot == nil {
		return "", nil
	}
	previous := slot.ObjectName
	slot.Status = models.DocumentPending
	slot.ObjectName = ""
	slot.DisplayName = ""
	slot.ContentType = ""
	slot.SizeBytes = 0
	slot.InProgress = false
	form.UpdatedAt = time.Now()
	return previous, nil
}

// SetPaymentMethod selects the payment method on the review step.
func SetPaymentMethod(form *models.PurchaseForm, method models.PaymentMethod) error {
	if !method.Valid() {
		return fmt.Errorf("unknown payment method: %s", method)
	}
	form.PaymentMethod = method
	form.UpdatedAt = time.Now()
	return nil
}
