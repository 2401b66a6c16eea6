package models

import "github.com/google/uuid"

// StartPurchaseRequest opens a new wizard session for a catalog policy.
type StartPurchaseRequest struct {
	PolicyID uuid.UUID `json:"policy_id"`
}

// UpdatePersonalDetailsRequest replaces the step-2 form section.
type UpdatePersonalDetailsRequest struct {
	PersonalDetails PersonalDetails `json:"personal_details"`
}

// UpdateNomineeRequest replaces the step-3 form section.
type UpdateNomineeRequest struct {
	NomineeDetails NomineeDetails `json:"nominee_details"`
}

// MedicalAnswerRequest records one questionnaire answer.
type MedicalAnswerRequest struct {
	QuestionID int  `json:"question_id"`
	Answer     bool `json:"answer"`
}

// SelectionRequest replaces the selected add-on and rider sets.
type SelectionRequest struct {
	AddOnIDs []uuid.UUID `json:"add_on_ids"`
	RiderIDs []uuid.UUID `json:"rider_ids"`
}

// PaymentMethodRequest sets the payment method on the review step.
type PaymentMethodRequest struct {
	Method PaymentMethod `json:"method"`
}

// FileClaimRequest files a claim against an owned purchase.
type FileClaimRequest struct {
	PurchaseID    uuid.UUID  `json:"purchase_id"`
	HospitalID    *uuid.UUID `json:"hospital_id,omitempty"`
	ClaimedAmount float64    `json:"claimed_amount"`
	Description   string     `json:"description"`
}

// CompareRequest asks for a side-by-side feature comparison.
type CompareRequest struct {
	PolicyNames []string `json:"policy_names"`
}
