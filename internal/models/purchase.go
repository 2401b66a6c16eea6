package models

import (
	"time"

	"github.com/google/uuid"
)

// Money is a structured amount. Premiums and savings are never carried as
// formatted display strings; formatting happens at the boundary.
type Money struct {
	Amount   float64 `json:"amount" db:"amount"`
	Currency string  `json:"currency" db:"currency"`
}

func Rupees(amount float64) Money {
	return Money{Amount: amount, Currency: "INR"}
}

// PersonalDetails collected on step 2. Required for progress: FullName,
// Email, Phone and DateOfBirth; the rest are optional.
type PersonalDetails struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	DateOfBirth  string `json:"date_of_birth"`
	Gender       string `json:"gender"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	PanNumber    string `json:"pan_number"`
	AadharNumber string `json:"aadhar_number"`
}

// NomineeDetails collected on step 3. Required: Name and Relationship.
type NomineeDetails struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	DateOfBirth  string `json:"date_of_birth"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// DocumentSlot is one of the four fixed KYC upload slots. Uploads are
// asynchronous; UploadSeq is bumped when an upload begins and Version records
// the attempt whose payload is currently applied, so overlapping uploads to
// the same slot resolve newest-attempt-wins once completed.
type DocumentSlot struct {
	Status      DocumentStatus `json:"status"`
	ObjectName  string         `json:"object_name,omitempty"`
	DisplayName string         `json:"display_name,omitempty"`
	ContentType string         `json:"content_type,omitempty"`
	SizeBytes   int64          `json:"size_bytes,omitempty"`
	InProgress  bool           `json:"in_progress"`
	UploadSeq   int            `json:"upload_seq"`
	Version     int            `json:"version"`
}

// PurchaseForm is the accumulating wizard state, owned exclusively by one
// wizard session while active and discarded when the session expires.
type PurchaseForm struct {
	SessionID       uuid.UUID                    `json:"session_id"`
	UserID          string                       `json:"user_id"`
	PolicyID        uuid.UUID                    `json:"policy_id"`
	CurrentStep     WizardStep                   `json:"current_step"`
	Status          PurchaseStatus               `json:"status"`
	PersonalDetails PersonalDetails              `json:"personal_details"`
	NomineeDetails  NomineeDetails               `json:"nominee_details"`
	Documents       map[DocumentKey]*DocumentSlot `json:"documents"`
	MedicalHistory  map[int]bool                 `json:"medical_history"`
	SelectedAddOns  []uuid.UUID                  `json:"selected_add_ons"`
	SelectedRiders  []uuid.UUID                  `json:"selected_riders"`
	PaymentMethod   PaymentMethod                `json:"payment_method"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
}

// NewPurchaseForm creates a fresh wizard session at step 1 with all document
// slots pending and the default payment method.
func NewPurchaseForm(userID string, policyID uuid.UUID) *PurchaseForm {
	docs := make(map[DocumentKey]*DocumentSlot, len(DocumentKeys))
	for _, key := range DocumentKeys {
		docs[key] = &DocumentSlot{Status: DocumentPending}
	}
	now := time.Now()
	return &PurchaseForm{
		SessionID:      uuid.New(),
		UserID:         userID,
		PolicyID:       policyID,
		CurrentStep:    StepCoverage,
		Status:         PurchaseInProgress,
		Documents:      docs,
		MedicalHistory: make(map[int]bool),
		PaymentMethod:  PaymentCard,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// PremiumBreakdown is derived from the current selections, never stored
// independently of them.
type PremiumBreakdown struct {
	Base   Money `json:"base"`
	AddOns Money `json:"add_ons"`
	Riders Money `json:"riders"`
	GST    Money `json:"gst"`
	Total  Money `json:"total"`
}

// Purchase is the immutable record persisted when a wizard session submits.
type Purchase struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	UserID          string         `json:"user_id" db:"user_id"`
	PolicyID        uuid.UUID      `json:"policy_id" db:"policy_id"`
	FullName        string         `json:"full_name" db:"full_name"`
	Email           string         `json:"email" db:"email"`
	Phone           string         `json:"phone" db:"phone"`
	NomineeName     string         `json:"nominee_name" db:"nominee_name"`
	NomineeRelation string         `json:"nominee_relation" db:"nominee_relation"`
	PaymentMethod   PaymentMethod  `json:"payment_method" db:"payment_method"`
	BasePremium     float64        `json:"base_premium" db:"base_premium"`
	AddOnPremium    float64        `json:"add_on_premium" db:"add_on_premium"`
	RiderPremium    float64        `json:"rider_premium" db:"rider_premium"`
	GSTAmount       float64        `json:"gst_amount" db:"gst_amount"`
	TotalPremium    float64        `json:"total_premium" db:"total_premium"`
	Currency        string         `json:"currency" db:"currency"`
	Status          PurchaseStatus `json:"status" db:"status"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
}

// MedicalQuestion is one of the six fixed questionnaire entries.
type MedicalQuestion struct {
	ID       int    `json:"id" db:"id"`
	Question string `json:"question" db:"question"`
	Ordering int    `json:"ordering" db:"ordering"`
}
