package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ============================================================================
// CATALOG (COMPILE-TIME SEEDED, READ-ONLY AT RUNTIME)
// ============================================================================

type Insurer struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	DisplayName    string    `json:"display_name" db:"display_name"`
	LogoURL        *string   `json:"logo_url,omitempty" db:"logo_url"`
	Hotline        string    `json:"hotline" db:"hotline"`
	ClaimSettlePct float64   `json:"claim_settle_pct" db:"claim_settle_pct"`
	Rating         float64   `json:"rating" db:"rating"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type Policy struct {
	ID               uuid.UUID      `json:"id" db:"id"`
	InsurerID        uuid.UUID      `json:"insurer_id" db:"insurer_id"`
	Name             string         `json:"name" db:"name"`
	Type             PolicyType     `json:"type" db:"type"`
	SumInsured       float64        `json:"sum_insured" db:"sum_insured"`
	BasePremium      float64        `json:"base_premium" db:"base_premium"`
	Currency         string         `json:"currency" db:"currency"`
	Benefits         pq.StringArray `json:"benefits" db:"benefits"`
	PEDWaitingMonths int            `json:"ped_waiting_months" db:"ped_waiting_months"`
	CoPayPct         float64        `json:"co_pay_pct" db:"co_pay_pct"`
	NoClaimBonusPct  float64        `json:"no_claim_bonus_pct" db:"no_claim_bonus_pct"`
	Cashless         bool           `json:"cashless" db:"cashless"`
	Rating           float64        `json:"rating" db:"rating"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
}

type Branch struct {
	ID       uuid.UUID    `json:"id" db:"id"`
	Name     string       `json:"name" db:"name"`
	Address  string       `json:"address" db:"address"`
	City     string       `json:"city" db:"city"`
	Phone    string       `json:"phone" db:"phone"`
	Timings  string       `json:"timings" db:"timings"`
	Location GeoJSONPoint `json:"location" db:"location"`
}

// BranchWithLinks adds the browser-level side effects (tel: link, maps
// directions URL) and optional distance to the caller.
type BranchWithLinks struct {
	Branch
	TelLink       string   `json:"tel_link"`
	DirectionsURL string   `json:"directions_url"`
	DistanceKm    *float64 `json:"distance_km,omitempty"`
}

type Hospital struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	City      string    `json:"city" db:"city"`
	Address   string    `json:"address" db:"address"`
	Cashless  bool      `json:"cashless" db:"cashless"`
	Specialty *string   `json:"specialty,omitempty" db:"specialty"`
}

type AddOn struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	UnitPrice   float64   `json:"unit_price" db:"unit_price"`
}

type Rider struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	UnitPrice   float64   `json:"unit_price" db:"unit_price"`
}

type Testimonial struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Author   string    `json:"author" db:"author"`
	City     string    `json:"city" db:"city"`
	Quote    string    `json:"quote" db:"quote"`
	Rating   int       `json:"rating" db:"rating"`
	Ordering int       `json:"ordering" db:"ordering"`
}

type ClaimProcessStep struct {
	ID          uuid.UUID `json:"id" db:"id"`
	StepNumber  int       `json:"step_number" db:"step_number"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
}

// ============================================================================
// CLAIMS
// ============================================================================

type Claim struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	ClaimNumber   string      `json:"claim_number" db:"claim_number"`
	PurchaseID    uuid.UUID   `json:"purchase_id" db:"purchase_id"`
	UserID        string      `json:"user_id" db:"user_id"`
	HospitalID    *uuid.UUID  `json:"hospital_id,omitempty" db:"hospital_id"`
	ClaimedAmount float64     `json:"claimed_amount" db:"claimed_amount"`
	Currency      string      `json:"currency" db:"currency"`
	Description   string      `json:"description" db:"description"`
	Status        ClaimStatus `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}
