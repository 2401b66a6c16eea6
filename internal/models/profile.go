package models

import "time"

// UserProfile mirrors the onboarding questionnaire. Every field is optional;
// the scoring engine treats an absent field as "no bonus" and never fails on
// a partial profile.
type UserProfile struct {
	UserID            string             `json:"user_id"`
	Personal          PersonalSection    `json:"personal"`
	PolicyPreferences PreferencesSection `json:"policy_preferences"`
	Health            HealthSection      `json:"health"`
	Lifestyle         LifestyleSection   `json:"lifestyle"`
	Financial         FinancialSection   `json:"financial"`
	Completed         bool               `json:"completed"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

type PersonalSection struct {
	Age           *int    `json:"age,omitempty"`
	Occupation    *string `json:"occupation,omitempty"`
	MaritalStatus *string `json:"marital_status,omitempty"`
	// Dependents is kept as entered ("0", "2", "3+"); eligibility rules parse
	// it best-effort.
	Dependents *string `json:"dependents,omitempty"`
}

type PreferencesSection struct {
	DesiredPolicyTypes []string `json:"desired_policy_types,omitempty"`
	PremiumBudget      *string  `json:"premium_budget,omitempty"`
}

type HealthSection struct {
	CurrentConditions    []string `json:"current_conditions,omitempty"`
	FamilyMedicalHistory []string `json:"family_medical_history,omitempty"`
}

type LifestyleSection struct {
	SmokingHabits  *string `json:"smoking_habits,omitempty"`
	DrinkingHabits *string `json:"drinking_habits,omitempty"`
}

type FinancialSection struct {
	AnnualIncome *string `json:"annual_income,omitempty"`
}

// IsEmpty reports whether the profile carries no answered section at all, in
// which case the scoring engine falls back to its starter recommendation.
func (p *UserProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Personal.Age == nil &&
		p.Personal.Occupation == nil &&
		p.Personal.MaritalStatus == nil &&
		p.Personal.Dependents == nil &&
		len(p.PolicyPreferences.DesiredPolicyTypes) == 0 &&
		p.PolicyPreferences.PremiumBudget == nil &&
		len(p.Health.CurrentConditions) == 0 &&
		len(p.Health.FamilyMedicalHistory) == 0 &&
		p.Lifestyle.SmokingHabits == nil &&
		p.Lifestyle.DrinkingHabits == nil &&
		p.Financial.AnnualIncome == nil
}

// ProfileRecord is the persisted shape: sections stored as JSONB columns.
type ProfileRecord struct {
	UserID      string    `db:"user_id"`
	Personal    []byte    `db:"personal"`
	Preferences []byte    `db:"policy_preferences"`
	Health      []byte    `db:"health"`
	Lifestyle   []byte    `db:"lifestyle"`
	Financial   []byte    `db:"financial"`
	Completed   bool      `db:"completed"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
