package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"marketplace-service/internal/models"
)

// Rule produces at most one candidate recommendation for a profile. Rules
// are evaluated in a fixed configured order; that order, not the numeric
// score, decides which categories are shown when more than three match.
type Rule interface {
	Type() models.PolicyType
	Evaluate(profile *models.UserProfile) (*models.Recommendation, bool)
}

// plan carries the fixed catalog attributes each rule attaches to its
// candidate.
type plan struct {
	id       string
	title    string
	company  string
	coverage float64
	premium  float64
	savings  float64
	rating   float64
	benefits []string
}

func (p plan) apply(rec *models.Recommendation) {
	rec.ID = p.id
	rec.Title = p.title
	rec.Company = p.company
	rec.Coverage = models.Rupees(p.coverage)
	rec.Premium = models.Rupees(p.premium)
	rec.Savings = models.Rupees(p.savings)
	rec.Rating = p.rating
	rec.Benefits = append([]string(nil), p.benefits...)
}

// parseDependents extracts the leading integer from a dependents answer.
// Entries like "3+" parse to 3; non-numeric answers parse to 0.
func parseDependents(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0
	}
	return n
}

func isMarried(p *models.UserProfile) bool {
	return p.Personal.MaritalStatus != nil && *p.Personal.MaritalStatus == "married"
}

func neverSmokes(p *models.UserProfile) bool {
	return p.Lifestyle.SmokingHabits != nil && *p.Lifestyle.SmokingHabits == "never"
}

func neverDrinks(p *models.UserProfile) bool {
	return p.Lifestyle.DrinkingHabits != nil && *p.Lifestyle.DrinkingHabits == "never"
}

func cap_(score, maximum int) int {
	if score > maximum {
		return maximum
	}
	return score
}

// joinReason builds the templated justification sentence from the clauses
// that apply to this profile. Absent fields are simply omitted, never left
// as placeholders.
func joinReason(lead string, clauses []string) string {
	if len(clauses) == 0 {
		return lead + " your coverage preferences."
	}
	if len(clauses) == 1 {
		return lead + " " + clauses[0] + "."
	}
	return lead + " " + strings.Join(clauses[:len(clauses)-1], ", ") + ", and " + clauses[len(clauses)-1] + "."
}

// ============================================================================
// INDIVIDUAL HEALTH: always eligible
// ============================================================================

type IndividualHealthRule struct{}

func (IndividualHealthRule) Type() models.PolicyType { return models.PolicyIndividualHealth }

func (IndividualHealthRule) Evaluate(p *models.UserProfile) (*models.Recommendation, bool) {
	score := 70
	var clauses []string

	if neverSmokes(p) {
		score += 10
		clauses = append(clauses, "non-smoking status")
	}
	if p.Personal.Age != nil && *p.Personal.Age < 35 {
		score += 10
		clauses = append(clauses, fmt.Sprintf("your age group (%d)", *p.Personal.Age))
	}
	if len(p.Health.CurrentConditions) == 0 {
		score += 10
		clauses = append(clauses, "excellent health profile")
	}
	if neverDrinks(p) {
		score += 5
		clauses = append(clauses, "healthy drinking habits")
	}

	rec := &models.Recommendation{
		Type:       models.PolicyIndividualHealth,
		MatchScore: cap_(score, 95),
		AIReason:   joinReason("Perfect fit based on", clauses),
	}
	plan{
		id:       "ind-health-secure",
		title:    "HealthSecure Individual",
		company:  "Sapphire General Insurance",
		coverage: 500000,
		premium:  8500,
		savings:  2100,
		rating:   4.5,
		benefits: []string{"Cashless hospitalization at 9,500+ hospitals", "No room rent capping", "Annual health check-up", "Restoration of sum insured"},
	}.apply(rec)
	return rec, true
}

// ============================================================================
// FAMILY HEALTH: eligible iff dependents parses to an integer > 0
// ============================================================================

type FamilyHealthRule struct{}

func (FamilyHealthRule) Type() models.PolicyType { return models.PolicyFamilyHealth }

func (FamilyHealthRule) Evaluate(p *models.UserProfile) (*models.Recommendation, bool) {
	if p.Personal.Dependents == nil {
		return nil, false
	}
	dependents := parseDependents(*p.Personal.Dependents)
	if dependents <= 0 {
		return nil, false
	}

	score := 75
	clauses := []string{fmt.Sprintf("coverage for %d dependents", dependents)}

	if dependents > 1 {
		score += 15
	}
	if isMarried(p) {
		score += 10
		clauses = append(clauses, "your family profile")
	}
	if p.Financial.AnnualIncome != nil && !strings.Contains(strings.ToLower(*p.Financial.AnnualIncome), "under") {
		score += 5
		clauses = append(clauses, "a premium that fits your income bracket")
	}

	rec := &models.Recommendation{
		Type:       models.PolicyFamilyHealth,
		MatchScore: cap_(score, 98),
		AIReason:   joinReason("Ideal family floater based on", clauses),
	}
	plan{
		id:       "family-shield-floater",
		title:    "FamilyShield Floater",
		company:  "Horizon Health Insurance",
		coverage: 1000000,
		premium:  16200,
		savings:  4300,
		rating:   4.7,
		benefits: []string{"Single sum insured for the whole family", "Maternity cover after waiting period", "Child vaccination cover", "No Claim Bonus up to 100%"},
	}.apply(rec)
	return rec, true
}

// ============================================================================
// SENIOR HEALTH: eligible iff age > 60
// ============================================================================

type SeniorHealthRule struct{}

func (SeniorHealthRule) Type() models.PolicyType { return models.PolicySeniorHealth }

func (SeniorHealthRule) Evaluate(p *models.UserProfile) (*models.Recommendation, bool) {
	if p.Personal.Age == nil || *p.Personal.Age <= 60 {
		return nil, false
	}

	score := 80
	clauses := []string{fmt.Sprintf("your age group (%d)", *p.Personal.Age)}

	if *p.Personal.Age > 65 {
		score += 10
	}
	if len(p.Health.CurrentConditions) > 0 {
		score += 5
		clauses = append(clauses, "cover for your existing conditions")
	}
	if neverSmokes(p) {
		score += 5
		clauses = append(clauses, "non-smoking status")
	}

	rec := &models.Recommendation{
		Type:       models.PolicySeniorHealth,
		MatchScore: cap_(score, 92),
		AIReason:   joinReason("Tailored senior care based on", clauses),
	}
	plan{
		id:       "senior-care-plus",
		title:    "SeniorCare Plus",
		company:  "Evergreen Life & Health",
		coverage: 700000,
		premium:  24500,
		savings:  3800,
		rating:   4.4,
		benefits: []string{"Reduced PED waiting period", "Domiciliary treatment cover", "Free annual health check-up", "Dedicated claim concierge"},
	}.apply(rec)
	return rec, true
}

// ============================================================================
// CRITICAL ILLNESS: eligible iff family history matches a trigger condition
// ============================================================================

type CriticalIllnessRule struct{}

func (CriticalIllnessRule) Type() models.PolicyType { return models.PolicyCriticalIllness }

var criticalTriggers = []struct {
	condition string
	bonus     int
}{
	{"Critical Illness", 15},
	{"Cancer", 10},
	{"Heart Disease", 10},
}

func (CriticalIllnessRule) Evaluate(p *models.UserProfile) (*models.Recommendation, bool) {
	history := make(map[string]bool, len(p.Health.FamilyMedicalHistory))
	for _, c := range p.Health.FamilyMedicalHistory {
		history[c] = true
	}

	score := 70
	eligible := false
	var matched []string
	for _, trigger := range criticalTriggers {
		if history[trigger.condition] {
			eligible = true
			score += trigger.bonus
			matched = append(matched, strings.ToLower(trigger.condition))
		}
	}
	if !eligible {
		return nil, false
	}

	clauses := []string{"your family history of " + strings.Join(matched, ", ")}
	if p.Personal.Age != nil && *p.Personal.Age > 40 {
		score += 5
		clauses = append(clauses, fmt.Sprintf("your age group (%d)", *p.Personal.Age))
	}

	rec := &models.Recommendation{
		Type:       models.PolicyCriticalIllness,
		MatchScore: cap_(score, 95),
		AIReason:   joinReason("Strongly recommended given", clauses),
	}
	plan{
		id:       "critical-guard-360",
		title:    "CriticalGuard 360",
		company:  "Sapphire General Insurance",
		coverage: 2500000,
		premium:  11900,
		savings:  2600,
		rating:   4.6,
		benefits: []string{"Lump sum payout on diagnosis", "Covers 36 critical illnesses", "Premium waiver after claim", "Second medical opinion cover"},
	}.apply(rec)
	return rec, true
}

// ============================================================================
// MATERNITY: eligible iff married and age < 40
// ============================================================================

type MaternityRule struct{}

func (MaternityRule) Type() models.PolicyType { return models.PolicyMaternity }

func (MaternityRule) Evaluate(p *models.UserProfile) (*models.Recommendation, bool) {
	if !isMarried(p) {
		return nil, false
	}
	if p.Personal.Age == nil || *p.Personal.Age >= 40 {
		return nil, false
	}

	score := 75
	clauses := []string{"your marital status"}

	if isMarried(p) {
		score += 10
	}
	if *p.Personal.Age < 35 {
		score += 10
		clauses = append(clauses, fmt.Sprintf("your age group (%d)", *p.Personal.Age))
	}
	if p.Personal.Dependents != nil && *p.Personal.Dependents == "0" {
		score += 5
		clauses = append(clauses, "planning for your first child")
	}

	rec := &models.Recommendation{
		Type:       models.PolicyMaternity,
		MatchScore: cap_(score, 93),
		AIReason:   joinReason("Well timed maternity cover based on", clauses),
	}
	plan{
		id:       "maternity-bloom",
		title:    "MaternityBloom Care",
		company:  "Horizon Health Insurance",
		coverage: 400000,
		premium:  9800,
		savings:  1900,
		rating:   4.3,
		benefits: []string{"Normal and C-section delivery cover", "Newborn cover from day one", "Pre and post natal expenses", "Vaccination cover for 12 months"},
	}.apply(rec)
	return rec, true
}

// DefaultRules returns the rules in the marketplace's category priority
// order. The order is part of the product behavior: candidates keep this
// order and the list is truncated to three, so score never reorders
// categories.
func DefaultRules() []Rule {
	return []Rule{
		IndividualHealthRule{},
		FamilyHealthRule{},
		SeniorHealthRule{},
		CriticalIllnessRule{},
		MaternityRule{},
	}
}
