package recommend

import (
	"testing"

	"marketplace-service/internal/models"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func createTestProfile() *models.UserProfile {
	return &models.UserProfile{
		UserID: "user-1",
		Personal: models.PersonalSection{
			Age:           intPtr(30),
			MaritalStatus: strPtr("single"),
			Dependents:    strPtr("0"),
		},
		Lifestyle: models.LifestyleSection{
			SmokingHabits:  strPtr("never"),
			DrinkingHabits: strPtr("never"),
		},
	}
}

func recommendationTypes(set models.RecommendationSet) []models.PolicyType {
	types := make([]models.PolicyType, 0, len(set.Recommendations))
	for _, rec := range set.Recommendations {
		types = append(types, rec.Type)
	}
	return types
}

// ============================================================================
// TEST SUITE 1: RULE ELIGIBILITY AND SCORING
// ============================================================================

func TestIndividualHealthRule_MaxBonusesCapAt95(t *testing.T) {
	// 70 +10 non-smoker +10 age<35 +10 no conditions +5 non-drinker = 105, capped
	rec, ok := IndividualHealthRule{}.Evaluate(createTestProfile())

	assert.True(t, ok)
	assert.Equal(t, 95, rec.MatchScore)
	assert.Equal(t, "HealthSecure Individual", rec.Title)
}

func TestIndividualHealthRule_MonotonicInHealthSignals(t *testing.T) {
	base := &models.UserProfile{UserID: "user-1", Personal: models.PersonalSection{Age: intPtr(50)}}
	base.Health.CurrentConditions = []string{"Diabetes"}

	worse, _ := IndividualHealthRule{}.Evaluate(base)

	better := &models.UserProfile{UserID: "user-1", Personal: models.PersonalSection{Age: intPtr(50)}}
	better.Lifestyle.SmokingHabits = strPtr("never")

	improved, _ := IndividualHealthRule{}.Evaluate(better)

	assert.Greater(t, improved.MatchScore, worse.MatchScore)
}

func TestFamilyHealthRule_RequiresDependents(t *testing.T) {
	profile := createTestProfile()

	_, ok := FamilyHealthRule{}.Evaluate(profile)
	assert.False(t, ok, "zero dependents is not eligible")

	profile.Personal.Dependents = strPtr("3+")
	rec, ok := FamilyHealthRule{}.Evaluate(profile)
	assert.True(t, ok)
	// 75 +15 more than one dependent = 90 (single, no income answer)
	assert.Equal(t, 90, rec.MatchScore)
}

func TestFamilyHealthRule_NonNumericDependentsNotEligible(t *testing.T) {
	profile := createTestProfile()
	profile.Personal.Dependents = strPtr("none")

	_, ok := FamilyHealthRule{}.Evaluate(profile)

	assert.False(t, ok)
}

func TestSeniorHealthRule_EligibilityBoundaryAt60(t *testing.T) {
	profile := createTestProfile()
	profile.Personal.Age = intPtr(60)

	_, ok := SeniorHealthRule{}.Evaluate(profile)
	assert.False(t, ok, "exactly 60 is not senior")

	profile.Personal.Age = intPtr(61)
	rec, ok := SeniorHealthRule{}.Evaluate(profile)
	assert.True(t, ok)
	assert.Equal(t, "SeniorCare Plus", rec.Title)
}

func TestSeniorHealthRule_SeventyWithConditionCapsAt92(t *testing.T) {
	// 80 +10 age>65 +5 existing condition +5 non-smoker = 100, capped
	profile := &models.UserProfile{
		UserID:    "user-1",
		Personal:  models.PersonalSection{Age: intPtr(70)},
		Health:    models.HealthSection{CurrentConditions: []string{"Diabetes"}},
		Lifestyle: models.LifestyleSection{SmokingHabits: strPtr("never")},
	}

	rec, ok := SeniorHealthRule{}.Evaluate(profile)

	assert.True(t, ok)
	assert.Equal(t, 92, rec.MatchScore)
}

func TestCriticalIllnessRule_TriggeredByFamilyHistory(t *testing.T) {
	profile := createTestProfile()

	_, ok := CriticalIllnessRule{}.Evaluate(profile)
	assert.False(t, ok)

	profile.Health.FamilyMedicalHistory = []string{"Cancer", "Heart Disease"}
	rec, ok := CriticalIllnessRule{}.Evaluate(profile)
	assert.True(t, ok)
	// 70 +10 cancer +10 heart disease = 90 (age 30, no age bonus)
	assert.Equal(t, 90, rec.MatchScore)
	assert.Contains(t, rec.AIReason, "family history")
}

func TestMaternityRule_MarriedUnderForty(t *testing.T) {
	profile := createTestProfile()

	_, ok := MaternityRule{}.Evaluate(profile)
	assert.False(t, ok, "single is not eligible")

	profile.Personal.MaritalStatus = strPtr("married")
	rec, ok := MaternityRule{}.Evaluate(profile)
	assert.True(t, ok)
	// 75 +10 married +10 age<35 +5 dependents "0" = 100, capped at 93
	assert.Equal(t, 93, rec.MatchScore)

	profile.Personal.Age = intPtr(40)
	_, ok = MaternityRule{}.Evaluate(profile)
	assert.False(t, ok, "40 is past the eligibility window")
}

// ============================================================================
// TEST SUITE 2: ENGINE ORDERING, TRUNCATION AND FALLBACK
// ============================================================================

func TestScore_EmptyProfileGetsStarterRecommendation(t *testing.T) {
	engine := NewEngine(nil, 25)

	set := engine.Score(&models.UserProfile{UserID: "user-1"})

	assert.Len(t, set.Recommendations, 1)
	assert.Equal(t, "BasicCare Essential", set.Recommendations[0].Title)
	assert.Equal(t, 75, set.Recommendations[0].MatchScore)
	assert.Equal(t, models.PriorityHigh, set.Recommendations[0].Priority)
}

func TestScore_NilProfileGetsStarterRecommendation(t *testing.T) {
	engine := NewEngine(nil, 25)

	set := engine.Score(nil)

	assert.Len(t, set.Recommendations, 1)
	assert.Equal(t, "BasicCare Essential", set.Recommendations[0].Title)
}

func TestScore_TruncatesInRuleOrderNotScoreOrder(t *testing.T) {
	// Eligible for individual (always), family (dependents), senior (age 66),
	// critical (family history) and maternity is gated out by age. Senior
	// scores highest but the first three rules in order win the three slots.
	profile := &models.UserProfile{
		UserID: "user-1",
		Personal: models.PersonalSection{
			Age:           intPtr(66),
			MaritalStatus: strPtr("married"),
			Dependents:    strPtr("2"),
		},
		Health: models.HealthSection{
			FamilyMedicalHistory: []string{"Critical Illness"},
		},
	}
	engine := NewEngine(nil, 25)

	set := engine.Score(profile)

	assert.Equal(t, []models.PolicyType{
		models.PolicyIndividualHealth,
		models.PolicyFamilyHealth,
		models.PolicySeniorHealth,
	}, recommendationTypes(set))
}

func TestScore_NoEligibleRuleFallsBack(t *testing.T) {
	onlyGated := []Rule{SeniorHealthRule{}, MaternityRule{}}
	engine := NewEngine(onlyGated, 25)

	set := engine.Score(createTestProfile())

	assert.Len(t, set.Recommendations, 1)
	assert.Equal(t, "BasicCare Essential", set.Recommendations[0].Title)
}

func TestScore_PriorityHighOnlyForFirst(t *testing.T) {
	profile := createTestProfile()
	profile.Personal.MaritalStatus = strPtr("married")
	profile.Personal.Dependents = strPtr("1")
	engine := NewEngine(nil, 25)

	set := engine.Score(profile)

	assert.GreaterOrEqual(t, len(set.Recommendations), 2)
	assert.Equal(t, models.PriorityHigh, set.Recommendations[0].Priority)
	for _, rec := range set.Recommendations[1:] {
		assert.Equal(t, models.PriorityMedium, rec.Priority)
	}
}

func TestScore_OriginalPremiumUsesConfiguredMarkup(t *testing.T) {
	engine := NewEngine([]Rule{IndividualHealthRule{}}, 20)

	set := engine.Score(createTestProfile())

	rec := set.Recommendations[0]
	assert.Equal(t, 8500.0, rec.Premium.Amount)
	assert.Equal(t, 10200.0, rec.OriginalPremium.Amount)
	assert.Equal(t, "INR", rec.OriginalPremium.Currency)
}

func TestScore_StatsSumSavingsAndAverageMatch(t *testing.T) {
	profile := createTestProfile()
	profile.Personal.Dependents = strPtr("2")
	engine := NewEngine([]Rule{IndividualHealthRule{}, FamilyHealthRule{}}, 25)

	set := engine.Score(profile)

	assert.Len(t, set.Recommendations, 2)
	// 2100 + 4300
	assert.Equal(t, 6400.0, set.Stats.TotalSavings.Amount)
	// individual 95, family 90 -> mean 92.5 rounds to 93
	assert.Equal(t, 93, set.Stats.AvgMatch)
}

func TestScore_DeterministicAcrossRuns(t *testing.T) {
	profile := createTestProfile()
	profile.Health.FamilyMedicalHistory = []string{"Cancer"}
	engine := NewEngine(nil, 25)

	first := engine.Score(profile)
	second := engine.Score(profile)

	assert.Equal(t, first, second)
}

func TestIconFor_UnknownTypeGetsDefaultGlyph(t *testing.T) {
	assert.Equal(t, "🛡️", IconFor(models.PolicyType("gadget")))
	assert.Equal(t, "🏥", IconFor(models.PolicyIndividualHealth))
}
