package recommend

import (
	"math"

	"marketplace-service/internal/models"
)

// MaxRecommendations is the display budget: the first N candidates in rule
// order survive, the rest are dropped.
const MaxRecommendations = 3

// Engine deterministically scores a profile snapshot against its rule list.
// No randomness, no external calls; a partial profile degrades field by
// field and never fails a scoring run.
type Engine struct {
	rules      []Rule
	markupPct  int
	maxResults int
}

// NewEngine builds an engine with an explicit rule order and the markup
// percentage used to derive the pre-discount premium.
func NewEngine(rules []Rule, markupPct int) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	if markupPct <= 0 {
		markupPct = 25
	}
	return &Engine{
		rules:      rules,
		markupPct:  markupPct,
		maxResults: MaxRecommendations,
	}
}

// Score produces the ranked recommendation set for a profile snapshot.
// An absent or entirely unanswered profile yields the fixed starter
// recommendation.
func (e *Engine) Score(profile *models.UserProfile) models.RecommendationSet {
	var recs []models.Recommendation

	if profile.IsEmpty() {
		recs = []models.Recommendation{e.fallback()}
	} else {
		for _, rule := range e.rules {
			if len(recs) >= e.maxResults {
				break
			}
			if rec, ok := rule.Evaluate(profile); ok {
				recs = append(recs, *rec)
			}
		}
		if len(recs) == 0 {
			recs = []models.Recommendation{e.fallback()}
		}
	}

	for i := range recs {
		e.enrich(&recs[i], i)
	}

	return models.RecommendationSet{
		Recommendations: recs,
		Stats:           e.stats(recs),
	}
}

// fallback is the starter recommendation for new or incomplete users.
func (e *Engine) fallback() models.Recommendation {
	rec := models.Recommendation{
		Type:       models.PolicyIndividualHealth,
		MatchScore: 75,
		AIReason:   "A solid starter plan while we learn more about your coverage needs.",
	}
	plan{
		id:       "basic-care-essential",
		title:    "BasicCare Essential",
		company:  "Sapphire General Insurance",
		coverage: 300000,
		premium:  6200,
		savings:  1200,
		rating:   4.2,
		benefits: []string{"Cashless hospitalization", "Day care procedures", "Ambulance cover"},
	}.apply(&rec)
	return rec
}

// enrich attaches the display attributes: icon from the closed type lookup,
// priority by position, and the structured pre-discount premium.
func (e *Engine) enrich(rec *models.Recommendation, index int) {
	rec.Icon = IconFor(rec.Type)
	if index == 0 {
		rec.Priority = models.PriorityHigh
	} else {
		rec.Priority = models.PriorityMedium
	}
	rec.OriginalPremium = models.Money{
		Amount:   math.Round(rec.Premium.Amount * (1 + float64(e.markupPct)/100)),
		Currency: rec.Premium.Currency,
	}
}

// stats derives the summary figures: savings totalled as numbers (never
// re-parsed from display strings) and the mean match rounded to the nearest
// integer.
func (e *Engine) stats(recs []models.Recommendation) models.RecommendationStats {
	if len(recs) == 0 {
		return models.RecommendationStats{TotalSavings: models.Rupees(0)}
	}
	total := 0.0
	matchSum := 0
	for _, rec := range recs {
		total += rec.Savings.Amount
		matchSum += rec.MatchScore
	}
	return models.RecommendationStats{
		TotalSavings: models.Rupees(total),
		AvgMatch:     int(math.Round(float64(matchSum) / float64(len(recs)))),
	}
}

// IconFor is the closed icon lookup keyed by policy type. Unrecognized
// types get the explicit default glyph rather than silently falling through.
func IconFor(t models.PolicyType) string {
	switch t {
	case models.PolicyIndividualHealth:
		return "🏥"
	case models.PolicyFamilyHealth:
		return "👨‍👩‍👧‍👦"
	case models.PolicySeniorHealth:
		return "🧓"
	case models.PolicyCriticalIllness:
		return "❤️‍🩹"
	case models.PolicyMaternity:
		return "🤰"
	case models.PolicyLife:
		return "🌂"
	case models.PolicyAuto:
		return "🚗"
	default:
		return "🛡️"
	}
}
