package models

// Recommendation is one scored plan suggestion. Instances are created fresh
// on each scoring run from the profile snapshot and never mutated afterwards.
type Recommendation struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	Company         string                 `json:"company"`
	Type            PolicyType             `json:"type"`
	MatchScore      int                    `json:"match_score"`
	Coverage        Money                  `json:"coverage"`
	Premium         Money                  `json:"premium"`
	OriginalPremium Money                  `json:"original_premium"`
	Savings         Money                  `json:"savings"`
	AIReason        string                 `json:"ai_reason"`
	Benefits        []string               `json:"benefits"`
	Rating          float64                `json:"rating"`
	Icon            string                 `json:"icon"`
	Priority        RecommendationPriority `json:"priority"`
}

// RecommendationStats are the derived summary figures shown above the list.
type RecommendationStats struct {
	TotalSavings Money `json:"total_savings"`
	AvgMatch     int   `json:"avg_match"`
}

// RecommendationSet is what the scoring run produces and what gets cached
// per user until the next profile snapshot arrives.
type RecommendationSet struct {
	Recommendations []Recommendation    `json:"recommendations"`
	Stats           RecommendationStats `json:"stats"`
}
