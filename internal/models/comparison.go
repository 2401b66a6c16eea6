package models

// ComparisonRequest is the wire body sent to the third-party comparison API.
// Policy names are lower-cased before sending.
type ComparisonRequest struct {
	PolicyNames []string `json:"policy_names"`
}

// ComparisonFeatureRecord is the fixed per-policy feature shape the
// comparison API returns.
type ComparisonFeatureRecord struct {
	PreHospitalizationDays  int    `json:"pre_hospitalization_days"`
	PostHospitalizationDays int    `json:"post_hospitalization_days"`
	RoomRentCategory        string `json:"room_rent_category"`
	CoversMaternity         bool   `json:"covers_maternity"`
	CoversCriticalIllness   bool   `json:"covers_critical_illness"`
	CoversOPD               bool   `json:"covers_opd"`
	CoversAyush             bool   `json:"covers_ayush"`
	PEDWaitingMonths        int    `json:"ped_waiting_months"`
	MaternityWaitingMonths  int    `json:"maternity_waiting_months"`
	RestorationBenefit      bool   `json:"restoration_benefit"`
}

// ComparisonData maps policy name to its feature record.
type ComparisonData map[string]ComparisonFeatureRecord

// ComparisonResponse is the comparison API response envelope.
type ComparisonResponse struct {
	PolicyComparison ComparisonData `json:"policy_comparison"`
	AIAnalysis       string         `json:"ai_analysis"`
}
