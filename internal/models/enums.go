package models

// WizardStep is a named step of the purchase wizard. Steps are ordered and
// only ever advanced one at a time.
type WizardStep int

const (
	StepCoverage WizardStep = iota + 1
	StepPersonalDetails
	StepNominee
	StepDocuments
	StepMedicalHistory
	StepReviewPay
)

const (
	MinWizardStep = StepCoverage
	MaxWizardStep = StepReviewPay
)

func (s WizardStep) String() string {
	switch s {
	case StepCoverage:
		return "coverage"
	case StepPersonalDetails:
		return "personal_details"
	case StepNominee:
		return "nominee"
	case StepDocuments:
		return "documents"
	case StepMedicalHistory:
		return "medical_history"
	case StepReviewPay:
		return "review_pay"
	}
	return "unknown"
}

// WizardEvent drives the purchase wizard state machine.
type WizardEvent string

const (
	EventAdvance WizardEvent = "advance"
	EventRetreat WizardEvent = "retreat"
	EventSubmit  WizardEvent = "submit"
)

// PurchaseStatus is the lifecycle of a wizard session / completed purchase.
type PurchaseStatus string

const (
	PurchaseInProgress PurchaseStatus = "in_progress"
	PurchaseSucceeded  PurchaseStatus = "succeeded"
)

// DocumentKey is the closed set of KYC document slots in the wizard.
type DocumentKey string

const (
	DocPanCard      DocumentKey = "pan_card"
	DocAadharCard   DocumentKey = "aadhar_card"
	DocPhoto        DocumentKey = "photo"
	DocAddressProof DocumentKey = "address_proof"
)

// DocumentKeys lists all slots in their fixed display order.
var DocumentKeys = []DocumentKey{DocPanCard, DocAadharCard, DocPhoto, DocAddressProof}

func (k DocumentKey) Valid() bool {
	switch k {
	case DocPanCard, DocAadharCard, DocPhoto, DocAddressProof:
		return true
	}
	return false
}

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentUploaded DocumentStatus = "uploaded"
)

// PaymentMethod offered on the review step.
type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "netbanking"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentNetBanking:
		return true
	}
	return false
}

// PolicyType is the recommendation / catalog category.
type PolicyType string

const (
	PolicyIndividualHealth PolicyType = "individual_health"
	PolicyFamilyHealth     PolicyType = "family_health"
	PolicySeniorHealth     PolicyType = "senior_health"
	PolicyCriticalIllness  PolicyType = "critical_illness"
	PolicyMaternity        PolicyType = "maternity"
	PolicyLife             PolicyType = "life"
	PolicyAuto             PolicyType = "auto"
)

// RecommendationPriority marks the lead recommendation versus the rest.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "high"
	PriorityMedium RecommendationPriority = "medium"
)

// ClaimStatus is the lifecycle of a filed claim.
type ClaimStatus string

const (
	ClaimSubmitted   ClaimStatus = "submitted"
	ClaimUnderReview ClaimStatus = "under_review"
	ClaimApproved    ClaimStatus = "approved"
	ClaimRejected    ClaimStatus = "rejected"
)
