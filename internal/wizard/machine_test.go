package wizard

import (
	"testing"

	"marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func createTestForm() *models.PurchaseForm {
	return models.NewPurchaseForm("user-1", uuid.New())
}

func fillPersonalDetails(form *models.PurchaseForm) {
	form.PersonalDetails = models.PersonalDetails{
		FullName:    "Asha Verma",
		Email:       "asha.verma@example.com",
		Phone:       "9876543210",
		DateOfBirth: "1992-04-17",
	}
}

func fillNominee(form *models.PurchaseForm) {
	form.NomineeDetails = models.NomineeDetails{
		Name:         "Rohan Verma",
		Relationship: "spouse",
	}
}

func uploadDoc(t *testing.T, form *models.PurchaseForm, key models.DocumentKey) {
	t.Helper()
	seq := 1
	if slot := form.Documents[key]; slot != nil {
		seq = slot.UploadSeq + 1
	}
	assert.NoError(t, BeginUpload(form, key, seq))
	err := CompleteUpload(form, key, seq, "obj/"+string(key), string(key)+".pdf", "application/pdf", 1024)
	assert.NoError(t, err)
}

func answerAllMedical(t *testing.T, form *models.PurchaseForm) {
	t.Helper()
	for q := 1; q <= MedicalQuestionCount; q++ {
		assert.NoError(t, RecordMedicalAnswer(form, q, q%2 == 0))
	}
}

// ============================================================================
// TEST SUITE 1: STEP COMPLETION PREDICATES
// ============================================================================

func TestCanProceed_CoverageAlwaysPasses(t *testing.T) {
	form := createTestForm()

	ok, verr := CanProceed(form, models.StepCoverage)

	assert.True(t, ok)
	assert.Nil(t, verr)
}

func TestCanProceed_PersonalDetails_FirstUnmetFieldWins(t *testing.T) {
	form := createTestForm()

	ok, verr := CanProceed(form, models.StepPersonalDetails)
	assert.False(t, ok)
	assert.Equal(t, "full_name", verr.Field)
	assert.Equal(t, "Full name is required", verr.Message)

	form.PersonalDetails.FullName = "Asha Verma"
	_, verr = CanProceed(form, models.StepPersonalDetails)
	assert.Equal(t, "email", verr.Field)
	assert.Equal(t, "Email is required", verr.Message)

	form.PersonalDetails.Email = "asha.verma@example.com"
	_, verr = CanProceed(form, models.StepPersonalDetails)
	assert.Equal(t, "phone", verr.Field)

	form.PersonalDetails.Phone = "9876543210"
	_, verr = CanProceed(form, models.StepPersonalDetails)
	assert.Equal(t, "date_of_birth", verr.Field)

	form.PersonalDetails.DateOfBirth = "1992-04-17"
	ok, verr = CanProceed(form, models.StepPersonalDetails)
	assert.True(t, ok)
	assert.Nil(t, verr)
}

func TestCanProceed_Documents_PanBeforeAadhar(t *testing.T) {
	form := createTestForm()

	ok, verr := CanProceed(form, models.StepDocuments)
	assert.False(t, ok)
	assert.Equal(t, "PAN card upload is required", verr.Message)

	uploadDoc(t, form, models.DocPanCard)

	ok, verr = CanProceed(form, models.StepDocuments)
	assert.False(t, ok)
	assert.Equal(t, "Aadhar card upload is required", verr.Message)

	uploadDoc(t, form, models.DocAadharCard)

	ok, verr = CanProceed(form, models.StepDocuments)
	assert.True(t, ok)
	assert.Nil(t, verr)
}

func TestCanProceed_Documents_OptionalSlotsNotRequired(t *testing.T) {
	form := createTestForm()
	uploadDoc(t, form, models.DocPanCard)
	uploadDoc(t, form, models.DocAadharCard)

	// photo and address proof stay pending
	ok, verr := CanProceed(form, models.StepDocuments)

	assert.True(t, ok)
	assert.Nil(t, verr)
}

func TestCanProceed_MedicalHistory_RequiresAllSixAnswers(t *testing.T) {
	form := createTestForm()

	for q := 1; q <= MedicalQuestionCount-1; q++ {
		assert.NoError(t, RecordMedicalAnswer(form, q, false))
	}

	ok, verr := CanProceed(form, models.StepMedicalHistory)
	assert.False(t, ok)
	assert.Equal(t, "Please answer all 6 medical history questions", verr.Message)

	// a "no" answer counts as answered
	assert.NoError(t, RecordMedicalAnswer(form, MedicalQuestionCount, false))

	ok, _ = CanProceed(form, models.StepMedicalHistory)
	assert.True(t, ok)
}

func TestRecordMedicalAnswer_RejectsOutOfRangeIDs(t *testing.T) {
	form := createTestForm()

	assert.Error(t, RecordMedicalAnswer(form, 0, true))
	assert.Error(t, RecordMedicalAnswer(form, 7, true))
	assert.Empty(t, form.MedicalHistory)
}

// ============================================================================
// TEST SUITE 2: TRANSITIONS
// ============================================================================

func TestApply_RetreatAtFirstStepIsNoOp(t *testing.T) {
	form := createTestForm()

	verr := Apply(form, models.EventRetreat)

	assert.Nil(t, verr)
	assert.Equal(t, models.StepCoverage, form.CurrentStep)
}

func TestApply_AdvanceBlockedStaysOnStep(t *testing.T) {
	form := createTestForm()
	form.CurrentStep = models.StepPersonalDetails

	verr := Apply(form, models.EventAdvance)

	assert.NotNil(t, verr)
	assert.Equal(t, models.StepPersonalDetails, form.CurrentStep)
	assert.Equal(t, models.PurchaseInProgress, form.Status)
}

func TestApply_SubmitOnlyOnReviewStep(t *testing.T) {
	form := createTestForm()
	form.CurrentStep = models.StepMedicalHistory

	verr := Apply(form, models.EventSubmit)

	assert.NotNil(t, verr)
	assert.Equal(t, models.StepMedicalHistory, form.CurrentStep)
	assert.Equal(t, models.PurchaseInProgress, form.Status)
}

func TestApply_FullWalkThroughAllSixSteps(t *testing.T) {
	form := createTestForm()

	verr := Apply(form, models.EventAdvance)
	assert.Nil(t, verr)
	assert.Equal(t, models.StepPersonalDetails, form.CurrentStep)

	fillPersonalDetails(form)
	assert.Nil(t, Apply(form, models.EventAdvance))
	assert.Equal(t, models.StepNominee, form.CurrentStep)

	fillNominee(form)
	assert.Nil(t, Apply(form, models.EventAdvance))
	assert.Equal(t, models.StepDocuments, form.CurrentStep)

	uploadDoc(t, form, models.DocPanCard)
	uploadDoc(t, form, models.DocAadharCard)
	assert.Nil(t, Apply(form, models.EventAdvance))
	assert.Equal(t, models.StepMedicalHistory, form.CurrentStep)

	answerAllMedical(t, form)
	assert.Nil(t, Apply(form, models.EventAdvance))
	assert.Equal(t, models.StepReviewPay, form.CurrentStep)

	// advancing past the last step does not overflow
	assert.Nil(t, Apply(form, models.EventAdvance))
	assert.Equal(t, models.StepReviewPay, form.CurrentStep)

	assert.Nil(t, Apply(form, models.EventSubmit))
	assert.Equal(t, models.PurchaseSucceeded, form.Status)
}

func TestApply_RetreatNeverValidates(t *testing.T) {
	form := createTestForm()
	form.CurrentStep = models.StepDocuments

	// documents step is incomplete, retreat still succeeds
	verr := Apply(form, models.EventRetreat)

	assert.Nil(t, verr)
	assert.Equal(t, models.StepNominee, form.CurrentStep)
}

// ============================================================================
// TEST SUITE 3: DOCUMENT SLOT VERSIONING
// ============================================================================

func TestCompleteUpload_LastWriteWins(t *testing.T) {
	form := createTestForm()

	seq1, seq2 := 1, 2
	assert.NoError(t, BeginUpload(form, models.DocPanCard, seq1))
	assert.NoError(t, BeginUpload(form, models.DocPanCard, seq2))

	// the second attempt completes first
	assert.NoError(t, CompleteUpload(form, models.DocPanCard, seq2, "obj/v2", "pan-v2.pdf", "application/pdf", 2048))
	// the first attempt lands late and must be discarded
	assert.NoError(t, CompleteUpload(form, models.DocPanCard, seq1, "obj/v1", "pan-v1.pdf", "application/pdf", 1024))

	slot := form.Documents[models.DocPanCard]
	assert.Equal(t, "obj/v2", slot.ObjectName)
	assert.Equal(t, "pan-v2.pdf", slot.DisplayName)
	assert.Equal(t, models.DocumentUploaded, slot.Status)
	assert.False(t, slot.InProgress)
}

func TestCompleteUpload_InProgressUntilNewestAttemptLands(t *testing.T) {
	form := createTestForm()

	seq1, seq2 := 1, 2
	assert.NoError(t, BeginUpload(form, models.DocAadharCard, seq1))
	assert.NoError(t, BeginUpload(form, models.DocAadharCard, seq2))

	assert.NoError(t, CompleteUpload(form, models.DocAadharCard, seq1, "obj/v1", "a-v1.pdf", "application/pdf", 512))

	slot := form.Documents[models.DocAadharCard]
	assert.Equal(t, models.DocumentUploaded, slot.Status)
	assert.True(t, slot.InProgress, "newest attempt is still in flight")

	assert.NoError(t, CompleteUpload(form, models.DocAadharCard, seq2, "obj/v2", "a-v2.pdf", "application/pdf", 512))
	assert.False(t, form.Documents[models.DocAadharCard].InProgress)
}

// Two overlapping requests can each begin from an identical form snapshot.
// The sequences come from an external atomic counter, so the slot must
// tolerate receiving them out of order and on stale copies.
func TestBeginUpload_StaleSnapshotKeepsNewestSequence(t *testing.T) {
	form := createTestForm()

	// a later request already recorded sequence 2 on the saved form
	assert.NoError(t, BeginUpload(form, models.DocPanCard, 2))
	// the earlier request's begin replays onto the same slot with sequence 1
	assert.NoError(t, BeginUpload(form, models.DocPanCard, 1))

	slot := form.Documents[models.DocPanCard]
	assert.Equal(t, 2, slot.UploadSeq, "an older begin must not roll the slot back")

	// the newer upload lands, then the older one; the older is discarded
	assert.NoError(t, CompleteUpload(form, models.DocPanCard, 2, "obj/B", "pan-b.pdf", "application/pdf", 2048))
	assert.NoError(t, CompleteUpload(form, models.DocPanCard, 1, "obj/A", "pan-a.pdf", "application/pdf", 1024))

	assert.Equal(t, "obj/B", slot.ObjectName)
	assert.False(t, slot.InProgress)
}

func TestBeginUpload_RejectsNonPositiveSequence(t *testing.T) {
	form := createTestForm()

	assert.Error(t, BeginUpload(form, models.DocPanCard, 0))
	assert.Error(t, BeginUpload(form, models.DocPanCard, -3))
}

func TestRemoveDocument_ResetsSlotAndReturnsObjectName(t *testing.T) {
	form := createTestForm()
	uploadDoc(t, form, models.DocPhoto)

	previous, err := RemoveDocument(form, models.DocPhoto)

	assert.NoError(t, err)
	assert.Equal(t, "obj/photo", previous)
	slot := form.Documents[models.DocPhoto]
	assert.Equal(t, models.DocumentPending, slot.Status)
	assert.Empty(t, slot.ObjectName)
	assert.Empty(t, slot.DisplayName)
}

func TestSetPaymentMethod_RejectsUnknownMethod(t *testing.T) {
	form := createTestForm()

	err := SetPaymentMethod(form, models.PaymentMethod("crypto"))

	assert.Error(t, err)
	assert.Equal(t, models.PaymentCard, form.PaymentMethod)

	assert.NoError(t, SetPaymentMethod(form, models.PaymentUPI))
	assert.Equal(t, models.PaymentUPI, form.PaymentMethod)
}
