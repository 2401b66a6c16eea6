package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newMockCatalogRepository(t *testing.T) (*CatalogRepository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewCatalogRepository(db), mock
}

// =============================================================================
// MEDICAL QUESTIONNAIRE TESTS
// =============================================================================

// The questionnaire carries integer ids so that wizard answers can be keyed
// by question number. The rows must scan into the model as-is and come back
// in ordering sequence.
func TestGetMedicalQuestions_IntegerIDs(t *testing.T) {
	repo, mock := newMockCatalogRepository(t)

	rows := sqlmock.NewRows([]string{"id", "question", "ordering"}).
		AddRow(1, "Have you been diagnosed with diabetes, high blood pressure or thyroid disorder?", 1).
		AddRow(2, "Have you undergone any surgery or been hospitalized in the last 5 years?", 2).
		AddRow(3, "Do you smoke or consume tobacco in any form?", 3).
		AddRow(4, "Do you consume alcohol regularly?", 4).
		AddRow(5, "Is there a history of cancer, heart disease or stroke in your immediate family?", 5).
		AddRow(6, "Are you currently taking any prescription medication?", 6)

	mock.ExpectQuery("SELECT id, question, ordering FROM medical_question ORDER BY ordering ASC").
		WillReturnRows(rows)

	questions, err := repo.GetMedicalQuestions(context.Background())
	assert.NoError(t, err)
	assert.Len(t, questions, 6)

	for i, q := range questions {
		assert.Equal(t, i+1, q.ID)
		assert.Equal(t, i+1, q.Ordering)
		assert.NotEmpty(t, q.Question)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMedicalQuestions_QueryError(t *testing.T) {
	repo, mock := newMockCatalogRepository(t)

	mock.ExpectQuery("SELECT id, question, ordering FROM medical_question").
		WillReturnError(assert.AnError)

	questions, err := repo.GetMedicalQuestions(context.Background())
	assert.Error(t, err)
	assert.Nil(t, questions)
	assert.Contains(t, err.Error(), "failed to get medical questions")
}
