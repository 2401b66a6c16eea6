package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}
)

func TestValidateUpload_AcceptsImages(t *testing.T) {
	contentType, err := ValidateUpload(pngHeader)
	assert.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	contentType, err = ValidateUpload(jpegHeader)
	assert.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestValidateUpload_RejectsEmptyPayload(t *testing.T) {
	_, err := ValidateUpload(nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty upload")
}

func TestValidateUpload_RejectsOversizedPayload(t *testing.T) {
	data := make([]byte, MaxUploadBytes+1)
	copy(data, pngHeader)

	_, err := ValidateUpload(data)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "5MB")
}

func TestValidateUpload_RejectsUnsupportedTypes(t *testing.T) {
	_, err := ValidateUpload([]byte("just some plain text, not a document"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestValidateUpload_RejectsStructurallyBrokenPDF(t *testing.T) {
	// Correct magic bytes, no actual PDF structure behind them.
	_, err := ValidateUpload([]byte("%PDF-1.7 this is not really a pdf body"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PDF")
}
