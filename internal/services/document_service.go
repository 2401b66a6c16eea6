package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"marketplace-service/internal/database/minio"
	"marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// MaxUploadBytes enforces the advertised "Max 5MB" KYC upload limit.
const MaxUploadBytes = 5 << 20

// allowedUploadTypes is the closed set of accepted KYC document formats.
var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// DocumentService stores KYC documents in MinIO and enforces the upload
// constraints at the boundary.
type DocumentService struct {
	minioClient *minio.MinioClient
	bucketName  string
}

func NewDocumentService(minioClient *minio.MinioClient) *DocumentService {
	return &DocumentService{
		minioClient: minioClient,
		bucketName:  minio.Storage.KycDocuments,
	}
}

// ValidateUpload checks the size and type constraints for a KYC upload and
// returns the detected content type. PDF payloads additionally go through a
// structural validation pass, so a renamed or truncated file is rejected
// before it is stored.
func ValidateUpload(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty upload")
	}
	if len(data) > MaxUploadBytes {
		return "", fmt.Errorf("file exceeds the 5MB limit (%d bytes)", len(data))
	}

	contentType := http.DetectContentType(data)
	if !allowedUploadTypes[contentType] {
		return "", fmt.Errorf("unsupported file type %s: only PDF, JPG and PNG are accepted", contentType)
	}

	if contentType == "application/pdf" {
		if err := api.Validate(bytes.NewReader(data), nil); err != nil {
			return "", fmt.Errorf("invalid PDF document: %w", err)
		}
	}

	return contentType, nil
}

// Store validates and uploads one KYC document, returning the object name
// under which it was stored.
func (s *DocumentService) Store(ctx context.Context, sessionID uuid.UUID, key models.DocumentKey, displayName string, data []byte) (string, string, error) {
	contentType, err := ValidateUpload(data)
	if err != nil {
		return "", "", err
	}

	objectName := fmt.Sprintf("%s/%s/%d", sessionID, key, time.Now().UnixNano())
	if err := s.minioClient.UploadBytes(ctx, s.bucketName, objectName, data, contentType); err != nil {
		return "", "", fmt.Errorf("failed to store document %s: %w", key, err)
	}

	slog.Info("Stored KYC document",
		"session_id", sessionID,
		"document", key,
		"object", objectName,
		"size", len(data))

	return objectName, contentType, nil
}

// Remove deletes a previously stored document object. A missing object is
// not an error; removal is idempotent.
func (s *DocumentService) Remove(ctx context.Context, objectName string) error {
	if objectName == "" {
		return nil
	}
	if err := s.minioClient.DeleteFile(ctx, s.bucketName, objectName); err != nil {
		return fmt.Errorf("failed to remove document object %s: %w", objectName, err)
	}
	return nil
}

// PreviewURL returns a short-lived presigned URL for a stored document.
func (s *DocumentService) PreviewURL(ctx context.Context, objectName string) (string, error) {
	if objectName == "" {
		return "", fmt.Errorf("no document stored")
	}
	url, err := s.minioClient.GetPresignedURL(ctx, s.bucketName, objectName, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("failed to build preview URL: %w", err)
	}
	return url, nil
}
