package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"carspace/internal/storage"
	carspace_errors "carspace/pkg/errors"

	"github.com/google/uuid"
)

// UploadService hands out presigned S3 PUT URLs for chat attachments and car
// photos, and resolves uploaded file ids back into public URLs.
type UploadService struct {
	client *storage.Client
}

func NewUploadService(client *storage.Client) *UploadService {
	return &UploadService{client: client}
}

type PresignInput struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	Kind        string // "chat" or "car"
}

type PresignResult struct {
	FileID    string            `json:"file_id"`
	UploadURL string            `json:"upload_url"`
	Headers   map[string]string `json:"headers"`
	FileURL   string            `json:"file_url"`
}

const maxUploadBytes = 25 << 20

func (s *UploadService) Presign(ctx context.Context, id Identity, in PresignInput) (PresignResult, error) {
	if s.client == nil {
		return PresignResult{}, carspace_errors.ErrNotUploaded
	}
	if in.FileName == "" || in.ContentType == "" {
		return PresignResult{}, carspace_errors.ErrInvalidInput
	}
	if in.SizeBytes <= 0 || in.SizeBytes > maxUploadBytes {
		return PresignResult{}, carspace_errors.ErrInvalidInput
	}

	kind := in.Kind
	if kind != "car" {
		kind = "chat"
	}

	ext := strings.ToLower(path.Ext(in.FileName))
	key := fmt.Sprintf("%s/%s/%d-%s%s", kind, id.UserID, time.Now().Unix(), uuid.NewString()[:8], ext)

	uploadURL, headers, err := s.client.PresignPut(ctx, key, in.ContentType, in.SizeBytes)
	if err != nil {
		return PresignResult{}, err
	}

	return PresignResult{
		FileID:    key,
		UploadURL: uploadURL,
		Headers:   headers,
		FileURL:   s.client.FileURL(key),
	}, nil
}

// FileURL maps a previously presigned file id to its public URL.
func (s *UploadService) FileURL(fileID string) string {
	if s.client == nil {
		return ""
	}
	return s.client.FileURL(fileID)
}
