package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

const signedURLTTL = 7 * 24 * time.Hour

// Service handles Cloud Storage operations for profile images.
type Service struct {
	client     *storage.Client
	bucketName string
}

// NewService creates a new storage service
func NewService(ctx context.Context, bucketName string) (*Service, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Service{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// UploadAvatar stores the user's profile image and returns a signed URL for it.
// One object per user; a re-upload replaces the previous image.
func (s *Service) UploadAvatar(ctx context.Context, userID string, data io.Reader, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectPath := fmt.Sprintf("profile_images/%s.jpg", userID)

	obj := s.client.Bucket(s.bucketName).Object(objectPath)
	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "public, max-age=3600"

	if _, err := io.Copy(writer, data); err != nil {
		return "", fmt.Errorf("failed to write to storage: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return s.generateSignedURL(objectPath, signedURLTTL)
}

// generateSignedURL creates a signed URL for an object
func (s *Service) generateSignedURL(objectPath string, expiration time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expiration),
	}

	url, err := s.client.Bucket(s.bucketName).SignedURL(objectPath, opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return url, nil
}
