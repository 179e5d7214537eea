package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/emuats/recipely/backend/config"
)

// ImageService stores uploaded recipe and profile images in S3 and hands
// back the public object URL. The core never parses image bytes.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadRecipeImage stores a recipe image and returns its URL.
func (s *ImageService) UploadRecipeImage(ctx context.Context, body io.Reader, filename, contentType string) (string, error) {
	key := fmt.Sprintf("recipes/%s%s", uuid.New().String(), safeExt(filename))
	return s.upload(ctx, key, body, contentType)
}

// UploadProfileImage stores a profile image and returns its URL.
func (s *ImageService) UploadProfileImage(ctx context.Context, body io.Reader, filename, contentType string) (string, error) {
	key := fmt.Sprintf("profiles/%s%s", uuid.New().String(), safeExt(filename))
	return s.upload(ctx, key, body, contentType)
}

func (s *ImageService) upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("unsupported content type %q, only images are allowed", contentType)
	}

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s to S3: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}

func safeExt(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ".jpg"
	}
}
