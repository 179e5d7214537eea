package service

import (
	"context"
	"io"

	"github.com/emuats/recipely/backend/internal/model"
)

// IEmailService defines the interface for outbound email
type IEmailService interface {
	SendWelcomeEmail(user *model.User) error
	SendEmail(to, subject, body string) error
}

// IImageService defines the interface for image storage
type IImageService interface {
	UploadRecipeImage(ctx context.Context, body io.Reader, filename, contentType string) (string, error)
	UploadProfileImage(ctx context.Context, body io.Reader, filename, contentType string) (string, error)
}
