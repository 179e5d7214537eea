package api

import (
	"errors"
	"net/http"

	"github.com/emuats/recipely/backend/internal/service"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// ReviewResponse joins a review with the minimal author projection.
type ReviewResponse struct {
	ID           string `json:"id"`
	RecipeID     string `json:"recipe_id"`
	UserID       string `json:"user_id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	CreatedAt    string `json:"created_at"`
	UserName     string `json:"user_name"`
	ProfileImage string `json:"profile_image"`
}

// statusFromError maps service sentinels onto HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrPasswordTooShort):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, service.ErrLikeConflict),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotRecipeOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
