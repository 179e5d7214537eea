package service

import "errors"

var (
	// Validation failures, detected before any write.
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")
	ErrEmptyComment  = errors.New("comment must not be empty")

	// Dangling id references.
	ErrUserNotFound   = errors.New("user not found")
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrDuplicateReview is returned when a user already reviewed a recipe.
	ErrDuplicateReview = errors.New("user has already reviewed this recipe")

	// ErrLikeConflict means a concurrent toggle won the race for the same
	// (user, recipe) pair. Callers should retry.
	ErrLikeConflict = errors.New("like toggled concurrently, retry")

	// Auth failures.
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrInvalidToken       = errors.New("invalid token")

	// ErrNotRecipeOwner is returned when a user mutates a recipe they do not own.
	ErrNotRecipeOwner = errors.New("recipe does not belong to user")
)
