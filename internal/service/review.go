package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emuats/recipely/backend/internal/model"
)

// ReviewService handles review submission and keeps each recipe's
// average_rating consistent with the reviews table.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new ReviewService instance
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// SubmitReview validates and persists a review, then recomputes the
// recipe's average rating over all stored reviews including the new one.
// When the recompute fails after the insert succeeded, the review is kept,
// the inconsistency is logged, and stale=true is returned so callers can
// warn that the displayed average may lag until the next recompute.
func (s *ReviewService) SubmitReview(ctx context.Context, recipeID, userID uuid.UUID, rating int, comment string) (*model.Recipe, bool, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, false, ErrEmptyComment
	}
	if rating < 1 || rating > 5 {
		return nil, false, ErrInvalidRating
	}

	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrRecipeNotFound
		}
		return nil, false, fmt.Errorf("loading recipe: %w", err)
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&model.Review{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&existing).Error; err != nil {
		return nil, false, fmt.Errorf("checking existing review: %w", err)
	}
	if existing > 0 {
		return nil, false, ErrDuplicateReview
	}

	review := model.Review{
		RecipeID: recipeID,
		UserID:   userID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		// The unique index is the backstop for two concurrent submissions
		// from the same user.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, ErrDuplicateReview
		}
		return nil, false, fmt.Errorf("creating review: %w", err)
	}

	if err := s.RecomputeAverage(ctx, recipeID); err != nil {
		log.Printf("[ReviewService] average recompute failed for recipe %s after review %s: %v", recipeID, review.ID, err)
		return &recipe, true, nil
	}

	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, false, fmt.Errorf("reloading recipe: %w", err)
	}
	return &recipe, false, nil
}

// RecomputeAverage recalculates average_rating from the reviews table.
// A recipe with no reviews gets 0, never a division by zero.
func (s *ReviewService) RecomputeAverage(ctx context.Context, recipeID uuid.UUID) error {
	var avg float64
	if err := s.db.WithContext(ctx).Model(&model.Review{}).
		Where("recipe_id = ?", recipeID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return fmt.Errorf("computing average rating: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", recipeID).
		UpdateColumn("average_rating", avg).Error; err != nil {
		return fmt.Errorf("storing average rating: %w", err)
	}
	return nil
}

// ListReviews returns the reviews for a recipe, newest first, with the
// author preloaded for the name/profile image projection.
func (s *ReviewService) ListReviews(ctx context.Context, recipeID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	if err := s.db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	return reviews, nil
}
