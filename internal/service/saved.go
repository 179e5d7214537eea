package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emuats/recipely/backend/internal/model"
)

// SavedService maintains each user's saved-recipe membership set. Adds go
// through ON CONFLICT DO NOTHING and removes are unconditional deletes, so
// a double click or two racing tabs cannot corrupt the set.
type SavedService struct {
	db *gorm.DB
}

// NewSavedService creates a new SavedService instance
func NewSavedService(db *gorm.DB) *SavedService {
	return &SavedService{db: db}
}

// SaveRecipe adds recipeID to the user's saved set. Adding a recipe that
// is already saved is a no-op. Returns the full current id set so the
// caller can resynchronize UI state.
func (s *SavedService) SaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) ([]uuid.UUID, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	var recipeCount int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", recipeID).Count(&recipeCount).Error; err != nil {
		return nil, fmt.Errorf("checking recipe: %w", err)
	}
	if recipeCount == 0 {
		return nil, ErrRecipeNotFound
	}

	saved := model.SavedRecipe{UserID: userID, RecipeID: recipeID}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoNothing: true,
		}).
		Create(&saved).Error; err != nil {
		return nil, fmt.Errorf("saving recipe: %w", err)
	}

	return s.ListSavedIDs(ctx, userID)
}

// RemoveSavedRecipe removes recipeID from the user's saved set. Removing a
// recipe that is not saved is a no-op, never an error.
func (s *SavedService) RemoveSavedRecipe(ctx context.Context, userID, recipeID uuid.UUID) ([]uuid.UUID, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.SavedRecipe{}).Error; err != nil {
		return nil, fmt.Errorf("removing saved recipe: %w", err)
	}

	return s.ListSavedIDs(ctx, userID)
}

// ListSavedIDs returns the user's saved set as recipe ids.
func (s *SavedService) ListSavedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&model.SavedRecipe{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("listing saved recipe ids: %w", err)
	}
	return ids, nil
}

// ListSaved resolves the saved set to full recipes, newest first by recipe
// creation time, with the owner preloaded.
func (s *SavedService) ListSaved(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Preload("Owner").
		Joins("JOIN saved_recipes ON saved_recipes.recipe_id = recipes.id").
		Where("saved_recipes.user_id = ?", userID).
		Order("recipes.created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("listing saved recipes: %w", err)
	}
	return recipes, nil
}

func (s *SavedService) requireUser(ctx context.Context, userID uuid.UUID) error {
	var user model.User
	if err := s.db.WithContext(ctx).Select("id").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("loading user: %w", err)
	}
	return nil
}
