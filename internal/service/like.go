package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emuats/recipely/backend/internal/model"
)

// LikeService toggles likes and maintains the denormalized likes_count on
// recipes. The likes table is the source of truth; the counter is a cache
// updated with atomic SQL expressions so concurrent toggles from different
// users never lose updates.
type LikeService struct {
	db *gorm.DB
}

// NewLikeService creates a new LikeService instance
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// ToggleLike flips the like state for (userID, recipeID). A like from a
// user who already liked the recipe removes the earlier like. The row
// mutation and the counter update share one transaction, so a counter
// failure never strands a like row the cache does not reflect. The
// returned count is read back after the commit.
func (s *LikeService) ToggleLike(ctx context.Context, userID, recipeID uuid.UUID) (bool, int64, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).Select("id", "user_id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrRecipeNotFound
		}
		return false, 0, fmt.Errorf("loading recipe: %w", err)
	}

	var existing model.Like
	err := s.db.WithContext(ctx).
		Where("liked_by_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error

	switch {
	case err == nil:
		// Unlike: delete by primary key. Zero rows affected means a
		// concurrent toggle already removed it; the caller retries.
		txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Delete(&model.Like{}, "id = ?", existing.ID)
			if res.Error != nil {
				return fmt.Errorf("deleting like: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrLikeConflict
			}
			return adjustLikesCount(tx, recipeID, -1)
		})
		if txErr != nil {
			return false, 0, txErr
		}
		count, err := s.currentLikesCount(ctx, recipeID)
		if err != nil {
			return false, 0, err
		}
		return false, count, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		like := model.Like{
			LikedByID:     userID,
			RecipeID:      recipeID,
			RecipeOwnerID: recipe.UserID,
		}
		txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&like).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrLikeConflict
				}
				return fmt.Errorf("creating like: %w", err)
			}
			return adjustLikesCount(tx, recipeID, 1)
		})
		if txErr != nil {
			return false, 0, txErr
		}
		count, err := s.currentLikesCount(ctx, recipeID)
		if err != nil {
			return false, 0, err
		}
		return true, count, nil

	default:
		return false, 0, fmt.Errorf("looking up like: %w", err)
	}
}

// adjustLikesCount applies the delta inside the database so two toggles on
// the same recipe never read-then-write each other's update away. The
// decrement floors at 0 even if the counter has drifted.
func adjustLikesCount(tx *gorm.DB, recipeID uuid.UUID, delta int64) error {
	var expr interface{}
	if delta >= 0 {
		expr = gorm.Expr("likes_count + ?", delta)
	} else {
		expr = gorm.Expr("CASE WHEN likes_count >= ? THEN likes_count - ? ELSE 0 END", -delta, -delta)
	}
	if err := tx.Model(&model.Recipe{}).
		Where("id = ?", recipeID).
		UpdateColumn("likes_count", expr).Error; err != nil {
		return fmt.Errorf("updating likes count: %w", err)
	}
	return nil
}

func (s *LikeService) currentLikesCount(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", recipeID).
		Select("likes_count").
		Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("reading likes count: %w", err)
	}
	return count, nil
}

// CountLikes counts likes from the likes table, the source of truth.
func (s *LikeService) CountLikes(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting likes: %w", err)
	}
	return count, nil
}

// ListLikers returns the names of users who liked a recipe.
func (s *LikeService) ListLikers(ctx context.Context, recipeID uuid.UUID) ([]string, error) {
	var likes []model.Like
	if err := s.db.WithContext(ctx).
		Preload("LikedBy").
		Where("recipe_id = ?", recipeID).
		Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("listing likers: %w", err)
	}
	names := make([]string, 0, len(likes))
	for _, l := range likes {
		names = append(names, l.LikedBy.Name)
	}
	return names, nil
}

// ListLikedRecipes returns the recipes a user has liked, newest like first.
func (s *LikeService) ListLikedRecipes(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Joins("JOIN likes ON likes.recipe_id = recipes.id").
		Where("likes.liked_by_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("listing liked recipes: %w", err)
	}
	return recipes, nil
}

// RecomputeLikesCount rewrites the cached counter from the likes table.
func (s *LikeService) RecomputeLikesCount(ctx context.Context, recipeID uuid.UUID) error {
	count, err := s.CountLikes(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", recipeID).
		UpdateColumn("likes_count", count).Error; err != nil {
		return fmt.Errorf("storing likes count: %w", err)
	}
	return nil
}
