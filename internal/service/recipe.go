package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emuats/recipely/backend/internal/model"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeFilter narrows ListRecipes results.
type RecipeFilter struct {
	Category string
	Search   string
	UserID   *uuid.UUID
}

// CreateRecipe creates a new recipe, normalizes its category labels and
// auto-creates category rows that do not exist yet.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.Categories = normalizeCategories(recipe.Categories)
	recipe.Embedding = GenerateEmbedding(recipe.Name + " " + recipe.Description)

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("creating recipe: %w", err)
	}

	for _, name := range recipe.Categories {
		category := model.Category{Name: name}
		if err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
			Create(&category).Error; err != nil {
			log.Printf("[RecipeService] failed to ensure category %q: %v", name, err)
		}
	}

	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).Preload("Owner").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("loading recipe: %w", err)
	}
	return &recipe, nil
}

// UpdateRecipe updates a recipe owned by userID. The derived aggregate
// columns are never touched here.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, userID uuid.UUID, updated *model.Recipe) (*model.Recipe, error) {
	existing, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrNotRecipeOwner
	}

	updated.Categories = normalizeCategories(updated.Categories)
	values := map[string]interface{}{
		"name":         updated.Name,
		"description":  updated.Description,
		"instructions": updated.Instructions,
		"cooking_time": updated.CookingTime,
		"ingredients":  updated.Ingredients,
		"categories":   updated.Categories,
		"embedding":    GenerateEmbedding(updated.Name + " " + updated.Description),
	}
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, fmt.Errorf("updating recipe: %w", err)
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe deletes a recipe owned by userID.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	existing, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrNotRecipeOwner
	}
	if err := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}
	return nil
}

// SetImageURL attaches a stored image reference to a recipe owned by userID.
func (s *RecipeService) SetImageURL(ctx context.Context, id, userID uuid.UUID, imageURL string) error {
	existing, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrNotRecipeOwner
	}
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", id).
		UpdateColumn("image_url", imageURL).Error; err != nil {
		return fmt.Errorf("storing image url: %w", err)
	}
	return nil
}

// ListRecipes lists recipes newest first, optionally filtered by category,
// keyword and owner. On postgres a keyword search orders by embedding
// similarity; elsewhere it falls back to a LIKE match.
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]model.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&model.Recipe{}).Preload("Owner")

	if filter.Category != "" {
		like := "%" + `"` + titleCaser.String(strings.ToLower(strings.TrimSpace(filter.Category))) + `"` + "%"
		if s.db.Dialector.Name() == "postgres" {
			query = query.Where("categories::text LIKE ?", like)
		} else {
			query = query.Where("categories LIKE ?", like)
		}
	}

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	if filter.Search != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(filter.Search)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(filter.Search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like).
				Order("created_at DESC")
		}
	} else {
		query = query.Order("created_at DESC")
	}

	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	return recipes, nil
}

// ListByUser lists the recipes a user owns, newest first.
func (s *RecipeService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	return s.ListRecipes(ctx, RecipeFilter{UserID: &userID})
}

// ReconcileAggregates recomputes average_rating and likes_count for every
// recipe from the reviews and likes tables. It is the repair pass for
// aggregates left stale by a failed recompute.
func (s *RecipeService) ReconcileAggregates(ctx context.Context) error {
	var ids []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("listing recipe ids: %w", err)
	}

	reviews := NewReviewService(s.db)
	likes := NewLikeService(s.db)
	for _, id := range ids {
		if err := reviews.RecomputeAverage(ctx, id); err != nil {
			return fmt.Errorf("reconciling recipe %s: %w", id, err)
		}
		if err := likes.RecomputeLikesCount(ctx, id); err != nil {
			return fmt.Errorf("reconciling recipe %s: %w", id, err)
		}
	}
	log.Printf("[RecipeService] reconciled aggregates for %d recipes", len(ids))
	return nil
}

var titleCaser = cases.Title(language.English)

func normalizeCategories(categories model.JSONBStringArray) model.JSONBStringArray {
	normalized := make(model.JSONBStringArray, 0, len(categories))
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		name := titleCaser.String(strings.ToLower(strings.TrimSpace(c)))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		normalized = append(normalized, name)
	}
	return normalized
}
