package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is a boolean endorsement relation between a user and a recipe.
// RecipeOwnerID is denormalized so "who liked my recipes" never joins
// through recipes. The unique index makes a second like from the same
// user a constraint violation rather than a duplicate row.
type Like struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	LikedByID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_recipe" json:"liked_by_id"`
	RecipeID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_likes_user_recipe" json:"recipe_id"`
	RecipeOwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_owner_id"`
	LikedBy       User      `gorm:"foreignKey:LikedByID;references:ID" json:"liked_by,omitempty"`
}

func (Like) TableName() string {
	return "likes"
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
