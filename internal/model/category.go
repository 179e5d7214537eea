package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category rows are created on demand when a recipe mentions a label that
// does not exist yet. There is no CRUD surface for them.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
