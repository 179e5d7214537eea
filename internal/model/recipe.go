package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a user-authored dish entry. AverageRating and LikesCount are
// derived from the reviews and likes tables; they are written only by the
// review/like services and the reconcile pass, never directly by handlers.
type Recipe struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
	Name          string           `gorm:"size:255;not null" json:"name"`
	Description   string           `gorm:"type:text" json:"description"`
	Instructions  string           `gorm:"type:text" json:"instructions"`
	CookingTime   int              `json:"cooking_time"`
	ImageURL      string           `gorm:"size:255" json:"image_url"`
	Ingredients   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Categories    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"categories"`
	AverageRating float64          `gorm:"not null;default:0" json:"average_rating"`
	LikesCount    int64            `gorm:"not null;default:0" json:"likes_count"`
	Embedding     pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Owner         User             `gorm:"foreignKey:UserID;references:ID" json:"owner,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
