package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/emuats/recipely/backend/internal/model"
)

// RunMigrations brings the schema up to date. On postgres the pgvector
// extension has to exist before the recipes table can be created.
func RunMigrations(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to create vector extension: %w", err)
		}
	} else {
		log.Printf("Using GORM auto-migration for %s", db.Dialector.Name())
	}

	return db.AutoMigrate(
		&model.User{},
		&model.Recipe{},
		&model.Review{},
		&model.Like{},
		&model.SavedRecipe{},
		&model.Category{},
	)
}
