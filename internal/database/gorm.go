package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/emuats/recipely/backend/config"
)

// NewGorm opens the GORM connection used by the services. TranslateError
// is on so unique-constraint violations surface as gorm.ErrDuplicatedKey
// regardless of the driver, which the like/review races depend on.
func NewGorm(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening gorm connection: %w", err)
	}
	return db, nil
}
