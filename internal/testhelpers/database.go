// Package testhelpers provides database setup and fixture helpers shared
// by the service, api and integration tests.
package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emuats/recipely/backend/internal/database"
	"github.com/emuats/recipely/backend/internal/model"
)

// NewTestDB opens an in-memory SQLite database with the full schema
// migrated. TranslateError is on so unique violations surface as
// gorm.ErrDuplicatedKey, matching the postgres behavior the services
// rely on.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Every :memory: connection is its own database, so cap the pool at one
	// to keep concurrent tests on the same schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// SetupPostgresDB starts a throwaway pgvector-enabled postgres container
// and returns a connected gorm handle. Skipped unless
// RUN_INTEGRATION_TESTS=true.
func SetupPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("set RUN_INTEGRATION_TESTS=true to run postgres-backed tests")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "pgvector/pgvector:pg16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "recipely_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=postgres password=postgres dbname=recipely_test sslmode=disable",
		host, port.Port(),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to postgres container: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to migrate postgres database: %v", err)
	}
	return db
}

// CreateTestUser inserts a user with a bcrypt hash of "password123".
func CreateTestUser(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestRecipe inserts a recipe owned by the given user.
func CreateTestRecipe(t *testing.T, db *gorm.DB, owner *model.User, name string) *model.Recipe {
	t.Helper()

	// The embedding column cannot hold the zero-value vector: it stores as
	// an empty string that Scan cannot parse back on later loads.
	recipe := &model.Recipe{
		Name:         name,
		Description:  "test description",
		Instructions: "test instructions",
		CookingTime:  15,
		Ingredients:  model.JSONBStringArray{"salt", "pepper"},
		Categories:   model.JSONBStringArray{"Dinner"},
		Embedding:    pgvector.NewVector([]float32{0, 0, 0}),
		UserID:       owner.ID,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}
