package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emuats/recipely/backend/internal/model"
	"github.com/emuats/recipely/backend/internal/testhelpers"
)

func TestSaveRecipe_AddAndList(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewSavedService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Risotto")
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com")

	ids, err := svc.SaveRecipe(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{recipe.ID}, ids)

	recipes, err := svc.ListSaved(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Risotto", recipes[0].Name)
	assert.Equal(t, "Owner", recipes[0].Owner.Name)
}

func TestSaveRecipe_DoubleSaveIsNoOp(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewSavedService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Risotto")
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com")

	_, err := svc.SaveRecipe(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	ids, err := svc.SaveRecipe(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	var rows int64
	require.NoError(t, db.Model(&model.SavedRecipe{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRemoveSavedRecipe(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewSavedService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	soup := testhelpers.CreateTestRecipe(t, db, owner, "Soup")
	salad := testhelpers.CreateTestRecipe(t, db, owner, "Salad")
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com")

	_, err := svc.SaveRecipe(ctx, alice.ID, soup.ID)
	require.NoError(t, err)
	_, err = svc.SaveRecipe(ctx, alice.ID, salad.ID)
	require.NoError(t, err)

	ids, err := svc.RemoveSavedRecipe(ctx, alice.ID, soup.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{salad.ID}, ids)

	// Removing something never saved is a no-op, not an error.
	ids, err = svc.RemoveSavedRecipe(ctx, alice.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{salad.ID}, ids)
}

func TestSaveRecipe_MissingUserOrRecipe(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewSavedService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Stew")

	_, err := svc.SaveRecipe(ctx, uuid.New(), recipe.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.SaveRecipe(ctx, owner.ID, uuid.New())
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestSavedSetsAreIndependentPerUser(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewSavedService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Pho")
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "Bob", "bob@example.com")

	_, err := svc.SaveRecipe(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	_, err = svc.SaveRecipe(ctx, bob.ID, recipe.ID)
	require.NoError(t, err)

	ids, err := svc.RemoveSavedRecipe(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	bobIDs, err := svc.ListSavedIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{recipe.ID}, bobIDs)
}
