package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/emuats/recipely/backend/internal/model"
	"github.com/emuats/recipely/backend/internal/testhelpers"
)

func TestToggleLike_LikeThenUnlike(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewLikeService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Tacos")
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com")

	liked, count, err := svc.ToggleLike(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	liked, count, err = svc.ToggleLike(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)

	// A full like/unlike cycle leaves no rows behind.
	var rows int64
	require.NoError(t, db.Model(&model.Like{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestToggleLike_IndependentUsers(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewLikeService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Paella")
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "Bob", "bob@example.com")

	_, _, err := svc.ToggleLike(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	_, count, err := svc.ToggleLike(ctx, bob.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Alice unliking does not touch Bob's like.
	liked, count, err := svc.ToggleLike(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(1), count)

	likers, err := svc.ListLikers(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, likers)
}

func TestToggleLike_CountMatchesDistinctUsers(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewLikeService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Bibimbap")

	const n = 10
	for i := 0; i < n; i++ {
		u := testhelpers.CreateTestUser(t, db, fmt.Sprintf("User%d", i), fmt.Sprintf("user%d@example.com", i))
		liked, _, err := svc.ToggleLike(ctx, u.ID, recipe.ID)
		require.NoError(t, err)
		assert.True(t, liked)
	}

	var loaded model.Recipe
	require.NoError(t, db.First(&loaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, int64(n), loaded.LikesCount)

	fromTable, err := svc.CountLikes(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, loaded.LikesCount, fromTable)
}

func TestToggleLike_ConcurrentDistinctUsers(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewLikeService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Dumplings")

	const n = 8
	users := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		u := testhelpers.CreateTestUser(t, db, fmt.Sprintf("User%d", i), fmt.Sprintf("user%d@example.com", i))
		users[i] = u.ID
	}

	// One toggle per distinct user, all in flight at once. No update may
	// be lost and no toggle may fail.
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(userID uuid.UUID) {
			defer wg.Done()
			_, _, err := svc.ToggleLike(ctx, userID, recipe.ID)
			errs <- err
		}(users[i])
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var loaded model.Recipe
	require.NoError(t, db.First(&loaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, int64(n), loaded.LikesCount)

	fromTable, err := svc.CountLikes(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), fromTable)
}

func TestToggleLike_CounterFailureRollsBackRow(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewLikeService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Pierogi")
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com")

	// Fail every update against recipes to simulate the counter write
	// breaking after the like row landed.
	require.NoError(t, db.Callback().Update().Before("gorm:update").
		Register("break_recipe_updates", func(tx *gorm.DB) {
			if tx.Statement.Table == "recipes" {
				_ = tx.AddError(errors.New("recipes table unavailable"))
			}
		}))

	_, _, err := svc.ToggleLike(ctx, alice.ID, recipe.ID)
	require.Error(t, err)

	// The like row must not survive the failed counter update.
	var rows int64
	require.NoError(t, db.Model(&model.Like{}).Count(&rows).Error)
	assert.Zero(t, rows)

	var loaded model.Recipe
	require.NoError(t, db.First(&loaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, int64(0), loaded.LikesCount)

	// With the fault cleared the same toggle goes through.
	require.NoError(t, db.Callback().Update().Remove("break_recipe_updates"))

	liked, count, err := svc.ToggleLike(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)
}

func TestToggleLike_RecipeNotFound(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewLikeService(db)

	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com")

	_, _, err := svc.ToggleLike(context.Background(), alice.ID, uuid.New())
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestToggleLike_CounterFloorsAtZero(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewLikeService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Gnocchi")
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com")

	_, _, err := svc.ToggleLike(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)

	// Drifted counter: the like row exists but the cache says zero.
	require.NoError(t, db.Model(&model.Recipe{}).
		Where("id = ?", recipe.ID).
		UpdateColumn("likes_count", 0).Error)

	_, count, err := svc.ToggleLike(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRecomputeLikesCount_RepairsDrift(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewLikeService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Falafel")
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "Bob", "bob@example.com")

	_, _, err := svc.ToggleLike(ctx, alice.ID, recipe.ID)
	require.NoError(t, err)
	_, _, err = svc.ToggleLike(ctx, bob.ID, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.Recipe{}).
		Where("id = ?", recipe.ID).
		UpdateColumn("likes_count", 99).Error)

	require.NoError(t, svc.RecomputeLikesCount(ctx, recipe.ID))

	var loaded model.Recipe
	require.NoError(t, db.First(&loaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, int64(2), loaded.LikesCount)
}

func TestListLikedRecipes(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewLikeService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "Owner", "owner@example.com")
	soup := testhelpers.CreateTestRecipe(t, db, owner, "Soup")
	salad := testhelpers.CreateTestRecipe(t, db, owner, "Salad")
	testhelpers.CreateTestRecipe(t, db, owner, "Untouched")
	alice := testhelpers.CreateTestUser(t, db, "Alice", "alice@example.com")

	_, _, err := svc.ToggleLike(ctx, alice.ID, soup.ID)
	require.NoError(t, err)
	_, _, err = svc.ToggleLike(ctx, alice.ID, salad.ID)
	require.NoError(t, err)

	recipes, err := svc.ListLikedRecipes(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	names := []string{recipes[0].Name, recipes[1].Name}
	assert.Contains(t, names, "Soup")
	assert.Contains(t, names, "Salad")
}
