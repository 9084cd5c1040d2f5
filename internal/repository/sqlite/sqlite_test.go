package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/freeeve/sideline/api/internal/model"
	"github.com/freeeve/sideline/api/internal/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "sideline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	return db
}

func intp(v int) *int { return &v }

func TestUserRepo(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u, err := repo.Create(ctx, "admin", "hash", model.RoleAdmin)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	_, err = repo.Create(ctx, "admin", "other", model.RoleScorekeeper)
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	got, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.True(t, got.IsAdmin())

	missing, err := repo.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestGameRepoLifecycle(t *testing.T) {
	db := openTestDB(t)
	games := NewGameRepo(db)
	plays := NewPlayRepo(db)
	ctx := context.Background()

	active, err := games.FindActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	g, err := games.Create(ctx, model.NewGame())
	require.NoError(t, err)
	assert.Equal(t, 50, g.YardLine)
	assert.Equal(t, model.GameActive, g.Status)

	require.NoError(t, games.Update(ctx, g.ID, model.GameUpdate{AwayScore: intp(3), Down: intp(2)}))
	got, err := games.FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.AwayScore)
	assert.Equal(t, 2, got.Down)
	assert.Equal(t, 10, got.Distance)

	assert.ErrorIs(t, games.Update(ctx, 999, model.GameUpdate{Down: intp(2)}), repository.ErrNotFound)
	assert.ErrorIs(t, games.Update(ctx, g.ID, model.GameUpdate{}), model.ErrNoFields)

	_, err = plays.Create(ctx, model.NewPlay{GameID: g.ID, Text: "Away Team +4 yard rush", Quarter: 1, GameTime: 870})
	require.NoError(t, err)

	require.NoError(t, games.Archive(ctx, g.ID))
	got, _ = games.FindByID(ctx, g.ID)
	assert.Equal(t, model.GameCompleted, got.Status)
	remaining, err := plays.ListByGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	next, err := games.Create(ctx, model.NewGame())
	require.NoError(t, err)
	active, err = games.FindActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, next.ID, active.ID)

	all, err := games.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGameRepoConcurrentUpdatesLastWriteWins(t *testing.T) {
	db := openTestDB(t)
	games := NewGameRepo(db)
	ctx := context.Background()
	g, err := games.Create(ctx, model.NewGame())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 1; i <= 5; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			assert.NoError(t, games.Update(ctx, g.ID, model.GameUpdate{HomeScore: intp(score)}))
		}(i)
	}
	wg.Wait()

	require.NoError(t, games.Update(ctx, g.ID, model.GameUpdate{HomeScore: intp(17)}))
	got, err := games.FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 17, got.HomeScore)
}

func TestPlayRepoOrderingAndDelete(t *testing.T) {
	db := openTestDB(t)
	g, err := NewGameRepo(db).Create(context.Background(), model.NewGame())
	require.NoError(t, err)
	repo := NewPlayRepo(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, model.NewPlay{GameID: g.ID, Text: "first", Team: "Home Team", Possession: "home"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, model.NewPlay{GameID: g.ID, Text: "second"})
	require.NoError(t, err)

	list, err := repo.ListByGame(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, "home", list[1].Possession)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), repository.ErrNotFound)
}
