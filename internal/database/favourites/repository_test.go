package favourites

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/entities"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func setupTestDB(t *testing.T) (*Repository, *fakeClock) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "favourites.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := &fakeClock{t: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	return NewRepository(db.DB, WithClock(clock.Now)), clock
}

var (
	john316 = entities.VerseRef{Book: "JHN", Chapter: 3, Verse: 16}
	psalm23 = entities.VerseRef{Book: "PSA", Chapter: 23, Verse: 1}
)

func note(s string) *string {
	return &s
}

func TestRepository_SetFavorite_Unique(t *testing.T) {
	repo, clock := setupTestDB(t)

	require.NoError(t, repo.SetFavorite(john316, "Car Dieu a tant aimé", "Jean 3:16", note("first")))
	clock.Advance(time.Minute)
	require.NoError(t, repo.SetFavorite(john316, "Car Dieu a tant aimé le monde", "Jean 3:16", note("second")))

	count, err := repo.CountFavorites()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	fav, err := repo.GetFavorite(john316)
	require.NoError(t, err)
	require.NotNil(t, fav)
	assert.Equal(t, "Car Dieu a tant aimé le monde", fav.VerseText)
	require.NotNil(t, fav.Note)
	assert.Equal(t, "second", *fav.Note)
	assert.True(t, fav.CreatedAt.Equal(clock.Now()))
}

func TestRepository_SetFavorite_ClearsNote(t *testing.T) {
	repo, _ := setupTestDB(t)

	require.NoError(t, repo.SetFavorite(john316, "t", "Jean 3:16", note("n")))
	require.NoError(t, repo.SetFavorite(john316, "t", "Jean 3:16", nil))

	fav, err := repo.GetFavorite(john316)
	require.NoError(t, err)
	assert.Nil(t, fav.Note)
}

func TestRepository_SetFavorite_InvalidRef(t *testing.T) {
	repo, _ := setupTestDB(t)

	err := repo.SetFavorite(entities.VerseRef{Book: "JHN", Chapter: 0, Verse: 1}, "t", "r", nil)
	assert.ErrorIs(t, err, entities.ErrInvalidReference)
}

func TestRepository_RemoveAndIsFavorite(t *testing.T) {
	repo, _ := setupTestDB(t)

	ok, err := repo.IsFavorite(john316)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetFavorite(john316, "t", "Jean 3:16", nil))
	ok, err = repo.IsFavorite(john316)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.RemoveFavorite(john316))
	ok, err = repo.IsFavorite(john316)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, repo.RemoveFavorite(john316), "removing twice is a no-op")

	fav, err := repo.GetFavorite(john316)
	require.NoError(t, err)
	assert.Nil(t, fav)
}

func TestRepository_ListFavorites_NewestFirst(t *testing.T) {
	repo, clock := setupTestDB(t)

	require.NoError(t, repo.SetFavorite(john316, "a", "Jean 3:16", nil))
	clock.Advance(time.Hour)
	require.NoError(t, repo.SetFavorite(psalm23, "b", "Psaumes 23:1", nil))

	favs, err := repo.ListFavorites()
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, psalm23, favs[0].Ref())
	assert.Equal(t, john316, favs[1].Ref())

	// re-saving moves it to the top
	clock.Advance(time.Hour)
	require.NoError(t, repo.SetFavorite(john316, "a", "Jean 3:16", nil))
	favs, err = repo.ListFavorites()
	require.NoError(t, err)
	assert.Equal(t, john316, favs[0].Ref())
}

func TestRepository_UpdateFavoriteNote(t *testing.T) {
	repo, _ := setupTestDB(t)

	found, err := repo.UpdateFavoriteNote(john316, note("x"))
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.SetFavorite(john316, "t", "Jean 3:16", nil))
	found, err = repo.UpdateFavoriteNote(john316, note("méditation"))
	require.NoError(t, err)
	assert.True(t, found)

	fav, err := repo.GetFavorite(john316)
	require.NoError(t, err)
	require.NotNil(t, fav.Note)
	assert.Equal(t, "méditation", *fav.Note)
}
