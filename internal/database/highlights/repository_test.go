package highlights

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "highlights.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	return NewRepository(db.DB, WithClock(clock))
}

func ref(book string, chapter, verse int) entities.VerseRef {
	return entities.VerseRef{Book: book, Chapter: chapter, Verse: verse}
}

func TestRepository_SetHighlight_ReplacesColor(t *testing.T) {
	repo := setupTestDB(t)
	r := ref("JHN", 3, 16)

	require.NoError(t, repo.SetHighlight(r, entities.HighlightYellow))
	require.NoError(t, repo.SetHighlight(r, entities.HighlightBlue))

	count, err := repo.CountHighlights()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	h, err := repo.GetHighlight(r)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, entities.HighlightBlue, h.Color)
}

func TestRepository_SetHighlight_InvalidColor(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.SetHighlight(ref("JHN", 3, 16), entities.HighlightColor("purple"))
	assert.ErrorIs(t, err, entities.ErrInvalidColor)

	count, err := repo.CountHighlights()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepository_RemoveHighlight(t *testing.T) {
	repo := setupTestDB(t)
	r := ref("PSA", 23, 1)

	require.NoError(t, repo.SetHighlight(r, entities.HighlightGreen))
	require.NoError(t, repo.RemoveHighlight(r))

	h, err := repo.GetHighlight(r)
	require.NoError(t, err)
	assert.Nil(t, h)

	assert.NoError(t, repo.RemoveHighlight(r))
}

func TestRepository_GetChapterHighlights(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.SetHighlight(ref("JHN", 3, 16), entities.HighlightYellow))
	require.NoError(t, repo.SetHighlight(ref("JHN", 3, 17), entities.HighlightGreen))
	require.NoError(t, repo.SetHighlight(ref("JHN", 4, 1), entities.HighlightBlue))

	got, err := repo.GetChapterHighlights("JHN", 3)
	require.NoError(t, err)
	assert.Equal(t, map[int]entities.HighlightColor{
		16: entities.HighlightYellow,
		17: entities.HighlightGreen,
	}, got)

	empty, err := repo.GetChapterHighlights("GEN", 1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_CountByColor(t *testing.T) {
	repo := setupTestDB(t)

	got, err := repo.CountByColor()
	require.NoError(t, err)
	assert.Equal(t, map[entities.HighlightColor]int{
		entities.HighlightYellow: 0,
		entities.HighlightGreen:  0,
		entities.HighlightBlue:   0,
	}, got)

	require.NoError(t, repo.SetHighlight(ref("JHN", 3, 16), entities.HighlightYellow))
	require.NoError(t, repo.SetHighlight(ref("JHN", 3, 17), entities.HighlightYellow))
	require.NoError(t, repo.SetHighlight(ref("JHN", 3, 18), entities.HighlightBlue))

	got, err = repo.CountByColor()
	require.NoError(t, err)
	assert.Equal(t, 2, got[entities.HighlightYellow])
	assert.Equal(t, 0, got[entities.HighlightGreen])
	assert.Equal(t, 1, got[entities.HighlightBlue])
}

func TestRepository_ListHighlights_NewestFirst(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.SetHighlight(ref("JHN", 3, 16), entities.HighlightYellow))
	require.NoError(t, repo.SetHighlight(ref("JHN", 3, 17), entities.HighlightGreen))

	got, err := repo.ListHighlights()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 17, got[0].VerseNumber)
	assert.Equal(t, 16, got[1].VerseNumber)
}
