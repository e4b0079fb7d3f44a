package scripture

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "scripture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db.DB)
	require.NoError(t, repo.UpsertBook(&entities.Book{ID: "JHN", Name: "Jean", ChapterCount: 21, Testament: entities.TestamentNew}))
	require.NoError(t, repo.UpsertBook(&entities.Book{ID: "GEN", Name: "Genèse", ChapterCount: 50, Testament: entities.TestamentOld}))
	return repo, db.DB
}

func john316(words ...string) *entities.Verse {
	v := &entities.Verse{
		BookID:    "JHN",
		Chapter:   3,
		Number:    16,
		Text:      "Car Dieu a tant aimé le monde",
		Reference: "Jean 3:16",
	}
	for i, w := range words {
		v.Words = append(v.Words, entities.Word{Text: w, Position: i})
	}
	return v
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestRepository_UpsertVerse_Idempotent(t *testing.T) {
	repo, db := setupTestDB(t)

	require.NoError(t, repo.UpsertVerse(john316("Car", "Dieu", "a")))
	require.NoError(t, repo.UpsertVerse(john316("Car", "Dieu", "a")))

	assert.Equal(t, int64(1), countRows(t, db, &entities.Verse{}))
	assert.Equal(t, int64(3), countRows(t, db, &entities.Word{}))
}

func TestRepository_UpsertVerse_ReplacesWords(t *testing.T) {
	repo, db := setupTestDB(t)

	require.NoError(t, repo.UpsertVerse(john316("Car", "Dieu", "a", "tant")))

	replacement := john316("For", "God")
	replacement.Text = "For God so loved the world"
	replacement.Words[1].StrongNumber = entities.Strong("G2316")
	require.NoError(t, repo.UpsertVerse(replacement))

	verse, err := repo.GetVerse(entities.VerseRef{Book: "JHN", Chapter: 3, Verse: 16})
	require.NoError(t, err)
	require.NotNil(t, verse)
	assert.Equal(t, "For God so loved the world", verse.Text)
	require.Len(t, verse.Words, 2)
	assert.Equal(t, "For", verse.Words[0].Text)
	assert.Equal(t, "God", verse.Words[1].Text)
	require.NotNil(t, verse.Words[1].StrongNumber)
	assert.Equal(t, "G2316", *verse.Words[1].StrongNumber)
	assert.Nil(t, verse.Words[0].StrongNumber)
	assert.Equal(t, int64(2), countRows(t, db, &entities.Word{}))
}

func TestRepository_UpsertVerse_Validation(t *testing.T) {
	repo, _ := setupTestDB(t)

	t.Run("gap in positions", func(t *testing.T) {
		v := john316("Car", "Dieu")
		v.Words[1].Position = 2
		assert.ErrorIs(t, repo.UpsertVerse(v), entities.ErrInvalidWords)
	})

	t.Run("zero chapter", func(t *testing.T) {
		v := john316()
		v.Chapter = 0
		assert.ErrorIs(t, repo.UpsertVerse(v), entities.ErrInvalidReference)
	})

	t.Run("unknown book", func(t *testing.T) {
		v := john316()
		v.BookID = "XYZ"
		assert.Error(t, repo.UpsertVerse(v))
	})
}

func TestRepository_GetVerse_WordsInPositionOrder(t *testing.T) {
	repo, db := setupTestDB(t)

	require.NoError(t, repo.UpsertVerse(john316()))
	verse, err := repo.GetVerse(entities.VerseRef{Book: "JHN", Chapter: 3, Verse: 16})
	require.NoError(t, err)

	// insert out of order directly
	for _, w := range []entities.Word{
		{VerseID: verse.ID, Text: "c", Position: 2},
		{VerseID: verse.ID, Text: "a", Position: 0},
		{VerseID: verse.ID, Text: "b", Position: 1},
	} {
		w := w
		require.NoError(t, db.Create(&w).Error)
	}

	verse, err = repo.GetVerse(entities.VerseRef{Book: "JHN", Chapter: 3, Verse: 16})
	require.NoError(t, err)
	require.Len(t, verse.Words, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{verse.Words[0].Text, verse.Words[1].Text, verse.Words[2].Text})
}

func TestRepository_GetVerse_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	verse, err := repo.GetVerse(entities.VerseRef{Book: "JHN", Chapter: 99, Verse: 1})
	assert.NoError(t, err)
	assert.Nil(t, verse)
}

func TestRepository_GetChapter(t *testing.T) {
	repo, _ := setupTestDB(t)

	for _, n := range []int{3, 1, 2} {
		require.NoError(t, repo.UpsertVerse(&entities.Verse{
			BookID: "GEN", Chapter: 1, Number: n, Text: "t", Reference: "Genèse 1",
			Words: []entities.Word{{Text: "w", Position: 0}},
		}))
	}
	require.NoError(t, repo.UpsertVerse(&entities.Verse{BookID: "GEN", Chapter: 2, Number: 1, Text: "other", Reference: "Genèse 2:1"}))

	verses, err := repo.GetChapter("GEN", 1)
	require.NoError(t, err)
	require.Len(t, verses, 3)
	for i, v := range verses {
		assert.Equal(t, i+1, v.Number)
		assert.Len(t, v.Words, 1)
	}

	empty, err := repo.GetChapter("GEN", 40)
	require.NoError(t, err)
	assert.Empty(t, empty)

	count, err := repo.CountVerses("GEN", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_GetRandomVerse(t *testing.T) {
	repo, _ := setupTestDB(t)

	verse, err := repo.GetRandomVerse()
	require.NoError(t, err)
	assert.Nil(t, verse, "empty store")

	require.NoError(t, repo.UpsertVerse(john316("Car")))
	verse, err = repo.GetRandomVerse()
	require.NoError(t, err)
	require.NotNil(t, verse)
	assert.Equal(t, "Jean 3:16", verse.Reference)
	assert.Len(t, verse.Words, 1)
}

func TestRepository_DeleteVerse(t *testing.T) {
	repo, db := setupTestDB(t)
	ref := entities.VerseRef{Book: "JHN", Chapter: 3, Verse: 16}

	require.NoError(t, repo.UpsertVerse(john316("Car", "Dieu")))
	require.NoError(t, repo.DeleteVerse(ref))

	verse, err := repo.GetVerse(ref)
	require.NoError(t, err)
	assert.Nil(t, verse)
	assert.Zero(t, countRows(t, db, &entities.Word{}))

	assert.NoError(t, repo.DeleteVerse(ref), "deleting a missing verse is a no-op")
}

func TestRepository_CascadeOnRawDelete(t *testing.T) {
	repo, db := setupTestDB(t)

	require.NoError(t, repo.UpsertVerse(john316("Car", "Dieu")))
	require.NoError(t, db.Exec("DELETE FROM verses").Error)

	assert.Zero(t, countRows(t, db, &entities.Word{}))
}

func TestRepository_Books(t *testing.T) {
	repo, _ := setupTestDB(t)

	books, err := repo.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "GEN", books[0].ID)
	assert.Equal(t, "JHN", books[1].ID)

	require.NoError(t, repo.UpsertBook(&entities.Book{ID: "JHN", Name: "John", ChapterCount: 21, Testament: entities.TestamentNew}))
	book, err := repo.GetBook("JHN")
	require.NoError(t, err)
	assert.Equal(t, "John", book.Name)

	missing, err := repo.GetBook("ZZZ")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, repo.UpsertBook(&entities.Book{ID: "BAD", Testament: "XT"}), entities.ErrInvalidReference)
}
