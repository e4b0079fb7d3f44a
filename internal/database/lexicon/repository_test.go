package lexicon

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "lexicon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func theos() *entities.LexiconEntry {
	etym := "D'origine incertaine"
	return &entities.LexiconEntry{
		Number:          "G2316",
		Testament:       entities.TestamentNew,
		Language:        entities.LanguageGreek,
		Original:        "θεός",
		Transliteration: "theos",
		Pronunciation:   "theh'-os",
		Definition:      "Une divinité, spécialement le Dieu suprême",
		ShortDefinition: "Dieu",
		Usages:          entities.StringList{"Dieu", "dieu", "divin"},
		OccurrenceCount: 1317,
		WordType:        entities.WordTypeNoun,
		Etymology:       &etym,
		RelatedNumbers:  entities.StringList{"G2304", "G2305"},
	}
}

func entry(number string, occurrences int, def string) *entities.LexiconEntry {
	return &entities.LexiconEntry{
		Number:          number,
		Testament:       entities.TestamentNew,
		Language:        entities.LanguageGreek,
		Definition:      def,
		ShortDefinition: def,
		Usages:          entities.StringList{},
		OccurrenceCount: occurrences,
		WordType:        entities.WordTypeNoun,
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	repo := setupTestDB(t)
	want := theos()

	require.NoError(t, repo.UpsertEntry(want))

	got, err := repo.GetEntry("G2316")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, got)
}

func TestRepository_RoundTrip_NilLists(t *testing.T) {
	repo := setupTestDB(t)
	e := entry("G25", 143, "aimer")
	e.RelatedNumbers = nil
	e.Usages = nil

	require.NoError(t, repo.UpsertEntry(e))

	got, err := repo.GetEntry("G25")
	require.NoError(t, err)
	assert.Nil(t, got.RelatedNumbers)
	assert.Equal(t, entities.StringList{}, got.Usages)
	assert.Nil(t, got.Etymology)

	batch := *entry("G26", 116, "amour")
	batch.Usages = nil
	require.NoError(t, repo.UpsertEntries([]entities.LexiconEntry{batch}))

	got, err = repo.GetEntry("G26")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entities.StringList{}, got.Usages)
}

func TestRepository_UpsertReplaces(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.UpsertEntry(theos()))
	updated := theos()
	updated.OccurrenceCount = 1320
	updated.Usages = entities.StringList{"Dieu"}
	require.NoError(t, repo.UpsertEntry(updated))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetEntry("G2316")
	require.NoError(t, err)
	assert.Equal(t, 1320, got.OccurrenceCount)
	assert.Equal(t, entities.StringList{"Dieu"}, got.Usages)
}

func TestRepository_GetEntry_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	got, err := repo.GetEntry("H9999")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_Search(t *testing.T) {
	repo := setupTestDB(t)
	require.NoError(t, repo.UpsertEntries([]entities.LexiconEntry{
		*entry("G2310", 3, "fondement"),
		*theos(),
		*entry("G25", 143, "aimer"),
		*entry("G2889", 186, "monde"),
	}))

	t.Run("number prefix ordered by occurrences", func(t *testing.T) {
		got, err := repo.Search("G231", 20)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "G2316", got[0].Number)
		assert.Equal(t, "G2310", got[1].Number)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := repo.Search("G", 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "G2316", got[0].Number)
		assert.Equal(t, "G2889", got[1].Number)
	})

	t.Run("default limit", func(t *testing.T) {
		got, err := repo.Search("G", 0)
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("transliteration and original", func(t *testing.T) {
		got, err := repo.Search("theos", 20)
		require.NoError(t, err)
		require.Len(t, got, 1)

		got, err = repo.Search("θεό", 20)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "G2316", got[0].Number)
	})

	t.Run("definition", func(t *testing.T) {
		got, err := repo.Search("monde", 20)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "G2889", got[0].Number)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := repo.Search("zzz", 20)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		got, err := repo.Search("%", 20)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = repo.Search("G_3", 20)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRepository_Search_TieBreakByNumber(t *testing.T) {
	repo := setupTestDB(t)
	require.NoError(t, repo.UpsertEntry(entry("G3", 10, "x")))
	require.NoError(t, repo.UpsertEntry(entry("G1", 10, "x")))
	require.NoError(t, repo.UpsertEntry(entry("G2", 10, "x")))

	got, err := repo.Search("x", 20)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"G1", "G2", "G3"}, []string{got[0].Number, got[1].Number, got[2].Number})
}
