package datasource

import (
	"gorm.io/gorm"

	"github.com/mrlokans/selah/internal/database/lexicon"
	"github.com/mrlokans/selah/internal/database/scripture"
	"github.com/mrlokans/selah/internal/entities"
)

// SQLite reads from the local database.
type SQLite struct {
	scripture *scripture.Repository
	lexicon   *lexicon.Repository
}

func NewSQLite(db *gorm.DB) *SQLite {
	return &SQLite{
		scripture: scripture.NewRepository(db),
		lexicon:   lexicon.NewRepository(db),
	}
}

func (s *SQLite) Name() string { return "sqlite" }

func (s *SQLite) GetVerse(ref entities.VerseRef) (*entities.Verse, error) {
	return s.scripture.GetVerse(ref)
}

func (s *SQLite) GetChapter(book string, chapter int) ([]entities.Verse, error) {
	return s.scripture.GetChapter(book, chapter)
}

func (s *SQLite) GetRandomVerse() (*entities.Verse, error) {
	return s.scripture.GetRandomVerse()
}

func (s *SQLite) GetBook(id string) (*entities.Book, error) {
	return s.scripture.GetBook(id)
}

func (s *SQLite) GetAllBooks() ([]entities.Book, error) {
	return s.scripture.GetAllBooks()
}

func (s *SQLite) GetLexiconEntry(number string) (*entities.LexiconEntry, error) {
	return s.lexicon.GetEntry(number)
}

func (s *SQLite) SearchLexicon(query string, limit int) ([]entities.LexiconEntry, error) {
	return s.lexicon.Search(query, limit)
}
