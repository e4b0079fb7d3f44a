// Package datasource defines the read contract for scripture and lexicon
// data and its backends. A backend is chosen once at startup.
package datasource

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/selah/internal/config"
	"github.com/mrlokans/selah/internal/entities"
	"github.com/mrlokans/selah/internal/seed"
)

// Source serves read-only reference data. Lookups that miss return nil
// without an error.
type Source interface {
	Name() string
	GetVerse(ref entities.VerseRef) (*entities.Verse, error)
	GetChapter(book string, chapter int) ([]entities.Verse, error)
	GetRandomVerse() (*entities.Verse, error)
	GetBook(id string) (*entities.Book, error)
	GetAllBooks() ([]entities.Book, error)
	GetLexiconEntry(number string) (*entities.LexiconEntry, error)
	SearchLexicon(query string, limit int) ([]entities.LexiconEntry, error)
}

// New builds the backend named by kind.
func New(kind config.DataSource, db *gorm.DB) (Source, error) {
	switch kind {
	case config.DataSourceSQLite, "":
		if db == nil {
			return nil, fmt.Errorf("data source %s needs a database", config.DataSourceSQLite)
		}
		return NewSQLite(db), nil
	case config.DataSourceMock:
		ds, err := seed.LoadDataset()
		if err != nil {
			return nil, err
		}
		return NewMock(ds), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", kind)
	}
}
