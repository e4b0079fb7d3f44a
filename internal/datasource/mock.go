package datasource

import (
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/mrlokans/selah/internal/database/lexicon"
	"github.com/mrlokans/selah/internal/entities"
	"github.com/mrlokans/selah/internal/seed"
)

// Mock serves the embedded sample dataset from memory. It needs no database
// and is meant for previews and tests.
type Mock struct {
	books   []entities.Book
	verses  []entities.Verse
	lexicon []entities.LexiconEntry
}

func NewMock(ds *seed.Dataset) *Mock {
	m := &Mock{
		books:   append([]entities.Book(nil), ds.Books...),
		verses:  append([]entities.Verse(nil), ds.Verses...),
		lexicon: append([]entities.LexiconEntry(nil), ds.Lexicon...),
	}
	sort.Slice(m.books, func(i, j int) bool { return m.books[i].ID < m.books[j].ID })
	sort.Slice(m.verses, func(i, j int) bool {
		a, b := m.verses[i], m.verses[j]
		if a.BookID != b.BookID {
			return a.BookID < b.BookID
		}
		if a.Chapter != b.Chapter {
			return a.Chapter < b.Chapter
		}
		return a.Number < b.Number
	})
	return m
}

func (m *Mock) Name() string { return "mock" }

func copyVerse(v entities.Verse) *entities.Verse {
	v.Words = append([]entities.Word(nil), v.Words...)
	return &v
}

func (m *Mock) GetVerse(ref entities.VerseRef) (*entities.Verse, error) {
	for _, v := range m.verses {
		if v.BookID == ref.Book && v.Chapter == ref.Chapter && v.Number == ref.Verse {
			return copyVerse(v), nil
		}
	}
	return nil, nil
}

func (m *Mock) GetChapter(book string, chapter int) ([]entities.Verse, error) {
	var out []entities.Verse
	for _, v := range m.verses {
		if v.BookID == book && v.Chapter == chapter {
			out = append(out, *copyVerse(v))
		}
	}
	return out, nil
}

func (m *Mock) GetRandomVerse() (*entities.Verse, error) {
	if len(m.verses) == 0 {
		return nil, nil
	}
	return copyVerse(m.verses[rand.IntN(len(m.verses))]), nil
}

func (m *Mock) GetBook(id string) (*entities.Book, error) {
	for _, b := range m.books {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (m *Mock) GetAllBooks() ([]entities.Book, error) {
	return append([]entities.Book(nil), m.books...), nil
}

func (m *Mock) GetLexiconEntry(number string) (*entities.LexiconEntry, error) {
	for _, e := range m.lexicon {
		if e.Number == number {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

// SearchLexicon mirrors the SQLite search: case-insensitive substring over the
// same fields, most frequent first, ties by number.
func (m *Mock) SearchLexicon(query string, limit int) ([]entities.LexiconEntry, error) {
	if limit <= 0 {
		limit = lexicon.DefaultSearchLimit
	}
	q := strings.ToLower(query)
	var out []entities.LexiconEntry
	for _, e := range m.lexicon {
		for _, field := range []string{e.Number, e.Original, e.Transliteration, e.Definition, e.ShortDefinition} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, e)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OccurrenceCount != out[j].OccurrenceCount {
			return out[i].OccurrenceCount > out[j].OccurrenceCount
		}
		return out[i].Number < out[j].Number
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
