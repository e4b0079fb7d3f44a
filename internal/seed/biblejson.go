package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/selah/internal/canon"
	"github.com/mrlokans/selah/internal/entities"
)

// BibleJSON is the layout of full-text Bible exports: testaments hold books in
// canonical order, books hold chapters, chapters hold verses.
type BibleJSON struct {
	Abbreviation string           `json:"Abbreviation"`
	Publisher    string           `json:"Publisher"`
	VersionDate  string           `json:"VersionDate"`
	Testaments   []BibleTestament `json:"Testaments"`
}

type BibleTestament struct {
	Text  string      `json:"Text,omitempty"`
	Books []BibleBook `json:"Books"`
}

type BibleBook struct {
	Text     string         `json:"Text"`
	Chapters []BibleChapter `json:"Chapters"`
}

type BibleChapter struct {
	ID     *int         `json:"ID,omitempty"`
	Verses []BibleVerse `json:"Verses"`
}

type BibleVerse struct {
	ID   *int   `json:"ID,omitempty"`
	Text string `json:"Text"`
}

// DecodeBibleJSON reads a full Bible export.
func DecodeBibleJSON(r io.Reader) (*BibleJSON, error) {
	var b BibleJSON
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode bible json: %w", err)
	}
	return &b, nil
}

// BookVerses is one book of a Bible export mapped onto the canon.
type BookVerses struct {
	Book   entities.Book
	Verses []entities.Verse
}

// Books maps the export onto canonical books by position: the first testament
// starts at Genesis and the second at Matthew. Books beyond the canon are reported
// as errors.
func (b *BibleJSON) Books() ([]BookVerses, error) {
	var out []BookVerses
	for ti, testament := range b.Testaments {
		offset := 0
		if ti == 1 {
			offset = canon.OldTestamentSize
		} else if ti > 1 {
			return nil, fmt.Errorf("unexpected testament %d", ti+1)
		}
		for bi, book := range testament.Books {
			entry, ok := canon.At(offset + bi)
			if !ok || (ti == 0 && bi >= canon.OldTestamentSize) {
				return nil, fmt.Errorf("book %q at testament %d position %d is outside the canon", book.Text, ti+1, bi+1)
			}
			out = append(out, BookVerses{Book: entry.Book(), Verses: convertBook(entry, book)})
		}
	}
	return out, nil
}

func convertBook(entry canon.Entry, book BibleBook) []entities.Verse {
	var verses []entities.Verse
	for ci, ch := range book.Chapters {
		chapter := ci + 1
		if ch.ID != nil && *ch.ID > 0 {
			chapter = *ch.ID
		}
		for vi, v := range ch.Verses {
			number := vi + 1
			if v.ID != nil && *v.ID > 0 {
				number = *v.ID
			}
			text := strings.TrimSpace(v.Text)
			verses = append(verses, entities.Verse{
				BookID:    entry.ID,
				Chapter:   chapter,
				Number:    number,
				Text:      text,
				Reference: fmt.Sprintf("%s %d:%d", entry.Name, chapter, number),
				Words:     Tokenize(text),
			})
		}
	}
	return verses
}

// Tokenize splits text on whitespace into unannotated words.
func Tokenize(text string) []entities.Word {
	fields := strings.Fields(text)
	words := make([]entities.Word, len(fields))
	for i, f := range fields {
		words[i] = entities.Word{Text: f, Position: i}
	}
	return words
}
