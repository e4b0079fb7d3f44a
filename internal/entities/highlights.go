package entities

import (
	"fmt"
	"time"
)

type HighlightColor string

const (
	HighlightYellow HighlightColor = "yellow"
	HighlightGreen  HighlightColor = "green"
	HighlightBlue   HighlightColor = "blue"
)

// HighlightColors lists every supported color in display order.
var HighlightColors = []HighlightColor{HighlightYellow, HighlightGreen, HighlightBlue}

func (c HighlightColor) Validate() error {
	switch c {
	case HighlightYellow, HighlightGreen, HighlightBlue:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidColor, string(c))
}

// FavoriteVerse keeps a snapshot of the verse text at the time it was saved.
// There is at most one favourite per verse.
type FavoriteVerse struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BookID      string    `gorm:"column:book;size:8;not null;uniqueIndex:idx_favorites_triple,priority:1" json:"book"`
	Chapter     int       `gorm:"not null;uniqueIndex:idx_favorites_triple,priority:2" json:"chapter"`
	VerseNumber int       `gorm:"column:verse;not null;uniqueIndex:idx_favorites_triple,priority:3" json:"verse"`
	VerseText   string    `gorm:"type:text;not null" json:"verse_text"`
	Reference   string    `gorm:"size:64;not null" json:"reference"`
	Note        *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}

func (f *FavoriteVerse) Ref() VerseRef {
	return VerseRef{Book: f.BookID, Chapter: f.Chapter, Verse: f.VerseNumber}
}

// Highlight is a single color mark on a verse; setting a new color replaces the old one.
type Highlight struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	BookID      string         `gorm:"column:book;size:8;not null;uniqueIndex:idx_highlights_triple,priority:1" json:"book"`
	Chapter     int            `gorm:"not null;uniqueIndex:idx_highlights_triple,priority:2" json:"chapter"`
	VerseNumber int            `gorm:"column:verse;not null;uniqueIndex:idx_highlights_triple,priority:3" json:"verse"`
	Color       HighlightColor `gorm:"size:10;not null" json:"color"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (h *Highlight) Ref() VerseRef {
	return VerseRef{Book: h.BookID, Chapter: h.Chapter, Verse: h.VerseNumber}
}

func (FavoriteVerse) TableName() string {
	return "favorites"
}

func (Highlight) TableName() string {
	return "highlights"
}
