package entities

import (
	"fmt"
)

type Testament string

const (
	TestamentOld Testament = "OT"
	TestamentNew Testament = "NT"
)

func (t Testament) Valid() bool {
	return t == TestamentOld || t == TestamentNew
}

// Book is static reference data seeded once at first launch.
type Book struct {
	ID           string    `gorm:"primaryKey;size:8" json:"id"` // USFM code, e.g. "JHN"
	Name         string    `gorm:"size:64;not null" json:"name"`
	ChapterCount int       `gorm:"column:chapters;not null" json:"chapters"`
	Testament    Testament `gorm:"size:2;not null" json:"testament"`
}

type Verse struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	BookID    string `gorm:"column:book;size:8;not null;uniqueIndex:idx_verses_triple,priority:1;index:idx_verses_book_chapter,priority:1" json:"book"`
	Chapter   int    `gorm:"not null;uniqueIndex:idx_verses_triple,priority:2;index:idx_verses_book_chapter,priority:2" json:"chapter"`
	Number    int    `gorm:"column:verse;not null;uniqueIndex:idx_verses_triple,priority:3" json:"verse"`
	Text      string `gorm:"type:text;not null" json:"text"`
	Reference string `gorm:"size:64;not null;index:idx_verses_reference" json:"reference"` // e.g. "Jean 3:16"

	Book  *Book  `gorm:"foreignKey:BookID;references:ID" json:"-"`
	Words []Word `gorm:"foreignKey:VerseID;constraint:OnDelete:CASCADE" json:"words"`
}

// Word belongs to exactly one verse; rows are removed with their verse.
type Word struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	VerseID      uint    `gorm:"not null;index:idx_words_verse_id" json:"-"`
	Text         string  `gorm:"not null" json:"text"`
	StrongNumber *string `gorm:"column:strong;size:8;index:idx_words_strong" json:"strong"`
	Position     int     `gorm:"not null" json:"position"`
}

// VerseRef addresses a single verse.
type VerseRef struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

func (r VerseRef) String() string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

func (r VerseRef) Validate() error {
	if r.Book == "" {
		return fmt.Errorf("%w: empty book", ErrInvalidReference)
	}
	if r.Chapter < 1 || r.Verse < 1 {
		return fmt.Errorf("%w: %s", ErrInvalidReference, r)
	}
	return nil
}

func (v *Verse) Ref() VerseRef {
	return VerseRef{Book: v.BookID, Chapter: v.Chapter, Verse: v.Number}
}

// Validate checks the verse triple and that word positions run 0..n-1 in order.
func (v *Verse) Validate() error {
	if err := v.Ref().Validate(); err != nil {
		return err
	}
	for i, w := range v.Words {
		if w.Position != i {
			return fmt.Errorf("%w: %s word %d has position %d", ErrInvalidWords, v.Ref(), i, w.Position)
		}
	}
	return nil
}

// Strong is a helper for building words with a Strong's number.
func Strong(number string) *string {
	return &number
}

func (Book) TableName() string {
	return "books"
}

func (Verse) TableName() string {
	return "verses"
}

func (Word) TableName() string {
	return "words"
}
