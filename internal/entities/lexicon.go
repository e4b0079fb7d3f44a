package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Language string

const (
	LanguageHebrew Language = "Hebrew"
	LanguageGreek  Language = "Greek"
)

type WordType string

const (
	WordTypeNoun        WordType = "noun"
	WordTypeVerb        WordType = "verb"
	WordTypeAdjective   WordType = "adjective"
	WordTypeAdverb      WordType = "adverb"
	WordTypePronoun     WordType = "pronoun"
	WordTypePreposition WordType = "preposition"
	WordTypeConjunction WordType = "conjunction"
	WordTypeProperNoun  WordType = "proper_noun"
)

// LexiconEntry is a Strong's concordance definition keyed by its number ("G2316", "H430").
// Word.StrongNumber points here informally; lookups may miss.
type LexiconEntry struct {
	Number          string     `gorm:"primaryKey;size:8" json:"number"`
	Testament       Testament  `gorm:"size:2;not null;index:idx_strongs_testament" json:"testament"`
	Language        Language   `gorm:"size:16;not null" json:"language"`
	Original        string     `gorm:"not null" json:"original"`
	Transliteration string     `gorm:"not null" json:"transliteration"`
	Pronunciation   string     `gorm:"not null" json:"pronunciation"`
	Definition      string     `gorm:"type:text;not null" json:"definition"`
	ShortDefinition string     `gorm:"column:short_def;not null" json:"short_def"`
	Usages          StringList `gorm:"type:text;not null" json:"usages"`
	OccurrenceCount int        `gorm:"column:occurrences;not null" json:"occurrences"`
	WordType        WordType   `gorm:"column:type;size:16;not null" json:"type"`
	Etymology       *string    `gorm:"type:text" json:"etymology,omitempty"`
	RelatedNumbers  StringList `gorm:"column:related_words;type:text" json:"related_words,omitempty"`
}

func (LexiconEntry) TableName() string {
	return "strongs"
}

// StringList is stored as a JSON array in a single text column. A nil list maps to NULL.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("scan StringList: unsupported type %T", src)
	}

	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("scan StringList: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}
