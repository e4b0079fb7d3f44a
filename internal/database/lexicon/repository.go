// Package lexicon provides database operations for Strong's concordance entries.
package lexicon

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/entities"
)

const DefaultSearchLimit = 20

var searchColumns = []string{"number", "original", "transliteration", "definition", "short_def"}

// Repository handles all lexicon database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new lexicon repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetEntry returns the entry with the exact number, or nil.
func (r *Repository) GetEntry(number string) (*entities.LexiconEntry, error) {
	var entry entities.LexiconEntry
	err := r.db.Where("number = ?", number).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Classify("get lexicon entry "+number, err)
	}
	return &entry, nil
}

// normalize stores a missing usage list as an empty one; the column is NOT NULL.
func normalize(entry *entities.LexiconEntry) {
	if entry.Usages == nil {
		entry.Usages = entities.StringList{}
	}
}

// UpsertEntry inserts the entry or replaces every column of the stored one.
func (r *Repository) UpsertEntry(entry *entities.LexiconEntry) error {
	normalize(entry)
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "number"}},
		UpdateAll: true,
	}).Create(entry).Error
	return database.Classify("upsert lexicon entry "+entry.Number, err)
}

// UpsertEntries stores a batch in one transaction.
func (r *Repository) UpsertEntries(entries []entities.LexiconEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		normalize(&entries[i])
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "number"}},
		UpdateAll: true,
	}).CreateInBatches(entries, 100).Error
	return database.Classify("upsert lexicon entries", err)
}

// Search matches query as a substring of the number, original script,
// transliteration or either definition. SQLite LIKE ignores ASCII case.
// Results are ordered by occurrence count, most frequent first.
func (r *Repository) Search(query string, limit int) ([]entities.LexiconEntry, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	pattern := "%" + escapeLike(query) + "%"

	conds := make([]string, len(searchColumns))
	args := make([]any, len(searchColumns))
	for i, col := range searchColumns {
		conds[i] = col + ` LIKE ? ESCAPE '\'`
		args[i] = pattern
	}

	var entries []entities.LexiconEntry
	err := r.db.Where(strings.Join(conds, " OR "), args...).
		Order("occurrences DESC, number ASC").
		Limit(limit).
		Find(&entries).Error
	return entries, database.Classify("search lexicon", err)
}

// Count returns the number of stored entries.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.LexiconEntry{}).Count(&count).Error
	return count, database.Classify("count lexicon", err)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
