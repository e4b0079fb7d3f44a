// Package highlights provides database operations for verse colour highlights.
package highlights

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/entities"
)

// Repository handles all highlight database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*Repository)

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// NewRepository creates a new highlights repository.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func whereRef(db *gorm.DB, ref entities.VerseRef) *gorm.DB {
	return db.Where("book = ? AND chapter = ? AND verse = ?", ref.Book, ref.Chapter, ref.Verse)
}

// SetHighlight colours the verse, replacing any previous colour.
func (r *Repository) SetHighlight(ref entities.VerseRef, color entities.HighlightColor) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	if err := color.Validate(); err != nil {
		return err
	}
	h := entities.Highlight{
		BookID:      ref.Book,
		Chapter:     ref.Chapter,
		VerseNumber: ref.Verse,
		Color:       color,
		CreatedAt:   r.now(),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "book"}, {Name: "chapter"}, {Name: "verse"}},
		DoUpdates: clause.AssignmentColumns([]string{"color", "created_at"}),
	}).Create(&h).Error
	return database.Classify("set highlight "+ref.String(), err)
}

// RemoveHighlight deletes the highlight if present.
func (r *Repository) RemoveHighlight(ref entities.VerseRef) error {
	err := whereRef(r.db, ref).Delete(&entities.Highlight{}).Error
	return database.Classify("remove highlight "+ref.String(), err)
}

// GetHighlight returns nil when the verse is not highlighted.
func (r *Repository) GetHighlight(ref entities.VerseRef) (*entities.Highlight, error) {
	var h entities.Highlight
	err := whereRef(r.db, ref).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Classify("get highlight "+ref.String(), err)
	}
	return &h, nil
}

// GetChapterHighlights maps verse number to colour for one chapter.
func (r *Repository) GetChapterHighlights(book string, chapter int) (map[int]entities.HighlightColor, error) {
	var rows []entities.Highlight
	err := r.db.Where("book = ? AND chapter = ?", book, chapter).Find(&rows).Error
	if err != nil {
		return nil, database.Classify("get chapter highlights", err)
	}
	out := make(map[int]entities.HighlightColor, len(rows))
	for _, h := range rows {
		out[h.VerseNumber] = h.Color
	}
	return out, nil
}

// ListHighlights returns every highlight, newest first.
func (r *Repository) ListHighlights() ([]entities.Highlight, error) {
	var rows []entities.Highlight
	err := r.db.Order("created_at DESC, id DESC").Find(&rows).Error
	return rows, database.Classify("list highlights", err)
}

func (r *Repository) CountHighlights() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Highlight{}).Count(&count).Error
	return count, database.Classify("count highlights", err)
}

// CountByColor reports a count for every supported colour, including zeros.
func (r *Repository) CountByColor() (map[entities.HighlightColor]int, error) {
	var rows []struct {
		Color entities.HighlightColor
		Total int
	}
	err := r.db.Model(&entities.Highlight{}).
		Select("color, COUNT(*) AS total").
		Group("color").
		Scan(&rows).Error
	if err != nil {
		return nil, database.Classify("count highlights by colour", err)
	}

	out := make(map[entities.HighlightColor]int, len(entities.HighlightColors))
	for _, c := range entities.HighlightColors {
		out[c] = 0
	}
	for _, row := range rows {
		out[row.Color] = row.Total
	}
	return out, nil
}
