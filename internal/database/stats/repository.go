// Package stats stores the reading statistics singleton and applies the
// streak rules to it.
package stats

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/entities"
)

// Repository handles the reading_stats row.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
	loc *time.Location
}

type Option func(*Repository)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithLocation sets the timezone that defines calendar days. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(r *Repository) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// NewRepository creates a new stats repository.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{db: db, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func load(tx *gorm.DB) (entities.ReadingStats, error) {
	var s entities.ReadingStats
	err := tx.Where("id = ?", entities.SingletonID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.ReadingStats{ID: entities.SingletonID}, nil
	}
	return s, err
}

func save(tx *gorm.DB, s entities.ReadingStats) error {
	s.ID = entities.SingletonID
	return tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).Create(&s).Error
}

// GetStats returns the current stats; zeroed stats if the row is missing.
func (r *Repository) GetStats() (entities.ReadingStats, error) {
	s, err := load(r.db)
	return s, database.Classify("get stats", err)
}

func (r *Repository) update(op string, fn func(entities.ReadingStats) entities.ReadingStats) (entities.ReadingStats, error) {
	var out entities.ReadingStats
	err := r.db.Transaction(func(tx *gorm.DB) error {
		s, err := load(tx)
		if err != nil {
			return err
		}
		out = fn(s)
		return save(tx, out)
	})
	if err != nil {
		return entities.ReadingStats{}, database.Classify(op, err)
	}
	return out, nil
}

// RecordChapterRead counts one chapter of verseCount verses read now.
func (r *Repository) RecordChapterRead(verseCount int) (entities.ReadingStats, error) {
	now := r.now()
	return r.update("record chapter read", func(s entities.ReadingStats) entities.ReadingStats {
		return ApplyChapterRead(s, verseCount, now, r.loc)
	})
}

// AddReadingTime adds minutes to the total reading time.
func (r *Repository) AddReadingTime(minutes int) (entities.ReadingStats, error) {
	if minutes < 0 {
		return entities.ReadingStats{}, fmt.Errorf("add reading time: negative minutes %d", minutes)
	}
	return r.update("add reading time", func(s entities.ReadingStats) entities.ReadingStats {
		s.TotalReadingTimeMinutes += minutes
		return s
	})
}

// ResetStats zeroes every counter and clears the last read date.
func (r *Repository) ResetStats() error {
	err := save(r.db, entities.ReadingStats{ID: entities.SingletonID})
	return database.Classify("reset stats", err)
}
