// Package favourites provides database operations for favourite verses.
//
// A verse is favourited at most once; saving it again replaces the note, the
// text snapshot and the timestamp.
//
// # Usage
//
//	repo := favourites.NewRepository(db)
//	err := repo.SetFavorite(ref, verse.Text, verse.Reference, nil)
//	favs, err := repo.ListFavorites()
package favourites

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/entities"
)

// Repository handles all favourites database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*Repository)

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// NewRepository creates a new favourites repository.
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

// SetFavorite upserts the favourite for ref.
func (r *Repository) SetFavorite(ref entities.VerseRef, verseText, reference string, note *string) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	fav := entities.FavoriteVerse{
		BookID:      ref.Book,
		Chapter:     ref.Chapter,
		VerseNumber: ref.Verse,
		VerseText:   verseText,
		Reference:   reference,
		Note:        note,
		CreatedAt:   r.now(),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "book"}, {Name: "chapter"}, {Name: "verse"}},
		DoUpdates: clause.AssignmentColumns([]string{"verse_text", "reference", "note", "created_at"}),
	}).Create(&fav).Error
	return database.Classify("set favourite "+ref.String(), err)
}

// UpdateFavoriteNote changes the note of an existing favourite. It reports
// whether a favourite was found.
func (r *Repository) UpdateFavoriteNote(ref entities.VerseRef, note *string) (bool, error) {
	result := whereRef(r.db.Model(&entities.FavoriteVerse{}), ref).Update("note", note)
	if result.Error != nil {
		return false, database.Classify("update favourite note "+ref.String(), result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RemoveFavorite deletes the favourite if present.
func (r *Repository) RemoveFavorite(ref entities.VerseRef) error {
	err := whereRef(r.db, ref).Delete(&entities.FavoriteVerse{}).Error
	return database.Classify("remove favourite "+ref.String(), err)
}

func (r *Repository) IsFavorite(ref entities.VerseRef) (bool, error) {
	var count int64
	err := whereRef(r.db.Model(&entities.FavoriteVerse{}), ref).Count(&count).Error
	if err != nil {
		return false, database.Classify("check favourite "+ref.String(), err)
	}
	return count > 0, nil
}

// GetFavorite returns nil when the verse is not a favourite.
func (r *Repository) GetFavorite(ref entities.VerseRef) (*entities.FavoriteVerse, error) {
	var fav entities.FavoriteVerse
	err := whereRef(r.db, ref).First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Classify("get favourite "+ref.String(), err)
	}
	return &fav, nil
}

// ListFavorites returns all favourites, newest first.
func (r *Repository) ListFavorites() ([]entities.FavoriteVerse, error) {
	var favs []entities.FavoriteVerse
	err := r.db.Order("created_at DESC, id DESC").Find(&favs).Error
	return favs, database.Classify("list favourites", err)
}

func (r *Repository) CountFavorites() (int64, error) {
	var count int64
	err := r.db.Model(&entities.FavoriteVerse{}).Count(&count).Error
	return count, database.Classify("count favourites", err)
}
