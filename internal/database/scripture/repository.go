// Package scripture provides database operations for books, verses and words.
//
// # Usage
//
//	repo := scripture.NewRepository(db)
//	verses, err := repo.GetChapter("JHN", 3)
package scripture

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/entities"
)

// Repository handles all scripture database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new scripture repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func orderedWords(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// UpsertBook inserts a book or replaces the stored one with the same id.
func (r *Repository) UpsertBook(book *entities.Book) error {
	if book.ID == "" || !book.Testament.Valid() {
		return fmt.Errorf("%w: book %q testament %q", entities.ErrInvalidReference, book.ID, book.Testament)
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "chapters", "testament"}),
	}).Create(book).Error
	return database.Classify("upsert book "+book.ID, err)
}

// GetBook returns nil when the book is unknown.
func (r *Repository) GetBook(id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("id = ?", id).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Classify("get book "+id, err)
	}
	return &book, nil
}

// GetAllBooks returns every book ordered by id.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id ASC").Find(&books).Error
	return books, database.Classify("list books", err)
}

// UpsertVerse stores the verse keyed by its (book, chapter, verse) triple.
// An existing verse keeps its row but all of its words are replaced by v.Words.
func (r *Repository) UpsertVerse(v *entities.Verse) error {
	if err := v.Validate(); err != nil {
		return err
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.Verse
		err := tx.Where("book = ? AND chapter = ? AND verse = ?", v.BookID, v.Chapter, v.Number).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			v.ID = 0
			if err := tx.Omit(clause.Associations).Create(v).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			v.ID = existing.ID
			if err := tx.Model(&existing).Updates(map[string]any{
				"text":      v.Text,
				"reference": v.Reference,
			}).Error; err != nil {
				return err
			}
			if err := tx.Where("verse_id = ?", v.ID).Delete(&entities.Word{}).Error; err != nil {
				return err
			}
		}

		if len(v.Words) == 0 {
			return nil
		}
		for i := range v.Words {
			v.Words[i].ID = 0
			v.Words[i].VerseID = v.ID
		}
		return tx.Create(&v.Words).Error
	})
	return database.Classify("upsert verse "+v.Ref().String(), err)
}

// GetVerse returns the verse with its words in position order, or nil when absent.
func (r *Repository) GetVerse(ref entities.VerseRef) (*entities.Verse, error) {
	var verse entities.Verse
	err := r.db.Preload("Words", orderedWords).
		Where("book = ? AND chapter = ? AND verse = ?", ref.Book, ref.Chapter, ref.Verse).
		First(&verse).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Classify("get verse "+ref.String(), err)
	}
	return &verse, nil
}

// GetChapter returns all verses of a chapter ordered by verse number.
func (r *Repository) GetChapter(book string, chapter int) ([]entities.Verse, error) {
	var verses []entities.Verse
	err := r.db.Preload("Words", orderedWords).
		Where("book = ? AND chapter = ?", book, chapter).
		Order("verse ASC").
		Find(&verses).Error
	return verses, database.Classify(fmt.Sprintf("get chapter %s %d", book, chapter), err)
}

// GetRandomVerse picks a verse uniformly at random; nil when no verse is stored.
func (r *Repository) GetRandomVerse() (*entities.Verse, error) {
	var verses []entities.Verse
	err := r.db.Preload("Words", orderedWords).
		Order("RANDOM()").
		Limit(1).
		Find(&verses).Error
	if err != nil {
		return nil, database.Classify("get random verse", err)
	}
	if len(verses) == 0 {
		return nil, nil
	}
	return &verses[0], nil
}

// DeleteVerse removes a verse and its words. Missing verses are ignored.
func (r *Repository) DeleteVerse(ref entities.VerseRef) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var verse entities.Verse
		err := tx.Where("book = ? AND chapter = ? AND verse = ?", ref.Book, ref.Chapter, ref.Verse).
			First(&verse).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("verse_id = ?", verse.ID).Delete(&entities.Word{}).Error; err != nil {
			return err
		}
		return tx.Delete(&verse).Error
	})
	return database.Classify("delete verse "+ref.String(), err)
}

// CountVerses returns how many verses of a chapter are stored.
func (r *Repository) CountVerses(book string, chapter int) (int, error) {
	var count int64
	err := r.db.Model(&entities.Verse{}).
		Where("book = ? AND chapter = ?", book, chapter).
		Count(&count).Error
	return int(count), database.Classify(fmt.Sprintf("count verses %s %d", book, chapter), err)
}
