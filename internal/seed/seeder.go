// Package seed loads reference data (books, verses, lexicon) and the preset
// reading plans into the database.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/database/lexicon"
	"github.com/mrlokans/selah/internal/database/plans"
	"github.com/mrlokans/selah/internal/database/scripture"
	"github.com/mrlokans/selah/internal/entities"
	"github.com/mrlokans/selah/internal/logger"
)

// ErrSeeding wraps every failure of a seeding batch.
var ErrSeeding = errors.New("seeding failed")

// Report counts what a seeding run wrote.
type Report struct {
	Skipped        bool `json:"skipped"`
	Books          int  `json:"books"`
	Verses         int  `json:"verses"`
	LexiconEntries int  `json:"lexicon_entries"`
	PlansCreated   bool `json:"plans_created"`
}

type Seeder struct {
	db      *database.Database
	dataset *Dataset
	log     *logger.Logger
}

func NewSeeder(db *database.Database, dataset *Dataset, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Discard()
	}
	return &Seeder{db: db, dataset: dataset, log: log.WithComponent("seed")}
}

// batch collects item failures so a run attempts everything before failing.
type batch struct {
	errs []error
}

func (b *batch) add(item string, err error) {
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", item, err))
	}
}

func (b *batch) err() error {
	if len(b.errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d item(s): %w", ErrSeeding, len(b.errs), errors.Join(b.errs...))
}

// Seed populates an empty database. It does nothing to reference data when
// books already exist. Preset plans are created if missing either way.
func (s *Seeder) Seed() (Report, error) {
	var report Report

	created, err := plans.NewRepository(s.db.DB).InitializeDefaultPlans()
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrSeeding, err)
	}
	report.PlansCreated = created

	seeded, err := s.db.IsSeeded()
	if err != nil {
		return report, err
	}
	if seeded {
		s.log.Info("database already seeded, skipping reference data")
		report.Skipped = true
		return report, nil
	}

	s.log.Info("seeding reference data",
		"books", len(s.dataset.Books),
		"verses", len(s.dataset.Verses),
		"lexicon", len(s.dataset.Lexicon))

	var b batch
	verses := scripture.NewRepository(s.db.DB)
	for i := range s.dataset.Books {
		book := s.dataset.Books[i]
		err := verses.UpsertBook(&book)
		b.add("book "+book.ID, err)
		if err == nil {
			report.Books++
		}
	}
	for i := range s.dataset.Verses {
		verse := cloneVerse(s.dataset.Verses[i])
		err := verses.UpsertVerse(&verse)
		b.add("verse "+verse.Ref().String(), err)
		if err == nil {
			report.Verses++
		}
	}
	lex := lexicon.NewRepository(s.db.DB)
	for i := range s.dataset.Lexicon {
		entry := s.dataset.Lexicon[i]
		err := lex.UpsertEntry(&entry)
		b.add("lexicon "+entry.Number, err)
		if err == nil {
			report.LexiconEntries++
		}
	}

	if err := b.err(); err != nil {
		s.log.Error("seeding incomplete", "error", err,
			"books", report.Books, "verses", report.Verses, "lexicon", report.LexiconEntries)
		return report, err
	}

	counts, err := s.db.Counts()
	if err == nil {
		s.log.Info("seeding finished",
			"books", counts.Books, "verses", counts.Verses,
			"words", counts.Words, "lexicon", counts.LexiconEntries)
	}
	return report, nil
}

// Reseed wipes the database and seeds it again.
func (s *Seeder) Reseed() (Report, error) {
	s.log.Warn("resetting database before seeding", "path", s.db.Path())
	if err := s.db.Reset(); err != nil {
		return Report{}, err
	}
	return s.Seed()
}

// ImportBibleFile loads a full Bible export from disk. See ImportBible.
func (s *Seeder) ImportBibleFile(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open bible json: %w", err)
	}
	defer f.Close()
	return s.ImportBible(f)
}

// ImportBible upserts every verse of a full Bible export. Each book is written
// in its own transaction; a failing verse is reported without stopping the
// rest of the import.
func (s *Seeder) ImportBible(r io.Reader) (Report, error) {
	var report Report

	bible, err := DecodeBibleJSON(r)
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrSeeding, err)
	}
	books, err := bible.Books()
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrSeeding, err)
	}

	s.log.Info("importing bible", "abbreviation", bible.Abbreviation, "books", len(books))

	var b batch
	for _, bv := range books {
		book := bv.Book
		err := s.db.DB.Transaction(func(tx *gorm.DB) error {
			repo := scripture.NewRepository(tx)
			if err := repo.UpsertBook(&book); err != nil {
				return err
			}
			for i := range bv.Verses {
				verse := bv.Verses[i]
				err := repo.UpsertVerse(&verse)
				b.add("verse "+verse.Ref().String(), err)
				if err == nil {
					report.Verses++
				}
			}
			return nil
		})
		b.add("book "+book.ID, err)
		if err == nil {
			report.Books++
			s.log.Debug("imported book", "book", book.ID, "verses", len(bv.Verses))
		}
	}

	if err := b.err(); err != nil {
		s.log.Error("bible import incomplete", "error", err)
		return report, err
	}
	s.log.Info("bible import finished", "books", report.Books, "verses", report.Verses)
	return report, nil
}

func cloneVerse(v entities.Verse) entities.Verse {
	v.Words = append([]entities.Word(nil), v.Words...)
	return v
}
