package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/selah/internal/entities"
)

// models lists every table in dependency order. Reset drops them in reverse.
var models = []any{
	&entities.Book{},
	&entities.Verse{},
	&entities.Word{},
	&entities.LexiconEntry{},
	&entities.FavoriteVerse{},
	&entities.Highlight{},
	&entities.ReadingStats{},
	&entities.ReadingPlan{},
	&entities.ReadingPlanDay{},
	&entities.UserSettings{},
	&entities.Setting{},
}

const DefaultBusyTimeout = 5 * time.Second

type Database struct {
	DB   *gorm.DB
	path string
}

type options struct {
	busyTimeout time.Duration
	logLevel    logger.LogLevel
}

type Option func(*options)

// WithBusyTimeout bounds how long a statement waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) { o.busyTimeout = d }
}

func WithLogLevel(level logger.LogLevel) Option {
	return func(o *options) { o.logLevel = level }
}

// ParseLogLevel maps silent, error, warn and info to gorm log levels.
func ParseLogLevel(name string) logger.LogLevel {
	switch strings.ToLower(name) {
	case "info", "debug":
		return logger.Info
	case "warn", "warning":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}

// NewDatabase opens the SQLite file at dbPath and creates any missing tables.
func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	o := options{busyTimeout: DefaultBusyTimeout, logLevel: logger.Silent}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath, o.busyTimeout)), &gorm.Config{
		Logger: logger.Default.LogMode(o.logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to database %s: %w", ErrStorage, dbPath, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	// one connection keeps writes serialized and pragmas consistent
	sqlDB.SetMaxOpenConns(1)

	database := &Database{DB: db, path: dbPath}
	if err := database.Initialize(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return database, nil
}

func dsn(path string, busyTimeout time.Duration) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_foreign_keys=on&_busy_timeout=%d", path, sep, busyTimeout.Milliseconds())
}

func (d *Database) Path() string {
	return d.path
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Initialize creates all tables and indexes if absent and seeds the singleton
// rows. Safe to call on every start.
func (d *Database) Initialize() error {
	for _, model := range models {
		if err := d.DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("%w: migrate %T: %w", ErrSchema, model, Classify("migrate", err))
		}
	}

	if err := d.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.ReadingStats{ID: entities.SingletonID}).Error; err != nil {
		return fmt.Errorf("%w: seed reading stats: %w", ErrSchema, Classify("seed reading stats", err))
	}

	defaults := entities.DefaultUserSettings()
	if err := d.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error; err != nil {
		return fmt.Errorf("%w: seed user settings: %w", ErrSchema, Classify("seed user settings", err))
	}

	return nil
}

// IsSeeded reports whether reference data has been loaded.
func (d *Database) IsSeeded() (bool, error) {
	var count int64
	if err := d.DB.Model(&entities.Book{}).Count(&count).Error; err != nil {
		return false, Classify("count books", err)
	}
	return count > 0, nil
}

// Reset drops every table and recreates an empty schema. All data is lost.
func (d *Database) Reset() error {
	migrator := d.DB.Migrator()
	for i := len(models) - 1; i >= 0; i-- {
		if err := migrator.DropTable(models[i]); err != nil {
			return fmt.Errorf("%w: drop %T: %w", ErrSchema, models[i], Classify("drop", err))
		}
	}
	return d.Initialize()
}

// Counts summarises how much reference data is stored.
type Counts struct {
	Books          int64 `json:"books"`
	Verses         int64 `json:"verses"`
	Words          int64 `json:"words"`
	LexiconEntries int64 `json:"lexicon_entries"`
}

func (d *Database) Counts() (Counts, error) {
	var c Counts
	targets := []struct {
		model any
		dst   *int64
	}{
		{&entities.Book{}, &c.Books},
		{&entities.Verse{}, &c.Verses},
		{&entities.Word{}, &c.Words},
		{&entities.LexiconEntry{}, &c.LexiconEntries},
	}
	var errs []error
	for _, t := range targets {
		if err := d.DB.Model(t.model).Count(t.dst).Error; err != nil {
			errs = append(errs, Classify(fmt.Sprintf("count %T", t.model), err))
		}
	}
	return c, errors.Join(errs...)
}
