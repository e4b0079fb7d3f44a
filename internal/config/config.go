package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type DataSource string

const (
	DataSourceSQLite DataSource = "sqlite"
	DataSourceMock   DataSource = "mock"
)

type (
	Config struct {
		Global
		Database
		Log
		Reading
		Seed
		VerseOfTheDay
		Tasks
		Export
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path        string
		Source      DataSource
		BusyTimeout time.Duration // sanity timeout for a locked database
		LogLevel    string        // gorm logger: silent, error, warn, info
	}
	Log struct {
		Level  string
		Format string
	}
	Reading struct {
		Timezone string // calendar-day boundaries for streaks; "Local" or an IANA name
	}
	Seed struct {
		OnStart   bool
		BiblePath string // optional full-Bible JSON
	}
	VerseOfTheDay struct {
		Enabled  bool
		Schedule string // Cron format: "0 0 * * *" = daily at midnight
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		MaxRetries      int
		TaskTimeout     time.Duration
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
		Retention       time.Duration
	}
	Export struct {
		Dir string
	}
)

// LoadEnvFiles loads the given .env files (or ".env" when none are given) into
// the process environment. Missing files are ignored; variables already set win.
func LoadEnvFiles(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("data_source", string(DataSourceSQLite))
	v.SetDefault("db_busy_timeout", "5s")
	v.SetDefault("db_log_level", "silent")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("timezone", "Local")
	v.SetDefault("seed_on_start", true)
	v.SetDefault("seed_bible_path", "")
	v.SetDefault("verse_of_the_day_enabled", true)
	v.SetDefault("verse_of_the_day_schedule", DefaultVerseOfTheDaySchedule)
	v.SetDefault("export_dir", "./export")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_timeout", "10m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	return &Config{
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:        v.GetString("DATABASE_PATH"),
			Source:      DataSource(strings.ToLower(v.GetString("DATA_SOURCE"))),
			BusyTimeout: v.GetDuration("DB_BUSY_TIMEOUT"),
			LogLevel:    v.GetString("DB_LOG_LEVEL"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Reading: Reading{
			Timezone: v.GetString("TIMEZONE"),
		},
		Seed: Seed{
			OnStart:   v.GetBool("SEED_ON_START"),
			BiblePath: v.GetString("SEED_BIBLE_PATH"),
		},
		VerseOfTheDay: VerseOfTheDay{
			Enabled:  v.GetBool("VERSE_OF_THE_DAY_ENABLED"),
			Schedule: v.GetString("VERSE_OF_THE_DAY_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			MaxRetries:      v.GetInt("TASK_MAX_RETRIES"),
			TaskTimeout:     v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
			Retention:       v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Export: Export{
			Dir: v.GetString("EXPORT_DIR"),
		},
	}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Reading.Timezone == "" || c.Reading.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Reading.Timezone)
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Path == "" {
		errs = append(errs, errors.New("DATABASE_PATH must not be empty"))
	}
	switch c.Database.Source {
	case DataSourceSQLite, DataSourceMock:
	default:
		errs = append(errs, fmt.Errorf("DATA_SOURCE %q must be one of sqlite, mock", c.Database.Source))
	}
	if c.Database.BusyTimeout < 0 {
		errs = append(errs, fmt.Errorf("DB_BUSY_TIMEOUT must not be negative, got %s", c.Database.BusyTimeout))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q: %w", c.Reading.Timezone, err))
	}
	if c.VerseOfTheDay.Enabled {
		if _, err := cron.ParseStandard(c.VerseOfTheDay.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("VERSE_OF_THE_DAY_SCHEDULE %q: %w", c.VerseOfTheDay.Schedule, err))
		}
	}
	if c.Tasks.Enabled && c.Tasks.Workers < 1 {
		errs = append(errs, fmt.Errorf("TASK_WORKERS must be at least 1, got %d", c.Tasks.Workers))
	}
	return errors.Join(errs...)
}
