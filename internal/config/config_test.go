package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DataSourceSQLite, cfg.Database.Source)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, "silent", cfg.Database.LogLevel)
	assert.Equal(t, DefaultVerseOfTheDaySchedule, cfg.VerseOfTheDay.Schedule)
	assert.True(t, cfg.VerseOfTheDay.Enabled)
	assert.True(t, cfg.Seed.OnStart)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_Environment(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/bible.db")
	t.Setenv("DATA_SOURCE", "MOCK")
	t.Setenv("TIMEZONE", "Europe/Paris")
	t.Setenv("VERSE_OF_THE_DAY_SCHEDULE", "30 6 * * *")
	t.Setenv("TASK_WORKERS", "3")

	cfg := NewConfig()

	assert.Equal(t, "/tmp/bible.db", cfg.Database.Path)
	assert.Equal(t, DataSourceMock, cfg.Database.Source)
	assert.Equal(t, "30 6 * * *", cfg.VerseOfTheDay.Schedule)
	assert.Equal(t, 3, cfg.Tasks.Workers)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", loc.String())
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Path = ""
	cfg.Database.Source = "lueur"
	cfg.Reading.Timezone = "Mars/Olympus"
	cfg.VerseOfTheDay.Schedule = "not a cron"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "DATABASE_PATH")
	assert.Contains(t, msg, "DATA_SOURCE")
	assert.Contains(t, msg, "TIMEZONE")
	assert.Contains(t, msg, "VERSE_OF_THE_DAY_SCHEDULE")
}

func TestValidate_DisabledScheduleIsNotChecked(t *testing.T) {
	cfg := NewConfig()
	cfg.VerseOfTheDay.Enabled = false
	cfg.VerseOfTheDay.Schedule = "garbage"

	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SELAH_TEST_ONLY_KEY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SELAH_TEST_ONLY_KEY") })

	LoadEnvFiles(path, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "from-file", os.Getenv("SELAH_TEST_ONLY_KEY"))
}
