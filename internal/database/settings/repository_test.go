package settings

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/entities"
)

var fixedNow = time.Date(2024, 6, 2, 21, 15, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB, WithClock(func() time.Time { return fixedNow })), db.DB
}

func TestRepository_SetSetting_New(t *testing.T) {
	repo, _ := setupTestDB(t)

	err := repo.SetSetting("verse_of_the_day_schedule", "0 6 * * *")
	require.NoError(t, err)

	setting, err := repo.GetSetting("verse_of_the_day_schedule")
	require.NoError(t, err)
	require.NotNil(t, setting)
	assert.Equal(t, "0 6 * * *", setting.Value)
}

func TestRepository_SetSetting_Update(t *testing.T) {
	repo, db := setupTestDB(t)

	require.NoError(t, repo.SetSetting("k", "light"))
	require.NoError(t, repo.SetSetting("k", "dark"))

	setting, err := repo.GetSetting("k")
	require.NoError(t, err)
	assert.Equal(t, "dark", setting.Value)

	var count int64
	require.NoError(t, db.Model(&entities.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_GetSetting_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	setting, err := repo.GetSetting("nonexistent")
	assert.NoError(t, err)
	assert.Nil(t, setting)
}

func TestRepository_DeleteSetting(t *testing.T) {
	repo, _ := setupTestDB(t)

	require.NoError(t, repo.SetSetting("to-delete", "value"))
	require.NoError(t, repo.DeleteSetting("to-delete"))

	setting, err := repo.GetSetting("to-delete")
	require.NoError(t, err)
	assert.Nil(t, setting)

	// Should not error even if key doesn't exist
	assert.NoError(t, repo.DeleteSetting("nonexistent"))
}

func TestRepository_JSON(t *testing.T) {
	repo, _ := setupTestDB(t)

	var dv entities.DailyVerse
	ok, err := repo.GetJSON(entities.SettingKeyVerseOfTheDay, &dv)
	require.NoError(t, err)
	assert.False(t, ok)

	want := entities.DailyVerse{Ref: entities.VerseRef{Book: "PSA", Chapter: 23, Verse: 1}, Date: "2024-06-02"}
	require.NoError(t, repo.SetJSON(entities.SettingKeyVerseOfTheDay, want))

	ok, err = repo.GetJSON(entities.SettingKeyVerseOfTheDay, &dv)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, dv)

	require.NoError(t, repo.SetSetting("broken", "{"))
	_, err = repo.GetJSON("broken", &dv)
	assert.Error(t, err)
}

func TestRepository_UserSettings_Defaults(t *testing.T) {
	repo, _ := setupTestDB(t)

	s, err := repo.GetUserSettings()
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultUserSettings(), s)
}

func TestRepository_UpdateUserSettings(t *testing.T) {
	repo, _ := setupTestDB(t)

	size := 20
	theme := entities.ThemeSepia
	off := false
	reminder := "07:30"
	s, err := repo.UpdateUserSettings(entities.SettingsPatch{
		FontSize:          &size,
		Theme:             &theme,
		ShowStrongNumbers: &off,
		DailyReminderTime: &reminder,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, s.FontSize)

	stored, err := repo.GetUserSettings()
	require.NoError(t, err)
	assert.Equal(t, 20, stored.FontSize)
	assert.Equal(t, entities.ThemeSepia, stored.Theme)
	assert.False(t, stored.ShowStrongNumbers)
	assert.True(t, stored.ShowVerseNumbers, "untouched fields keep their value")
	require.NotNil(t, stored.DailyReminderTime)
	assert.Equal(t, "07:30", *stored.DailyReminderTime)

	s, err = repo.UpdateUserSettings(entities.SettingsPatch{ClearDailyReminder: true})
	require.NoError(t, err)
	assert.Nil(t, s.DailyReminderTime)
	stored, err = repo.GetUserSettings()
	require.NoError(t, err)
	assert.Nil(t, stored.DailyReminderTime)
}

func TestRepository_UpdateUserSettings_Invalid(t *testing.T) {
	repo, _ := setupTestDB(t)

	tooBig := 40
	lh := 0.5
	theme := entities.Theme("neon")
	bad := "25:99"

	tests := []struct {
		name  string
		patch entities.SettingsPatch
	}{
		{"font size", entities.SettingsPatch{FontSize: &tooBig}},
		{"line height", entities.SettingsPatch{LineHeight: &lh}},
		{"theme", entities.SettingsPatch{Theme: &theme}},
		{"reminder", entities.SettingsPatch{DailyReminderTime: &bad}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.UpdateUserSettings(tt.patch)
			assert.ErrorIs(t, err, entities.ErrInvalidSettings)
		})
	}

	stored, err := repo.GetUserSettings()
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultUserSettings(), stored, "rejected patches write nothing")
}

func TestRepository_ResetUserSettings(t *testing.T) {
	repo, _ := setupTestDB(t)

	dark := entities.ThemeDark
	_, err := repo.UpdateUserSettings(entities.SettingsPatch{Theme: &dark})
	require.NoError(t, err)

	s, err := repo.ResetUserSettings()
	require.NoError(t, err)
	assert.Equal(t, entities.ThemeLight, s.Theme)

	stored, err := repo.GetUserSettings()
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultUserSettings(), stored)
}

func TestRepository_LastPosition(t *testing.T) {
	repo, _ := setupTestDB(t)

	pos, err := repo.GetLastPosition()
	require.NoError(t, err)
	assert.Nil(t, pos)

	require.NoError(t, repo.SaveLastPosition("ROM", 8))
	pos, err = repo.GetLastPosition()
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, "ROM", pos.Book)
	assert.Equal(t, 8, pos.Chapter)
	assert.True(t, pos.Timestamp.Equal(fixedNow))

	assert.ErrorIs(t, repo.SaveLastPosition("ROM", 0), entities.ErrInvalidReference)

	require.NoError(t, repo.ClearLastPosition())
	pos, err = repo.GetLastPosition()
	require.NoError(t, err)
	assert.Nil(t, pos)
}
