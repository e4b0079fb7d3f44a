package entities

import (
	"fmt"
	"time"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeSepia Theme = "sepia"
)

const (
	MinFontSize   = 12
	MaxFontSize   = 32
	MinLineHeight = 1.0
	MaxLineHeight = 3.0

	reminderLayout = "15:04"
)

// UserSettings is the single row of reading preferences.
type UserSettings struct {
	ID                   uint    `gorm:"primaryKey" json:"-"`
	FontSize             int     `gorm:"not null" json:"font_size"`
	LineHeight           float64 `gorm:"not null" json:"line_height"`
	Theme                Theme   `gorm:"size:10;not null" json:"theme"`
	ShowVerseNumbers     bool    `gorm:"not null" json:"show_verse_numbers"`
	ShowStrongNumbers    bool    `gorm:"not null" json:"show_strong_numbers"`
	AutoPlayAudio        bool    `gorm:"not null" json:"auto_play_audio"`
	NotificationsEnabled bool    `gorm:"not null" json:"notifications_enabled"`
	DailyReminderTime    *string `gorm:"size:5" json:"daily_reminder_time,omitempty"` // "HH:MM"
}

func (UserSettings) TableName() string {
	return "user_settings"
}

// DefaultUserSettings returns the settings of a fresh install.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		ID:                   SingletonID,
		FontSize:             16,
		LineHeight:           1.8,
		Theme:                ThemeLight,
		ShowVerseNumbers:     true,
		ShowStrongNumbers:    true,
		AutoPlayAudio:        false,
		NotificationsEnabled: true,
	}
}

// Validate reports every out-of-range field at once.
func (s UserSettings) Validate() error {
	var problems []string
	if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
		problems = append(problems, fmt.Sprintf("font size %d not in [%d, %d]", s.FontSize, MinFontSize, MaxFontSize))
	}
	if s.LineHeight < MinLineHeight || s.LineHeight > MaxLineHeight {
		problems = append(problems, fmt.Sprintf("line height %.2f not in [%.1f, %.1f]", s.LineHeight, MinLineHeight, MaxLineHeight))
	}
	switch s.Theme {
	case ThemeLight, ThemeDark, ThemeSepia:
	default:
		problems = append(problems, fmt.Sprintf("unknown theme %q", string(s.Theme)))
	}
	if s.DailyReminderTime != nil {
		if _, err := time.Parse(reminderLayout, *s.DailyReminderTime); err != nil {
			problems = append(problems, fmt.Sprintf("reminder time %q is not HH:MM", *s.DailyReminderTime))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, problems)
	}
	return nil
}

// SettingsPatch is a partial update; nil fields are left unchanged.
// ClearDailyReminder removes the reminder time.
type SettingsPatch struct {
	FontSize             *int     `json:"font_size,omitempty"`
	LineHeight           *float64 `json:"line_height,omitempty"`
	Theme                *Theme   `json:"theme,omitempty"`
	ShowVerseNumbers     *bool    `json:"show_verse_numbers,omitempty"`
	ShowStrongNumbers    *bool    `json:"show_strong_numbers,omitempty"`
	AutoPlayAudio        *bool    `json:"auto_play_audio,omitempty"`
	NotificationsEnabled *bool    `json:"notifications_enabled,omitempty"`
	DailyReminderTime    *string  `json:"daily_reminder_time,omitempty"`
	ClearDailyReminder   bool     `json:"clear_daily_reminder,omitempty"`
}

// Apply returns a copy of s with the patch applied.
func (p SettingsPatch) Apply(s UserSettings) UserSettings {
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.LineHeight != nil {
		s.LineHeight = *p.LineHeight
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.ShowVerseNumbers != nil {
		s.ShowVerseNumbers = *p.ShowVerseNumbers
	}
	if p.ShowStrongNumbers != nil {
		s.ShowStrongNumbers = *p.ShowStrongNumbers
	}
	if p.AutoPlayAudio != nil {
		s.AutoPlayAudio = *p.AutoPlayAudio
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.DailyReminderTime != nil {
		v := *p.DailyReminderTime
		s.DailyReminderTime = &v
	}
	if p.ClearDailyReminder {
		s.DailyReminderTime = nil
	}
	return s
}
