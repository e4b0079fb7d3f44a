package entities

import (
	"time"
)

// Setting is a free-form key/value row for application state that does not
// belong to user preferences.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	SettingKeyLastPosition = "last_reading_position"

	// Verse of the day
	SettingKeyVerseOfTheDay         = "verse_of_the_day"
	SettingKeyVerseOfTheDayEnabled  = "verse_of_the_day_enabled"
	SettingKeyVerseOfTheDaySchedule = "verse_of_the_day_schedule"
)

// ReadingPosition is where the reader last stopped.
type ReadingPosition struct {
	Book      string    `json:"book"`
	Chapter   int       `json:"chapter"`
	Timestamp time.Time `json:"timestamp"`
}

// DailyVerse is the verse picked for a given calendar day ("2006-01-02").
type DailyVerse struct {
	Ref  VerseRef `json:"ref"`
	Date string   `json:"date"`
}
