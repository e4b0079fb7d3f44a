package entities

import (
	"time"
)

// SingletonID is the fixed primary key of single-row tables.
const SingletonID uint = 1

// ReadingStats is the single row of cumulative reading counters.
type ReadingStats struct {
	ID                      uint       `gorm:"primaryKey" json:"-"`
	TotalChaptersRead       int        `gorm:"not null" json:"total_chapters_read"`
	TotalVersesRead         int        `gorm:"not null" json:"total_verses_read"`
	CurrentStreak           int        `gorm:"not null" json:"current_streak"`
	LongestStreak           int        `gorm:"not null" json:"longest_streak"`
	LastReadDate            *time.Time `json:"last_read_date,omitempty"`
	ChaptersReadToday       int        `gorm:"not null" json:"chapters_read_today"`
	TotalReadingTimeMinutes int        `gorm:"not null" json:"total_reading_time_minutes"`
}

func (ReadingStats) TableName() string {
	return "reading_stats"
}
