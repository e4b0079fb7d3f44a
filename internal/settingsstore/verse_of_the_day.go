package settingsstore

import (
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/selah/internal/entities"
)

const (
	envVerseOfTheDayEnabled  = "VERSE_OF_THE_DAY_ENABLED"
	envVerseOfTheDaySchedule = "VERSE_OF_THE_DAY_SCHEDULE"
)

// VerseOfTheDayConfig represents the effective configuration of the daily verse job
type VerseOfTheDayConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"`
}

// VerseOfTheDayConfigInfo includes source information for each field
type VerseOfTheDayConfigInfo struct {
	Enabled       bool   `json:"enabled"`
	EnabledSource string `json:"enabled_source"`

	Schedule       string `json:"schedule"`
	ScheduleSource string `json:"schedule_source"`
}

// GetVerseOfTheDayEnabled returns whether the job is enabled (database > env > default)
func (s *SettingsStore) GetVerseOfTheDayEnabled() bool {
	if v := s.databaseValue(entities.SettingKeyVerseOfTheDayEnabled); v != "" {
		return v == "true" || v == "1"
	}
	return s.fallback.Enabled
}

func (s *SettingsStore) GetVerseOfTheDayEnabledSource() string {
	return s.source(entities.SettingKeyVerseOfTheDayEnabled, envVerseOfTheDayEnabled)
}

func (s *SettingsStore) SetVerseOfTheDayEnabled(enabled bool) error {
	return s.kv.SetSetting(entities.SettingKeyVerseOfTheDayEnabled, strconv.FormatBool(enabled))
}

// GetVerseOfTheDaySchedule returns the cron schedule (database > env > default)
func (s *SettingsStore) GetVerseOfTheDaySchedule() string {
	if v := s.databaseValue(entities.SettingKeyVerseOfTheDaySchedule); v != "" {
		return v
	}
	return s.fallback.Schedule
}

func (s *SettingsStore) GetVerseOfTheDayScheduleSource() string {
	return s.source(entities.SettingKeyVerseOfTheDaySchedule, envVerseOfTheDaySchedule)
}

// SetVerseOfTheDaySchedule validates and saves the schedule
func (s *SettingsStore) SetVerseOfTheDaySchedule(schedule string) error {
	if err := ValidateCronSchedule(schedule); err != nil {
		return err
	}
	return s.kv.SetSetting(entities.SettingKeyVerseOfTheDaySchedule, schedule)
}

func (s *SettingsStore) GetVerseOfTheDayConfig() VerseOfTheDayConfig {
	return VerseOfTheDayConfig{
		Enabled:  s.GetVerseOfTheDayEnabled(),
		Schedule: s.GetVerseOfTheDaySchedule(),
	}
}

func (s *SettingsStore) GetVerseOfTheDayConfigInfo() VerseOfTheDayConfigInfo {
	return VerseOfTheDayConfigInfo{
		Enabled:        s.GetVerseOfTheDayEnabled(),
		EnabledSource:  s.GetVerseOfTheDayEnabledSource(),
		Schedule:       s.GetVerseOfTheDaySchedule(),
		ScheduleSource: s.GetVerseOfTheDayScheduleSource(),
	}
}

// ClearVerseOfTheDaySettings removes the database overrides, reverting to env/default
func (s *SettingsStore) ClearVerseOfTheDaySettings() error {
	for _, key := range []string{
		entities.SettingKeyVerseOfTheDayEnabled,
		entities.SettingKeyVerseOfTheDaySchedule,
	} {
		if err := s.kv.DeleteSetting(key); err != nil {
			return err
		}
	}
	return nil
}

// GetDailyVerse returns the last verse picked by the scheduler; nil if none.
func (s *SettingsStore) GetDailyVerse() (*entities.DailyVerse, error) {
	var daily entities.DailyVerse
	ok, err := s.kv.GetJSON(entities.SettingKeyVerseOfTheDay, &daily)
	if err != nil || !ok {
		return nil, err
	}
	return &daily, nil
}

func (s *SettingsStore) SetDailyVerse(daily entities.DailyVerse) error {
	return s.kv.SetJSON(entities.SettingKeyVerseOfTheDay, daily)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule validates a five-field cron schedule string
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 0 * * *":
		return "Daily at midnight"
	case "0 6 * * *":
		return "Daily at 06:00"
	case "0 * * * *":
		return "Every hour at :00"
	case "0 0 * * 0":
		return "Weekly on Sunday at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the schedule fires next after from
func GetNextRunTime(schedule string, from time.Time) (*time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(from)
	return &next, nil
}
