// Package settingsstore resolves runtime settings that can be changed while
// the app runs. Priority: database > environment > default.
package settingsstore

import (
	"os"

	"github.com/mrlokans/selah/internal/config"
	"github.com/mrlokans/selah/internal/entities"
)

const (
	SourceDatabase    = "database"
	SourceEnvironment = "environment"
	SourceDefault     = "default"
)

// KV is the key/value settings table.
type KV interface {
	GetSetting(key string) (*entities.Setting, error)
	SetSetting(key, value string) error
	DeleteSetting(key string) error
	GetJSON(key string, dst any) (bool, error)
	SetJSON(key string, v any) error
}

type SettingsStore struct {
	kv       KV
	fallback config.VerseOfTheDay
}

// New builds a store over kv. fallback carries the environment (or default)
// values loaded at startup.
func New(kv KV, fallback config.VerseOfTheDay) *SettingsStore {
	if fallback.Schedule == "" {
		fallback.Schedule = config.DefaultVerseOfTheDaySchedule
	}
	return &SettingsStore{kv: kv, fallback: fallback}
}

// databaseValue returns the stored value, or "" when unset or unreadable.
func (s *SettingsStore) databaseValue(key string) string {
	setting, err := s.kv.GetSetting(key)
	if err != nil || setting == nil {
		return ""
	}
	return setting.Value
}

func (s *SettingsStore) source(key, envName string) string {
	if s.databaseValue(key) != "" {
		return SourceDatabase
	}
	if _, ok := os.LookupEnv(envName); ok {
		return SourceEnvironment
	}
	return SourceDefault
}
