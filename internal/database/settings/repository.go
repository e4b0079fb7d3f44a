// Package settings provides database operations for user preferences and
// small pieces of application state.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	prefs, err := repo.GetUserSettings()
//	err = repo.SaveLastPosition("JHN", 3)
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*Repository)

// WithClock overrides time.Now for position timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetSetting retrieves a setting by key; nil when unset.
func (r *Repository) GetSetting(key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Classify("get setting "+key, err)
	}
	return &setting, nil
}

// SetSetting creates or updates a setting.
func (r *Repository) SetSetting(key, value string) error {
	setting := entities.Setting{Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	return database.Classify("set setting "+key, err)
}

// DeleteSetting removes a setting by key.
func (r *Repository) DeleteSetting(key string) error {
	err := r.db.Where("key = ?", key).Delete(&entities.Setting{}).Error
	return database.Classify("delete setting "+key, err)
}

// GetJSON decodes the setting into dst. It reports false when the key is unset.
func (r *Repository) GetJSON(key string, dst any) (bool, error) {
	setting, err := r.GetSetting(key)
	if err != nil || setting == nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(setting.Value), dst); err != nil {
		return false, fmt.Errorf("decode setting %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v encoded as JSON.
func (r *Repository) SetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	return r.SetSetting(key, string(data))
}

// GetUserSettings returns the stored preferences, or the defaults when the
// row is missing.
func (r *Repository) GetUserSettings() (entities.UserSettings, error) {
	var s entities.UserSettings
	err := r.db.Where("id = ?", entities.SingletonID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.DefaultUserSettings(), nil
	}
	if err != nil {
		return entities.UserSettings{}, database.Classify("get user settings", err)
	}
	return s, nil
}

func (r *Repository) saveUserSettings(tx *gorm.DB, s entities.UserSettings) error {
	s.ID = entities.SingletonID
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&s).Error
}

// UpdateUserSettings applies a partial update. The result is validated as a
// whole before anything is written.
func (r *Repository) UpdateUserSettings(patch entities.SettingsPatch) (entities.UserSettings, error) {
	var out entities.UserSettings
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current entities.UserSettings
		err := tx.Where("id = ?", entities.SingletonID).First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			current = entities.DefaultUserSettings()
		} else if err != nil {
			return database.Classify("load user settings", err)
		}

		next := patch.Apply(current)
		if err := next.Validate(); err != nil {
			return err
		}
		if err := r.saveUserSettings(tx, next); err != nil {
			return database.Classify("save user settings", err)
		}
		out = next
		return nil
	})
	if err != nil {
		return entities.UserSettings{}, fmt.Errorf("update user settings: %w", err)
	}
	return out, nil
}

// ResetUserSettings restores the defaults.
func (r *Repository) ResetUserSettings() (entities.UserSettings, error) {
	defaults := entities.DefaultUserSettings()
	if err := r.saveUserSettings(r.db, defaults); err != nil {
		return entities.UserSettings{}, database.Classify("reset user settings", err)
	}
	return defaults, nil
}

// SaveLastPosition remembers the chapter the reader is on.
func (r *Repository) SaveLastPosition(book string, chapter int) error {
	if book == "" || chapter < 1 {
		return fmt.Errorf("%w: position %s %d", entities.ErrInvalidReference, book, chapter)
	}
	return r.SetJSON(entities.SettingKeyLastPosition, entities.ReadingPosition{
		Book:      book,
		Chapter:   chapter,
		Timestamp: r.now().UTC(),
	})
}

// GetLastPosition returns nil when no position was saved.
func (r *Repository) GetLastPosition() (*entities.ReadingPosition, error) {
	var pos entities.ReadingPosition
	ok, err := r.GetJSON(entities.SettingKeyLastPosition, &pos)
	if err != nil || !ok {
		return nil, err
	}
	return &pos, nil
}

func (r *Repository) ClearLastPosition() error {
	return r.DeleteSetting(entities.SettingKeyLastPosition)
}
