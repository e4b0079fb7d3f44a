package services

import "github.com/mrlokans/selah/internal/entities"

// FavoriteStore persists favourite verses.
type FavoriteStore interface {
	SetFavorite(ref entities.VerseRef, verseText, reference string, note *string) error
	UpdateFavoriteNote(ref entities.VerseRef, note *string) (bool, error)
	RemoveFavorite(ref entities.VerseRef) error
	IsFavorite(ref entities.VerseRef) (bool, error)
	GetFavorite(ref entities.VerseRef) (*entities.FavoriteVerse, error)
	ListFavorites() ([]entities.FavoriteVerse, error)
}

// HighlightStore persists verse highlights.
type HighlightStore interface {
	SetHighlight(ref entities.VerseRef, color entities.HighlightColor) error
	RemoveHighlight(ref entities.VerseRef) error
	GetHighlight(ref entities.VerseRef) (*entities.Highlight, error)
	GetChapterHighlights(book string, chapter int) (map[int]entities.HighlightColor, error)
	ListHighlights() ([]entities.Highlight, error)
	CountByColor() (map[entities.HighlightColor]int, error)
}

// PlanStore manages reading plans and their progress.
type PlanStore interface {
	ListPlans() ([]entities.ReadingPlan, error)
	GetPlan(id string) (*entities.ReadingPlan, error)
	CreatePlan(name, description string, days []entities.ReadingPlanDay) (*entities.ReadingPlan, error)
	DeletePlan(id string) error
	StartPlan(id string) (*entities.ReadingPlan, error)
	CompleteDay(id string, day int) (*entities.ReadingPlan, error)
	ResetPlan(id string) (*entities.ReadingPlan, error)
}

// StatsStore keeps the reading statistics.
type StatsStore interface {
	GetStats() (entities.ReadingStats, error)
	RecordChapterRead(verseCount int) (entities.ReadingStats, error)
	AddReadingTime(minutes int) (entities.ReadingStats, error)
	ResetStats() error
}

// SettingsStore keeps user preferences and small app state.
type SettingsStore interface {
	GetUserSettings() (entities.UserSettings, error)
	UpdateUserSettings(patch entities.SettingsPatch) (entities.UserSettings, error)
	ResetUserSettings() (entities.UserSettings, error)
	SaveLastPosition(book string, chapter int) error
	GetLastPosition() (*entities.ReadingPosition, error)
	ClearLastPosition() error
	GetJSON(key string, dst any) (bool, error)
}

// ReadingEvent is a finished reading of one chapter, optionally tied to a
// plan day. VerseCount of zero means "look it up".
type ReadingEvent struct {
	Book       string
	Chapter    int
	VerseCount int
	PlanID     string
	PlanDay    int
	Minutes    int
}

// ReadingResult is the state after a ReadingEvent was recorded.
type ReadingResult struct {
	Stats entities.ReadingStats
	Plan  *entities.ReadingPlan
}

// DailyVerseOrigin tells where the verse of the day came from.
type DailyVerseOrigin string

const (
	OriginScheduled DailyVerseOrigin = "scheduled"
	OriginRandom    DailyVerseOrigin = "random"
	OriginDefault   DailyVerseOrigin = "default"
)

// VerseOfTheDay is the verse shown on the home screen. Verse is nil when the
// default reference is not in the data source either.
type VerseOfTheDay struct {
	Ref    entities.VerseRef
	Verse  *entities.Verse
	Origin DailyVerseOrigin
}
