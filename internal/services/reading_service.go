// Package services is the facade the reading screens talk to. It combines the
// configured data source with the user-state repositories.
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mrlokans/selah/internal/datasource"
	"github.com/mrlokans/selah/internal/entities"
	"github.com/mrlokans/selah/internal/logger"
)

// DefaultVerse is shown when nothing else is available.
var DefaultVerse = entities.VerseRef{Book: "JHN", Chapter: 3, Verse: 16}

// ErrVerseNotFound is returned by operations that need an existing verse.
var ErrVerseNotFound = errors.New("verse not found")

// Stores groups the repositories the facade writes to.
type Stores struct {
	Favorites  FavoriteStore
	Highlights HighlightStore
	Plans      PlanStore
	Stats      StatsStore
	Settings   SettingsStore
}

// ReadingService exposes every reading operation through one type.
type ReadingService struct {
	source datasource.Source
	stores Stores
	log    *logger.Logger
	now    func() time.Time
	loc    *time.Location
}

type Option func(*ReadingService)

// WithClock overrides time.Now for the verse of the day.
func WithClock(now func() time.Time) Option {
	return func(s *ReadingService) { s.now = now }
}

// WithLocation sets the timezone that defines "today".
func WithLocation(loc *time.Location) Option {
	return func(s *ReadingService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets the logger; the default discards output.
func WithLogger(log *logger.Logger) Option {
	return func(s *ReadingService) { s.log = log.WithComponent("reading") }
}

// NewReadingService creates the facade.
func NewReadingService(source datasource.Source, stores Stores, opts ...Option) *ReadingService {
	s := &ReadingService{
		source: source,
		stores: stores,
		log:    logger.Discard(),
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the data source in use.
func (s *ReadingService) Source() datasource.Source {
	return s.source
}

// Scripture

func (s *ReadingService) GetVerse(ref entities.VerseRef) (*entities.Verse, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return s.source.GetVerse(ref)
}

func (s *ReadingService) GetChapter(book string, chapter int) ([]entities.Verse, error) {
	return s.source.GetChapter(book, chapter)
}

func (s *ReadingService) GetRandomVerse() (*entities.Verse, error) {
	return s.source.GetRandomVerse()
}

func (s *ReadingService) GetBook(id string) (*entities.Book, error) {
	return s.source.GetBook(id)
}

func (s *ReadingService) GetAllBooks() ([]entities.Book, error) {
	return s.source.GetAllBooks()
}

func (s *ReadingService) GetLexiconEntry(number string) (*entities.LexiconEntry, error) {
	return s.source.GetLexiconEntry(number)
}

func (s *ReadingService) SearchLexicon(query string, limit int) ([]entities.LexiconEntry, error) {
	return s.source.SearchLexicon(query, limit)
}

// VerseOfTheDay returns the verse stored by the scheduler for today, else a
// random verse, else DefaultVerse.
func (s *ReadingService) VerseOfTheDay() (VerseOfTheDay, error) {
	today := s.now().In(s.loc).Format(time.DateOnly)

	var daily entities.DailyVerse
	found, err := s.stores.Settings.GetJSON(entities.SettingKeyVerseOfTheDay, &daily)
	if err != nil {
		s.log.Warn("reading stored verse of the day", "error", err)
	}
	if found && daily.Date == today {
		verse, err := s.source.GetVerse(daily.Ref)
		if err != nil {
			return VerseOfTheDay{}, err
		}
		if verse != nil {
			return VerseOfTheDay{Ref: daily.Ref, Verse: verse, Origin: OriginScheduled}, nil
		}
		s.log.Warn("scheduled verse missing from data source", "ref", daily.Ref.String())
	}

	verse, err := s.source.GetRandomVerse()
	if err != nil {
		return VerseOfTheDay{}, err
	}
	if verse != nil {
		return VerseOfTheDay{Ref: verse.Ref(), Verse: verse, Origin: OriginRandom}, nil
	}

	verse, err = s.source.GetVerse(DefaultVerse)
	if err != nil {
		return VerseOfTheDay{}, err
	}
	return VerseOfTheDay{Ref: DefaultVerse, Verse: verse, Origin: OriginDefault}, nil
}

// Favourites

// SetFavorite saves the verse as a favourite with a snapshot of its text.
func (s *ReadingService) SetFavorite(ref entities.VerseRef, note *string) error {
	verse, err := s.GetVerse(ref)
	if err != nil {
		return err
	}
	if verse == nil {
		return fmt.Errorf("%w: %s", ErrVerseNotFound, ref)
	}
	return s.stores.Favorites.SetFavorite(ref, verse.Text, verse.Reference, note)
}

func (s *ReadingService) UpdateFavoriteNote(ref entities.VerseRef, note *string) (bool, error) {
	return s.stores.Favorites.UpdateFavoriteNote(ref, note)
}

func (s *ReadingService) RemoveFavorite(ref entities.VerseRef) error {
	return s.stores.Favorites.RemoveFavorite(ref)
}

func (s *ReadingService) IsFavorite(ref entities.VerseRef) (bool, error) {
	return s.stores.Favorites.IsFavorite(ref)
}

func (s *ReadingService) GetFavorite(ref entities.VerseRef) (*entities.FavoriteVerse, error) {
	return s.stores.Favorites.GetFavorite(ref)
}

func (s *ReadingService) ListFavorites() ([]entities.FavoriteVerse, error) {
	return s.stores.Favorites.ListFavorites()
}

// Highlights

func (s *ReadingService) SetHighlight(ref entities.VerseRef, color entities.HighlightColor) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	return s.stores.Highlights.SetHighlight(ref, color)
}

func (s *ReadingService) RemoveHighlight(ref entities.VerseRef) error {
	return s.stores.Highlights.RemoveHighlight(ref)
}

func (s *ReadingService) GetHighlight(ref entities.VerseRef) (*entities.Highlight, error) {
	return s.stores.Highlights.GetHighlight(ref)
}

func (s *ReadingService) GetChapterHighlights(book string, chapter int) (map[int]entities.HighlightColor, error) {
	return s.stores.Highlights.GetChapterHighlights(book, chapter)
}

func (s *ReadingService) ListHighlights() ([]entities.Highlight, error) {
	return s.stores.Highlights.ListHighlights()
}

func (s *ReadingService) CountHighlightsByColor() (map[entities.HighlightColor]int, error) {
	return s.stores.Highlights.CountByColor()
}

// Reading plans

func (s *ReadingService) ListPlans() ([]entities.ReadingPlan, error) {
	return s.stores.Plans.ListPlans()
}

func (s *ReadingService) GetPlan(id string) (*entities.ReadingPlan, error) {
	return s.stores.Plans.GetPlan(id)
}

func (s *ReadingService) CreatePlan(name, description string, days []entities.ReadingPlanDay) (*entities.ReadingPlan, error) {
	return s.stores.Plans.CreatePlan(name, description, days)
}

func (s *ReadingService) DeletePlan(id string) error {
	return s.stores.Plans.DeletePlan(id)
}

func (s *ReadingService) StartPlan(id string) (*entities.ReadingPlan, error) {
	plan, err := s.stores.Plans.StartPlan(id)
	if err != nil {
		return nil, err
	}
	s.log.WithPlan(id).Info("plan started", "current_day", plan.CurrentDay)
	return plan, nil
}

func (s *ReadingService) CompleteDay(id string, day int) (*entities.ReadingPlan, error) {
	plan, err := s.stores.Plans.CompleteDay(id, day)
	if err != nil {
		return nil, err
	}
	s.log.WithPlan(id).Info("plan day completed", "day", day, "current_day", plan.CurrentDay, "completed", plan.Completed)
	return plan, nil
}

func (s *ReadingService) ResetPlan(id string) (*entities.ReadingPlan, error) {
	return s.stores.Plans.ResetPlan(id)
}

// Reading stats

func (s *ReadingService) GetStats() (entities.ReadingStats, error) {
	return s.stores.Stats.GetStats()
}

func (s *ReadingService) RecordChapterRead(verseCount int) (entities.ReadingStats, error) {
	return s.stores.Stats.RecordChapterRead(verseCount)
}

func (s *ReadingService) AddReadingTime(minutes int) (entities.ReadingStats, error) {
	return s.stores.Stats.AddReadingTime(minutes)
}

func (s *ReadingService) ResetStats() error {
	return s.stores.Stats.ResetStats()
}

// RecordReading handles a finished chapter: completes the plan day when one
// is given, counts the chapter in the stats, adds any reading time and saves
// the reading position.
func (s *ReadingService) RecordReading(event ReadingEvent) (ReadingResult, error) {
	var result ReadingResult

	if event.PlanID != "" {
		plan, err := s.CompleteDay(event.PlanID, event.PlanDay)
		if err != nil {
			return result, err
		}
		result.Plan = plan
	}

	count := event.VerseCount
	if count <= 0 && event.Book != "" {
		verses, err := s.source.GetChapter(event.Book, event.Chapter)
		if err != nil {
			return result, fmt.Errorf("count verses of %s %d: %w", event.Book, event.Chapter, err)
		}
		count = len(verses)
	}

	stats, err := s.stores.Stats.RecordChapterRead(count)
	if err != nil {
		return result, err
	}
	if event.Minutes > 0 {
		if stats, err = s.stores.Stats.AddReadingTime(event.Minutes); err != nil {
			return result, err
		}
	}
	result.Stats = stats

	if event.Book != "" && event.Chapter > 0 {
		if err := s.stores.Settings.SaveLastPosition(event.Book, event.Chapter); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Settings

func (s *ReadingService) GetSettings() (entities.UserSettings, error) {
	return s.stores.Settings.GetUserSettings()
}

func (s *ReadingService) UpdateSettings(patch entities.SettingsPatch) (entities.UserSettings, error) {
	return s.stores.Settings.UpdateUserSettings(patch)
}

func (s *ReadingService) ResetSettings() (entities.UserSettings, error) {
	return s.stores.Settings.ResetUserSettings()
}

func (s *ReadingService) SaveLastPosition(book string, chapter int) error {
	return s.stores.Settings.SaveLastPosition(book, chapter)
}

func (s *ReadingService) GetLastPosition() (*entities.ReadingPosition, error) {
	return s.stores.Settings.GetLastPosition()
}

func (s *ReadingService) ClearLastPosition() error {
	return s.stores.Settings.ClearLastPosition()
}
