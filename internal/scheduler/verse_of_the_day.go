// Package scheduler runs the periodic jobs of a long-running selah process.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/selah/internal/entities"
	"github.com/mrlokans/selah/internal/logger"
	"github.com/mrlokans/selah/internal/settingsstore"
)

// ErrNoVerses is returned by RunNow when the data source holds no verse.
var ErrNoVerses = errors.New("no verse available")

// VersePicker picks the next verse of the day.
type VersePicker interface {
	GetRandomVerse() (*entities.Verse, error)
}

// DailyVerseStore reads the scheduler settings and keeps the chosen verse.
type DailyVerseStore interface {
	GetVerseOfTheDayConfig() settingsstore.VerseOfTheDayConfig
	SetDailyVerse(daily entities.DailyVerse) error
}

// VerseOfTheDayScheduler picks a random verse on a cron schedule and stores
// it with the date it is meant for.
type VerseOfTheDayScheduler struct {
	picker VersePicker
	store  DailyVerseStore
	log    *logger.Logger
	now    func() time.Time
	loc    *time.Location

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewVerseOfTheDayScheduler creates a new scheduler instance. Schedules are
// evaluated in loc.
func NewVerseOfTheDayScheduler(picker VersePicker, store DailyVerseStore, loc *time.Location, log *logger.Logger) *VerseOfTheDayScheduler {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Discard()
	}
	return &VerseOfTheDayScheduler{
		picker: picker,
		store:  store,
		log:    log.WithComponent("verse_of_the_day"),
		now:    time.Now,
		loc:    loc,
	}
}

func (s *VerseOfTheDayScheduler) newCron() *cron.Cron {
	return cron.New(
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)),
		cron.WithLocation(s.loc),
	)
}

// Start begins the scheduler if the job is enabled. Cancelling ctx stops it.
func (s *VerseOfTheDayScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	config := s.store.GetVerseOfTheDayConfig()
	if !config.Enabled {
		s.log.Info("scheduler disabled")
		return nil
	}

	if err := settingsstore.ValidateCronSchedule(config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.Schedule, err)
	}

	c := s.newCron()
	entryID, err := c.AddFunc(config.Schedule, func() {
		if _, err := s.run(); err != nil {
			s.log.Error("verse of the day run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule verse of the day: %w", err)
	}
	s.cron = c
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(config.Schedule, s.now().In(s.loc))
	s.log.Info("scheduler started",
		"schedule", config.Schedule,
		"description", settingsstore.GetCronDescription(config.Schedule),
		"next_run", nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the scheduler.
func (s *VerseOfTheDayScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	s.log.Info("scheduler stopped")
}

// Reschedule restarts the scheduler with the current settings.
func (s *VerseOfTheDayScheduler) Reschedule(ctx context.Context) error {
	s.Stop()
	return s.Start(ctx)
}

// RunNow picks and stores a verse immediately, regardless of the schedule.
func (s *VerseOfTheDayScheduler) RunNow() (entities.DailyVerse, error) {
	return s.run()
}

// IsRunning returns whether the scheduler is active
func (s *VerseOfTheDayScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next pick will occur; nil when stopped.
func (s *VerseOfTheDayScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	next := entry.Next
	return &next
}

func (s *VerseOfTheDayScheduler) run() (entities.DailyVerse, error) {
	verse, err := s.picker.GetRandomVerse()
	if err != nil {
		return entities.DailyVerse{}, fmt.Errorf("pick verse: %w", err)
	}
	if verse == nil {
		return entities.DailyVerse{}, ErrNoVerses
	}

	daily := entities.DailyVerse{
		Ref:  verse.Ref(),
		Date: s.now().In(s.loc).Format(time.DateOnly),
	}
	if err := s.store.SetDailyVerse(daily); err != nil {
		return entities.DailyVerse{}, fmt.Errorf("store verse of the day: %w", err)
	}
	s.log.Info("verse of the day picked", "ref", daily.Ref.String(), "date", daily.Date)
	return daily, nil
}
