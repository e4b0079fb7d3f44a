package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/selah/internal/entities"
	"github.com/mrlokans/selah/internal/settingsstore"
)

type stubPicker struct {
	verse *entities.Verse
	err   error
}

func (p stubPicker) GetRandomVerse() (*entities.Verse, error) {
	return p.verse, p.err
}

type memoryStore struct {
	mu     sync.Mutex
	config settingsstore.VerseOfTheDayConfig
	saved  []entities.DailyVerse
}

func (m *memoryStore) GetVerseOfTheDayConfig() settingsstore.VerseOfTheDayConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

func (m *memoryStore) SetDailyVerse(daily entities.DailyVerse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, daily)
	return nil
}

var psalm = &entities.Verse{BookID: "PSA", Chapter: 23, Number: 1, Text: "L'Éternel est mon berger"}

func newTestScheduler(picker VersePicker, store DailyVerseStore) *VerseOfTheDayScheduler {
	s := NewVerseOfTheDayScheduler(picker, store, time.UTC, nil)
	s.now = func() time.Time { return time.Date(2024, 5, 10, 23, 30, 0, 0, time.UTC) }
	return s
}

func TestRunNow_StoresVerseWithDate(t *testing.T) {
	store := &memoryStore{}
	s := newTestScheduler(stubPicker{verse: psalm}, store)

	daily, err := s.RunNow()
	require.NoError(t, err)

	want := entities.DailyVerse{Ref: entities.VerseRef{Book: "PSA", Chapter: 23, Verse: 1}, Date: "2024-05-10"}
	assert.Equal(t, want, daily)
	assert.Equal(t, []entities.DailyVerse{want}, store.saved)
}

func TestRunNow_DateFollowsLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	store := &memoryStore{}
	s := NewVerseOfTheDayScheduler(stubPicker{verse: psalm}, store, paris, nil)
	s.now = func() time.Time { return time.Date(2024, 5, 10, 23, 30, 0, 0, time.UTC) }

	daily, err := s.RunNow()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-11", daily.Date)
}

func TestRunNow_Errors(t *testing.T) {
	t.Run("empty source", func(t *testing.T) {
		store := &memoryStore{}
		_, err := newTestScheduler(stubPicker{}, store).RunNow()
		assert.ErrorIs(t, err, ErrNoVerses)
		assert.Empty(t, store.saved)
	})

	t.Run("picker failure", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := newTestScheduler(stubPicker{err: boom}, &memoryStore{}).RunNow()
		assert.ErrorIs(t, err, boom)
	})
}

func TestStart_Disabled(t *testing.T) {
	s := newTestScheduler(stubPicker{verse: psalm}, &memoryStore{})

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRunTime())
}

func TestStart_InvalidSchedule(t *testing.T) {
	store := &memoryStore{config: settingsstore.VerseOfTheDayConfig{Enabled: true, Schedule: "nope"}}
	s := newTestScheduler(stubPicker{verse: psalm}, store)

	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestStartStopReschedule(t *testing.T) {
	store := &memoryStore{config: settingsstore.VerseOfTheDayConfig{Enabled: true, Schedule: "0 0 * * *"}}
	s := newTestScheduler(stubPicker{verse: psalm}, store)

	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.NextRunTime())

	require.NoError(t, s.Start(context.Background()), "second start is a no-op")

	store.mu.Lock()
	store.config.Enabled = false
	store.mu.Unlock()
	require.NoError(t, s.Reschedule(context.Background()))
	assert.False(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	store := &memoryStore{config: settingsstore.VerseOfTheDayConfig{Enabled: true, Schedule: "0 0 * * *"}}
	s := newTestScheduler(stubPicker{verse: psalm}, store)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}
