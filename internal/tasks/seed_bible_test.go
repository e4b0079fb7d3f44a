package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/seed"
)

type fakeSeeder struct {
	calls     []string
	seedErr   error
	importErr error
}

func (f *fakeSeeder) Seed() (seed.Report, error) {
	f.calls = append(f.calls, "seed")
	return seed.Report{Books: 66}, f.seedErr
}

func (f *fakeSeeder) Reseed() (seed.Report, error) {
	f.calls = append(f.calls, "reseed")
	return seed.Report{Books: 66}, f.seedErr
}

func (f *fakeSeeder) ImportBibleFile(path string) (seed.Report, error) {
	f.calls = append(f.calls, "import:"+path)
	return seed.Report{Books: 66, Verses: 31102}, f.importErr
}

func TestSeedBibleTaskConfig(t *testing.T) {
	cfg := SeedBibleTask{}.Config()

	assert.Equal(t, SeedBibleQueueName, cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.Backoff)
	assert.Equal(t, 10*time.Minute, cfg.Timeout)
	require.NotNil(t, cfg.Retention)
	assert.Equal(t, 24*time.Hour, cfg.Retention.Duration)
}

func restoreSeedBibleConfig(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		seedBibleMu.Lock()
		seedBibleQueueConfig = seedBibleConfig(DefaultConfig())
		seedBibleMu.Unlock()
	})
}

func TestNewSeedBibleQueue_AppliesConfig(t *testing.T) {
	restoreSeedBibleConfig(t)

	cfg := DefaultConfig()
	cfg.MaxRetries = 7
	cfg.RetryDelay = 5 * time.Second
	cfg.TaskTimeout = 30 * time.Minute
	cfg.RetentionDuration = 2 * time.Hour

	require.NotNil(t, NewSeedBibleQueue(&fakeSeeder{}, cfg, nil))

	got := SeedBibleTask{BiblePath: "x.json"}.Config()
	assert.Equal(t, SeedBibleQueueName, got.Name)
	assert.Equal(t, 7, got.MaxAttempts)
	assert.Equal(t, 5*time.Second, got.Backoff)
	assert.Equal(t, 30*time.Minute, got.Timeout)
	require.NotNil(t, got.Retention)
	assert.Equal(t, 2*time.Hour, got.Retention.Duration)
}

func TestSeedBibleProcessor(t *testing.T) {
	ctx := context.Background()

	t.Run("seed only", func(t *testing.T) {
		f := &fakeSeeder{}
		require.NoError(t, SeedBibleProcessor(f, nil)(ctx, SeedBibleTask{}))
		assert.Equal(t, []string{"seed"}, f.calls)
	})

	t.Run("reseed then import", func(t *testing.T) {
		f := &fakeSeeder{}
		err := SeedBibleProcessor(f, nil)(ctx, SeedBibleTask{Reseed: true, BiblePath: "/tmp/lsg.json"})
		require.NoError(t, err)
		assert.Equal(t, []string{"reseed", "import:/tmp/lsg.json"}, f.calls)
	})

	t.Run("seed failure skips import", func(t *testing.T) {
		f := &fakeSeeder{seedErr: seed.ErrSeeding}
		err := SeedBibleProcessor(f, nil)(ctx, SeedBibleTask{BiblePath: "/tmp/lsg.json"})
		assert.ErrorIs(t, err, seed.ErrSeeding)
		assert.Equal(t, []string{"seed"}, f.calls)
	})

	t.Run("import failure", func(t *testing.T) {
		boom := errors.New("boom")
		f := &fakeSeeder{importErr: boom}
		err := SeedBibleProcessor(f, nil)(ctx, SeedBibleTask{BiblePath: "x.json"})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		f := &fakeSeeder{}
		err := SeedBibleProcessor(f, nil)(cancelled, SeedBibleTask{})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, f.calls)
	})

	t.Run("missing seeder", func(t *testing.T) {
		assert.Error(t, SeedBibleProcessor(nil, nil)(ctx, SeedBibleTask{}))
	})
}

func TestSeedBibleQueue_SeedsDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "selah.db")
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	ds, err := seed.LoadDataset()
	require.NoError(t, err)

	cfg := DefaultConfig()
	client, err := NewClient(dbPath, cfg, nil)
	require.NoError(t, err)
	defer client.Close()

	client.Register(NewSeedBibleQueue(seed.NewSeeder(db, ds, nil), cfg, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	id, err := client.EnqueueSeed(SeedBibleTask{})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	assert.Eventually(t, func() bool {
		seeded, err := db.IsSeeded()
		return err == nil && seeded
	}, 5*time.Second, 50*time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	client.Stop(stopCtx)
}
