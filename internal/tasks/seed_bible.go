package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/selah/internal/logger"
	"github.com/mrlokans/selah/internal/seed"
)

// SeedBibleQueueName is the backlite queue that seeds the database.
const SeedBibleQueueName = "seed_bible"

// SeedBibleTask seeds the reference data and optionally imports a full Bible
// JSON file afterwards. Reseed wipes the database first.
type SeedBibleTask struct {
	BiblePath string `json:"bible_path,omitempty"`
	Reseed    bool   `json:"reseed,omitempty"`
}

// backlite reads QueueConfig from the zero task value, so the seeding queue
// settings are process-wide. NewSeedBibleQueue sets them.
var (
	seedBibleMu          sync.RWMutex
	seedBibleQueueConfig = seedBibleConfig(DefaultConfig())
)

func seedBibleConfig(cfg Config) backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        SeedBibleQueueName,
		MaxAttempts: cfg.MaxRetries,
		Backoff:     cfg.RetryDelay,
		Timeout:     cfg.TaskTimeout,
		Retention: &backlite.Retention{
			Duration:   cfg.RetentionDuration,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// Config returns the queue configuration for seeding tasks.
func (t SeedBibleTask) Config() backlite.QueueConfig {
	seedBibleMu.RLock()
	defer seedBibleMu.RUnlock()
	return seedBibleQueueConfig
}

// Seeder is the part of seed.Seeder the task runs.
type Seeder interface {
	Seed() (seed.Report, error)
	Reseed() (seed.Report, error)
	ImportBibleFile(path string) (seed.Report, error)
}

// SeedBibleProcessor creates a processor function for SeedBibleTask.
func SeedBibleProcessor(seeder Seeder, log *logger.Logger) backlite.QueueProcessor[SeedBibleTask] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx context.Context, task SeedBibleTask) error {
		if seeder == nil {
			return fmt.Errorf("seeder not configured")
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		taskLog := log.WithComponent("tasks").With("queue", SeedBibleQueueName)
		start := time.Now()

		run := seeder.Seed
		if task.Reseed {
			run = seeder.Reseed
		}
		report, err := run()
		if err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
		taskLog.Info("seed finished",
			"skipped", report.Skipped,
			"books", report.Books,
			"verses", report.Verses,
			"lexicon", report.LexiconEntries,
			"plans_created", report.PlansCreated)

		if task.BiblePath == "" {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		imported, err := seeder.ImportBibleFile(task.BiblePath)
		if err != nil {
			return fmt.Errorf("import bible %s: %w", task.BiblePath, err)
		}
		taskLog.Info("bible imported",
			"path", task.BiblePath,
			"books", imported.Books,
			"verses", imported.Verses,
			"duration", time.Since(start).Round(time.Millisecond))
		return nil
	}
}

// NewSeedBibleQueue creates a backlite queue for seeding tasks using the
// retry and timeout settings of cfg. Call it once per process: the settings
// apply to every SeedBibleTask, and a later call replaces them.
func NewSeedBibleQueue(seeder Seeder, cfg Config, log *logger.Logger) backlite.Queue {
	seedBibleMu.Lock()
	seedBibleQueueConfig = seedBibleConfig(cfg)
	seedBibleMu.Unlock()
	return backlite.NewQueue(SeedBibleProcessor(seeder, log))
}

// EnqueueSeed adds a seeding task and returns its id.
func (c *Client) EnqueueSeed(task SeedBibleTask) (string, error) {
	ids, err := c.Add(task).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", SeedBibleQueueName, err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("enqueue %s: no task id returned", SeedBibleQueueName)
	}
	c.log.WithTask(ids[0], SeedBibleQueueName).Info("task enqueued", "bible_path", task.BiblePath, "reseed", task.Reseed)
	return ids[0], nil
}
