package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrlokans/selah/internal/config"
	"github.com/mrlokans/selah/internal/logger"
	"github.com/mrlokans/selah/internal/scheduler"
	"github.com/mrlokans/selah/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Wait blocks until SIGINT or SIGTERM, then runs onShutdown with the
// configured timeout.
func Wait(cfg *config.Config, log *logger.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig.String(), "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}
	log.Info("selah exiting")
}

// Run hosts the verse-of-the-day scheduler and the task queue until the
// process is signalled.
func Run(cfg *config.Config, version string) error {
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log.Info("starting selah", "version", version)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	app, err := NewApp(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskCfg := tasks.FromAppConfig(cfg.Tasks)
		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg, log)
		if err != nil {
			return fmt.Errorf("task queue: %w", err)
		}
		defer taskClient.Close()

		taskClient.Register(tasks.NewSeedBibleQueue(app.Seeder, taskCfg, log))
		go taskClient.Start(ctx)
	} else {
		log.Info("task queue disabled")
	}

	if cfg.Seed.OnStart {
		if err := seedOnStart(app, taskClient); err != nil {
			return err
		}
	}

	verseScheduler := scheduler.NewVerseOfTheDayScheduler(app.Source, app.Runtime, app.Location, log)
	if err := verseScheduler.Start(ctx); err != nil {
		return fmt.Errorf("verse of the day scheduler: %w", err)
	}
	if verseScheduler.IsRunning() {
		ensureTodaysVerse(app, verseScheduler)
	}

	Wait(cfg, log, func(ctx context.Context) {
		verseScheduler.Stop()
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		cancel()
	})
	return nil
}

// seedOnStart queues the seed when the task queue runs, and seeds inline
// otherwise.
func seedOnStart(app *App, taskClient *tasks.Client) error {
	task := tasks.SeedBibleTask{BiblePath: app.Config.Seed.BiblePath}
	if taskClient != nil {
		_, err := taskClient.EnqueueSeed(task)
		return err
	}

	if _, err := app.Seeder.Seed(); err != nil {
		return err
	}
	if task.BiblePath != "" {
		if _, err := app.Seeder.ImportBibleFile(task.BiblePath); err != nil {
			return err
		}
	}
	return nil
}

// ensureTodaysVerse picks a verse at startup when the stored one is not for
// today, so a process started after the cron tick still has one.
func ensureTodaysVerse(app *App, s *scheduler.VerseOfTheDayScheduler) {
	today := time.Now().In(app.Location).Format(time.DateOnly)
	daily, err := app.Runtime.GetDailyVerse()
	if err != nil {
		app.Log.Warn("reading stored verse of the day", "error", err)
	}
	if daily != nil && daily.Date == today {
		return
	}
	if _, err := s.RunNow(); err != nil {
		if errors.Is(err, scheduler.ErrNoVerses) {
			app.Log.Info("no verse yet, waiting for the next scheduled run")
			return
		}
		app.Log.Warn("initial verse of the day failed", "error", err)
	}
}
