package entrypoint

import (
	"fmt"
	"time"

	"github.com/mrlokans/selah/internal/config"
	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/database/favourites"
	"github.com/mrlokans/selah/internal/database/highlights"
	"github.com/mrlokans/selah/internal/database/plans"
	"github.com/mrlokans/selah/internal/database/settings"
	"github.com/mrlokans/selah/internal/database/stats"
	"github.com/mrlokans/selah/internal/datasource"
	"github.com/mrlokans/selah/internal/logger"
	"github.com/mrlokans/selah/internal/seed"
	"github.com/mrlokans/selah/internal/services"
	"github.com/mrlokans/selah/internal/settingsstore"
)

// App is the wired persistence layer shared by the CLI commands and Run.
type App struct {
	Config   *config.Config
	Log      *logger.Logger
	Location *time.Location

	DB       *database.Database
	Source   datasource.Source
	Settings *settings.Repository
	Runtime  *settingsstore.SettingsStore
	Seeder   *seed.Seeder
	Reading  *services.ReadingService
}

// NewApp opens the database and wires every store. The caller must Close it.
func NewApp(cfg *config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Discard()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", cfg.Reading.Timezone, err)
	}

	db, err := database.NewDatabase(cfg.Database.Path,
		database.WithBusyTimeout(cfg.Database.BusyTimeout),
		database.WithLogLevel(database.ParseLogLevel(cfg.Database.LogLevel)),
	)
	if err != nil {
		return nil, err
	}

	source, err := datasource.New(cfg.Database.Source, db.DB)
	if err != nil {
		db.Close()
		return nil, err
	}

	dataset, err := seed.LoadDataset()
	if err != nil {
		db.Close()
		return nil, err
	}

	settingsRepo := settings.NewRepository(db.DB)
	stores := services.Stores{
		Favorites:  favourites.NewRepository(db.DB),
		Highlights: highlights.NewRepository(db.DB),
		Plans:      plans.NewRepository(db.DB),
		Stats:      stats.NewRepository(db.DB, stats.WithLocation(loc)),
		Settings:   settingsRepo,
	}

	log.Info("database ready", "path", db.Path(), "data_source", source.Name())

	return &App{
		Config:   cfg,
		Log:      log,
		Location: loc,
		DB:       db,
		Source:   source,
		Settings: settingsRepo,
		Runtime:  settingsstore.New(settingsRepo, cfg.VerseOfTheDay),
		Seeder:   seed.NewSeeder(db, dataset, log),
		Reading: services.NewReadingService(source, stores,
			services.WithLocation(loc),
			services.WithLogger(log)),
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
