package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/selah/internal/database/favourites"
	"github.com/mrlokans/selah/internal/database/highlights"
	"github.com/mrlokans/selah/internal/database/plans"
	"github.com/mrlokans/selah/internal/database/settings"
	"github.com/mrlokans/selah/internal/database/stats"
	"github.com/mrlokans/selah/internal/datasource"
	"github.com/mrlokans/selah/internal/exporters"
	"github.com/mrlokans/selah/internal/scheduler"
	"github.com/mrlokans/selah/internal/seed"
	"github.com/mrlokans/selah/internal/services"
	"github.com/mrlokans/selah/internal/settingsstore"
	"github.com/mrlokans/selah/internal/tasks"
)

// =============================================================================
// Data Sources
// =============================================================================

var _ datasource.Source = (*datasource.SQLite)(nil)
var _ datasource.Source = (*datasource.Mock)(nil)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.FavoriteStore = (*favourites.Repository)(nil)
var _ services.HighlightStore = (*highlights.Repository)(nil)
var _ services.PlanStore = (*plans.Repository)(nil)
var _ services.StatsStore = (*stats.Repository)(nil)
var _ services.SettingsStore = (*settings.Repository)(nil)
var _ settingsstore.KV = (*settings.Repository)(nil)

// =============================================================================
// Export
// =============================================================================

var _ exporters.AnnotationReader = (*services.ReadingService)(nil)
var _ exporters.VerseLookup = (datasource.Source)(nil)

// =============================================================================
// Background Jobs
// =============================================================================

var _ scheduler.VersePicker = (datasource.Source)(nil)
var _ scheduler.DailyVerseStore = (*settingsstore.SettingsStore)(nil)
var _ tasks.Seeder = (*seed.Seeder)(nil)
