// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Source
//
//   - Source: read-only scripture and lexicon access (internal/datasource/datasource.go).
//     Implemented by SQLite (the stores) and Mock (in-memory, from the embedded dataset).
//
// ## User State
//
//   - FavoriteStore, HighlightStore, PlanStore, StatsStore, SettingsStore
//     (internal/services/interfaces.go), implemented by the repositories under
//     internal/database/.
//   - KV: the key/value settings table seen by internal/settingsstore.
//
// ## Export
//
//   - AnnotationReader: favourites and highlights to export (internal/exporters/generic.go)
//   - VerseLookup: verse text for highlighted references
//
// ## Background Jobs
//
//   - VersePicker, DailyVerseStore: verse-of-the-day scheduler inputs (internal/scheduler)
//   - Seeder: what the seed_bible task runs (internal/tasks/seed_bible.go)
//
// # Adding a New Data Source
//
// To serve scripture from another backend (e.g. a remote API):
//
//  1. Implement Source in internal/datasource/
//
//     type Remote struct {
//     baseURL string
//     }
//
//     func (r *Remote) GetVerse(ref entities.VerseRef) (*entities.Verse, error)
//
//  2. Add a config.DataSource value and a case in datasource.New
//
//  3. Add a compile-time check in checks.go and run the contract test in
//     datasource_test.go against it
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Register the model in the models list of internal/database/database.go
//
//  4. Add compile-time check:
//
//     var _ SomeStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
