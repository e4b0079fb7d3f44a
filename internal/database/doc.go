// Package database owns the SQLite connection and the schema.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, schema creation, reset, counts
//	├── errors.go        # Storage and schema error kinds
//	├── scripture/       # Books, verses and their words
//	├── lexicon/         # Strong's concordance entries and search
//	├── favourites/      # Favourite verses
//	├── highlights/      # Colour highlights
//	├── plans/           # Reading plans and day completion
//	├── stats/           # Reading streak and counters
//	└── settings/        # User preferences, reading position, key/value state
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./selah.db")
//
//	verses := scripture.NewRepository(db.DB)
//	verse, err := verses.GetVerse(entities.VerseRef{Book: "JHN", Chapter: 3, Verse: 16})
//	if verse == nil {
//		// not stored; fall back to a default
//	}
//
// Point lookups that find nothing return (nil, nil). Errors are reserved for
// faults; use errors.Is with ErrStorage or ErrSchema to tell them apart.
//
// # Singleton rows
//
// reading_stats and user_settings each hold a single row with id 1. Initialize
// inserts both when missing and never overwrites them.
package database
