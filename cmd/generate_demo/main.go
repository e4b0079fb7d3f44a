// Command generate_demo creates a demo database: seeded reference data plus
// sample favourites, highlights, plan progress and reading history.
// Usage: go run ./cmd/generate_demo [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/database/favourites"
	"github.com/mrlokans/selah/internal/database/highlights"
	"github.com/mrlokans/selah/internal/database/plans"
	"github.com/mrlokans/selah/internal/database/settings"
	"github.com/mrlokans/selah/internal/database/stats"
	"github.com/mrlokans/selah/internal/datasource"
	"github.com/mrlokans/selah/internal/entities"
	"github.com/mrlokans/selah/internal/logger"
	"github.com/mrlokans/selah/internal/seed"
	"github.com/mrlokans/selah/internal/services"
)

const defaultDemoDatabasePath = "./demo/selah-demo.db"

type demoFavorite struct {
	Ref  entities.VerseRef
	Note string
}

var demoFavorites = []demoFavorite{
	{Ref: entities.VerseRef{Book: "JHN", Chapter: 3, Verse: 16}, Note: "Le cœur de l'Évangile"},
	{Ref: entities.VerseRef{Book: "PSA", Chapter: 23, Verse: 1}},
	{Ref: entities.VerseRef{Book: "ROM", Chapter: 8, Verse: 28}, Note: "À relire dans l'épreuve"},
}

var demoHighlights = map[entities.VerseRef]entities.HighlightColor{
	{Book: "GEN", Chapter: 1, Verse: 1}: entities.HighlightYellow,
	{Book: "JHN", Chapter: 1, Verse: 1}: entities.HighlightBlue,
	{Book: "MAT", Chapter: 5, Verse: 3}: entities.HighlightGreen,
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	days := flag.Int("days", 5, "days of reading history to simulate")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	dataset, err := seed.LoadDataset()
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	if _, err := seed.NewSeeder(db, dataset, logger.Default()).Seed(); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	// History starts *days ago so the streak ends today
	start := time.Now().AddDate(0, 0, -*days+1)
	current := start
	clock := func() time.Time { return current }

	svc := services.NewReadingService(datasource.NewSQLite(db.DB), services.Stores{
		Favorites:  favourites.NewRepository(db.DB, favourites.WithClock(clock)),
		Highlights: highlights.NewRepository(db.DB, highlights.WithClock(clock)),
		Plans:      plans.NewRepository(db.DB, plans.WithClock(clock)),
		Stats:      stats.NewRepository(db.DB, stats.WithClock(clock)),
		Settings:   settings.NewRepository(db.DB, settings.WithClock(clock)),
	}, services.WithClock(clock))

	for _, fav := range demoFavorites {
		var note *string
		if fav.Note != "" {
			note = &fav.Note
		}
		if err := svc.SetFavorite(fav.Ref, note); err != nil {
			log.Printf("Failed to add favourite %s: %v", fav.Ref, err)
		}
	}
	for ref, color := range demoHighlights {
		if err := svc.SetHighlight(ref, color); err != nil {
			log.Printf("Failed to highlight %s: %v", ref, err)
		}
	}

	// One psalms-30 day per simulated day: PSA 1-5, 6-10, ...
	for day := 1; day <= *days; day++ {
		current = start.AddDate(0, 0, day-1)
		for chapter := (day-1)*5 + 1; chapter <= day*5; chapter++ {
			event := services.ReadingEvent{Book: "PSA", Chapter: chapter, Minutes: 4}
			if chapter == day*5 {
				event.PlanID = "psalms-30"
				event.PlanDay = day
			}
			if _, err := svc.RecordReading(event); err != nil {
				log.Printf("Failed to record PSA %d: %v", chapter, err)
			}
		}
	}

	st, err := svc.GetStats()
	if err != nil {
		log.Fatalf("Failed to read stats: %v", err)
	}
	log.Printf("Demo database generated: %d chapters read, streak %d", st.TotalChaptersRead, st.CurrentStreak)
}
