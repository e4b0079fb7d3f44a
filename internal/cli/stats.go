package cli

import (
	"flag"
	"strconv"
	"time"

	"github.com/mrlokans/selah/internal/entities"
)

// StatsCommand prints database counts and reading progress.
type StatsCommand struct {
	common
}

func NewStatsCommand() *StatsCommand {
	return &StatsCommand{common: newCommon()}
}

func (cmd *StatsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	cmd.register(fs)
	cmd.usage(fs, "stats [options]", "Show database contents and reading statistics.")
	return fs.Parse(args)
}

func (cmd *StatsCommand) Run() error {
	app, err := cmd.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	counts, err := app.DB.Counts()
	if err != nil {
		return err
	}
	cmd.printf("=== Database (%s) ===\n", app.DB.Path())
	cmd.printf("Books: %d\n", counts.Books)
	cmd.printf("Verses: %d\n", counts.Verses)
	cmd.printf("Words: %d\n", counts.Words)
	cmd.printf("Lexicon entries: %d\n", counts.LexiconEntries)

	st, err := app.Reading.GetStats()
	if err != nil {
		return err
	}
	cmd.printf("\n=== Reading ===\n")
	cmd.printf("Chapters read: %d\n", st.TotalChaptersRead)
	cmd.printf("Verses read: %d\n", st.TotalVersesRead)
	cmd.printf("Current streak: %d\n", st.CurrentStreak)
	cmd.printf("Longest streak: %d\n", st.LongestStreak)
	cmd.printf("Reading time: %d min\n", st.TotalReadingTimeMinutes)
	if st.LastReadDate != nil {
		cmd.printf("Last read: %s\n", st.LastReadDate.In(app.Location).Format(time.DateOnly))
	}

	favorites, err := app.Reading.ListFavorites()
	if err != nil {
		return err
	}
	byColor, err := app.Reading.CountHighlightsByColor()
	if err != nil {
		return err
	}
	cmd.printf("\n=== Annotations ===\n")
	cmd.printf("Favourites: %d\n", len(favorites))
	for _, c := range entities.HighlightColors {
		cmd.printf("Highlights (%s): %d\n", c, byColor[c])
	}

	plans, err := app.Reading.ListPlans()
	if err != nil {
		return err
	}
	cmd.printf("\n=== Reading plans ===\n")
	for i := range plans {
		p := &plans[i]
		status := "not started"
		switch {
		case p.Completed:
			status = "completed"
		case p.Started():
			status = "day " + strconv.Itoa(p.CurrentDay)
		}
		cmd.printf("%-12s %-30s %3.0f%% (%s)\n", p.ID, p.Name, p.Progress()*100, status)
	}
	return nil
}
