package cli

import (
	"flag"

	"github.com/mrlokans/selah/internal/seed"
)

// SeedCommand loads the embedded reference data, and optionally a full Bible.
type SeedCommand struct {
	common
	BiblePath string
	Reseed    bool
}

func NewSeedCommand() *SeedCommand {
	cmd := &SeedCommand{common: newCommon()}
	cmd.BiblePath = cmd.cfg.Seed.BiblePath
	return cmd
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cmd.register(fs)
	fs.StringVar(&cmd.BiblePath, "bible", cmd.BiblePath, "Full Bible JSON file to import after seeding")
	fs.BoolVar(&cmd.Reseed, "reseed", false, "Wipe the database before seeding")
	cmd.usage(fs, "seed [options]",
		"Seed books, sample verses, the Strong's lexicon and the preset reading plans.\n"+
			"Does nothing to reference data when the database is already seeded.")
	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	app, err := cmd.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	var report seed.Report
	if cmd.Reseed {
		report, err = app.Seeder.Reseed()
	} else {
		report, err = app.Seeder.Seed()
	}
	cmd.printReport("Seed", report)
	if err != nil {
		return err
	}

	if cmd.BiblePath != "" {
		imported, err := app.Seeder.ImportBibleFile(cmd.BiblePath)
		cmd.printReport("Bible import", imported)
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *common) printReport(title string, r seed.Report) {
	c.printf("\n=== %s ===\n", title)
	if r.Skipped {
		c.printf("Reference data already present, skipped\n")
	} else {
		c.printf("Books: %d\n", r.Books)
		c.printf("Verses: %d\n", r.Verses)
		c.printf("Lexicon entries: %d\n", r.LexiconEntries)
	}
	if r.PlansCreated {
		c.printf("Preset reading plans created\n")
	}
}
