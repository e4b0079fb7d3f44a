package cli

import (
	"flag"
	"fmt"
	"os"
)

// ImportBibleCommand upserts a full Bible JSON export into the database.
type ImportBibleCommand struct {
	common
	BiblePath string
}

func NewImportBibleCommand() *ImportBibleCommand {
	return &ImportBibleCommand{common: newCommon()}
}

func (cmd *ImportBibleCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-bible", flag.ContinueOnError)
	cmd.register(fs)
	fs.StringVar(&cmd.BiblePath, "file", "", "Path to the Bible JSON file (required)")
	cmd.usage(fs, "import-bible -file <path> [options]",
		"Import a full Bible in the Testaments > Books > Chapters > Verses JSON format.\n"+
			"Books are matched to the canon by position; existing verses are replaced.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.BiblePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *ImportBibleCommand) Run() error {
	if _, err := os.Stat(cmd.BiblePath); os.IsNotExist(err) {
		return fmt.Errorf("bible file not found: %s", cmd.BiblePath)
	}

	app, err := cmd.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	cmd.printf("Importing %s into %s\n", cmd.BiblePath, app.DB.Path())
	report, err := app.Seeder.ImportBibleFile(cmd.BiblePath)
	cmd.printReport("Bible import", report)
	return err
}
