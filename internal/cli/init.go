package cli

import (
	"flag"
)

// InitCommand creates the schema and the singleton rows without seeding.
type InitCommand struct {
	common
}

func NewInitCommand() *InitCommand {
	return &InitCommand{common: newCommon()}
}

func (cmd *InitCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	cmd.register(fs)
	cmd.usage(fs, "init [options]", "Create the database schema. Safe to run on an existing database.")
	return fs.Parse(args)
}

func (cmd *InitCommand) Run() error {
	app, err := cmd.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	seeded, err := app.DB.IsSeeded()
	if err != nil {
		return err
	}
	cmd.printf("Database initialized: %s\n", app.DB.Path())
	if !seeded {
		cmd.printf("Reference data missing; run 'seed' to load it.\n")
	}
	return nil
}
