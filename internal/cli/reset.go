package cli

import (
	"flag"
	"fmt"
)

// ResetCommand drops every table and recreates an empty schema.
type ResetCommand struct {
	common
	Force bool
}

func NewResetCommand() *ResetCommand {
	return &ResetCommand{common: newCommon()}
}

func (cmd *ResetCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	cmd.register(fs)
	fs.BoolVar(&cmd.Force, "force", false, "Confirm that all data, including favourites and plans, is deleted")
	cmd.usage(fs, "reset -force [options]", "Delete all data and recreate an empty schema.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !cmd.Force {
		return fmt.Errorf("reset deletes all data; pass -force to confirm")
	}
	return nil
}

func (cmd *ResetCommand) Run() error {
	app, err := cmd.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.DB.Reset(); err != nil {
		return err
	}
	cmd.printf("Database reset: %s\n", app.DB.Path())
	return nil
}
