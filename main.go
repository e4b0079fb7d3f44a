package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/selah/internal/cli"
	"github.com/mrlokans/selah/internal/config"
	"github.com/mrlokans/selah/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	config.LoadEnvFiles()

	// No arguments or "run": host the scheduler and task queue
	if len(os.Args) < 2 || os.Args[1] == "run" {
		if err := entrypoint.Run(config.NewConfig(), Version); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "init":
		cmd = cli.NewInitCommand()
	case "seed":
		cmd = cli.NewSeedCommand()
	case "reset":
		cmd = cli.NewResetCommand()
	case "import-bible":
		cmd = cli.NewImportBibleCommand()
	case "export":
		cmd = cli.NewExportCommand()
	case "stats":
		cmd = cli.NewStatsCommand()
	case "version":
		fmt.Printf("selah %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  run           Run the verse-of-the-day scheduler and task queue (default)\n")
	fmt.Fprintf(os.Stderr, "  init          Create the database schema\n")
	fmt.Fprintf(os.Stderr, "  seed          Load books, sample verses, lexicon and reading plans\n")
	fmt.Fprintf(os.Stderr, "  reset         Delete all data and recreate the schema\n")
	fmt.Fprintf(os.Stderr, "  import-bible  Import a full Bible JSON file\n")
	fmt.Fprintf(os.Stderr, "  export        Export favourites and highlights to markdown\n")
	fmt.Fprintf(os.Stderr, "  stats         Show database and reading statistics\n")
	fmt.Fprintf(os.Stderr, "  version       Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
