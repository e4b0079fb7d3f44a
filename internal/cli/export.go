package cli

import (
	"flag"

	"github.com/mrlokans/selah/internal/exporters"
)

// ExportCommand writes favourites and highlights as markdown files.
type ExportCommand struct {
	common
	OutputDir string
}

func NewExportCommand() *ExportCommand {
	cmd := &ExportCommand{common: newCommon()}
	cmd.OutputDir = cmd.cfg.Export.Dir
	return cmd
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	cmd.register(fs)
	fs.StringVar(&cmd.OutputDir, "output", cmd.OutputDir, "Directory for the markdown files")
	cmd.usage(fs, "export [options]", "Export favourite verses and highlights to markdown.")
	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	app, err := cmd.openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	exporter := exporters.NewMarkdownExporter(cmd.OutputDir, app.Source, app.Log)
	result, err := exporter.Export(app.Reading)
	if err != nil {
		return err
	}

	cmd.printf("\n=== Export Summary ===\n")
	cmd.printf("Favourites: %d\n", result.FavoritesExported)
	cmd.printf("Highlights: %d\n", result.HighlightsExported)
	for _, f := range result.Files {
		cmd.printf("  -> %s\n", f)
	}
	return nil
}
