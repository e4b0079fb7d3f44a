package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/selah/internal/config"
	"github.com/mrlokans/selah/internal/entrypoint"
	"github.com/mrlokans/selah/internal/logger"
)

// common holds the flags every maintenance command shares.
type common struct {
	DatabasePath string
	Verbose      bool

	out io.Writer
	cfg *config.Config
}

func newCommon() common {
	cfg := config.NewConfig()
	return common{
		DatabasePath: cfg.Database.Path,
		out:          os.Stdout,
		cfg:          cfg,
	}
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.DatabasePath, "db", c.DatabasePath, "Path to the SQLite database file")
	fs.BoolVar(&c.Verbose, "verbose", false, "Enable verbose logging")
}

// SetOutput redirects the command's report output.
func (c *common) SetOutput(w io.Writer) {
	c.out = w
}

func (c *common) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *common) usage(fs *flag.FlagSet, synopsis, description string) {
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s\n\n", os.Args[0], synopsis)
		fmt.Fprintf(os.Stderr, "%s\n\n", description)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
}

// openApp opens the database named by -db with the rest of the environment
// configuration.
func (c *common) openApp() (*entrypoint.App, error) {
	absDBPath, err := filepath.Abs(c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	c.DatabasePath = absDBPath

	cfg := *c.cfg
	cfg.Database.Path = absDBPath

	level := "warn"
	if c.Verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, Format: cfg.Log.Format, Output: os.Stderr})

	app, err := entrypoint.NewApp(&cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return app, nil
}
