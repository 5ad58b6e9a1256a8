package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dbconvert/sqlite2mysql/internal/config"
	"github.com/dbconvert/sqlite2mysql/internal/export"
	"github.com/dbconvert/sqlite2mysql/internal/logging"
	"github.com/dbconvert/sqlite2mysql/internal/sqlite"
	"github.com/dbconvert/sqlite2mysql/internal/util"
	"github.com/dbconvert/sqlite2mysql/internal/version"
)

// globalFlags returns the app-level flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "sqlite2mysql.yaml",
			Usage:   "Path to configuration file",
		},
	}
}

// runFlags returns the flags of the run command.
func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "source",
			Aliases: []string{"s"},
			Usage:   "Path to the SQLite database file",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Path to write the MySQL dump to",
		},
		&cli.StringFlag{
			Name:  "exclude",
			Usage: "Comma-separated list of tables to skip",
		},
		&cli.BoolFlag{
			Name:  "progress",
			Usage: "Show a per-table progress bar",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text or json",
		},
	}
}

func main() {
	app := &cli.App{
		Name:    version.Name,
		Usage:   version.Description,
		Version: version.Version,
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Export a SQLite database to a MySQL dump file",
				ArgsUsage: "[source.db]",
				Action:    runExport,
				Flags:     runFlags(),
			},
			{
				Name:      "inspect",
				Usage:     "Print table and row counts without writing a dump",
				ArgsUsage: "[source.db]",
				Action:    runInspect,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Path to the SQLite database file",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("source") {
		cfg.Source = c.String("source")
	}
	if c.Args().Present() {
		cfg.Source = c.Args().First()
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("exclude") {
		cfg.ExcludeTables = util.SplitCSV(c.String("exclude"))
	}
	if c.IsSet("progress") {
		cfg.Progress = c.Bool("progress")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}

	if cfg.Source == "" {
		return nil, fmt.Errorf("no source database given (use --source or a positional argument)")
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(level)
	logging.SetFormat(cfg.LogFormat)

	return cfg, nil
}

func runExport(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	exp := export.New(export.Options{
		Source:        cfg.Source,
		Output:        cfg.Output,
		ExcludeTables: cfg.ExcludeTables,
		Progress:      cfg.Progress,
	})

	if _, err := exp.Run(context.Background()); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", cfg.Output)
	return nil
}

func runInspect(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	reader, err := sqlite.Open(cfg.Source)
	if err != nil {
		return err
	}
	defer reader.Close()

	ctx := context.Background()
	tables, err := reader.ListTables(ctx)
	if err != nil {
		return err
	}

	for _, name := range tables {
		tbl, err := reader.Table(ctx, name)
		if err != nil {
			return err
		}
		fmt.Printf("%-32s %4d columns %10d rows\n", tbl.Name, len(tbl.Columns), tbl.RowCount)
	}
	fmt.Printf("%d tables\n", len(tables))
	return nil
}
