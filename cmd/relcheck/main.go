package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/klove999/OraclePortfolioManager-public/pkg/bundle"
	"github.com/klove999/OraclePortfolioManager-public/pkg/manifest"
)

const appVersion = "0.1.0"

// One distinct exit code per failure class so callers never have to
// guess whether a non-zero status meant a bad bundle or a bad setup.
const (
	exitFail   = 1
	exitParse  = 2
	exitConfig = 3
)

func main() {
	app := &cli.App{
		Name:  "relcheck",
		Usage: "build and verify release-bundle checksum manifests",
		Before: func(c *cli.Context) error {
			configureLogging(c.Bool("verbose"))
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				EnvVars: []string{"RELCHECK_CONFIG"},
				Usage:   "path to a relcheck.yaml config file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose output",
			},
		},
		Commands: []*cli.Command{
			buildCmd(),
			verifyCmd(),
			checkCmd(),
			stageCmd(),
			archiveCmd(),
			{
				Name:  "version",
				Usage: "print version",
				Action: func(c *cli.Context) error {
					fmt.Println(appVersion)
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitFail)
	}
}

func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}),
	))
}

func excludeFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "exclude",
		Usage: "exclude pattern (repeatable)",
	}
}

func loadConfig(c *cli.Context) (*bundle.Config, error) {
	cfg, err := bundle.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// excludePatterns merges config-file excludes with --exclude flags.
func excludePatterns(
	c *cli.Context, cfg *bundle.Config,
) []string {
	return append(
		append([]string{}, cfg.Exclude...),
		c.StringSlice("exclude")...,
	)
}

// fail maps an error onto its exit code: configuration problems exit 3,
// structural manifest problems exit 2, everything else exits 1.
func fail(err error) error {
	var cfgErr *bundle.ConfigError
	var parseErr *manifest.ParseError
	switch {
	case errors.As(err, &cfgErr),
		errors.Is(err, fs.ErrNotExist):
		return cli.Exit(fmt.Sprintf("error: %v", err), exitConfig)
	case errors.As(err, &parseErr):
		return cli.Exit(fmt.Sprintf("error: %v", err), exitParse)
	}
	return cli.Exit(fmt.Sprintf("error: %v", err), exitFail)
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf(
			"%.1f MB", float64(n)/(1<<20),
		)
	case n >= 1<<10:
		return fmt.Sprintf(
			"%.1f KB", float64(n)/(1<<10),
		)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
