package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/klove999/OraclePortfolioManager-public/pkg/bundle"
	"github.com/klove999/OraclePortfolioManager-public/pkg/manifest"
	"github.com/klove999/OraclePortfolioManager-public/pkg/verify"
)

func archiveCmd() *cli.Command {
	return &cli.Command{
		Name: "archive",
		Usage: "verify a bundle, then zip it; a failing bundle " +
			"is never archived",
		ArgsUsage: "[bundleRoot]",
		Flags: []cli.Flag{
			excludeFlag(),
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output zip path (default <root>.zip)",
			},
		},
		Action: archiveAction,
	}
}

func archiveAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("usage: relcheck archive [bundleRoot]")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return fail(err)
	}
	root, err := bundle.ResolveRoot(c.Args().Get(0), cfg)
	if err != nil {
		return fail(err)
	}
	excludes := excludePatterns(c, cfg)

	entries, err := manifest.BuildFile(root, excludes)
	if err != nil {
		return fail(err)
	}
	slog.Debug("manifest rebuilt", "count", len(entries))

	parsed, err := manifest.ReadFile(root)
	if err != nil {
		return fail(err)
	}
	result, err := verify.Run(root, parsed, excludes)
	if err != nil {
		return fail(err)
	}
	printReport(root, result)
	if !result.OK() {
		return cli.Exit(
			"refusing to archive a failing bundle", exitFail,
		)
	}

	out := c.String("out")
	if out == "" {
		out = filepath.Clean(root) + ".zip"
	}
	count, err := bundle.Zip(root, out)
	if err != nil {
		return fail(err)
	}

	info, err := os.Stat(out)
	if err != nil {
		return fail(err)
	}
	fmt.Printf(
		"Archived %d files to %s (%s)\n",
		count, out, humanBytes(info.Size()),
	)
	return nil
}
