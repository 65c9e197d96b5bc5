package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/klove999/OraclePortfolioManager-public/pkg/bundle"
	"github.com/klove999/OraclePortfolioManager-public/pkg/manifest"
)

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "rebuild the checksum manifest for a bundle",
		ArgsUsage: "[bundleRoot]",
		Flags:     []cli.Flag{excludeFlag()},
		Action:    buildAction,
	}
}

func buildAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("usage: relcheck build [bundleRoot]")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return fail(err)
	}
	root, err := bundle.ResolveRoot(c.Args().Get(0), cfg)
	if err != nil {
		return fail(err)
	}
	slog.Debug("bundle root resolved", "root", root)

	entries, err := manifest.BuildFile(
		root, excludePatterns(c, cfg),
	)
	if err != nil {
		return fail(err)
	}

	fmt.Printf(
		"Wrote %s (%d files)\n",
		filepath.Join(root, manifest.Filename),
		len(entries),
	)
	return nil
}
