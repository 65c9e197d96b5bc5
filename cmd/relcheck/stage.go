package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/klove999/OraclePortfolioManager-public/pkg/bundle"
	"github.com/klove999/OraclePortfolioManager-public/pkg/manifest"
)

func stageCmd() *cli.Command {
	return &cli.Command{
		Name: "stage",
		Usage: "copy a bundle to a staging directory and " +
			"rebuild its manifest there",
		ArgsUsage: "<srcRoot> <dstRoot>",
		Flags:     []cli.Flag{excludeFlag()},
		Action:    stageAction,
	}
}

func stageAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf(
			"usage: relcheck stage <srcRoot> <dstRoot>",
		)
	}
	src := c.Args().Get(0)
	dst := c.Args().Get(1)

	cfg, err := loadConfig(c)
	if err != nil {
		return fail(err)
	}

	copied, err := bundle.CopyTree(src, dst)
	if err != nil {
		return fail(err)
	}
	if copied == 0 {
		slog.Debug("copy skipped", "src", src, "dst", dst)
	}

	entries, err := manifest.BuildFile(
		dst, excludePatterns(c, cfg),
	)
	if err != nil {
		return fail(err)
	}

	fmt.Printf(
		"Staged %d files to %s (%d tracked)\n",
		copied, dst, len(entries),
	)
	return nil
}
