package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/klove999/OraclePortfolioManager-public/pkg/bundle"
	"github.com/klove999/OraclePortfolioManager-public/pkg/manifest"
	"github.com/klove999/OraclePortfolioManager-public/pkg/verify"
)

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "verify a bundle against its existing manifest",
		ArgsUsage: "<bundleRoot>",
		Flags:     []cli.Flag{excludeFlag()},
		Action:    verifyAction,
	}
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name: "check",
		Usage: "rebuild the manifest, then verify the bundle " +
			"against it",
		ArgsUsage: "[bundleRoot]",
		Flags:     []cli.Flag{excludeFlag()},
		Action:    checkAction,
	}
}

func verifyAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: relcheck verify <bundleRoot>")
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return fail(err)
	}
	root, err := bundle.ResolveRoot(c.Args().Get(0), cfg)
	if err != nil {
		return fail(err)
	}
	return runVerify(c, cfg, root, false)
}

func checkAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("usage: relcheck check [bundleRoot]")
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return fail(err)
	}
	root, err := bundle.ResolveRoot(c.Args().Get(0), cfg)
	if err != nil {
		return fail(err)
	}
	return runVerify(c, cfg, root, true)
}

// runVerify is the verification pipeline. With rebuild set it refreshes
// the manifest first so the check never runs against a stale one; either
// way the manifest is re-read through the parser before verifying.
func runVerify(
	c *cli.Context,
	cfg *bundle.Config,
	root string,
	rebuild bool,
) error {
	excludes := excludePatterns(c, cfg)

	if rebuild {
		entries, err := manifest.BuildFile(root, excludes)
		if err != nil {
			return fail(err)
		}
		slog.Debug("manifest rebuilt",
			"root", root,
			"count", len(entries),
		)
	}

	entries, err := manifest.ReadFile(root)
	if err != nil {
		return fail(err)
	}
	slog.Debug("manifest parsed", "count", len(entries))

	result, err := verify.Run(root, entries, excludes)
	if err != nil {
		return fail(err)
	}

	printReport(root, result)
	if !result.OK() {
		return cli.Exit("", exitFail)
	}
	return nil
}
