package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/klove999/OraclePortfolioManager-public/pkg/verify"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
)

func printReport(root string, r *verify.Result) {
	fmt.Printf("Bundle: %s\n", root)
	fmt.Printf("  %d verified\n", r.Verified)

	for _, p := range r.Missing {
		failColor.Printf("  missing   %s\n", p)
	}
	for _, m := range r.Mismatched {
		failColor.Printf("  mismatch  %s\n", m.Path)
		fmt.Printf("    expected %s\n", m.Expected)
		fmt.Printf("    actual   %s\n", m.Actual)
	}
	for _, p := range r.Extra {
		warnColor.Printf("  untracked %s\n", p)
	}

	if r.OK() {
		passColor.Println("PASS")
		if len(r.Extra) > 0 {
			warnColor.Printf(
				"%d untracked file(s), advisory only\n",
				len(r.Extra),
			)
		}
	} else {
		failColor.Printf(
			"FAIL (%d missing, %d mismatched)\n",
			len(r.Missing), len(r.Mismatched),
		)
	}
}
