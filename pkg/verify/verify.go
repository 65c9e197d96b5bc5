// Package verify diffs a bundle tree against its parsed manifest. A run
// always completes a full pass over every entry so the caller gets the
// complete picture in one report instead of one discrepancy at a time.
package verify

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klove999/OraclePortfolioManager-public/pkg/manifest"
	"github.com/klove999/OraclePortfolioManager-public/pkg/paths"
)

// Mismatch is a tracked file whose content hash differs from the manifest.
type Mismatch struct {
	Path     string
	Expected string
	Actual   string
}

// Result is the outcome of one verification run. It is built fresh per
// run and not mutated after being returned. Extra files are advisory:
// they never fail a run.
type Result struct {
	Verified   int
	Missing    []string
	Mismatched []Mismatch
	Extra      []string
}

// OK reports whether the run passed: nothing missing, nothing mismatched.
// Extras do not count against a pass.
func (r *Result) OK() bool {
	return len(r.Missing) == 0 && len(r.Mismatched) == 0
}

// Run verifies the tree at root against the parsed manifest entries.
// Every entry is checked; hash comparison is case-insensitive. Files on
// disk that no entry references are collected as extras, with the
// manifest file itself and exclude-pattern matches left out of
// consideration. Duplicate manifest paths collapse to the last entry.
func Run(
	root string,
	entries []manifest.Entry,
	excludes []string,
) (*Result, error) {
	result := &Result{}

	tracked := dedupe(entries)
	for _, e := range tracked {
		full := filepath.Join(root, filepath.FromSlash(e.Path))
		info, err := os.Stat(full)
		if err != nil || !info.Mode().IsRegular() {
			result.Missing = append(result.Missing, e.Path)
			continue
		}
		actual, err := manifest.HashFile(full, nil)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(actual, e.Hash) {
			result.Mismatched = append(result.Mismatched, Mismatch{
				Path:     e.Path,
				Expected: strings.ToUpper(e.Hash),
				Actual:   actual,
			})
			continue
		}
		result.Verified++
	}

	extra, err := findExtras(root, tracked, excludes)
	if err != nil {
		return nil, err
	}
	result.Extra = extra
	return result, nil
}

// dedupe collapses duplicate paths to the last occurrence while keeping
// first-seen order.
func dedupe(entries []manifest.Entry) []manifest.Entry {
	last := make(map[string]string, len(entries))
	var order []string
	for _, e := range entries {
		key := strings.ToLower(e.Path)
		if _, seen := last[key]; !seen {
			order = append(order, e.Path)
		}
		last[key] = e.Hash
	}
	out := make([]manifest.Entry, 0, len(order))
	for _, p := range order {
		out = append(out, manifest.Entry{
			Hash: last[strings.ToLower(p)],
			Path: p,
		})
	}
	return out
}

// findExtras enumerates regular files under root that no manifest entry
// references. Path comparison is case-insensitive.
func findExtras(
	root string,
	tracked []manifest.Entry,
	excludes []string,
) ([]string, error) {
	known := make(map[string]bool, len(tracked))
	for _, e := range tracked {
		known[strings.ToLower(e.Path)] = true
	}

	matcher := paths.NewExcludeMatcher(excludes)
	var extra []string
	err := filepath.WalkDir(
		root,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if rel == "." || rel == manifest.Filename {
				return nil
			}
			if matcher.Match(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if !known[strings.ToLower(rel)] {
				extra = append(extra, rel)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	sort.Strings(extra)
	return extra, nil
}
