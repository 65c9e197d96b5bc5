package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/klove999/OraclePortfolioManager-public/pkg/paths"
)

// ParseError reports a structurally invalid manifest. A manifest with even
// one corrupt line is wholly untrustworthy, so parsing is all-or-nothing:
// the first bad line aborts the parse and no entries are returned.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("manifest line %d: %s", e.Line, e.Reason)
}

var entryPattern = regexp.MustCompile(
	`^([0-9a-fA-F]{64})\s+(.+)$`,
)

// Parse turns raw manifest text into entries, preserving file order.
// Blank lines and header lines are skipped; every other line must match
// the entry pattern. Paths are normalized to slashes with the leading
// "./" stripped, and absolute or root-escaping paths are rejected so a
// crafted manifest cannot point outside the bundle root.
func Parse(data []byte) ([]Entry, error) {
	entries := []Entry{}
	for i, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || isHeaderLine(line) {
			continue
		}
		m := entryPattern.FindStringSubmatch(line)
		if m == nil {
			return nil, &ParseError{
				Line:   i + 1,
				Reason: fmt.Sprintf("malformed entry %q", line),
			}
		}
		p := paths.Normalize(m[2])
		if err := paths.ValidateRelPath(p); err != nil {
			return nil, &ParseError{
				Line:   i + 1,
				Reason: err.Error(),
			}
		}
		entries = append(entries, Entry{
			Hash: strings.ToUpper(m[1]),
			Path: p,
		})
	}
	return entries, nil
}

// isHeaderLine recognizes the cosmetic lines a manifest header may carry:
// the label, a bare "sha256" or "checksums" word in any case, or a divider
// of repeated "=" characters.
func isHeaderLine(line string) bool {
	switch {
	case strings.EqualFold(line, headerLabel),
		strings.EqualFold(line, "sha256"),
		strings.EqualFold(line, "checksums"):
		return true
	}
	if len(line) == 0 {
		return false
	}
	for _, r := range line {
		if r != '=' {
			return false
		}
	}
	return true
}
