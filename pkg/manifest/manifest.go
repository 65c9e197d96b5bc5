// Package manifest builds and parses the checksum manifest that tracks the
// contents of a release bundle. The manifest is a small text file at the
// bundle root: a two-line header followed by one line per tracked file,
// each carrying an uppercase SHA-256 digest and a "./"-prefixed relative
// path. Rebuilds over an unchanged tree are byte-identical.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Filename is the fixed manifest location under the bundle root. The
// manifest never lists itself.
const Filename = "checksums.sha256"

const (
	headerLabel   = "SHA256 Checksums"
	headerDivider = "================"
)

// Entry is one tracked file: a 64-character uppercase hex SHA-256 digest
// and a slash-separated path relative to the bundle root, without any
// leading "./" marker.
type Entry struct {
	Hash string
	Path string
}

// Render serializes entries in manifest wire format: UTF-8, CRLF line
// endings, header label, divider, then one line per entry.
func Render(entries []Entry) []byte {
	var b strings.Builder
	b.WriteString(headerLabel + "\r\n")
	b.WriteString(headerDivider + "\r\n")
	for _, e := range entries {
		b.WriteString(e.Hash + "  ./" + e.Path + "\r\n")
	}
	return []byte(b.String())
}

// WriteFile overwrites the manifest at root/Filename.
func WriteFile(root string, entries []Entry) error {
	dest := filepath.Join(root, Filename)
	if err := os.WriteFile(dest, Render(entries), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadFile reads and parses the manifest at root/Filename.
func ReadFile(root string) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(root, Filename))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}
