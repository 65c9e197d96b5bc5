// Package paths validates and normalizes the relative paths that appear in
// bundle manifests. All manifest paths are slash-separated and relative to
// the bundle root; anything absolute or escaping the root is rejected.
package paths

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Normalize converts backslashes to forward slashes and strips exactly one
// leading "./" or ".\" marker. It deliberately does not clean the path
// further; callers that need full validation use ValidateRelPath.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(p, "./")
	return p
}

// ValidateRelPath rejects paths that are empty, absolute, contain a NUL
// byte, or escape the base directory via "..".
func ValidateRelPath(p string) error {
	if p == "" {
		return fmt.Errorf("empty path")
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("path contains null byte")
	}
	if IsAbs(p) {
		return fmt.Errorf("absolute path not allowed: %s", p)
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return fmt.Errorf("path resolves to current directory")
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("path escapes base directory: %s", p)
	}
	return nil
}

// IsAbs reports whether a slash-normalized path is absolute, including
// Windows drive-letter forms ("C:/...") and UNC-style "//server" paths.
func IsAbs(p string) bool {
	if path.IsAbs(p) {
		return true
	}
	if len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]) {
		return true
	}
	return false
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// CleanRelPath cleans a slash path and drops any leading "./".
func CleanRelPath(p string) string {
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "./")
	return p
}

// IsWithinDir reports whether full sits at or below dir.
func IsWithinDir(dir, full string) bool {
	rel, err := filepath.Rel(dir, full)
	if err != nil {
		return false
	}
	return rel != ".." &&
		!strings.HasPrefix(rel, "../") &&
		!filepath.IsAbs(rel)
}
