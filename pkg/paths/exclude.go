package paths

import (
	"path/filepath"
	"strings"
)

// ExcludeMatcher matches relative slash paths against rsync-style exclude
// patterns: bare names match any path component, patterns with "/" match
// against the whole relative path, and "**" spans directories.
type ExcludeMatcher struct {
	patterns []string
}

func NewExcludeMatcher(patterns []string) *ExcludeMatcher {
	return &ExcludeMatcher{patterns: patterns}
}

func (m *ExcludeMatcher) Match(relPath string) bool {
	for _, pat := range m.patterns {
		pat = strings.TrimSuffix(pat, "/")
		if matchExclude(pat, relPath) {
			return true
		}
	}
	return false
}

func matchExclude(pattern, relPath string) bool {
	if strings.Contains(pattern, "/") {
		if strings.Contains(pattern, "**") {
			return matchDoublestar(pattern, relPath)
		}
		matched, _ := filepath.Match(pattern, relPath)
		return matched
	}
	for _, part := range strings.Split(relPath, "/") {
		if matched, _ := filepath.Match(pattern, part); matched {
			return true
		}
	}
	if strings.Contains(pattern, "**") {
		return matchDoublestar(pattern, relPath)
	}
	return false
}

func matchDoublestar(pattern, relPath string) bool {
	parts := strings.Split(pattern, "**")
	if len(parts) != 2 {
		return false
	}
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	switch {
	case prefix == "" && suffix == "":
		return true
	case prefix == "":
		return matchTail(suffix, relPath)
	case suffix == "":
		return relPath == prefix ||
			strings.HasPrefix(relPath, prefix+"/")
	}
	if !strings.HasPrefix(relPath, prefix+"/") {
		return false
	}
	return matchTail(suffix, strings.TrimPrefix(relPath, prefix+"/"))
}

func matchTail(suffix, relPath string) bool {
	parts := strings.Split(relPath, "/")
	for i := range parts {
		tail := strings.Join(parts[i:], "/")
		if matched, _ := filepath.Match(suffix, tail); matched {
			return true
		}
	}
	return false
}
