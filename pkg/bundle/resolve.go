package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ResolveRoot picks the bundle root for this invocation. Precedence:
// explicit argument, then the config override, then the newest directory
// under the configured release parent matching the bundle pattern.
func ResolveRoot(explicit string, cfg *Config) (string, error) {
	if explicit != "" {
		return checkDir(explicit)
	}
	if cfg.BundleRoot != "" {
		return checkDir(cfg.BundleRoot)
	}
	if cfg.ReleaseParent != "" {
		return LatestBundle(cfg.ReleaseParent, cfg.Pattern())
	}
	return "", &ConfigError{
		Reason: "no bundle root: pass a path, or set " +
			"bundle_root or release_parent in the config",
	}
}

// LatestBundle returns the most recently modified directory under parent
// whose name matches pattern.
func LatestBundle(parent, pattern string) (string, error) {
	dirents, err := os.ReadDir(parent)
	if err != nil {
		return "", &ConfigError{
			Path:   parent,
			Reason: fmt.Sprintf("read release parent: %v", err),
		}
	}

	var best string
	var bestTime time.Time
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		matched, err := filepath.Match(pattern, d.Name())
		if err != nil || !matched {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		if best == "" || info.ModTime().After(bestTime) {
			best = filepath.Join(parent, d.Name())
			bestTime = info.ModTime()
		}
	}
	if best == "" {
		return "", &ConfigError{
			Path: parent,
			Reason: fmt.Sprintf(
				"no bundle directory matches %q", pattern,
			),
		}
	}
	return best, nil
}

func checkDir(p string) (string, error) {
	info, err := os.Stat(p)
	if err != nil {
		return "", &ConfigError{
			Path:   p,
			Reason: fmt.Sprintf("bundle root: %v", err),
		}
	}
	if !info.IsDir() {
		return "", &ConfigError{
			Path:   p,
			Reason: "bundle root is not a directory",
		}
	}
	return p, nil
}
