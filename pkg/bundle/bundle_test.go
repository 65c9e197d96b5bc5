package bundle

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"bundle_root: /srv/bundles/release-2026-08\n"+
			"release_parent: /srv/bundles\n"+
			"bundle_pattern: \"release-*\"\n"+
			"exclude:\n  - \"*.log\"\n  - tmp/\n",
	), 0644))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "/srv/bundles/release-2026-08", cfg.BundleRoot)
	assert.Equal(t, "/srv/bundles", cfg.ReleaseParent)
	assert.Equal(t, "release-*", cfg.Pattern())
	assert.Equal(t, []string{"*.log", "tmp/"}, cfg.Exclude)
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(
		path, []byte("bundle_root: [unclosed"), 0644,
	))
	_, err := LoadConfig(path)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestConfigDefaultPattern(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "release-*", cfg.Pattern())
}

func TestResolveRootPrecedence(t *testing.T) {
	explicit := t.TempDir()
	override := t.TempDir()

	// explicit argument wins over the config override
	root, err := ResolveRoot(explicit, &Config{BundleRoot: override})
	assert.NoError(t, err)
	assert.Equal(t, explicit, root)

	// config override wins when no argument is given
	root, err = ResolveRoot("", &Config{BundleRoot: override})
	assert.NoError(t, err)
	assert.Equal(t, override, root)
}

func TestResolveRootNothingConfigured(t *testing.T) {
	_, err := ResolveRoot("", &Config{})
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestResolveRootMissingDir(t *testing.T) {
	_, err := ResolveRoot(
		filepath.Join(t.TempDir(), "nope"), &Config{},
	)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLatestBundle(t *testing.T) {
	parent := t.TempDir()
	old := filepath.Join(parent, "release-2026-07")
	newer := filepath.Join(parent, "release-2026-08")
	require.NoError(t, os.Mkdir(old, 0755))
	require.NoError(t, os.Mkdir(newer, 0755))
	require.NoError(t, os.Mkdir(
		filepath.Join(parent, "scratch"), 0755,
	))
	makeTree(t, parent, map[string]string{"release-notes.txt": "x"})

	base := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, base, base))
	require.NoError(t, os.Chtimes(
		newer, base.Add(time.Minute), base.Add(time.Minute),
	))

	got, err := LatestBundle(parent, "release-*")
	assert.NoError(t, err)
	assert.Equal(t, newer, got)
}

func TestLatestBundleNoMatch(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.Mkdir(
		filepath.Join(parent, "scratch"), 0755,
	))
	_, err := LatestBundle(parent, "release-*")
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	makeTree(t, src, map[string]string{
		"a.txt":       "A",
		"sub/b.txt":   "B",
		"sub/d/c.txt": "C",
	})
	dst := filepath.Join(t.TempDir(), "staged")

	count, err := CopyTree(src, dst)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)

	data, err := os.ReadFile(filepath.Join(dst, "sub", "d", "c.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "C", string(data))
}

func TestCopyTreeIdenticalPathIsNoop(t *testing.T) {
	dir := t.TempDir()
	makeTree(t, dir, map[string]string{"a.txt": "A"})

	count, err := CopyTree(dir, dir)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	// same path spelled differently still counts as identical
	count, err = CopyTree(dir, dir+string(os.PathSeparator)+".")
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCopyTreeRejectsNestedDestination(t *testing.T) {
	src := t.TempDir()
	makeTree(t, src, map[string]string{"a.txt": "A"})

	_, err := CopyTree(src, filepath.Join(src, "inner"))
	assert.Error(t, err)
}

func TestZip(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{
		"a.txt":     "A",
		"sub/b.txt": "B",
	})
	out := filepath.Join(t.TempDir(), "bundle.zip")

	count, err := Zip(root, out)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, names)
}

func TestZipMissingRoot(t *testing.T) {
	_, err := Zip(
		filepath.Join(t.TempDir(), "nope"),
		filepath.Join(t.TempDir(), "out.zip"),
	)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
