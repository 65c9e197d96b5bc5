package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	in := []Entry{
		{Hash: hashA, Path: "a.txt"},
		{Hash: hashHello, Path: "b/c.txt"},
	}
	out, err := Parse(Render(in))
	assert.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseSkipsHeaderVariants(t *testing.T) {
	text := strings.Join([]string{
		"sha256",
		"SHA256",
		"Checksums",
		"SHA256 Checksums",
		"====",
		"================================",
		"",
		"   ",
		hashA + "  ./a.txt",
	}, "\r\n")

	entries, err := Parse([]byte(text))
	assert.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Path)
}

func TestParseNormalizesPaths(t *testing.T) {
	cases := map[string]string{
		"./a.txt":              "a.txt",
		`.\b\c.txt`:            "b/c.txt",
		"sub/d.txt":            "sub/d.txt",
		`sub\e.txt`:            "sub/e.txt",
		"././f.txt":            "./f.txt", // one marker stripped, no more
		"name with spaces.txt": "name with spaces.txt",
	}
	for raw, want := range cases {
		entries, err := Parse([]byte(hashA + "  " + raw + "\r\n"))
		require.NoError(t, err, "path %q", raw)
		require.Len(t, entries, 1)
		assert.Equal(t, want, entries[0].Path)
	}
}

func TestParseUppercasesHash(t *testing.T) {
	entries, err := Parse([]byte(
		strings.ToLower(hashA) + "  ./a.txt\r\n",
	))
	assert.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, hashA, entries[0].Hash)
}

func TestParseRejectsMalformedLine(t *testing.T) {
	cases := []string{
		"not a manifest line",
		"deadbeef  ./short-hash.txt",
		hashA[:63] + "  ./truncated.txt",
		hashA + "G  ./not-hex.txt",
		hashA, // hash with no path
	}
	for _, line := range cases {
		_, err := Parse([]byte(line + "\r\n"))
		require.Error(t, err, "line %q", line)

		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "line %q", line)
	}
}

func TestParseRejectsAbsolutePath(t *testing.T) {
	cases := []string{
		"/etc/passwd",
		`C:\Windows\System32\drivers\etc\hosts`,
		"//server/share/x",
	}
	for _, p := range cases {
		_, err := Parse([]byte(hashA + "  " + p + "\r\n"))
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "path %q", p)
	}
}

func TestParseRejectsEscapingPath(t *testing.T) {
	_, err := Parse([]byte(hashA + "  ../outside.txt\r\n"))
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseAllOrNothing(t *testing.T) {
	text := hashA + "  ./good.txt\r\n" +
		"corrupt line\r\n" +
		hashHello + "  ./also-good.txt\r\n"

	entries, err := Parse([]byte(text))
	assert.Error(t, err)
	assert.Nil(t, entries)
}

func TestParseReportsLineNumber(t *testing.T) {
	text := "SHA256 Checksums\r\n" +
		"================\r\n" +
		"bogus\r\n"

	_, err := Parse([]byte(text))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 3, parseErr.Line)
}

func TestParseKeepsDuplicates(t *testing.T) {
	text := hashA + "  ./a.txt\r\n" +
		hashHello + "  ./a.txt\r\n"

	entries, err := Parse([]byte(text))
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestParseEmpty(t *testing.T) {
	entries, err := Parse(nil)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
