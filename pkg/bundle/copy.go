package bundle

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klove999/OraclePortfolioManager-public/pkg/paths"
)

// CopyTree copies the tree at src into dst, creating dst as needed, and
// returns the number of files copied. When src and dst resolve to the
// identical path the copy is a no-op, not an error. dst must not sit
// inside src.
func CopyTree(src, dst string) (int, error) {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return 0, fmt.Errorf("resolve source: %w", err)
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return 0, fmt.Errorf("resolve destination: %w", err)
	}
	if srcAbs == dstAbs {
		return 0, nil
	}
	if paths.IsWithinDir(srcAbs, dstAbs) {
		return 0, fmt.Errorf(
			"destination %s is inside source %s", dst, src,
		)
	}

	if _, err := checkDir(src); err != nil {
		return 0, err
	}

	count := 0
	err = filepath.WalkDir(
		src,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(src, p)
			if err != nil {
				return err
			}
			target := filepath.Join(dst, rel)
			if d.IsDir() {
				return os.MkdirAll(target, 0755)
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if err := copyFile(p, target); err != nil {
				return err
			}
			count++
			return nil
		},
	)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	out, err := os.OpenFile(
		dst,
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		info.Mode().Perm(),
	)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", dst, err)
	}
	return out.Close()
}
