package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Zip archives the bundle tree at root into a zip file at out, returning
// the number of files written. Entries go in sorted path order with
// zeroed timestamps so archiving the same tree twice produces the same
// archive. The manifest file is included like any other file.
func Zip(root, out string) (int, error) {
	if _, err := checkDir(root); err != nil {
		return 0, err
	}

	var rels []string
	err := filepath.WalkDir(
		root,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			rels = append(rels, filepath.ToSlash(rel))
			return nil
		},
	)
	if err != nil {
		return 0, err
	}
	sort.Strings(rels)

	f, err := os.Create(out)
	if err != nil {
		return 0, fmt.Errorf("create archive: %w", err)
	}
	zw := zip.NewWriter(f)

	for _, rel := range rels {
		err := addZipEntry(zw, root, rel)
		if err != nil {
			zw.Close()
			f.Close()
			return 0, err
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return 0, fmt.Errorf("finalize archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close archive: %w", err)
	}
	return len(rels), nil
}

func addZipEntry(zw *zip.Writer, root, rel string) error {
	src, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("open %s: %w", rel, err)
	}
	defer src.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     rel,
		Method:   zip.Deflate,
		Modified: time.Time{},
	})
	if err != nil {
		return fmt.Errorf("write header %s: %w", rel, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("write body %s: %w", rel, err)
	}
	return nil
}
