package manifest

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/klove999/OraclePortfolioManager-public/pkg/paths"
)

type fileJob struct {
	relPath string
	absPath string
}

type hashResult struct {
	entry Entry
	err   error
}

// Build walks the bundle root and returns one entry per regular file,
// sorted by path. The manifest file itself and anything matching an
// exclude pattern is skipped. Hashing fans out across a worker pool;
// entries are re-sorted afterward so rebuilds stay deterministic.
func Build(root string, excludes []string) ([]Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("bundle root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(
			"bundle root is not a directory: %s", root,
		)
	}

	jobs, err := collectFiles(root, excludes)
	if err != nil {
		return nil, err
	}

	workers := runtime.NumCPU()
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers == 0 {
		return []Entry{}, nil
	}

	jobCh := make(chan fileJob, len(jobs))
	resultCh := make(chan hashResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hashWorker(jobCh, resultCh)
		}()
	}

	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	wg.Wait()
	close(resultCh)

	entries := make([]Entry, 0, len(jobs))
	for r := range resultCh {
		if r.err != nil {
			return nil, r.err
		}
		entries = append(entries, r.entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// BuildFile rebuilds the manifest for root and overwrites root/Filename.
func BuildFile(root string, excludes []string) ([]Entry, error) {
	entries, err := Build(root, excludes)
	if err != nil {
		return nil, err
	}
	if err := WriteFile(root, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func collectFiles(root string, excludes []string) ([]fileJob, error) {
	matcher := paths.NewExcludeMatcher(excludes)

	var jobs []fileJob
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
			if rel == "." || rel == Filename {
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
			jobs = append(jobs, fileJob{
				relPath: rel,
				absPath: p,
			})
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func hashWorker(
	jobs <-chan fileJob,
	results chan<- hashResult,
) {
	buf := make([]byte, 1<<20)
	for j := range jobs {
		hash, err := HashFile(j.absPath, buf)
		results <- hashResult{
			entry: Entry{Hash: hash, Path: j.relPath},
			err:   err,
		}
	}
}

// HashFile returns the uppercase hex SHA-256 digest of the file at path.
// buf may be nil; workers pass a reusable copy buffer.
func HashFile(path string, buf []byte) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if buf == nil {
		buf = make([]byte, 1<<20)
	}
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return fmt.Sprintf("%X", h.Sum(nil)), nil
}
