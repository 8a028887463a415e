// Package fs provides file-based storage for documentation mirrors.
package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/spicedocs"
	"github.com/google/uuid"
)

// tempPrefix marks in-progress download directories. Orphans left behind
// by killed crawls are matched by this prefix and removed on the next run.
const tempPrefix = ".spicedocs-download-"

// Store writes a mirror with atomic update semantics. Pages and the
// manifest are saved to a uniquely named temporary directory next to the
// destination, then moved over it in a single rename on Commit. The unique
// suffix keeps two concurrent crawls from clobbering each other's
// temporary state; the last Commit wins.
type Store struct {
	dest string
	temp string
}

// NewStore creates a Store that will publish at dest.
func NewStore(dest string) *Store {
	return &Store{
		dest: dest,
		temp: filepath.Join(filepath.Dir(dest), tempPrefix+uuid.New().String()),
	}
}

// TempDir returns the in-progress download directory.
func (s *Store) TempDir() string {
	return s.temp
}

// SavePage writes a page body under the mirror's fixed host segment.
// relPath is the URL-derived relative path, e.g. "pub/naif/toolkit_docs/C/index.html".
func (s *Store) SavePage(relPath string, body []byte) error {
	fullPath := filepath.Join(s.temp, spicedocs.HostSegment, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, body, 0o644)
}

// WriteManifest writes the manifest into the temporary directory. Call
// last, after every page has been saved: a mirror holding a manifest with
// Completed=true claims every in-scope page was saved or skipped.
func (s *Store) WriteManifest(m *spicedocs.Manifest) error {
	if err := os.MkdirAll(s.temp, 0o755); err != nil {
		return err
	}
	return WriteManifest(filepath.Join(s.temp, spicedocs.ManifestFilename), m)
}

// Commit atomically replaces the destination with the temporary directory.
func (s *Store) Commit() error {
	if err := os.RemoveAll(s.dest); err != nil {
		return err
	}
	return os.Rename(s.temp, s.dest)
}

// Abort discards the temporary directory.
func (s *Store) Abort() error {
	return os.RemoveAll(s.temp)
}

// RemoveOrphans deletes leftover temporary download directories next to
// dest. A crawl killed mid-flight leaves its temporary directory behind;
// this reclaims the space before the next crawl starts.
func RemoveOrphans(dest string) error {
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(dest), tempPrefix+"*"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.RemoveAll(m); err != nil {
			return err
		}
	}
	return nil
}
