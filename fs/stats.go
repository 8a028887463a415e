package fs

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fwojciec/spicedocs"
)

// CountHTMLFiles returns the number of .html files under root. A missing
// or unreadable root counts as zero.
func CountHTMLFiles(root string) int {
	count := 0
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".html") {
			count++
		}
		return nil
	})
	return count
}

// ScanStats walks the mirror and aggregates file counts and total size.
func ScanStats(root string) (*spicedocs.ArchiveStats, error) {
	stats := &spicedocs.ArchiveStats{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if strings.HasSuffix(d.Name(), ".html") {
			stats.HTMLFiles++
		} else {
			stats.OtherFiles++
		}
		stats.TotalSize += info.Size()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
