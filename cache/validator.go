package cache

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/spicedocs"
	"github.com/fwojciec/spicedocs/fs"
)

// Valid reports whether the mirror at dir is complete and usable without
// re-downloading. It checks, short-circuiting on the first failure: the
// manifest exists and parses, its completion flag is set, the
// documentation directory exists, and the HTML file count meets the
// production threshold. A missing or corrupt manifest means "invalid",
// never an error. Side-effect free.
func Valid(dir string) bool {
	return ValidMin(dir, spicedocs.MinFileCount)
}

// ValidMin is Valid with a configurable minimum file count. Tests use
// small fixture mirrors that would never clear the production threshold.
func ValidMin(dir string, minFiles int) bool {
	manifest, err := fs.ReadManifest(filepath.Join(dir, spicedocs.ManifestFilename))
	if err != nil {
		return false
	}
	if !manifest.Completed {
		return false
	}

	docDir := filepath.Join(dir, spicedocs.HostSegment)
	info, err := os.Stat(docDir)
	if err != nil || !info.IsDir() {
		return false
	}

	return fs.CountHTMLFiles(docDir) >= minFiles
}
