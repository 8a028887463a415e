package fs

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/fwojciec/spicedocs"
)

// URLToPath converts a documentation URL to a mirror-relative file path.
// Directory URLs are materialized as an index.html file in that directory.
// Example: https://naif.jpl.nasa.gov/pub/naif/toolkit_docs/C/ → pub/naif/toolkit_docs/C/index.html
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", spicedocs.Errorf(spicedocs.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	path := strings.TrimPrefix(u.Path, "/")

	if path == "" || strings.HasSuffix(path, "/") {
		return path + "index.html", nil
	}
	return path, nil
}

// SafeJoin resolves rel against root and verifies the result stays inside
// root. It defends the query surface against "../" sequences and absolute
// path overrides. Returns the absolute resolved path, or EINVALID if the
// path escapes the archive.
func SafeJoin(root, rel string) (string, error) {
	if filepath.IsAbs(filepath.FromSlash(rel)) {
		return "", spicedocs.Errorf(spicedocs.EINVALID, "path %q is outside the archive", rel)
	}

	joined := filepath.Join(root, filepath.FromSlash(rel))

	// filepath.Join cleans the result, so an escape shows up as a
	// relative path starting with "..".
	check, err := filepath.Rel(root, joined)
	if err != nil || check == ".." || strings.HasPrefix(check, ".."+string(filepath.Separator)) {
		return "", spicedocs.Errorf(spicedocs.EINVALID, "path %q is outside the archive", rel)
	}

	return joined, nil
}
