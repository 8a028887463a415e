package fs

import (
	"encoding/json"
	"os"

	"github.com/fwojciec/spicedocs"
)

// ReadManifest reads and parses a manifest file. Returns ENOTFOUND if the
// file does not exist and EINVALID if it cannot be parsed; the cache
// validator treats both as "invalid mirror", not as faults.
func ReadManifest(path string) (*spicedocs.Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, spicedocs.Errorf(spicedocs.ENOTFOUND, "manifest %q not found", path)
	}
	if err != nil {
		return nil, err
	}

	var m spicedocs.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, spicedocs.Errorf(spicedocs.EINVALID, "corrupt manifest %q: %v", path, err)
	}
	return &m, nil
}

// WriteManifest serializes a manifest to path.
func WriteManifest(path string, m *spicedocs.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
