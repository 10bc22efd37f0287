package manifest

import (
	"os"
	"path/filepath"
)

// ManifestFileName is the conventional manifest file name at the root of a
// run directory.
const ManifestFileName = "manifest.json"

// Load reads and parses runDir/manifest.json, resolving its relative session
// file paths against runDir.
func Load(runDir string) (Manifest, error) {
	path := filepath.Join(runDir, ManifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}

	return Parse(data, runDir)
}
