package patchfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest lists the expected fingerprints of one patch version's files.
type Manifest struct {
	// Version is the fingerprint of the patch bundle the files belong to.
	Version string  `yaml:"version"`
	Files   []Check `yaml:"files"`
}

// LoadManifest reads a YAML manifest. Relative file paths are resolved against the
// manifest's own directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range m.Files {
		if !filepath.IsAbs(m.Files[i].Path) {
			m.Files[i].Path = filepath.Join(base, m.Files[i].Path)
		}
	}
	return &m, nil
}

// Validate checks that every fingerprint is well formed and every file has a path.
func (m *Manifest) Validate() error {
	if m.Version != "" {
		if _, err := ParseFingerprint(m.Version); err != nil {
			return fmt.Errorf("version: %w", err)
		}
	}
	if len(m.Files) == 0 {
		return fmt.Errorf("no files listed")
	}
	for i, f := range m.Files {
		if f.Path == "" {
			return fmt.Errorf("files[%d]: path is required", i)
		}
		if _, err := ParseFingerprint(f.Expected); err != nil {
			return fmt.Errorf("files[%d] (%s): %w", i, f.Path, err)
		}
	}
	return nil
}
