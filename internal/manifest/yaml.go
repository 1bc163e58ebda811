package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlManifest is the on-disk shape of a YAML manifest.
type yamlManifest struct {
	Format  string   `yaml:"format"`
	Quality *int     `yaml:"quality"`
	Files   []string `yaml:"files"`
}

// parseYAML parses a plain YAML manifest.
func parseYAML(content []byte) (*Manifest, error) {
	var ym yamlManifest
	if err := yaml.Unmarshal(content, &ym); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	m := &Manifest{
		Format:  ym.Format,
		Quality: ym.Quality,
		Files:   ym.Files,
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}
