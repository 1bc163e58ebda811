// Package manifest parses conversion manifests: files that list the audio
// files to convert together with the target format and quality.
//
// Two formats are supported: Markdown with YAML frontmatter (list items are
// file paths) and plain YAML. The format is selected by file extension.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Manifest describes a list-driven conversion run.
type Manifest struct {
	// Format is the target format for all listed files ("" = use config).
	Format string
	// Quality is the 0-10 VBR quality; nil means use the configured default.
	Quality *int
	// Files are the listed input paths, in manifest order.
	Files []string
	// FilePath is the path the manifest was loaded from.
	FilePath string
}

// ParseFile parses a manifest file, choosing the parser by extension.
// .md/.markdown are parsed as Markdown, .yaml/.yml as YAML.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m *Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		m, err = parseMarkdown(data)
	case ".yaml", ".yml":
		m, err = parseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q (use .md, .yaml or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	m.FilePath = path
	return m, nil
}

// ResolvedFiles returns the manifest's file entries with relative paths
// resolved against the manifest's directory.
func (m *Manifest) ResolvedFiles() []string {
	base := filepath.Dir(m.FilePath)
	resolved := make([]string, len(m.Files))
	for i, f := range m.Files {
		if filepath.IsAbs(f) {
			resolved[i] = f
		} else {
			resolved[i] = filepath.Join(base, f)
		}
	}
	return resolved
}

// validate rejects manifests with no usable entries.
func (m *Manifest) validate() error {
	if len(m.Files) == 0 {
		return fmt.Errorf("manifest lists no files")
	}
	if m.Quality != nil && (*m.Quality < 0 || *m.Quality > 10) {
		return fmt.Errorf("quality must be between 0 and 10, got %d", *m.Quality)
	}
	return nil
}
