package manifest

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// frontmatterYAML represents the optional options block at the top of a
// Markdown manifest.
type frontmatterYAML struct {
	Format  string `yaml:"format"`
	Quality *int   `yaml:"quality"`
}

// parseMarkdown extracts conversion options from the YAML frontmatter and
// file paths from the document's list items.
func parseMarkdown(content []byte) (*Manifest, error) {
	m := &Manifest{}

	body, frontmatter := extractFrontmatter(content)
	if frontmatter != nil {
		var fm frontmatterYAML
		if err := yaml.Unmarshal(frontmatter, &fm); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
		m.Format = fm.Format
		m.Quality = fm.Quality
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(body))

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if item, ok := n.(*ast.ListItem); ok {
			path := listItemText(item, body)
			if path != "" {
				m.Files = append(m.Files, path)
			}
			// Keep walking: nested lists contribute their own items
			return ast.WalkContinue, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// listItemText returns the concatenated text content of a list item's first
// paragraph, covering both plain text and `code span` entries.
func listItemText(item *ast.ListItem, source []byte) string {
	var buf bytes.Buffer

	for block := item.FirstChild(); block != nil; block = block.NextSibling() {
		// Only the first text block carries the path; nested lists are
		// handled as their own items by the walk
		if block.Kind() != ast.KindTextBlock && block.Kind() != ast.KindParagraph {
			continue
		}
		for c := block.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Text:
				buf.Write(node.Segment.Value(source))
			case *ast.CodeSpan:
				for cs := node.FirstChild(); cs != nil; cs = cs.NextSibling() {
					if t, ok := cs.(*ast.Text); ok {
						buf.Write(t.Segment.Value(source))
					}
				}
			}
		}
		break
	}

	return string(bytes.TrimSpace(buf.Bytes()))
}

// extractFrontmatter splits the leading "---" delimited YAML block from the
// markdown body. Returns the body unchanged when no frontmatter is present.
func extractFrontmatter(content []byte) ([]byte, []byte) {
	lines := bytes.Split(content, []byte("\n"))

	// Check if starts with ---
	if len(lines) < 3 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, nil
	}

	// Find closing ---
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatter := bytes.Join(lines[1:i], []byte("\n"))
			body := bytes.Join(lines[i+1:], []byte("\n"))
			return body, frontmatter
		}
	}

	// No closing delimiter found
	return content, nil
}
