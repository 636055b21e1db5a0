package changeset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/changesets/internal/bump"
	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes the frontmatter block. It must appear as a
// whole line, newline included.
const Delimiter = "---\n"

// Decode parses changeset text into a Changeset.
// On any error no Changeset is returned.
func Decode(text string) (*Changeset, error) {
	block, body, err := splitFrontmatter(text)
	if err != nil {
		return nil, err
	}

	releases, err := decodeReleases(block)
	if err != nil {
		return nil, err
	}

	return &Changeset{
		Summary:  strings.TrimSpace(body),
		Releases: releases,
	}, nil
}

// Load reads all of r and decodes it.
func Load(r io.Reader) (*Changeset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading changeset: %w", err)
	}
	return Decode(string(data))
}

// Encode renders c in the canonical text form. Package names are written
// between double quotes verbatim; Decode reads a backslash inside them back
// as a literal backslash.
func Encode(c Changeset) string {
	var sb strings.Builder

	sb.WriteString(Delimiter)
	for _, r := range c.Releases {
		sb.WriteString(`"`)
		sb.WriteString(r.Package)
		sb.WriteString(`": `)
		sb.WriteString(r.Kind.String())
		sb.WriteString("\n")
	}
	sb.WriteString(Delimiter)
	sb.WriteString("\n")
	sb.WriteString(c.Summary)
	sb.WriteString("\n")

	return sb.String()
}

// splitFrontmatter returns the text between the delimiters and everything
// after the closing one.
func splitFrontmatter(text string) (block, body string, err error) {
	if !strings.HasPrefix(text, Delimiter) {
		return "", "", ErrMissingFrontmatter
	}
	rest := text[len(Delimiter):]

	end := -1
	if strings.HasPrefix(rest, Delimiter) {
		end = 0
	} else if i := strings.Index(rest, "\n"+Delimiter); i >= 0 {
		end = i + 1
	}
	if end < 0 {
		return "", "", ErrUnterminatedFrontmatter
	}

	return rest[:end], rest[end+len(Delimiter):], nil
}

// decodeReleases parses the frontmatter mapping, keeping entry order.
func decodeReleases(block string) ([]Release, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(literalKeys(block)), &doc); err != nil {
		return nil, &MetadataError{Err: err}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil
		}
		root = root.Content[0]
	}

	switch {
	case root.Kind == 0:
		return nil, nil
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		return nil, nil
	case root.Kind != yaml.MappingNode:
		return nil, &MetadataError{
			Line:    fileLine(root),
			Message: "frontmatter must map package names to bump kinds",
		}
	}

	var releases []Release
	seen := make(map[string]bool, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		if key.Kind != yaml.ScalarNode {
			return nil, &MetadataError{Line: fileLine(key), Message: "package name must be a string"}
		}
		if key.Value == "" {
			return nil, &MetadataError{Line: fileLine(key), Message: "package name is empty"}
		}
		if value.Kind != yaml.ScalarNode {
			return nil, &MetadataError{
				Line:    fileLine(value),
				Message: fmt.Sprintf("bump kind for %q must be a scalar", key.Value),
			}
		}
		if seen[key.Value] {
			return nil, &DuplicatePackageError{Package: key.Value, Line: fileLine(key)}
		}
		seen[key.Value] = true

		kind, err := bump.Parse(value.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: package %q: %w", fileLine(value), key.Value, err)
		}

		releases = append(releases, Release{Package: key.Value, Kind: kind})
	}

	return releases, nil
}

// literalKeys rewrites double-quoted keys holding a backslash into single
// quotes, where YAML has no escape sequences. Lines keep their positions.
func literalKeys(block string) string {
	if !strings.Contains(block, `\`) {
		return block
	}

	lines := strings.SplitAfter(block, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, `"`) {
			continue
		}
		end := strings.IndexByte(line[1:], '"') + 1
		if end == 0 || !strings.HasPrefix(line[end+1:], ":") {
			continue
		}
		name := line[1:end]
		if !strings.Contains(name, `\`) {
			continue
		}
		lines[i] = "'" + strings.ReplaceAll(name, "'", "''") + "'" + line[end+1:]
	}
	return strings.Join(lines, "")
}

// fileLine converts a node line within the frontmatter block to a line in
// the changeset file, which has the opening delimiter on line 1.
func fileLine(n *yaml.Node) int {
	if n.Line == 0 {
		return 0
	}
	return n.Line + 1
}

func isUnrecognizedKind(err error) bool {
	return errors.Is(err, bump.ErrUnrecognized)
}
