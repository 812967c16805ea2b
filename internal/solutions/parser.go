package solutions

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is the on-disk encoding of a solutions file.
type Format int

const (
	FormatUnknown Format = iota
	FormatMarkdown
	FormatYAML
)

var formatNames = map[Format]string{
	FormatMarkdown: "markdown",
	FormatYAML:     "yaml",
}

var extensions = map[string]Format{
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".yaml":     FormatYAML,
	".yml":      FormatYAML,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// Parser reads a solutions table from r.
type Parser interface {
	Parse(r io.Reader) (*Table, error)
}

// DetectFormat maps a file extension, case-insensitively, to its Format.
func DetectFormat(filename string) Format {
	return extensions[strings.ToLower(filepath.Ext(filename))]
}

// NewParser returns the parser for format.
func NewParser(format Format) (Parser, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdownParser(), nil
	case FormatYAML:
		return NewYAMLParser(), nil
	}
	return nil, fmt.Errorf("unsupported format: %v", format)
}

// ParseFile loads the solutions table at path, picking the parser from the
// file extension.
func ParseFile(path string) (*Table, error) {
	parser, err := NewParser(DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("unknown file format: %s (supported: .md, .markdown, .yaml, .yml)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	table, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse solutions %s: %w", path, err)
	}
	return table, nil
}
