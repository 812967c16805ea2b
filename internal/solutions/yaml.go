package solutions

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlSolutions is the on-disk shape of a YAML solutions file:
//
//	solutions:
//	  - level: Hello Rust
//	    code: |
//	      fn main() { println!("Hello, Rust!"); }
type yamlSolutions struct {
	Solutions []struct {
		Level string `yaml:"level"`
		Code  string `yaml:"code"`
	} `yaml:"solutions"`
}

// YAMLParser parses YAML solutions files.
type YAMLParser struct{}

// NewYAMLParser creates a YAMLParser.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// Parse reads a YAML solutions document.
func (p *YAMLParser) Parse(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	var doc yamlSolutions
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	table := &Table{}
	for i, s := range doc.Solutions {
		if s.Level == "" {
			return nil, fmt.Errorf("solution %d: level is required", i+1)
		}
		if err := table.Add(s.Level, s.Code); err != nil {
			return nil, err
		}
	}
	return table, nil
}
