package solutions

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser reads solutions written as a Markdown document where each
// "## <level name>" heading is followed by a fenced code block:
//
//	## Hello Rust
//
//	```rust
//	fn main() { println!("Hello, Rust!"); }
//	```
//
// Only the first rust (or untagged) block under a heading is used.
type MarkdownParser struct {
	markdown goldmark.Markdown
}

// NewMarkdownParser creates a MarkdownParser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		markdown: goldmark.New(),
	}
}

// Parse reads a Markdown solutions document.
func (p *MarkdownParser) Parse(r io.Reader) (*Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	doc := p.markdown.Parser().Parse(text.NewReader(content))

	table := &Table{}
	var current string
	captured := false

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 2 {
				current = strings.TrimSpace(extractText(node, content))
				captured = false
			} else if node.Level < 2 {
				current = ""
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			if current == "" || captured || !isRustBlock(node.Language(content)) {
				return ast.WalkSkipChildren, nil
			}
			if err := table.Add(current, blockText(node, content)); err != nil {
				return ast.WalkStop, err
			}
			captured = true
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

func isRustBlock(lang []byte) bool {
	switch strings.ToLower(string(lang)) {
	case "", "rust", "rs":
		return true
	}
	return false
}

// extractText extracts the plain text of a heading, including text nested
// in emphasis or code spans.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			continue
		}
		buf.WriteString(extractText(c, source))
	}
	return buf.String()
}

func blockText(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}
