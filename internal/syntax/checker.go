// Package syntax reports parse errors in solution source using tree-sitter.
package syntax

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/harrison/levelverify/internal/models"
)

// TreeSitter checks source against the Rust grammar.
// A single parser is shared and guarded, so one checker may serve many sessions.
type TreeSitter struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// NewTreeSitter creates a checker with the Rust grammar loaded.
func NewTreeSitter() *TreeSitter {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())
	return &TreeSitter{parser: parser}
}

// Check returns one problem per ERROR or MISSING node, in source order.
// A cancelled context or a parser failure is reported as a single problem at 1:1.
func (c *TreeSitter) Check(ctx context.Context, source string) []models.SyntaxProblem {
	c.mu.Lock()
	tree, err := c.parser.ParseCtx(ctx, nil, []byte(source))
	c.mu.Unlock()
	if err != nil {
		return []models.SyntaxProblem{{Line: 1, Column: 1, Message: fmt.Sprintf("parse failed: %v", err)}}
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}

	content := []byte(source)
	var problems []models.SyntaxProblem
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		switch {
		case n.IsMissing():
			problems = append(problems, problemAt(n, fmt.Sprintf("missing %s", n.Type())))
			return
		case n.IsError():
			problems = append(problems, problemAt(n, unexpected(n, content)))
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return problems
}

func problemAt(n *sitter.Node, msg string) models.SyntaxProblem {
	p := n.StartPoint()
	return models.SyntaxProblem{Line: int(p.Row) + 1, Column: int(p.Column) + 1, Message: msg}
}

func unexpected(n *sitter.Node, content []byte) string {
	text := n.Content(content)
	if len(text) > 20 {
		text = text[:20] + "..."
	}
	if text == "" {
		return "unexpected input"
	}
	return fmt.Sprintf("unexpected %q", text)
}
