package models

import "fmt"

// SyntaxProblem is one diagnostic reported by a syntax checker.
type SyntaxProblem struct {
	Line    int // 1-based
	Column  int // 1-based
	Message string
}

func (p SyntaxProblem) String() string {
	return fmt.Sprintf("line %d, column %d: %s", p.Line, p.Column, p.Message)
}
