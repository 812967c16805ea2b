// Package solutions loads the table of reference solutions the orchestrator
// types into the editor, keyed by level name.
package solutions

import (
	"fmt"
	"sort"

	"github.com/harrison/levelverify/internal/models"
)

// Table maps level names to solution source text. The zero value is an
// empty table ready to use.
type Table struct {
	code  map[string]string
	order []string
}

// New builds a Table from a name to source map.
func New(entries map[string]string) *Table {
	t := &Table{}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t.set(name, entries[name])
	}
	return t
}

// Add inserts a solution. Adding a name twice is an error so that a file
// cannot silently shadow an earlier entry.
func (t *Table) Add(level, code string) error {
	if level == "" {
		return fmt.Errorf("solution has no level name")
	}
	if _, ok := t.code[level]; ok {
		return fmt.Errorf("duplicate solution for level %q", level)
	}
	t.set(level, code)
	return nil
}

func (t *Table) set(level, code string) {
	if t.code == nil {
		t.code = make(map[string]string)
	}
	if _, ok := t.code[level]; !ok {
		t.order = append(t.order, level)
	}
	t.code[level] = code
}

// Solution returns the solution for a level. It implements
// executor.SolutionSource.
func (t *Table) Solution(level string) (string, bool) {
	if t == nil {
		return "", false
	}
	code, ok := t.code[level]
	return code, ok
}

// Names returns the level names in insertion order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.order...)
}

// Len returns the number of solutions.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.code)
}

// Missing returns the levels that have no solution, in curriculum order.
func (t *Table) Missing(levels []models.Level) []models.Level {
	var missing []models.Level
	for _, l := range levels {
		if _, ok := t.Solution(l.Name); !ok {
			missing = append(missing, l)
		}
	}
	return missing
}

// Merge returns a table holding every entry of t, overridden by entries of
// other with the same name.
func (t *Table) Merge(other *Table) *Table {
	merged := &Table{}
	for _, name := range t.Names() {
		merged.set(name, t.code[name])
	}
	for _, name := range other.Names() {
		merged.set(name, other.code[name])
	}
	return merged
}
