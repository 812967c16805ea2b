package models

// FlagKind selects the predicate a CompletionFlag applies.
type FlagKind int

const (
	FlagNone FlagKind = iota
	FlagPrintContains
	FlagPrintExact
	FlagErrorContains
	FlagErrorExact
	FlagItemsCollected
	FlagMovesMade
	FlagAnyPrint
	FlagAnyError
	FlagAnyItem
)

// CompletionFlag is the parsed form of a level's completion_flag string.
// Markers are the level's fallback literals, consulted when the flag itself
// is absent or unrecognised.
type CompletionFlag struct {
	Kind    FlagKind
	Raw     string   // Original flag text
	Value   string   // Expected text for print flags
	Count   int      // Threshold for count flags
	Valid   bool     // False when a count flag carried a malformed number
	Markers []string // Fallback literals in priority order
}
