// Package completion parses level completion flags and decides whether an
// execution result satisfies them.
package completion

import (
	"strconv"
	"strings"

	"github.com/harrison/levelverify/internal/models"
)

var prefixed = map[string]models.FlagKind{
	"println":         models.FlagPrintContains,
	"println_exact":   models.FlagPrintExact,
	"eprintln":        models.FlagErrorContains,
	"error_exact":     models.FlagErrorExact,
	"items_collected": models.FlagItemsCollected,
	"moves_made":      models.FlagMovesMade,
}

var bare = map[string]models.FlagKind{
	"println":         models.FlagAnyPrint,
	"eprintln":        models.FlagAnyError,
	"error":           models.FlagAnyError,
	"items_collected": models.FlagAnyItem,
}

// ParseFlag parses a completion flag of the form "type:value" or "type".
// Unknown or empty flags parse to FlagNone and are evaluated against the
// fallback markers instead.
func ParseFlag(raw string, markers []string) models.CompletionFlag {
	flag := models.CompletionFlag{
		Kind:    models.FlagNone,
		Raw:     raw,
		Valid:   true,
		Markers: append([]string(nil), markers...),
	}
	if raw == "" {
		return flag
	}

	name, value, hasValue := strings.Cut(raw, ":")
	if !hasValue {
		if kind, ok := bare[name]; ok {
			flag.Kind = kind
		}
		return flag
	}

	kind, ok := prefixed[name]
	if !ok {
		return flag
	}
	flag.Kind = kind
	flag.Value = value
	if kind == models.FlagItemsCollected || kind == models.FlagMovesMade {
		n, err := strconv.ParseUint(value, 10, 31)
		flag.Valid = err == nil
		flag.Count = int(n)
	}
	return flag
}
