// Package extract recovers robot actions and printed output from solution
// source text without compiling it. Extraction is heuristic: it looks for
// known call shapes and print macros, and ignores everything it does not
// recognise.
package extract

import (
	"regexp"
	"strings"

	"github.com/harrison/levelverify/internal/models"
)

// Print line prefixes produced by ScanPrints.
const (
	StdoutPrefix = "stdout: "
	StderrPrefix = "stderr: "
	PanicPrefix  = "panic: "
)

// Extraction is the result of scanning one source text. Its slices are shared
// with the cache and must not be modified.
type Extraction struct {
	Actions []models.Action
	Prints  []string
}

var (
	callPattern    = regexp.MustCompile(`\b(move_bot|move|scan|grab|open_door|wait)\s*\(`)
	printPattern   = regexp.MustCompile(`\b(eprintln|eprint|println|print|panic)!\s*\(`)
	bindingPattern = regexp.MustCompile(`\blet\s+(?:mut\s+)?([A-Za-z_]\w*)\s*(?::[^=;]*)?=\s*`)
	fnBefore       = regexp.MustCompile(`(?:^|\W)fn\s*$`)
	numberPattern  = regexp.MustCompile(`^-?\d[\d_]*(?:\.\d+)?(?:[iuf](?:8|16|32|64|128|size))?$`)
	identPattern   = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

var actionKinds = map[string]models.ActionKind{
	"move":      models.ActionMove,
	"move_bot":  models.ActionMove,
	"scan":      models.ActionScan,
	"grab":      models.ActionGrab,
	"open_door": models.ActionOpenDoor,
	"wait":      models.ActionWait,
}

// Extract runs both scans over source.
func Extract(source string) Extraction {
	src := lex(source)
	binds := src.bindings()
	return Extraction{
		Actions: src.actions(binds),
		Prints:  src.prints(binds),
	}
}

// ScanActions returns the robot actions in source order.
func ScanActions(source string) []models.Action {
	src := lex(source)
	return src.actions(src.bindings())
}

// ScanPrints returns the print lines in source order, each carrying its
// stream prefix.
func ScanPrints(source string) []string {
	src := lex(source)
	return src.prints(src.bindings())
}

func (s *source) actions(binds bindings) []models.Action {
	var actions []models.Action
	for _, m := range callPattern.FindAllStringSubmatchIndex(s.masked, -1) {
		start, open := m[0], m[1]-1
		if fnBefore.MatchString(s.masked[:start]) {
			continue
		}
		closing := s.closingParen(open)
		if closing < 0 {
			continue
		}
		kind := actionKinds[s.masked[m[2]:m[3]]]
		action := models.Action{Kind: kind, Raw: s.text[start : closing+1]}
		if kind == models.ActionMove || kind == models.ActionScan {
			action.Direction = s.direction(s.trim(open+1, closing), binds)
		}
		actions = append(actions, action)
	}
	return actions
}

// direction resolves a call argument to a Direction. Anything that is not one
// of the four names, bare, quoted or bound to a quoted name, is DirectionNone.
func (s *source) direction(arg span, binds bindings) models.Direction {
	text := s.slice(arg)
	if lit, ok := s.literalAt(arg); ok {
		text = lit.value
	} else if strings.HasPrefix(text, "'") && strings.HasSuffix(text, "'") && len(text) >= 2 {
		text = text[1 : len(text)-1]
	} else if identPattern.MatchString(text) {
		if b, ok := binds.lookup(text, arg.start); ok && b.quoted {
			text = b.value
		}
	}
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.TrimPrefix(text, "direction::")
	switch text {
	case "up":
		return models.DirectionUp
	case "down":
		return models.DirectionDown
	case "left":
		return models.DirectionLeft
	case "right":
		return models.DirectionRight
	default:
		return models.DirectionNone
	}
}

func (s *source) prints(binds bindings) []string {
	var lines []string
	for _, m := range printPattern.FindAllStringSubmatchIndex(s.masked, -1) {
		open := m[1] - 1
		closing := s.closingParen(open)
		if closing < 0 {
			continue
		}
		args := s.splitArgs(open+1, closing)
		text := ""
		if len(args) > 0 {
			format, ok := s.literalAt(args[0])
			if !ok {
				continue
			}
			text = s.format(format.value, args[1:], m[0], binds)
		}
		lines = append(lines, prefixFor(s.masked[m[2]:m[3]])+text)
	}
	return lines
}

func prefixFor(macro string) string {
	switch macro {
	case "eprintln", "eprint":
		return StderrPrefix
	case "panic":
		return PanicPrefix
	default:
		return StdoutPrefix
	}
}

// binding is a `let name = <literal>` seen in the source.
type binding struct {
	offset int
	name   string
	value  string
	quoted bool
}

type bindings []binding

// lookup returns the latest binding of name declared before offset.
func (bs bindings) lookup(name string, offset int) (binding, bool) {
	var found binding
	ok := false
	for _, b := range bs {
		if b.offset >= offset {
			break
		}
		if b.name == name {
			found, ok = b, true
		}
	}
	return found, ok
}

var stringWrappers = []string{"String::from("}

func (s *source) bindings() bindings {
	var out bindings
	for _, m := range bindingPattern.FindAllStringSubmatchIndex(s.masked, -1) {
		name := s.masked[m[2]:m[3]]
		at := m[1]
		for _, w := range stringWrappers {
			if strings.HasPrefix(s.masked[at:], w) {
				at += len(w)
				for at < len(s.text) && isSpace(s.text[at]) {
					at++
				}
				break
			}
		}
		if lit, ok := s.literals[at]; ok {
			out = append(out, binding{offset: m[0], name: name, value: lit.value, quoted: true})
			continue
		}
		end := strings.IndexAny(s.masked[at:], ";\n")
		if end < 0 {
			continue
		}
		value := strings.TrimSpace(s.text[at : at+end])
		if numberPattern.MatchString(value) || value == "true" || value == "false" {
			out = append(out, binding{offset: m[0], name: name, value: value})
		}
	}
	return out
}
