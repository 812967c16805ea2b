package extract

import (
	"strconv"
	"strings"
)

// formatArg is one resolved argument of a print macro.
type formatArg struct {
	value    string
	quoted   bool
	resolved bool
}

// format fills the placeholders of a print format string. Placeholders whose
// argument cannot be resolved to a literal stay verbatim.
func (s *source) format(format string, args []span, at int, binds bindings) string {
	if !strings.ContainsAny(format, "{}") {
		return format
	}

	var positional []formatArg
	named := make(map[string]formatArg)
	for _, a := range args {
		text := s.slice(a)
		if eq := strings.IndexByte(s.masked[a.start:a.end], '='); eq > 0 && !strings.HasPrefix(s.masked[a.start+eq:a.end], "==") {
			name := strings.TrimSpace(text[:eq])
			if identPattern.MatchString(name) {
				valueSpan := s.trim(a.start+eq+1, a.end)
				named[name] = s.resolve(valueSpan, binds)
				continue
			}
		}
		positional = append(positional, s.resolve(a, binds))
	}

	var b strings.Builder
	next := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c == '}' {
			if i+1 < len(format) && format[i+1] == '}' {
				i++
			}
			b.WriteByte('}')
			continue
		}
		if c != '{' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(format) && format[i+1] == '{' {
			b.WriteByte('{')
			i++
			continue
		}
		end := strings.IndexByte(format[i:], '}')
		if end < 0 {
			b.WriteString(format[i:])
			break
		}
		inner := format[i+1 : i+end]
		i += end

		name, spec, _ := strings.Cut(inner, ":")
		var arg formatArg
		switch {
		case name == "":
			if next < len(positional) {
				arg = positional[next]
			}
			next++
		case isDigits(name):
			if idx, err := strconv.Atoi(name); err == nil && idx < len(positional) {
				arg = positional[idx]
			}
		default:
			if a, ok := named[name]; ok {
				arg = a
			} else if bound, ok := binds.lookup(name, at); ok {
				arg = formatArg{value: bound.value, quoted: bound.quoted, resolved: true}
			}
		}

		if !arg.resolved {
			b.WriteString("{" + inner + "}")
			continue
		}
		if strings.Contains(spec, "?") && arg.quoted {
			b.WriteString(strconv.Quote(arg.value))
			continue
		}
		b.WriteString(arg.value)
	}
	return b.String()
}

func (s *source) resolve(sp span, binds bindings) formatArg {
	if lit, ok := s.literalAt(sp); ok {
		return formatArg{value: lit.value, quoted: true, resolved: true}
	}
	text := s.slice(sp)
	if numberPattern.MatchString(text) || text == "true" || text == "false" {
		return formatArg{value: text, resolved: true}
	}
	if identPattern.MatchString(text) {
		if b, ok := binds.lookup(text, sp.start); ok {
			return formatArg{value: b.value, quoted: b.quoted, resolved: true}
		}
	}
	return formatArg{}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
