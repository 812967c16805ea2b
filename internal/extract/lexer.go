package extract

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// literal is a string literal found in the source. end is the offset just
// past its closing delimiter.
type literal struct {
	end   int
	value string
}

// source is the original text plus a masked copy of identical length in
// which comment bodies and string/char literal contents are blanked out.
// Pattern matching runs on the mask so nothing inside a comment or a string
// can look like a call; offsets are shared with the original.
type source struct {
	text     string
	masked   string
	literals map[int]literal
}

func lex(text string) *source {
	masked := []byte(text)
	literals := make(map[int]literal)

	blank := func(from, to int) {
		for k := from; k < to && k < len(masked); k++ {
			if masked[k] != '\n' {
				masked[k] = ' '
			}
		}
	}

	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				end = len(text)
			} else {
				end += i
			}
			blank(i, end)
			i = end

		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			end := blockCommentEnd(text, i)
			blank(i, end)
			i = end

		case c == '"':
			end, value := readString(text, i+1)
			literals[i] = literal{end: end, value: value}
			blank(i+1, end-1)
			i = end

		case c == 'r' && !identBefore(text, i) && rawStringAhead(text, i+1):
			hashes := 0
			for text[i+1+hashes] == '#' {
				hashes++
			}
			bodyStart := i + 2 + hashes
			closing := "\"" + strings.Repeat("#", hashes)
			end := len(text)
			value := text[bodyStart:]
			if idx := strings.Index(text[bodyStart:], closing); idx >= 0 {
				value = text[bodyStart : bodyStart+idx]
				end = bodyStart + idx + len(closing)
			}
			literals[i] = literal{end: end, value: value}
			blank(bodyStart, end-len(closing))
			i = end

		case c == '\'':
			if end, ok := charLiteralEnd(text, i); ok {
				blank(i+1, end-1)
				i = end
				continue
			}
			i++

		default:
			i++
		}
	}

	return &source{text: text, masked: string(masked), literals: literals}
}

func blockCommentEnd(text string, start int) int {
	depth := 0
	i := start
	for i+1 < len(text) {
		switch {
		case text[i] == '/' && text[i+1] == '*':
			depth++
			i += 2
		case text[i] == '*' && text[i+1] == '/':
			depth--
			i += 2
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return len(text)
}

// readString reads a quoted string body starting at start and returns the
// offset past the closing quote and the decoded value. An unterminated
// string runs to the end of the text.
func readString(text string, start int) (int, string) {
	i := start
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1, unescape(text[start:i])
		default:
			i++
		}
	}
	if i > len(text) {
		i = len(text)
	}
	return len(text), unescape(text[start:i])
}

func rawStringAhead(text string, i int) bool {
	for i < len(text) && text[i] == '#' {
		i++
	}
	return i < len(text) && text[i] == '"'
}

// charLiteralEnd distinguishes 'x' and '\n' from lifetimes like 'a.
func charLiteralEnd(text string, start int) (int, bool) {
	i := start + 1
	if i >= len(text) {
		return 0, false
	}
	if text[i] == '\\' {
		end := strings.IndexByte(text[i+1:], '\'')
		if end < 0 || end > 10 {
			return 0, false
		}
		return i + 1 + end + 1, true
	}
	_, width := utf8.DecodeRuneInString(text[i:])
	if i+width < len(text) && text[i+width] == '\'' {
		return i + width + 1, true
	}
	return 0, false
}

func identBefore(text string, i int) bool {
	return i > 0 && isIdentByte(text[i-1])
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// unescape decodes Rust string escapes. Unknown escapes are kept verbatim.
func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\', '"', '\'':
			b.WriteByte(s[i])
		case '\n':
			for i+1 < len(s) && strings.IndexByte(" \t\r\n", s[i+1]) >= 0 {
				i++
			}
		case 'x':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 2
					continue
				}
			}
			b.WriteString(`\x`)
		case 'u':
			if i+1 < len(s) && s[i+1] == '{' {
				if end := strings.IndexByte(s[i:], '}'); end > 0 {
					if v, err := strconv.ParseUint(s[i+2:i+end], 16, 32); err == nil {
						b.WriteRune(rune(v))
						i += end
						continue
					}
				}
			}
			b.WriteString(`\u`)
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// closingParen returns the offset of the parenthesis matching the one at
// open, or -1 when the call is never closed.
func (s *source) closingParen(open int) int {
	depth := 0
	for i := open; i < len(s.masked); i++ {
		switch s.masked[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// span is a half-open byte range of the source text.
type span struct{ start, end int }

// splitArgs splits the argument list between from and to on top-level commas
// and trims surrounding whitespace from every argument.
func (s *source) splitArgs(from, to int) []span {
	var args []span
	depth := 0
	last := from
	for i := from; i < to; i++ {
		switch s.masked[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, s.trim(last, i))
				last = i + 1
			}
		}
	}
	if tail := s.trim(last, to); tail.end > tail.start || len(args) > 0 {
		args = append(args, tail)
	}
	// trailing comma
	if n := len(args); n > 0 && args[n-1].start == args[n-1].end {
		args = args[:n-1]
	}
	return args
}

func (s *source) trim(start, end int) span {
	for start < end && isSpace(s.text[start]) {
		start++
	}
	for end > start && isSpace(s.text[end-1]) {
		end--
	}
	return span{start, end}
}

func (s *source) slice(sp span) string { return s.text[sp.start:sp.end] }

// literalAt returns the string literal spanning exactly sp.
func (s *source) literalAt(sp span) (literal, bool) {
	lit, ok := s.literals[sp.start]
	if !ok || lit.end != sp.end {
		return literal{}, false
	}
	return lit, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
