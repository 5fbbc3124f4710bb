package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/graphql-tools/qlcore/pkg/ast"
)

// Config toggles lexer behavior (spec.md §6).
type Config struct {
	// RubyCompatibility enables a small, fixture-defined set of lexing
	// quirks kept for compatibility with legacy graphql-ruby-authored
	// schemas. See DESIGN.md's "ruby_compatibility toggle set" entry for
	// exactly what this does and does not change.
	RubyCompatibility bool
}

// Lexer produces a lazy, fallible token stream over src.
type Lexer struct {
	src    string
	pos    int
	config Config
}

// New constructs a Lexer over src.
func New(src string, config Config) *Lexer {
	return &Lexer{src: src, config: config}
}

// EmptySpan returns a zero-width span at the current (typically EOF)
// position, for error reporting that needs a location but has no token.
func (l *Lexer) EmptySpan() ast.Span {
	return ast.EmptySpanAt(l.pos)
}

// Next returns the next token. ok is false once the source is exhausted (not
// an error). err is non-nil on a lex error; the lexer has already advanced
// past the offending input so the caller may call Next again.
func (l *Lexer) Next() (tok Token, err *Error, ok bool) {
	if !l.skipIgnored() {
		return Token{}, nil, false
	}
	if l.pos >= len(l.src) {
		return Token{}, nil, false
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == '!':
		l.pos++
		return punctuatorToken(PunctuatorBang, ast.Span{Start: start, End: l.pos}), nil, true
	case c == '$':
		l.pos++
		return punctuatorToken(PunctuatorDollar, ast.Span{Start: start, End: l.pos}), nil, true
	case c == '&':
		l.pos++
		return punctuatorToken(PunctuatorAmp, ast.Span{Start: start, End: l.pos}), nil, true
	case c == '(':
		l.pos++
		return punctuatorToken(PunctuatorParenLeft, ast.Span{Start: start, End: l.pos}), nil, true
	case c == ')':
		l.pos++
		return punctuatorToken(PunctuatorParenRight, ast.Span{Start: start, End: l.pos}), nil, true
	case c == '.':
		if strings.HasPrefix(l.src[l.pos:], "...") {
			l.pos += 3
			return punctuatorToken(PunctuatorSpread, ast.Span{Start: start, End: l.pos}), nil, true
		}
		l.pos++
		return Token{}, &Error{Kind: ErrorKindUnrecognizedToken, Spans: []ast.Span{{Start: start, End: l.pos}}}, true
	case c == ':':
		l.pos++
		return punctuatorToken(PunctuatorColon, ast.Span{Start: start, End: l.pos}), nil, true
	case c == '=':
		l.pos++
		return punctuatorToken(PunctuatorEquals, ast.Span{Start: start, End: l.pos}), nil, true
	case c == '@':
		l.pos++
		return punctuatorToken(PunctuatorAt, ast.Span{Start: start, End: l.pos}), nil, true
	case c == '[':
		l.pos++
		return punctuatorToken(PunctuatorBracketLeft, ast.Span{Start: start, End: l.pos}), nil, true
	case c == ']':
		l.pos++
		return punctuatorToken(PunctuatorBracketRight, ast.Span{Start: start, End: l.pos}), nil, true
	case c == '{':
		l.pos++
		return punctuatorToken(PunctuatorBraceLeft, ast.Span{Start: start, End: l.pos}), nil, true
	case c == '|':
		l.pos++
		return punctuatorToken(PunctuatorPipe, ast.Span{Start: start, End: l.pos}), nil, true
	case c == '}':
		l.pos++
		return punctuatorToken(PunctuatorBraceRight, ast.Span{Start: start, End: l.pos}), nil, true
	case c == '"':
		return l.lexString()
	case isNameStart(c):
		return l.lexName()
	case c == '-' || isDigit(c):
		return l.lexNumber()
	default:
		_, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if size == 0 {
			size = 1
		}
		l.pos += size
		return Token{}, &Error{Kind: ErrorKindUnrecognizedToken, Spans: []ast.Span{{Start: start, End: l.pos}}}, true
	}
}

// skipIgnored advances past whitespace, commas, line terminators, the UTF-8
// BOM, and `#...` comments. Returns false if this leaves no more input.
func (l *Lexer) skipIgnored() bool {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
				l.pos++
			}
		default:
			return true
		}
	}
	return l.pos < len(l.src)
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameContinue(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *Lexer) lexName() (Token, *Error, bool) {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) && isNameContinue(l.src[l.pos]) {
		l.pos++
	}
	return nameToken(l.src[start:l.pos], ast.Span{Start: start, End: l.pos}), nil, true
}

// lexNumber lexes an IntValue or, if a fractional/exponent part follows, a
// FloatValue, per the baseline QL number grammar.
func (l *Lexer) lexNumber() (Token, *Error, bool) {
	start := l.pos
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	isFloat := false
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		isFloat = true
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	span := ast.Span{Start: start, End: l.pos}
	text := l.src[start:l.pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, &Error{Kind: ErrorKindFloatValueTooLarge, Spans: []ast.Span{span}}, true
		}
		return floatToken(f, span), nil, true
	}
	i, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return Token{}, &Error{Kind: ErrorKindIntegerValueTooLarge, Spans: []ast.Span{span}}, true
	}
	return intToken(int32(i), span), nil, true
}

// lexString lexes either a `"..."` string (with standard escapes) or a
// `"""..."""` block string (with common-indent stripping), per spec.md
// §4.1.
func (l *Lexer) lexString() (Token, *Error, bool) {
	start := l.pos
	if strings.HasPrefix(l.src[l.pos:], `"""`) {
		return l.lexBlockString(start)
	}
	l.pos++ // consume opening quote
	var sb strings.Builder
	var invalidUnicodeSpans []ast.Span
	for {
		if l.pos >= len(l.src) {
			return Token{}, &Error{Kind: ErrorKindUnrecognizedToken, Spans: []ast.Span{{Start: start, End: l.pos}}}, true
		}
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			break
		}
		if c == '\n' || c == '\r' {
			return Token{}, &Error{Kind: ErrorKindUnrecognizedToken, Spans: []ast.Span{{Start: start, End: l.pos}}}, true
		}
		if c == '\\' {
			escStart := l.pos
			l.pos++
			if l.pos >= len(l.src) {
				return Token{}, &Error{Kind: ErrorKindUnrecognizedToken, Spans: []ast.Span{{Start: start, End: l.pos}}}, true
			}
			switch l.src[l.pos] {
			case '"':
				sb.WriteByte('"')
				l.pos++
			case '\\':
				sb.WriteByte('\\')
				l.pos++
			case '/':
				sb.WriteByte('/')
				l.pos++
			case 'b':
				sb.WriteByte('\b')
				l.pos++
			case 'f':
				sb.WriteByte('\f')
				l.pos++
			case 'n':
				sb.WriteByte('\n')
				l.pos++
			case 'r':
				sb.WriteByte('\r')
				l.pos++
			case 't':
				sb.WriteByte('\t')
				l.pos++
			case 'u':
				r, consumed, ok := l.decodeUnicodeEscape(l.pos + 1)
				if !ok {
					invalidUnicodeSpans = append(invalidUnicodeSpans, ast.Span{Start: escStart, End: l.pos + 1 + consumed})
					l.pos += 1 + consumed
					continue
				}
				sb.WriteRune(r)
				l.pos += 1 + consumed
			default:
				invalidUnicodeSpans = append(invalidUnicodeSpans, ast.Span{Start: escStart, End: l.pos + 1})
				l.pos++
			}
			continue
		}
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		sb.WriteRune(r)
		l.pos += size
	}
	if len(invalidUnicodeSpans) > 0 {
		return Token{}, &Error{Kind: ErrorKindStringWithInvalidEscapedUnicode, Spans: invalidUnicodeSpans}, true
	}
	return stringToken(sb.String(), ast.Span{Start: start, End: l.pos}), nil, true
}

// decodeUnicodeEscape decodes a `\uXXXX` escape (and, in ruby_compatibility
// mode, tolerates a split UTF-16 surrogate pair spread across two
// consecutive `\uXXXX\uXXXX` escapes — see DESIGN.md). It returns the rune,
// how many bytes after the 'u' were consumed, and whether decoding
// succeeded.
func (l *Lexer) decodeUnicodeEscape(at int) (rune, int, bool) {
	if at+4 > len(l.src) {
		return 0, len(l.src) - at, false
	}
	hex := l.src[at : at+4]
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 4, false
	}
	r := rune(v)
	if utf16IsHighSurrogate(r) {
		if l.config.RubyCompatibility && at+4+2 <= len(l.src) && l.src[at+4] == '\\' && l.src[at+5] == 'u' {
			if at+4+6 <= len(l.src) {
				loHex := l.src[at+6 : at+10]
				lv, err := strconv.ParseUint(loHex, 16, 32)
				if err == nil && utf16IsLowSurrogate(rune(lv)) {
					combined := utf16Decode(r, rune(lv))
					return combined, 10, true
				}
			}
		}
		return 0, 4, false
	}
	if utf16IsLowSurrogate(r) {
		return 0, 4, false
	}
	return r, 4, true
}

func utf16IsHighSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDBFF }
func utf16IsLowSurrogate(r rune) bool  { return r >= 0xDC00 && r <= 0xDFFF }

func utf16Decode(hi, lo rune) rune {
	return ((hi - 0xD800) << 10) + (lo - 0xDC00) + 0x10000
}

// lexBlockString lexes a `"""..."""` block string, applying the common QL
// spec algorithm for stripping leading blank lines, trailing blank lines,
// and the common leading indentation of non-first lines.
func (l *Lexer) lexBlockString(start int) (Token, *Error, bool) {
	l.pos += 3
	contentStart := l.pos
	for {
		if l.pos >= len(l.src) {
			return Token{}, &Error{Kind: ErrorKindUnrecognizedToken, Spans: []ast.Span{{Start: start, End: l.pos}}}, true
		}
		if strings.HasPrefix(l.src[l.pos:], `\"""`) {
			l.pos += 4
			continue
		}
		if strings.HasPrefix(l.src[l.pos:], `"""`) {
			raw := l.src[contentStart:l.pos]
			l.pos += 3
			return stringToken(stripBlockStringIndent(raw), ast.Span{Start: start, End: l.pos}), nil, true
		}
		l.pos++
	}
}

// stripBlockStringIndent implements the baseline QL spec's
// BlockStringValue() algorithm: split into lines, determine the common
// indentation of all lines but the first, strip it from lines 2..N, then
// trim leading/trailing fully-blank lines and rejoin with "\n".
func stripBlockStringIndent(raw string) string {
	raw = strings.ReplaceAll(raw, `\"""`, `"""`)
	lines := strings.Split(raw, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	commonIndent := -1
	for i, line := range lines {
		if i == 0 {
			continue
		}
		indent := leadingWhitespaceCount(line)
		if indent == len(line) {
			continue // blank line does not count
		}
		if commonIndent == -1 || indent < commonIndent {
			commonIndent = indent
		}
	}
	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= commonIndent {
				lines[i] = lines[i][commonIndent:]
			} else {
				lines[i] = ""
			}
		}
	}
	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespaceCount(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}

func isBlank(s string) bool {
	return leadingWhitespaceCount(s) == len(s)
}
