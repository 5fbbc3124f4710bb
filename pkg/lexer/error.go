package lexer

import "github.com/graphql-tools/qlcore/pkg/ast"

// ErrorKind names the four lex-error variants of spec.md §4.1, grounded on
// original_source/bluejay-parser/src/scanner/scan_error.rs.
type ErrorKind int

const (
	ErrorKindUnrecognizedToken ErrorKind = iota
	ErrorKindIntegerValueTooLarge
	ErrorKindFloatValueTooLarge
	ErrorKindStringWithInvalidEscapedUnicode
)

// Error is a single lex error. The lexer continues past it so multiple
// errors can be reported from a single source (spec.md §7, taxon 1).
type Error struct {
	Kind  ErrorKind
	Spans []ast.Span // StringWithInvalidEscapedUnicode may carry more than one
}

func (e *Error) Message() string {
	switch e.Kind {
	case ErrorKindUnrecognizedToken:
		return "Unrecognized token"
	case ErrorKindIntegerValueTooLarge:
		return "Value too large to fit in a 32-bit signed integer"
	case ErrorKindFloatValueTooLarge:
		return "Value too large to fit in a 64-bit float"
	case ErrorKindStringWithInvalidEscapedUnicode:
		return "Escaped unicode invalid"
	default:
		return "Lex error"
	}
}

func (e *Error) Error() string { return e.Message() }

func (e *Error) PrimarySpan() ast.Span {
	if len(e.Spans) == 0 {
		return ast.Span{}
	}
	return e.Spans[0]
}
