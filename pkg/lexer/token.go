// Package lexer turns QL source text into a lazy, fallible stream of tokens
// (spec.md §4.1): Punctuator, Name, IntValue, FloatValue, StringValue, each
// carrying its ast.Span. Whitespace, commas, line terminators, and `#...`
// comments are skipped transparently.
package lexer

import "github.com/graphql-tools/qlcore/pkg/ast"

// TokenKind discriminates Token.
type TokenKind int

const (
	TokenKindPunctuator TokenKind = iota
	TokenKindName
	TokenKindIntValue
	TokenKindFloatValue
	TokenKindStringValue
)

// Punctuator is one of the fixed punctuator kinds of spec.md §4.1:
// ! $ & ( ) ... : = @ [ ] { | }
type Punctuator int

const (
	PunctuatorBang Punctuator = iota
	PunctuatorAmp
	PunctuatorParenLeft
	PunctuatorParenRight
	PunctuatorSpread
	PunctuatorColon
	PunctuatorEquals
	PunctuatorAt
	PunctuatorBracketLeft
	PunctuatorBracketRight
	PunctuatorBraceLeft
	PunctuatorPipe
	PunctuatorBraceRight
	PunctuatorDollar
)

var punctuatorText = map[Punctuator]string{
	PunctuatorBang:        "!",
	PunctuatorAmp:         "&",
	PunctuatorParenLeft:   "(",
	PunctuatorParenRight:  ")",
	PunctuatorSpread:      "...",
	PunctuatorColon:       ":",
	PunctuatorEquals:      "=",
	PunctuatorAt:          "@",
	PunctuatorBracketLeft: "[",
	PunctuatorBracketRight: "]",
	PunctuatorBraceLeft:   "{",
	PunctuatorPipe:        "|",
	PunctuatorBraceRight:  "}",
	PunctuatorDollar:      "$",
}

func (p Punctuator) String() string { return punctuatorText[p] }

// Token is one lexed unit with its span. Exactly one of the payload fields is
// meaningful, selected by Kind.
type Token struct {
	Kind        TokenKind
	span        ast.Span
	Punctuator  Punctuator
	StringSlice string // Name payload, or the decoded contents of a StringValue
	IntPayload  int32
	FloatPayload float64
}

func (t Token) Span() ast.Span { return t.span }

func punctuatorToken(p Punctuator, span ast.Span) Token {
	return Token{Kind: TokenKindPunctuator, Punctuator: p, span: span}
}

func nameToken(s string, span ast.Span) Token {
	return Token{Kind: TokenKindName, StringSlice: s, span: span}
}

func intToken(v int32, span ast.Span) Token {
	return Token{Kind: TokenKindIntValue, IntPayload: v, span: span}
}

func floatToken(v float64, span ast.Span) Token {
	return Token{Kind: TokenKindFloatValue, FloatPayload: v, span: span}
}

func stringToken(s string, span ast.Span) Token {
	return Token{Kind: TokenKindStringValue, StringSlice: s, span: span}
}
