package astparser

import (
	"fmt"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/lexer"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// Tokens is the lookahead abstraction every parsing function is built on,
// per spec.md §4.2: peek-at-offset, next_if_* (punctuator/name), expect_*,
// and an unexpected_token() error constructor.
type Tokens struct {
	lex     *lexer.Lexer
	buf     []lexer.Token
	report  *operationreport.Report
	eof     bool
	eofSpan ast.Span
}

func NewTokens(lex *lexer.Lexer, report *operationreport.Report) *Tokens {
	return &Tokens{lex: lex, report: report}
}

// fill ensures at least n+1 tokens are buffered (skipping over lex errors,
// which it reports and continues past, per spec.md §7 taxon 1).
func (t *Tokens) fill(n int) {
	for len(t.buf) <= n && !t.eof {
		tok, err, ok := t.lex.Next()
		if !ok {
			t.eof = true
			t.eofSpan = t.lex.EmptySpan()
			return
		}
		if err != nil {
			t.report.AddExternalError(lexErrorToExternal(err))
			continue
		}
		t.buf = append(t.buf, tok)
	}
}

func lexErrorToExternal(err *lexer.Error) operationreport.ExternalError {
	var secondary []operationreport.Annotation
	for _, s := range err.Spans[1:] {
		secondary = append(secondary, operationreport.Annotation{Message: err.Message(), Span: s})
	}
	var primary *operationreport.Annotation
	if len(err.Spans) > 0 {
		primary = &operationreport.Annotation{Message: err.Message(), Span: err.PrimarySpan()}
	}
	return operationreport.NewExternalError(err.Message(), primary, secondary...)
}

// PeekAt returns the token at lookahead offset n (0 = next token) and
// whether one exists.
func (t *Tokens) PeekAt(n int) (lexer.Token, bool) {
	t.fill(n)
	if n < len(t.buf) {
		return t.buf[n], true
	}
	return lexer.Token{}, false
}

func (t *Tokens) Peek() (lexer.Token, bool) { return t.PeekAt(0) }

func (t *Tokens) AtEOF() bool {
	_, ok := t.Peek()
	return !ok
}

// EmptySpan is the span used for end-of-input diagnostics.
func (t *Tokens) EmptySpan() ast.Span {
	t.fill(0)
	if !t.eof {
		return ast.EmptySpanAt(0)
	}
	return t.eofSpan
}

func (t *Tokens) advance() lexer.Token {
	tok := t.buf[0]
	t.buf = t.buf[1:]
	return tok
}

// NextIfPunctuator consumes and returns the next token if it is punctuator
// p.
func (t *Tokens) NextIfPunctuator(p lexer.Punctuator) (lexer.Token, bool) {
	tok, ok := t.Peek()
	if !ok || tok.Kind != lexer.TokenKindPunctuator || tok.Punctuator != p {
		return lexer.Token{}, false
	}
	return t.advance(), true
}

// NextIfName consumes and returns the next token if it is a Name.
func (t *Tokens) NextIfName() (lexer.Token, bool) {
	tok, ok := t.Peek()
	if !ok || tok.Kind != lexer.TokenKindName {
		return lexer.Token{}, false
	}
	return t.advance(), true
}

// NextIfKeyword consumes and returns the next token if it is a Name whose
// text equals keyword (QL has no reserved words; "query"/"type"/"on"/etc
// are contextual keywords recognized this way).
func (t *Tokens) NextIfKeyword(keyword string) (lexer.Token, bool) {
	tok, ok := t.Peek()
	if !ok || tok.Kind != lexer.TokenKindName || tok.StringSlice != keyword {
		return lexer.Token{}, false
	}
	return t.advance(), true
}

func (t *Tokens) PeekIsKeyword(keyword string) bool {
	tok, ok := t.Peek()
	return ok && tok.Kind == lexer.TokenKindName && tok.StringSlice == keyword
}

func (t *Tokens) PeekIsPunctuator(p lexer.Punctuator) bool {
	tok, ok := t.Peek()
	return ok && tok.Kind == lexer.TokenKindPunctuator && tok.Punctuator == p
}

// ExpectPunctuator consumes the next token, requiring it be punctuator p.
func (t *Tokens) ExpectPunctuator(p lexer.Punctuator) (lexer.Token, error) {
	if tok, ok := t.NextIfPunctuator(p); ok {
		return tok, nil
	}
	return lexer.Token{}, t.UnexpectedToken(fmt.Sprintf("Expected %q", p.String()))
}

// ExpectName consumes the next token, requiring it be a Name.
func (t *Tokens) ExpectName() (lexer.Token, error) {
	if tok, ok := t.NextIfName(); ok {
		return tok, nil
	}
	return lexer.Token{}, t.UnexpectedToken("Expected a name")
}

// UnexpectedToken builds the standard "unexpected token" parse error,
// spanning the offending token (or EOF).
func (t *Tokens) UnexpectedToken(message string) operationreport.ExternalError {
	tok, ok := t.Peek()
	if !ok {
		return operationreport.AtSpan(message, t.EmptySpan())
	}
	return operationreport.AtSpan(message, tok.Span())
}
