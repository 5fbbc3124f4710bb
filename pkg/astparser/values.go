package astparser

import (
	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/lexer"
)

// parseValue parses a single Value (spec.md §3.2). It always accepts
// Variable; callers that need a const value (default values, schema
// literals) call ast.AssertConst on the result — the dynamic-enforcement
// fallback spec.md §9 sanctions for a language without static CONST
// parameterization.
func parseValue(t *Tokens, dl DepthLimiter) (ast.Value, error) {
	dl, err := dl.Bump()
	if err != nil {
		return ast.Value{}, t.UnexpectedToken(maxDepthExceededMessage)
	}

	if tok, ok := t.NextIfPunctuator(lexer.PunctuatorDollar); ok {
		name, err := t.ExpectName()
		if err != nil {
			return ast.Value{}, err
		}
		return ast.VariableVal(name.StringSlice, ast.Merge(tok.Span(), name.Span())), nil
	}
	if tok, ok := t.NextIfPunctuator(lexer.PunctuatorBracketLeft); ok {
		return parseListValue(t, dl, tok)
	}
	if tok, ok := t.NextIfPunctuator(lexer.PunctuatorBraceLeft); ok {
		return parseObjectValue(t, dl, tok)
	}

	tok, ok := t.Peek()
	if !ok {
		return ast.Value{}, t.UnexpectedToken("Expected a value")
	}
	switch tok.Kind {
	case lexer.TokenKindIntValue:
		t.advance()
		return ast.IntegerVal(tok.IntPayload, tok.Span()), nil
	case lexer.TokenKindFloatValue:
		t.advance()
		return ast.FloatVal(tok.FloatPayload, tok.Span()), nil
	case lexer.TokenKindStringValue:
		t.advance()
		return ast.StringVal(tok.StringSlice, tok.Span()), nil
	case lexer.TokenKindName:
		switch tok.StringSlice {
		case "true":
			t.advance()
			return ast.BooleanVal(true, tok.Span()), nil
		case "false":
			t.advance()
			return ast.BooleanVal(false, tok.Span()), nil
		case "null":
			t.advance()
			return ast.NullValue(tok.Span()), nil
		default:
			t.advance()
			return ast.EnumVal(tok.StringSlice, tok.Span()), nil
		}
	default:
		return ast.Value{}, t.UnexpectedToken("Expected a value")
	}
}

func parseListValue(t *Tokens, dl DepthLimiter, open lexer.Token) (ast.Value, error) {
	var items []ast.Value
	for !t.PeekIsPunctuator(lexer.PunctuatorBracketRight) {
		if t.AtEOF() {
			return ast.Value{}, t.UnexpectedToken("Expected ']'")
		}
		v, err := parseValue(t, dl)
		if err != nil {
			return ast.Value{}, err
		}
		items = append(items, v)
	}
	close, err := t.ExpectPunctuator(lexer.PunctuatorBracketRight)
	if err != nil {
		return ast.Value{}, err
	}
	return ast.ListVal(items, ast.Merge(open.Span(), close.Span())), nil
}

func parseObjectValue(t *Tokens, dl DepthLimiter, open lexer.Token) (ast.Value, error) {
	var fields []ast.ObjectField
	for !t.PeekIsPunctuator(lexer.PunctuatorBraceRight) {
		if t.AtEOF() {
			return ast.Value{}, t.UnexpectedToken("Expected '}'")
		}
		name, err := t.ExpectName()
		if err != nil {
			return ast.Value{}, err
		}
		if _, err := t.ExpectPunctuator(lexer.PunctuatorColon); err != nil {
			return ast.Value{}, err
		}
		v, err := parseValue(t, dl)
		if err != nil {
			return ast.Value{}, err
		}
		fields = append(fields, ast.ObjectField{Name: name.StringSlice, Value: v})
	}
	close, err := t.ExpectPunctuator(lexer.PunctuatorBraceRight)
	if err != nil {
		return ast.Value{}, err
	}
	return ast.ObjectVal(fields, ast.Merge(open.Span(), close.Span())), nil
}

// parseTypeReference parses a TypeRef: NamedType | ListType, each optionally
// suffixed with `!` (spec.md §3.3).
func parseTypeReference(t *Tokens, dl DepthLimiter) (ast.TypeRef, error) {
	dl, err := dl.Bump()
	if err != nil {
		return ast.TypeRef{}, t.UnexpectedToken(maxDepthExceededMessage)
	}

	if open, ok := t.NextIfPunctuator(lexer.PunctuatorBracketLeft); ok {
		inner, err := parseTypeReference(t, dl)
		if err != nil {
			return ast.TypeRef{}, err
		}
		close, err := t.ExpectPunctuator(lexer.PunctuatorBracketRight)
		if err != nil {
			return ast.TypeRef{}, err
		}
		span := ast.Merge(open.Span(), close.Span())
		required := false
		if bang, ok := t.NextIfPunctuator(lexer.PunctuatorBang); ok {
			required = true
			span = ast.Merge(span, bang.Span())
		}
		return ast.NewListTypeRef(inner, required, span), nil
	}

	name, err := t.ExpectName()
	if err != nil {
		return ast.TypeRef{}, err
	}
	span := name.Span()
	required := false
	if bang, ok := t.NextIfPunctuator(lexer.PunctuatorBang); ok {
		required = true
		span = ast.Merge(span, bang.Span())
	}
	return ast.NewNamedTypeRef(name.StringSlice, required, span), nil
}
