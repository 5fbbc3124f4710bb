package astparser

import (
	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/lexer"
)

// parseArguments parses an optional `(name: value, ...)` list, used by both
// executable fields and directive applications.
func parseArguments(t *Tokens, dl DepthLimiter) ([]ast.ArgumentApplication, error) {
	open, ok := t.NextIfPunctuator(lexer.PunctuatorParenLeft)
	if !ok {
		return nil, nil
	}
	var args []ast.ArgumentApplication
	for !t.PeekIsPunctuator(lexer.PunctuatorParenRight) {
		if t.AtEOF() {
			return nil, t.UnexpectedToken("Expected ')'")
		}
		name, err := t.ExpectName()
		if err != nil {
			return nil, err
		}
		if _, err := t.ExpectPunctuator(lexer.PunctuatorColon); err != nil {
			return nil, err
		}
		v, err := parseValue(t, dl)
		if err != nil {
			return nil, err
		}
		args = append(args, ast.NewParsedArgumentApplication(ast.NewName(name.StringSlice, name.Span()), v))
	}
	if _, err := t.ExpectPunctuator(lexer.PunctuatorParenRight); err != nil {
		return nil, err
	}
	_ = open
	return args, nil
}

// parseDirectives parses zero or more `@name(args)` applications.
func parseDirectives(t *Tokens, dl DepthLimiter) ([]ast.DirectiveApplication, error) {
	var directives []ast.DirectiveApplication
	for {
		at, ok := t.NextIfPunctuator(lexer.PunctuatorAt)
		if !ok {
			return directives, nil
		}
		name, err := t.ExpectName()
		if err != nil {
			return nil, err
		}
		args, err := parseArguments(t, dl)
		if err != nil {
			return nil, err
		}
		end := name.Span()
		if len(args) > 0 {
			end = args[len(args)-1].Span()
		}
		directives = append(directives, ast.NewParsedDirectiveApplication(at.Span(), ast.NewName(name.StringSlice, name.Span()), args, end))
	}
}

// parseDescription parses an optional leading string-value description,
// used by every schema-side definition.
func parseDescription(t *Tokens) *ast.StringValue {
	tok, ok := t.Peek()
	if !ok || tok.Kind != lexer.TokenKindStringValue {
		return nil
	}
	t.advance()
	sv := ast.NewStringValue(tok.StringSlice, tok.Span())
	return &sv
}
