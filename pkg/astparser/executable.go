package astparser

import (
	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/lexer"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// parseExecutableDefinitions parses a sequence of operation and fragment
// definitions until EOF, recovering at top-level definition boundaries on
// error so one malformed definition does not poison the rest of the
// document's diagnostics.
func parseExecutableDefinitions(t *Tokens, dl DepthLimiter, report *operationreport.Report) []ast.ExecutableDefinition {
	var defs []ast.ExecutableDefinition
	for !t.AtEOF() {
		def, err := parseExecutableDefinition(t, dl)
		if err != nil {
			report.AddExternalError(toExternalError(err))
			recoverToNextDefinition(t)
			continue
		}
		defs = append(defs, def)
	}
	return defs
}

func toExternalError(err error) operationreport.ExternalError {
	if ee, ok := err.(operationreport.ExternalError); ok {
		return ee
	}
	return operationreport.NewExternalError(err.Error(), nil)
}

// recoverToNextDefinition skips tokens until the next plausible top-level
// definition start (a `{`, or the keywords `query`/`mutation`/
// `subscription`/`fragment`).
func recoverToNextDefinition(t *Tokens) {
	for !t.AtEOF() {
		if t.PeekIsPunctuator(lexer.PunctuatorBraceLeft) ||
			t.PeekIsKeyword("query") || t.PeekIsKeyword("mutation") ||
			t.PeekIsKeyword("subscription") || t.PeekIsKeyword("fragment") {
			return
		}
		t.advance()
	}
}

func parseExecutableDefinition(t *Tokens, dl DepthLimiter) (ast.ExecutableDefinition, error) {
	if t.PeekIsKeyword("fragment") {
		return parseFragmentDefinition(t, dl)
	}
	return parseOperationDefinition(t, dl)
}

func parseOperationDefinition(t *Tokens, dl DepthLimiter) (*ast.ParsedOperationDefinition, error) {
	dl, err := dl.Bump()
	if err != nil {
		return nil, t.UnexpectedToken(maxDepthExceededMessage)
	}

	if t.PeekIsPunctuator(lexer.PunctuatorBraceLeft) {
		sel, err := parseSelectionSet(t, dl)
		if err != nil {
			return nil, err
		}
		return ast.NewParsedOperationDefinition(ast.OperationTypeQuery, nil, nil, nil, sel, sel.Span()), nil
	}

	opType, opTypeTok, err := parseOperationType(t)
	if err != nil {
		return nil, err
	}

	var name *ast.Name
	if tok, ok := t.NextIfName(); ok {
		n := ast.NewName(tok.StringSlice, tok.Span())
		name = &n
	}

	varDefs, err := parseVariableDefinitions(t, dl)
	if err != nil {
		return nil, err
	}

	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}

	sel, err := parseSelectionSet(t, dl)
	if err != nil {
		return nil, err
	}

	span := ast.Merge(opTypeTok.Span(), sel.Span())
	return ast.NewParsedOperationDefinition(opType, name, varDefs, directives, sel, span), nil
}

func parseOperationType(t *Tokens) (ast.OperationType, lexer.Token, error) {
	if tok, ok := t.NextIfKeyword("query"); ok {
		return ast.OperationTypeQuery, tok, nil
	}
	if tok, ok := t.NextIfKeyword("mutation"); ok {
		return ast.OperationTypeMutation, tok, nil
	}
	if tok, ok := t.NextIfKeyword("subscription"); ok {
		return ast.OperationTypeSubscription, tok, nil
	}
	return 0, lexer.Token{}, t.UnexpectedToken("Expected 'query', 'mutation', 'subscription', or '{'")
}

func parseVariableDefinitions(t *Tokens, dl DepthLimiter) ([]ast.VariableDefinition, error) {
	if !t.PeekIsPunctuator(lexer.PunctuatorParenLeft) {
		return nil, nil
	}
	t.advance()
	var defs []ast.VariableDefinition
	for !t.PeekIsPunctuator(lexer.PunctuatorParenRight) {
		if t.AtEOF() {
			return nil, t.UnexpectedToken("Expected ')'")
		}
		def, err := parseVariableDefinition(t, dl)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	t.advance()
	return defs, nil
}

func parseVariableDefinition(t *Tokens, dl DepthLimiter) (*ast.ParsedVariableDefinition, error) {
	dollar, err := t.ExpectPunctuator(lexer.PunctuatorDollar)
	if err != nil {
		return nil, err
	}
	name, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	if _, err := t.ExpectPunctuator(lexer.PunctuatorColon); err != nil {
		return nil, err
	}
	typ, err := parseTypeReference(t, dl)
	if err != nil {
		return nil, err
	}
	var defaultValue *ast.Value
	if _, ok := t.NextIfPunctuator(lexer.PunctuatorEquals); ok {
		v, err := parseValue(t, dl)
		if err != nil {
			return nil, err
		}
		if cerr := ast.AssertConst(v); cerr != nil {
			return nil, operationreport.AtSpan(cerr.Error(), v.Span())
		}
		defaultValue = &v
	}
	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}
	if cerr := assertDirectivesConst(directives); cerr != nil {
		return nil, cerr
	}
	span := ast.Merge(dollar.Span(), typ.Span())
	if defaultValue != nil {
		span = ast.Merge(span, defaultValue.Span())
	}
	if len(directives) > 0 {
		span = ast.Merge(span, directives[len(directives)-1].Span())
	}
	return ast.NewParsedVariableDefinition(ast.NewName(name.StringSlice, name.Span()), typ, defaultValue, directives, span), nil
}

// assertDirectivesConst rejects any Variable hiding inside a directive
// argument list — directive arguments on a schema-adjacent position (here, a
// variable definition's own directives) are always in const context.
func assertDirectivesConst(directives []ast.DirectiveApplication) error {
	for _, d := range directives {
		for _, a := range d.DirectiveArguments() {
			if cerr := ast.AssertConst(a.ArgumentValue()); cerr != nil {
				return operationreport.AtSpan(cerr.Error(), a.ArgumentValue().Span())
			}
		}
	}
	return nil
}

func parseSelectionSet(t *Tokens, dl DepthLimiter) (*ast.ParsedSelectionSet, error) {
	dl, err := dl.Bump()
	if err != nil {
		return nil, t.UnexpectedToken(maxDepthExceededMessage)
	}
	open, err := t.ExpectPunctuator(lexer.PunctuatorBraceLeft)
	if err != nil {
		return nil, err
	}
	var selections []ast.Selection
	for !t.PeekIsPunctuator(lexer.PunctuatorBraceRight) {
		if t.AtEOF() {
			return nil, t.UnexpectedToken("Expected '}'")
		}
		sel, err := parseSelection(t, dl)
		if err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}
	closeTok, err := t.ExpectPunctuator(lexer.PunctuatorBraceRight)
	if err != nil {
		return nil, err
	}
	return ast.NewParsedSelectionSet(selections, ast.Merge(open.Span(), closeTok.Span())), nil
}

func parseSelection(t *Tokens, dl DepthLimiter) (ast.Selection, error) {
	if spread, ok := t.NextIfPunctuator(lexer.PunctuatorSpread); ok {
		return parseFragmentSpreadOrInlineFragment(t, dl, spread)
	}
	return parseField(t, dl)
}

func parseFragmentSpreadOrInlineFragment(t *Tokens, dl DepthLimiter, spread lexer.Token) (ast.Selection, error) {
	if t.PeekIsKeyword("on") || t.PeekIsPunctuator(lexer.PunctuatorAt) || t.PeekIsPunctuator(lexer.PunctuatorBraceLeft) {
		var typeCondition *ast.Name
		if _, ok := t.NextIfKeyword("on"); ok {
			name, err := t.ExpectName()
			if err != nil {
				return nil, err
			}
			n := ast.NewName(name.StringSlice, name.Span())
			typeCondition = &n
		}
		directives, err := parseDirectives(t, dl)
		if err != nil {
			return nil, err
		}
		sel, err := parseSelectionSet(t, dl)
		if err != nil {
			return nil, err
		}
		return ast.NewParsedInlineFragment(typeCondition, directives, sel, ast.Merge(spread.Span(), sel.Span())), nil
	}

	name, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	if name.StringSlice == "on" {
		return nil, t.UnexpectedToken("Fragment name must not be 'on'")
	}
	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}
	span := ast.Merge(spread.Span(), name.Span())
	if len(directives) > 0 {
		span = ast.Merge(span, directives[len(directives)-1].Span())
	}
	return ast.NewParsedFragmentSpread(ast.NewName(name.StringSlice, name.Span()), directives, span), nil
}

func parseField(t *Tokens, dl DepthLimiter) (*ast.ParsedField, error) {
	first, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	var alias *ast.Name
	name := first
	if _, ok := t.NextIfPunctuator(lexer.PunctuatorColon); ok {
		n := ast.NewName(first.StringSlice, first.Span())
		alias = &n
		name, err = t.ExpectName()
		if err != nil {
			return nil, err
		}
	}
	args, err := parseArguments(t, dl)
	if err != nil {
		return nil, err
	}
	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}
	var subSelection *ast.ParsedSelectionSet
	if t.PeekIsPunctuator(lexer.PunctuatorBraceLeft) {
		subSelection, err = parseSelectionSet(t, dl)
		if err != nil {
			return nil, err
		}
	}
	span := name.Span()
	if alias != nil {
		span = ast.Merge(alias.Span(), span)
	}
	if subSelection != nil {
		span = ast.Merge(span, subSelection.Span())
	} else if len(directives) > 0 {
		span = ast.Merge(span, directives[len(directives)-1].Span())
	} else if len(args) > 0 {
		span = ast.Merge(span, args[len(args)-1].Span())
	}
	return ast.NewParsedField(alias, ast.NewName(name.StringSlice, name.Span()), args, directives, subSelection, span), nil
}

func parseFragmentDefinition(t *Tokens, dl DepthLimiter) (*ast.ParsedFragmentDefinition, error) {
	dl, err := dl.Bump()
	if err != nil {
		return nil, t.UnexpectedToken(maxDepthExceededMessage)
	}
	kw, ok := t.NextIfKeyword("fragment")
	if !ok {
		return nil, t.UnexpectedToken("Expected 'fragment'")
	}
	name, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	if name.StringSlice == "on" {
		return nil, t.UnexpectedToken("Fragment name must not be 'on'")
	}
	if _, ok := t.NextIfKeyword("on"); !ok {
		return nil, t.UnexpectedToken("Expected 'on'")
	}
	typeCondition, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}
	sel, err := parseSelectionSet(t, dl)
	if err != nil {
		return nil, err
	}
	span := ast.Merge(kw.Span(), sel.Span())
	return ast.NewParsedFragmentDefinition(
		ast.NewName(name.StringSlice, name.Span()),
		ast.NewName(typeCondition.StringSlice, typeCondition.Span()),
		directives, sel, span,
	), nil
}
