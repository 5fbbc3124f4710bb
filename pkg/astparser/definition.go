package astparser

import (
	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/lexer"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// directiveLocationsByName is the closed-set reverse lookup for the
// DirectiveLocation names used after `directive @foo on ...`, mirroring the
// nineteen locations of spec.md §3.3.
var directiveLocationsByName = map[string]ast.DirectiveLocation{
	"QUERY":                    ast.DirectiveLocationQuery,
	"MUTATION":                 ast.DirectiveLocationMutation,
	"SUBSCRIPTION":             ast.DirectiveLocationSubscription,
	"FIELD":                    ast.DirectiveLocationField,
	"FRAGMENT_DEFINITION":      ast.DirectiveLocationFragmentDefinition,
	"FRAGMENT_SPREAD":          ast.DirectiveLocationFragmentSpread,
	"INLINE_FRAGMENT":          ast.DirectiveLocationInlineFragment,
	"VARIABLE_DEFINITION":      ast.DirectiveLocationVariableDefinition,
	"SCHEMA":                   ast.DirectiveLocationSchema,
	"SCALAR":                   ast.DirectiveLocationScalar,
	"OBJECT":                   ast.DirectiveLocationObject,
	"FIELD_DEFINITION":         ast.DirectiveLocationFieldDefinition,
	"ARGUMENT_DEFINITION":      ast.DirectiveLocationArgumentDefinition,
	"INTERFACE":                ast.DirectiveLocationInterface,
	"UNION":                    ast.DirectiveLocationUnion,
	"ENUM":                     ast.DirectiveLocationEnum,
	"ENUM_VALUE":               ast.DirectiveLocationEnumValue,
	"INPUT_OBJECT":              ast.DirectiveLocationInputObject,
	"INPUT_FIELD_DEFINITION":    ast.DirectiveLocationInputFieldDefinition,
}

// parseDefinitionDocument parses a schema-definition document: an ordered
// sequence of schema/type/directive definitions, one `schema { ... }` block
// producing the root operation type names (spec.md §3.3/§4.3). Errors
// recover at the next plausible top-level keyword.
func parseDefinitionDocument(t *Tokens, dl DepthLimiter, report *operationreport.Report) *ast.ParsedDefinitionDocument {
	doc := &ast.ParsedDefinitionDocument{
		QueryName: "Query", MutationName: "Mutation", SubscriptionName: "Subscription",
	}
	for !t.AtEOF() {
		description := parseDescription(t)

		switch {
		case t.PeekIsKeyword("schema"):
			query, mutation, hasMutation, subscription, hasSubscription, err := parseSchemaDefinition(t, dl)
			if err != nil {
				report.AddExternalError(toExternalError(err))
				recoverToNextSchemaKeyword(t)
				continue
			}
			doc.QueryName = query
			doc.MutationName = mutation
			doc.HasMutation = hasMutation || doc.HasMutation
			doc.SubscriptionName = subscription
			doc.HasSubscription = hasSubscription || doc.HasSubscription

		case t.PeekIsKeyword("scalar"):
			def, err := parseScalarTypeDefinition(t, dl, description)
			if err != nil {
				report.AddExternalError(toExternalError(err))
				recoverToNextSchemaKeyword(t)
				continue
			}
			doc.Types = append(doc.Types, def)

		case t.PeekIsKeyword("enum"):
			def, err := parseEnumTypeDefinition(t, dl, description)
			if err != nil {
				report.AddExternalError(toExternalError(err))
				recoverToNextSchemaKeyword(t)
				continue
			}
			doc.Types = append(doc.Types, def)

		case t.PeekIsKeyword("input"):
			def, err := parseInputObjectTypeDefinition(t, dl, description)
			if err != nil {
				report.AddExternalError(toExternalError(err))
				recoverToNextSchemaKeyword(t)
				continue
			}
			doc.Types = append(doc.Types, def)

		case t.PeekIsKeyword("type"):
			def, err := parseObjectTypeDefinition(t, dl, description)
			if err != nil {
				report.AddExternalError(toExternalError(err))
				recoverToNextSchemaKeyword(t)
				continue
			}
			doc.Types = append(doc.Types, def)

		case t.PeekIsKeyword("interface"):
			def, err := parseInterfaceTypeDefinition(t, dl, description)
			if err != nil {
				report.AddExternalError(toExternalError(err))
				recoverToNextSchemaKeyword(t)
				continue
			}
			doc.Types = append(doc.Types, def)

		case t.PeekIsKeyword("union"):
			def, err := parseUnionTypeDefinition(t, dl, description)
			if err != nil {
				report.AddExternalError(toExternalError(err))
				recoverToNextSchemaKeyword(t)
				continue
			}
			doc.Types = append(doc.Types, def)

		case t.PeekIsKeyword("directive"):
			def, err := parseDirectiveDefinition(t, dl, description)
			if err != nil {
				report.AddExternalError(toExternalError(err))
				recoverToNextSchemaKeyword(t)
				continue
			}
			doc.Directives = append(doc.Directives, def)

		default:
			report.AddExternalError(t.UnexpectedToken("Expected a schema, type, or directive definition"))
			recoverToNextSchemaKeyword(t)
		}
	}

	return doc
}

func recoverToNextSchemaKeyword(t *Tokens) {
	keywords := []string{"schema", "scalar", "enum", "input", "type", "interface", "union", "directive"}
	for !t.AtEOF() {
		for _, kw := range keywords {
			if t.PeekIsKeyword(kw) {
				return
			}
		}
		t.advance()
	}
}

func parseSchemaDefinition(t *Tokens, dl DepthLimiter) (query, mutation string, hasMutation bool, subscription string, hasSubscription bool, err error) {
	if _, ok := t.NextIfKeyword("schema"); !ok {
		return "", "", false, "", false, t.UnexpectedToken("Expected 'schema'")
	}
	if _, err := parseDirectives(t, dl); err != nil {
		return "", "", false, "", false, err
	}
	if _, err := t.ExpectPunctuator(lexer.PunctuatorBraceLeft); err != nil {
		return "", "", false, "", false, err
	}
	for !t.PeekIsPunctuator(lexer.PunctuatorBraceRight) {
		if t.AtEOF() {
			return "", "", false, "", false, t.UnexpectedToken("Expected '}'")
		}
		opType, _, err := parseOperationType(t)
		if err != nil {
			return "", "", false, "", false, err
		}
		if _, err := t.ExpectPunctuator(lexer.PunctuatorColon); err != nil {
			return "", "", false, "", false, err
		}
		name, err := t.ExpectName()
		if err != nil {
			return "", "", false, "", false, err
		}
		switch opType {
		case ast.OperationTypeQuery:
			query = name.StringSlice
		case ast.OperationTypeMutation:
			mutation = name.StringSlice
			hasMutation = true
		case ast.OperationTypeSubscription:
			subscription = name.StringSlice
			hasSubscription = true
		}
	}
	if _, err := t.ExpectPunctuator(lexer.PunctuatorBraceRight); err != nil {
		return "", "", false, "", false, err
	}
	return query, mutation, hasMutation, subscription, hasSubscription, nil
}

func parseScalarTypeDefinition(t *Tokens, dl DepthLimiter, description *ast.StringValue) (*ast.ParsedScalarType, error) {
	kw, ok := t.NextIfKeyword("scalar")
	if !ok {
		return nil, t.UnexpectedToken("Expected 'scalar'")
	}
	name, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}
	span := ast.Merge(kw.Span(), name.Span())
	if len(directives) > 0 {
		span = ast.Merge(span, directives[len(directives)-1].Span())
	}
	return ast.NewParsedScalarType(ast.TypeDefinitionKindCustomScalar, ast.NewName(name.StringSlice, name.Span()), description, directives, span), nil
}

func parseEnumTypeDefinition(t *Tokens, dl DepthLimiter, description *ast.StringValue) (*ast.ParsedEnumType, error) {
	kw, ok := t.NextIfKeyword("enum")
	if !ok {
		return nil, t.UnexpectedToken("Expected 'enum'")
	}
	name, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}
	span := ast.Merge(kw.Span(), name.Span())
	var values []ast.EnumValueDefinition
	if t.PeekIsPunctuator(lexer.PunctuatorBraceLeft) {
		open, _ := t.NextIfPunctuator(lexer.PunctuatorBraceLeft)
		for !t.PeekIsPunctuator(lexer.PunctuatorBraceRight) {
			if t.AtEOF() {
				return nil, t.UnexpectedToken("Expected '}'")
			}
			v, err := parseEnumValueDefinition(t, dl)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		closeTok, err := t.ExpectPunctuator(lexer.PunctuatorBraceRight)
		if err != nil {
			return nil, err
		}
		span = ast.Merge(span, ast.Merge(open.Span(), closeTok.Span()))
	}
	return ast.NewParsedEnumType(ast.NewName(name.StringSlice, name.Span()), description, directives, values, span), nil
}

func parseEnumValueDefinition(t *Tokens, dl DepthLimiter) (*ast.ParsedEnumValueDefinition, error) {
	description := parseDescription(t)
	name, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}
	span := name.Span()
	if len(directives) > 0 {
		span = ast.Merge(span, directives[len(directives)-1].Span())
	}
	return ast.NewParsedEnumValueDefinition(ast.NewName(name.StringSlice, name.Span()), description, directives, span), nil
}

func parseInputObjectTypeDefinition(t *Tokens, dl DepthLimiter, description *ast.StringValue) (*ast.ParsedInputObjectType, error) {
	kw, ok := t.NextIfKeyword("input")
	if !ok {
		return nil, t.UnexpectedToken("Expected 'input'")
	}
	name, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}
	span := ast.Merge(kw.Span(), name.Span())
	var fields []ast.InputValueDefinition
	if t.PeekIsPunctuator(lexer.PunctuatorBraceLeft) {
		open, _ := t.NextIfPunctuator(lexer.PunctuatorBraceLeft)
		for !t.PeekIsPunctuator(lexer.PunctuatorBraceRight) {
			if t.AtEOF() {
				return nil, t.UnexpectedToken("Expected '}'")
			}
			f, err := parseInputValueDefinition(t, dl)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		closeTok, err := t.ExpectPunctuator(lexer.PunctuatorBraceRight)
		if err != nil {
			return nil, err
		}
		span = ast.Merge(span, ast.Merge(open.Span(), closeTok.Span()))
	}
	return ast.NewParsedInputObjectType(ast.NewName(name.StringSlice, name.Span()), description, directives, fields, span), nil
}

// parseInputValueDefinition parses one `name: Type = default @directives`,
// used for arguments, directive arguments, and input-object fields alike.
func parseInputValueDefinition(t *Tokens, dl DepthLimiter) (*ast.ParsedInputValueDefinition, error) {
	description := parseDescription(t)
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
	span := ast.Merge(name.Span(), typ.Span())
	if defaultValue != nil {
		span = ast.Merge(span, defaultValue.Span())
	}
	if len(directives) > 0 {
		span = ast.Merge(span, directives[len(directives)-1].Span())
	}
	return ast.NewParsedInputValueDefinition(ast.NewName(name.StringSlice, name.Span()), description, typ, defaultValue, directives, span), nil
}

// parseArgumentsDefinition parses an optional `(inputValue+)` list, as used
// by field and directive definitions.
func parseArgumentsDefinition(t *Tokens, dl DepthLimiter) ([]ast.InputValueDefinition, error) {
	if !t.PeekIsPunctuator(lexer.PunctuatorParenLeft) {
		return nil, nil
	}
	t.advance()
	var args []ast.InputValueDefinition
	for !t.PeekIsPunctuator(lexer.PunctuatorParenRight) {
		if t.AtEOF() {
			return nil, t.UnexpectedToken("Expected ')'")
		}
		arg, err := parseInputValueDefinition(t, dl)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	t.advance()
	return args, nil
}

// parseImplementsInterfaces parses an optional `implements A & B & ...`
// clause on an Object or Interface type.
func parseImplementsInterfaces(t *Tokens) ([]string, error) {
	if _, ok := t.NextIfKeyword("implements"); !ok {
		return nil, nil
	}
	t.NextIfPunctuator(lexer.PunctuatorAmp)
	var names []string
	for {
		name, err := t.ExpectName()
		if err != nil {
			return nil, err
		}
		names = append(names, name.StringSlice)
		if _, ok := t.NextIfPunctuator(lexer.PunctuatorAmp); !ok {
			return names, nil
		}
	}
}

func parseFieldsDefinition(t *Tokens, dl DepthLimiter) ([]ast.FieldDefinition, error) {
	if !t.PeekIsPunctuator(lexer.PunctuatorBraceLeft) {
		return nil, nil
	}
	t.advance()
	var fields []ast.FieldDefinition
	for !t.PeekIsPunctuator(lexer.PunctuatorBraceRight) {
		if t.AtEOF() {
			return nil, t.UnexpectedToken("Expected '}'")
		}
		f, err := parseFieldDefinition(t, dl)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	t.advance()
	return fields, nil
}

func parseFieldDefinition(t *Tokens, dl DepthLimiter) (*ast.ParsedFieldDefinition, error) {
	description := parseDescription(t)
	name, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	args, err := parseArgumentsDefinition(t, dl)
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
	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}
	span := ast.Merge(name.Span(), typ.Span())
	if len(directives) > 0 {
		span = ast.Merge(span, directives[len(directives)-1].Span())
	}
	return ast.NewParsedFieldDefinition(ast.NewName(name.StringSlice, name.Span()), description, args, typ, directives, span), nil
}

func parseObjectTypeDefinition(t *Tokens, dl DepthLimiter, description *ast.StringValue) (*ast.ParsedObjectType, error) {
	kw, ok := t.NextIfKeyword("type")
	if !ok {
		return nil, t.UnexpectedToken("Expected 'type'")
	}
	name, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	interfaces, err := parseImplementsInterfaces(t)
	if err != nil {
		return nil, err
	}
	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}
	fields, err := parseFieldsDefinition(t, dl)
	if err != nil {
		return nil, err
	}
	span := ast.Merge(kw.Span(), name.Span())
	return ast.NewParsedObjectType(ast.NewName(name.StringSlice, name.Span()), description, directives, fields, interfaces, span), nil
}

func parseInterfaceTypeDefinition(t *Tokens, dl DepthLimiter, description *ast.StringValue) (*ast.ParsedInterfaceType, error) {
	kw, ok := t.NextIfKeyword("interface")
	if !ok {
		return nil, t.UnexpectedToken("Expected 'interface'")
	}
	name, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	interfaces, err := parseImplementsInterfaces(t)
	if err != nil {
		return nil, err
	}
	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}
	fields, err := parseFieldsDefinition(t, dl)
	if err != nil {
		return nil, err
	}
	span := ast.Merge(kw.Span(), name.Span())
	return ast.NewParsedInterfaceType(ast.NewName(name.StringSlice, name.Span()), description, directives, fields, interfaces, span), nil
}

func parseUnionTypeDefinition(t *Tokens, dl DepthLimiter, description *ast.StringValue) (*ast.ParsedUnionType, error) {
	kw, ok := t.NextIfKeyword("union")
	if !ok {
		return nil, t.UnexpectedToken("Expected 'union'")
	}
	name, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	directives, err := parseDirectives(t, dl)
	if err != nil {
		return nil, err
	}
	span := ast.Merge(kw.Span(), name.Span())
	var members []string
	if _, ok := t.NextIfPunctuator(lexer.PunctuatorEquals); ok {
		t.NextIfPunctuator(lexer.PunctuatorPipe)
		for {
			member, err := t.ExpectName()
			if err != nil {
				return nil, err
			}
			members = append(members, member.StringSlice)
			span = ast.Merge(span, member.Span())
			if _, ok := t.NextIfPunctuator(lexer.PunctuatorPipe); !ok {
				break
			}
		}
	}
	return ast.NewParsedUnionType(ast.NewName(name.StringSlice, name.Span()), description, directives, members, span), nil
}

func parseDirectiveDefinition(t *Tokens, dl DepthLimiter, description *ast.StringValue) (*ast.ParsedDirectiveDefinition, error) {
	kw, ok := t.NextIfKeyword("directive")
	if !ok {
		return nil, t.UnexpectedToken("Expected 'directive'")
	}
	if _, err := t.ExpectPunctuator(lexer.PunctuatorAt); err != nil {
		return nil, err
	}
	name, err := t.ExpectName()
	if err != nil {
		return nil, err
	}
	args, err := parseArgumentsDefinition(t, dl)
	if err != nil {
		return nil, err
	}
	repeatable := false
	if _, ok := t.NextIfKeyword("repeatable"); ok {
		repeatable = true
	}
	if _, ok := t.NextIfKeyword("on"); !ok {
		return nil, t.UnexpectedToken("Expected 'on'")
	}
	t.NextIfPunctuator(lexer.PunctuatorPipe)
	var locations []ast.DirectiveLocation
	for {
		locTok, err := t.ExpectName()
		if err != nil {
			return nil, err
		}
		loc, ok := directiveLocationsByName[locTok.StringSlice]
		if !ok {
			return nil, operationreport.AtSpan("Unknown directive location '"+locTok.StringSlice+"'", locTok.Span())
		}
		locations = append(locations, loc)
		if _, ok := t.NextIfPunctuator(lexer.PunctuatorPipe); !ok {
			break
		}
	}
	span := ast.Merge(kw.Span(), name.Span())
	return ast.NewParsedDirectiveDefinition(ast.NewName(name.StringSlice, name.Span()), description, args, repeatable, locations, span), nil
}
