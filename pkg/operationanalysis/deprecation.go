package operationanalysis

import "github.com/graphql-tools/qlcore/pkg/ast"

// DeprecatedUse records one use of a field, argument, or enum value carrying
// a `@deprecated` directive.
type DeprecatedUse struct {
	Kind   string // "field", "argument", or "enum value"
	Name   string
	Reason string
	Span   ast.Span
}

// Deprecation lists every deprecated field, argument, and enum value an
// operation uses, with their declared reasons (spec.md §4.5).
type Deprecation struct{}

func NewDeprecation() *Deprecation { return &Deprecation{} }

func (a *Deprecation) Run(ctx *AnalyzerContext) []DeprecatedUse {
	var out []DeprecatedUse
	ctx.walk(func(fv fieldVisit) bool {
		if !fv.HasFieldDef {
			return true
		}
		if reason, ok := deprecationReason(fv.FieldDef.FieldDirectives()); ok {
			out = append(out, DeprecatedUse{Kind: "field", Name: fv.Field.FieldSelectionName(), Reason: reason, Span: fv.Field.Span()})
		}
		argDefs := make(map[string]ast.InputValueDefinition, len(fv.FieldDef.FieldArguments()))
		for _, ad := range fv.FieldDef.FieldArguments() {
			argDefs[ad.InputValueName()] = ad
		}
		for _, applied := range fv.Field.FieldArgumentApplications() {
			def, ok := argDefs[applied.ArgumentName()]
			if !ok {
				continue
			}
			if reason, ok := deprecationReason(def.InputValueDirectives()); ok {
				out = append(out, DeprecatedUse{Kind: "argument", Name: applied.ArgumentName(), Reason: reason, Span: applied.Span()})
			}
			if v := applied.ArgumentValue(); v.Kind() == ast.ValueKindEnum {
				if reason, ok := a.enumValueDeprecation(ctx, def.InputValueType().NamedTypeName(), v.EnumName()); ok {
					out = append(out, DeprecatedUse{Kind: "enum value", Name: v.EnumName(), Reason: reason, Span: v.Span()})
				}
			}
		}
		return true
	})
	return out
}

func (a *Deprecation) enumValueDeprecation(ctx *AnalyzerContext, typeName, valueName string) (string, bool) {
	if ctx.Schema == nil {
		return "", false
	}
	t, ok := ctx.Schema.GetTypeDefinition(typeName)
	if !ok {
		return "", false
	}
	enumType, ok := t.(ast.EnumTypeDefinition)
	if !ok {
		return "", false
	}
	for _, ev := range enumType.EnumValueDefinitions() {
		if ev.EnumValueName() == valueName {
			return deprecationReason(ev.EnumValueDirectives())
		}
	}
	return "", false
}

func deprecationReason(directives []ast.DirectiveApplication) (string, bool) {
	for _, d := range directives {
		if d.DirectiveName() != "deprecated" {
			continue
		}
		for _, arg := range d.DirectiveArguments() {
			if arg.ArgumentName() == "reason" && arg.ArgumentValue().Kind() == ast.ValueKindString {
				return arg.ArgumentValue().Str(), true
			}
		}
		return "No longer supported", true
	}
	return "", false
}
