package rules

import (
	"fmt"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astvalidation"
	"github.com/graphql-tools/qlcore/pkg/astvisitor"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// forEachVariableUsage walks v against its statically expected type
// (the declared input type of the argument or input-object field it
// occupies), invoking fn for every Variable leaf it finds together with the
// type expected at that exact position. schema resolves nested
// input-object field types; it may be nil, in which case Object values are
// not descended into (there is no way to know their field types).
func forEachVariableUsage(schema ast.SchemaDefinition, v ast.Value, expected ast.TypeRef, fn func(name string, usageType ast.TypeRef)) {
	switch v.Kind() {
	case ast.ValueKindVariable:
		fn(v.VariableName(), expected)
	case ast.ValueKindList:
		elem := expected
		if expected.Kind() == ast.TypeRefKindList {
			elem = expected.OfType()
		}
		for _, item := range v.List() {
			forEachVariableUsage(schema, item, elem, fn)
		}
	case ast.ValueKindObject:
		if schema == nil {
			return
		}
		def, ok := schema.GetTypeDefinition(expected.NamedTypeName())
		if !ok {
			return
		}
		inputType, ok := def.(ast.InputObjectTypeDefinition)
		if !ok {
			return
		}
		fieldTypes := make(map[string]ast.TypeRef, len(inputType.InputFieldDefinitions()))
		for _, f := range inputType.InputFieldDefinitions() {
			fieldTypes[f.InputValueName()] = f.InputValueType()
		}
		for _, of := range v.Object() {
			if ft, ok := fieldTypes[of.Name]; ok {
				forEachVariableUsage(schema, of.Value, ft, fn)
			}
		}
	}
}

func scanArgumentsForVariables(schema ast.SchemaDefinition, expected []ast.InputValueDefinition, actual []ast.ArgumentApplication, fn func(name string, usageType ast.TypeRef)) {
	byName := make(map[string]ast.InputValueDefinition, len(expected))
	for _, e := range expected {
		byName[e.InputValueName()] = e
	}
	for _, a := range actual {
		def, ok := byName[a.ArgumentName()]
		if !ok {
			continue
		}
		forEachVariableUsage(schema, a.ArgumentValue(), def.InputValueType(), fn)
	}
}

// isTypeSubTypeOf reports whether a value of type sub may always be used
// wherever a value of type super is expected: a non-null type is a subtype
// of its nullable counterpart, a list is a subtype of another list when
// their elements are in that relation, and two named types are only in
// that relation when identical.
func isTypeSubTypeOf(sub, super ast.TypeRef) bool {
	if super.Required() {
		if !sub.Required() {
			return false
		}
		return isTypeSubTypeOf(relaxed(sub), relaxed(super))
	}
	if sub.Required() {
		sub = relaxed(sub)
	}
	if super.Kind() == ast.TypeRefKindList {
		if sub.Kind() != ast.TypeRefKindList {
			return false
		}
		return isTypeSubTypeOf(sub.OfType(), super.OfType())
	}
	if sub.Kind() == ast.TypeRefKindList {
		return false
	}
	return sub.Name() == super.Name()
}

// relaxed strips one layer of non-null-ness from t, assuming t.Required().
func relaxed(t ast.TypeRef) ast.TypeRef {
	if t.Kind() == ast.TypeRefKindList {
		return ast.NewListTypeRef(t.OfType(), false, t.Span())
	}
	return ast.NewNamedTypeRef(t.Name(), false, t.Span())
}

// forceRequired adds a non-null wrapper to t, used when a nullable
// variable's default value makes every usage effectively non-null.
func forceRequired(t ast.TypeRef) ast.TypeRef {
	if t.Kind() == ast.TypeRefKindList {
		return ast.NewListTypeRef(t.OfType(), true, t.Span())
	}
	return ast.NewNamedTypeRef(t.Name(), true, t.Span())
}

// variableUsageAllowed implements spec.md §4.4's all-variable-usages-allowed
// rule: a variable may be used at a location expecting a non-null type even
// if its own declared type is nullable, provided it carries a default value
// (so every possible absence is covered by that default).
func variableUsageAllowed(varType ast.TypeRef, varHasDefault bool, usageType ast.TypeRef) bool {
	if usageType.Required() && !varType.Required() {
		if !varHasDefault {
			return false
		}
		varType = forceRequired(varType)
	}
	return isTypeSubTypeOf(varType, usageType)
}

// variableUniqueness rejects a duplicate $name within one operation's
// variable definitions.
type variableUniqueness struct {
	ctx  *astvalidation.RuleContext
	seen map[string]struct{}
}

func NewVariableUniqueness(ctx *astvalidation.RuleContext) interface{} {
	return &variableUniqueness{ctx: ctx}
}

func (r *variableUniqueness) EnterOperationDefinition(op ast.OperationDefinition, w *astvisitor.Walker) {
	r.seen = make(map[string]struct{})
}

func (r *variableUniqueness) EnterVariableDefinition(v ast.VariableDefinition, w *astvisitor.Walker) {
	if _, dup := r.seen[v.VariableName()]; dup {
		r.ctx.Report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("Duplicate variable '$%s'", v.VariableName()), v.Span()))
		return
	}
	r.seen[v.VariableName()] = struct{}{}
}

// variablesAreInputTypes rejects a variable declared with a type that
// doesn't name a defined input type.
type variablesAreInputTypes struct {
	ctx *astvalidation.RuleContext
}

func NewVariablesAreInputTypes(ctx *astvalidation.RuleContext) interface{} {
	return &variablesAreInputTypes{ctx: ctx}
}

func (r *variablesAreInputTypes) EnterVariableDefinition(v ast.VariableDefinition, w *astvisitor.Walker) {
	if r.ctx.Schema == nil {
		return
	}
	name := v.VariableType().NamedTypeName()
	t, ok := r.ctx.Schema.GetTypeDefinition(name)
	if !ok {
		r.ctx.Report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("Variable '$%s' has undefined type '%s'", v.VariableName(), name), v.Span()))
		return
	}
	if !t.TypeDefinitionKind().IsInput() {
		r.ctx.Report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("Variable '$%s' type '%s' is not an input type", v.VariableName(), name), v.Span()))
	}
}

// allVariableUsesDefined rejects a $name reference inside an operation's
// selection set that no variable definition of that operation declares.
type allVariableUsesDefined struct {
	ctx      *astvalidation.RuleContext
	declared map[string]struct{}
}

func NewAllVariableUsesDefined(ctx *astvalidation.RuleContext) interface{} {
	return &allVariableUsesDefined{ctx: ctx}
}

func (r *allVariableUsesDefined) EnterOperationDefinition(op ast.OperationDefinition, w *astvisitor.Walker) {
	r.declared = make(map[string]struct{})
}

func (r *allVariableUsesDefined) EnterVariableDefinition(v ast.VariableDefinition, w *astvisitor.Walker) {
	r.declared[v.VariableName()] = struct{}{}
}

func (r *allVariableUsesDefined) scan(label string, span ast.Span, expected []ast.InputValueDefinition, actual []ast.ArgumentApplication) {
	scanArgumentsForVariables(r.ctx.Schema, expected, actual, func(name string, _ ast.TypeRef) {
		if _, ok := r.declared[name]; !ok {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Variable '$%s' used in %s is not defined", name, label), span))
		}
	})
}

func (r *allVariableUsesDefined) EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *astvisitor.Walker) {
	if !hasFieldDef {
		return
	}
	r.scan(fmt.Sprintf("field '%s'", f.FieldSelectionName()), f.Span(), fieldDef.FieldArguments(), f.FieldArgumentApplications())
}

func (r *allVariableUsesDefined) EnterDirective(d ast.DirectiveApplication, directiveDef ast.DirectiveDefinition, hasDirectiveDef bool, location ast.DirectiveLocation, w *astvisitor.Walker) {
	if !hasDirectiveDef {
		return
	}
	r.scan(fmt.Sprintf("directive '@%s'", d.DirectiveName()), d.Span(), directiveDef.DirectiveDefinitionArguments(), d.DirectiveArguments())
}

// allVariablesUsed rejects an operation declaring a variable no selection
// ever references.
type allVariablesUsed struct {
	ctx      *astvalidation.RuleContext
	declared map[string]ast.VariableDefinition
	used     map[string]struct{}
}

func NewAllVariablesUsed(ctx *astvalidation.RuleContext) interface{} {
	return &allVariablesUsed{ctx: ctx}
}

func (r *allVariablesUsed) EnterOperationDefinition(op ast.OperationDefinition, w *astvisitor.Walker) {
	r.declared = make(map[string]ast.VariableDefinition)
	r.used = make(map[string]struct{})
}

func (r *allVariablesUsed) EnterVariableDefinition(v ast.VariableDefinition, w *astvisitor.Walker) {
	r.declared[v.VariableName()] = v
}

func (r *allVariablesUsed) mark(expected []ast.InputValueDefinition, actual []ast.ArgumentApplication) {
	scanArgumentsForVariables(r.ctx.Schema, expected, actual, func(name string, _ ast.TypeRef) {
		r.used[name] = struct{}{}
	})
}

func (r *allVariablesUsed) EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *astvisitor.Walker) {
	if hasFieldDef {
		r.mark(fieldDef.FieldArguments(), f.FieldArgumentApplications())
	}
}

func (r *allVariablesUsed) EnterDirective(d ast.DirectiveApplication, directiveDef ast.DirectiveDefinition, hasDirectiveDef bool, location ast.DirectiveLocation, w *astvisitor.Walker) {
	if hasDirectiveDef {
		r.mark(directiveDef.DirectiveDefinitionArguments(), d.DirectiveArguments())
	}
}

func (r *allVariablesUsed) LeaveOperationDefinition(op ast.OperationDefinition, w *astvisitor.Walker) {
	for name, v := range r.declared {
		if _, ok := r.used[name]; !ok {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Variable '$%s' is never used", name), v.Span()))
		}
	}
}

// allVariableUsagesAllowed rejects a variable used at a position whose
// declared type isn't compatible with the variable's own declared type
// (spec.md §4.4.1's "all-variable-usages-allowed").
type allVariableUsagesAllowed struct {
	ctx      *astvalidation.RuleContext
	declared map[string]ast.VariableDefinition
}

func NewAllVariableUsagesAllowed(ctx *astvalidation.RuleContext) interface{} {
	return &allVariableUsagesAllowed{ctx: ctx}
}

func (r *allVariableUsagesAllowed) EnterOperationDefinition(op ast.OperationDefinition, w *astvisitor.Walker) {
	r.declared = make(map[string]ast.VariableDefinition)
}

func (r *allVariableUsagesAllowed) EnterVariableDefinition(v ast.VariableDefinition, w *astvisitor.Walker) {
	r.declared[v.VariableName()] = v
}

func (r *allVariableUsagesAllowed) check(label string, expected []ast.InputValueDefinition, actual []ast.ArgumentApplication) {
	scanArgumentsForVariables(r.ctx.Schema, expected, actual, func(name string, usageType ast.TypeRef) {
		vd, ok := r.declared[name]
		if !ok {
			return
		}
		_, hasDefault := vd.VariableDefault()
		if !variableUsageAllowed(vd.VariableType(), hasDefault, usageType) {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Variable '$%s' of type '%s' cannot be used where '%s' is expected (%s)",
					name, vd.VariableType().String(), usageType.String(), label), vd.Span()))
		}
	})
}

func (r *allVariableUsagesAllowed) EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *astvisitor.Walker) {
	if hasFieldDef {
		r.check(fmt.Sprintf("field '%s'", f.FieldSelectionName()), fieldDef.FieldArguments(), f.FieldArgumentApplications())
	}
}

func (r *allVariableUsagesAllowed) EnterDirective(d ast.DirectiveApplication, directiveDef ast.DirectiveDefinition, hasDirectiveDef bool, location ast.DirectiveLocation, w *astvisitor.Walker) {
	if hasDirectiveDef {
		r.check(fmt.Sprintf("directive '@%s'", d.DirectiveName()), directiveDef.DirectiveDefinitionArguments(), d.DirectiveArguments())
	}
}
