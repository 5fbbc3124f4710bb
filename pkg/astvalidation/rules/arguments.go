package rules

import (
	"fmt"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astvalidation"
	"github.com/graphql-tools/qlcore/pkg/astvisitor"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// argumentNamesUnique rejects a duplicate argument name in any one field or
// directive argument list.
type argumentNamesUnique struct {
	ctx *astvalidation.RuleContext
}

func NewArgumentNamesUnique(ctx *astvalidation.RuleContext) interface{} {
	return &argumentNamesUnique{ctx: ctx}
}

func (r *argumentNamesUnique) checkDuplicates(label string, args []ast.ArgumentApplication) {
	seen := make(map[string]struct{}, len(args))
	for _, a := range args {
		if _, dup := seen[a.ArgumentName()]; dup {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Duplicate argument '%s' on %s", a.ArgumentName(), label), a.Span()))
			continue
		}
		seen[a.ArgumentName()] = struct{}{}
	}
}

func (r *argumentNamesUnique) EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *astvisitor.Walker) {
	r.checkDuplicates(fmt.Sprintf("field '%s'", f.FieldSelectionName()), f.FieldArgumentApplications())
}

func (r *argumentNamesUnique) EnterDirective(d ast.DirectiveApplication, directiveDef ast.DirectiveDefinition, hasDirectiveDef bool, location ast.DirectiveLocation, w *astvisitor.Walker) {
	r.checkDuplicates(fmt.Sprintf("directive '@%s'", d.DirectiveName()), d.DirectiveArguments())
}

// requiredArgumentsPresent rejects an argument list missing one of the
// expected definition's required (non-nullable, no default) arguments.
type requiredArgumentsPresent struct {
	ctx *astvalidation.RuleContext
}

func NewRequiredArgumentsPresent(ctx *astvalidation.RuleContext) interface{} {
	return &requiredArgumentsPresent{ctx: ctx}
}

func checkRequiredArguments(report *operationreport.Report, label string, span ast.Span, expected []ast.InputValueDefinition, actual []ast.ArgumentApplication) {
	present := make(map[string]struct{}, len(actual))
	for _, a := range actual {
		present[a.ArgumentName()] = struct{}{}
	}
	for _, e := range expected {
		_, hasDefault := e.InputValueDefault()
		if !e.InputValueType().Required() || hasDefault {
			continue
		}
		if _, ok := present[e.InputValueName()]; !ok {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Required argument '%s' not present on %s", e.InputValueName(), label), span))
		}
	}
}

func (r *requiredArgumentsPresent) EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *astvisitor.Walker) {
	if !hasFieldDef {
		return
	}
	checkRequiredArguments(r.ctx.Report, fmt.Sprintf("field '%s'", f.FieldSelectionName()), f.Span(), fieldDef.FieldArguments(), f.FieldArgumentApplications())
}

func (r *requiredArgumentsPresent) EnterDirective(d ast.DirectiveApplication, directiveDef ast.DirectiveDefinition, hasDirectiveDef bool, location ast.DirectiveLocation, w *astvisitor.Walker) {
	if !hasDirectiveDef {
		return
	}
	checkRequiredArguments(r.ctx.Report, fmt.Sprintf("directive '@%s'", d.DirectiveName()), d.Span(), directiveDef.DirectiveDefinitionArguments(), d.DirectiveArguments())
}

// argumentValuesMatchInputType rejects an argument value whose shape is
// statically incompatible with its declared input type: a null for a
// required type, a non-list value for a list type without a coercible
// single element, an enum value naming a member the declared enum doesn't
// have, or an input-object value with an unknown field or a field whose own
// value mismatches. Variable-valued arguments are left to
// all-variable-usages-allowed, since the argument's static shape says
// nothing about what value the variable resolves to.
type argumentValuesMatchInputType struct {
	ctx *astvalidation.RuleContext
}

func NewArgumentValuesMatchInputType(ctx *astvalidation.RuleContext) interface{} {
	return &argumentValuesMatchInputType{ctx: ctx}
}

func (r *argumentValuesMatchInputType) checkArgs(label string, expected []ast.InputValueDefinition, actual []ast.ArgumentApplication) {
	byName := make(map[string]ast.InputValueDefinition, len(expected))
	for _, e := range expected {
		byName[e.InputValueName()] = e
	}
	for _, a := range actual {
		def, ok := byName[a.ArgumentName()]
		if !ok {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Unknown argument '%s' on %s", a.ArgumentName(), label), a.Span()))
			continue
		}
		r.checkValue(fmt.Sprintf("argument '%s' of %s", a.ArgumentName(), label), a.ArgumentValue(), def.InputValueType())
	}
}

func (r *argumentValuesMatchInputType) checkValue(label string, v ast.Value, typ ast.TypeRef) {
	if v.IsVariable() {
		return
	}
	if v.IsNull() {
		if typ.Required() {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("%s must not be null", label), v.Span()))
		}
		return
	}
	if typ.Kind() == ast.TypeRefKindList {
		if v.Kind() != ast.ValueKindList {
			r.checkValue(label, v, typ.OfType())
			return
		}
		for _, item := range v.List() {
			r.checkValue(label, item, typ.OfType())
		}
		return
	}

	typeName := typ.NamedTypeName()
	if r.ctx.Schema == nil {
		return
	}
	def, ok := r.ctx.Schema.GetTypeDefinition(typeName)
	if !ok {
		return
	}
	switch def.TypeDefinitionKind() {
	case ast.TypeDefinitionKindEnum:
		if v.Kind() != ast.ValueKindEnum {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("%s must be an enum value of '%s'", label, typeName), v.Span()))
			return
		}
		enumType := def.(ast.EnumTypeDefinition)
		for _, ev := range enumType.EnumValueDefinitions() {
			if ev.EnumValueName() == v.EnumName() {
				return
			}
		}
		r.ctx.Report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("%s names '%s', which is not a member of enum '%s'", label, v.EnumName(), typeName), v.Span()))
	case ast.TypeDefinitionKindInputObject:
		if v.Kind() != ast.ValueKindObject {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("%s must be an input object of type '%s'", label, typeName), v.Span()))
			return
		}
		inputType := def.(ast.InputObjectTypeDefinition)
		fieldDefs := make(map[string]ast.InputValueDefinition, len(inputType.InputFieldDefinitions()))
		for _, f := range inputType.InputFieldDefinitions() {
			fieldDefs[f.InputValueName()] = f
		}
		for _, of := range v.Object() {
			fd, ok := fieldDefs[of.Name]
			if !ok {
				r.ctx.Report.AddExternalError(operationreport.AtSpan(
					fmt.Sprintf("'%s' is not a field of input type '%s'", of.Name, typeName), v.Span()))
				continue
			}
			r.checkValue(fmt.Sprintf("field '%s' of input type '%s'", of.Name, typeName), of.Value, fd.InputValueType())
		}
		checkRequiredInputObjectFields(r.ctx.Report, typeName, v, inputType)
	default:
		// Scalars: this module doesn't pluggable-coerce custom scalars here
		// (operationanalysis.VariableValuesAreValid owns coercion for
		// variable-sourced values); a literal argument's scalar shape is
		// accepted as long as it isn't a structurally wrong kind (enum/object
		// already excluded above).
		if v.Kind() == ast.ValueKindObject || v.Kind() == ast.ValueKindEnum {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("%s is not a valid value for scalar '%s'", label, typeName), v.Span()))
		}
	}
}

func checkRequiredInputObjectFields(report *operationreport.Report, typeName string, v ast.Value, inputType ast.InputObjectTypeDefinition) {
	present := make(map[string]struct{}, len(v.Object()))
	for _, of := range v.Object() {
		present[of.Name] = struct{}{}
	}
	for _, f := range inputType.InputFieldDefinitions() {
		_, hasDefault := f.InputValueDefault()
		if !f.InputValueType().Required() || hasDefault {
			continue
		}
		if _, ok := present[f.InputValueName()]; !ok {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Required field '%s' not present on input object '%s'", f.InputValueName(), typeName), v.Span()))
		}
	}
}

func (r *argumentValuesMatchInputType) EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *astvisitor.Walker) {
	if !hasFieldDef {
		return
	}
	r.checkArgs(fmt.Sprintf("field '%s'", f.FieldSelectionName()), fieldDef.FieldArguments(), f.FieldArgumentApplications())
}

func (r *argumentValuesMatchInputType) EnterDirective(d ast.DirectiveApplication, directiveDef ast.DirectiveDefinition, hasDirectiveDef bool, location ast.DirectiveLocation, w *astvisitor.Walker) {
	if !hasDirectiveDef {
		return
	}
	r.checkArgs(fmt.Sprintf("directive '@%s'", d.DirectiveName()), directiveDef.DirectiveDefinitionArguments(), d.DirectiveArguments())
}
