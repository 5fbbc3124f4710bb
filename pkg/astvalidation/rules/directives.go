package rules

import (
	"fmt"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astvalidation"
	"github.com/graphql-tools/qlcore/pkg/astvisitor"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// directiveExists rejects an applied directive the schema never declares.
type directiveExists struct {
	ctx *astvalidation.RuleContext
}

func NewDirectiveExists(ctx *astvalidation.RuleContext) interface{} {
	return &directiveExists{ctx: ctx}
}

func (r *directiveExists) EnterDirective(d ast.DirectiveApplication, directiveDef ast.DirectiveDefinition, hasDirectiveDef bool, location ast.DirectiveLocation, w *astvisitor.Walker) {
	if r.ctx.Schema == nil || hasDirectiveDef {
		return
	}
	r.ctx.Report.AddExternalError(operationreport.AtSpan(
		fmt.Sprintf("Directive '@%s' is not defined", d.DirectiveName()), d.Span()))
}

// directiveValidLocation rejects a directive applied somewhere its
// definition's location list doesn't permit.
type directiveValidLocation struct {
	ctx *astvalidation.RuleContext
}

func NewDirectiveValidLocation(ctx *astvalidation.RuleContext) interface{} {
	return &directiveValidLocation{ctx: ctx}
}

func (r *directiveValidLocation) EnterDirective(d ast.DirectiveApplication, directiveDef ast.DirectiveDefinition, hasDirectiveDef bool, location ast.DirectiveLocation, w *astvisitor.Walker) {
	if !hasDirectiveDef {
		return
	}
	for _, loc := range directiveDef.DirectiveDefinitionLocations() {
		if loc == location {
			return
		}
	}
	r.ctx.Report.AddExternalError(operationreport.AtSpan(
		fmt.Sprintf("Directive '@%s' is not allowed at %s", d.DirectiveName(), location), d.Span()))
}

// directiveArgumentsValid is the directive-scoped umbrella spec.md §4.4
// names alongside argument-names-unique/required-arguments-present/
// argument-values-match-input-type. Those three rules already cover field
// AND directive argument lists (EnterDirective is one of their hooks), so
// this rule adds no further checks of its own — duplicating their logic
// here would only double-report the same violations.
type directiveArgumentsValid struct{}

func NewDirectiveArgumentsValid(ctx *astvalidation.RuleContext) interface{} {
	return &directiveArgumentsValid{}
}

// nonRepeatableDirectiveNotRepeated rejects the same non-repeatable
// directive applied more than once to one node.
type nonRepeatableDirectiveNotRepeated struct {
	ctx *astvalidation.RuleContext
}

func NewNonRepeatableDirectiveNotRepeated(ctx *astvalidation.RuleContext) interface{} {
	return &nonRepeatableDirectiveNotRepeated{ctx: ctx}
}

func (r *nonRepeatableDirectiveNotRepeated) check(directives []ast.DirectiveApplication) {
	if r.ctx.Schema == nil {
		return
	}
	seen := make(map[string]struct{}, len(directives))
	for _, d := range directives {
		def, ok := r.ctx.Schema.GetDirectiveDefinition(d.DirectiveName())
		if !ok || def.DirectiveDefinitionRepeatable() {
			continue
		}
		if _, dup := seen[d.DirectiveName()]; dup {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Non-repeatable directive '@%s' used more than once", d.DirectiveName()), d.Span()))
			continue
		}
		seen[d.DirectiveName()] = struct{}{}
	}
}

func (r *nonRepeatableDirectiveNotRepeated) EnterOperationDefinition(op ast.OperationDefinition, w *astvisitor.Walker) {
	r.check(op.OperationDirectives())
}

func (r *nonRepeatableDirectiveNotRepeated) EnterFragmentDefinition(f ast.FragmentDefinition, w *astvisitor.Walker) {
	r.check(f.FragmentDirectives())
}

func (r *nonRepeatableDirectiveNotRepeated) EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *astvisitor.Walker) {
	r.check(f.FieldSelectionDirectives())
}

func (r *nonRepeatableDirectiveNotRepeated) EnterInlineFragment(i ast.InlineFragment, w *astvisitor.Walker) {
	r.check(i.InlineFragmentDirectives())
}

func (r *nonRepeatableDirectiveNotRepeated) EnterFragmentSpread(s ast.FragmentSpread, w *astvisitor.Walker) {
	r.check(s.FragmentSpreadDirectives())
}

func (r *nonRepeatableDirectiveNotRepeated) EnterVariableDefinition(v ast.VariableDefinition, w *astvisitor.Walker) {
	r.check(v.VariableDirectives())
}
