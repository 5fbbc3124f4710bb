// Package rules is the built-in rule set named in spec.md §4.4, grounded on
// original_source/bluejay-core/src/validation/executable/rules/*.rs and the
// teacher's astvisitor.Walker registration idiom. Every rule is a small type
// implementing one or more astvisitor hooks, built by a RuleFactory closure
// that closes over the shared astvalidation.RuleContext.
package rules

import (
	"fmt"

	"github.com/jensneuse/abstractlogger"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astvalidation"
	"github.com/graphql-tools/qlcore/pkg/astvisitor"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// Default returns every built-in rule, combined as the tuple-shaped
// composite rule spec.md §4.4 describes.
func Default() []astvalidation.RuleFactory {
	return []astvalidation.RuleFactory{
		NewOperationNameUniqueness,
		NewLoneAnonymousOperation,
		NewSubscriptionRootSingleField,
		NewFieldExistsOnType,
		NewFieldSelectionsMerge,
		NewArgumentNamesUnique,
		NewArgumentValuesMatchInputType,
		NewRequiredArgumentsPresent,
		NewVariableUniqueness,
		NewVariablesAreInputTypes,
		NewAllVariableUsesDefined,
		NewAllVariablesUsed,
		NewAllVariableUsagesAllowed,
		NewFragmentNameUniqueness,
		NewFragmentTypeExists,
		NewFragmentOnCompositeType,
		NewFragmentsMustBeUsed,
		NewNoUndefinedFragments,
		NewNoFragmentCycles,
		NewPossibleFragmentSpreads,
		NewDirectiveExists,
		NewDirectiveValidLocation,
		NewDirectiveArgumentsValid,
		NewNonRepeatableDirectiveNotRepeated,
	}
}

// ValidateDefault runs the full built-in rule set over doc.
func ValidateDefault(doc ast.ExecutableDocument, schema ast.SchemaDefinition) *operationreport.Report {
	return astvalidation.Validate(doc, schema, Default(), abstractlogger.Noop{})
}

// operationNameUniqueness rejects two operations sharing a name.
type operationNameUniqueness struct {
	ctx  *astvalidation.RuleContext
	seen map[string]ast.OperationDefinition
}

func NewOperationNameUniqueness(ctx *astvalidation.RuleContext) interface{} {
	return &operationNameUniqueness{ctx: ctx, seen: make(map[string]ast.OperationDefinition)}
}

func (r *operationNameUniqueness) EnterOperationDefinition(op ast.OperationDefinition, w *astvisitor.Walker) {
	name, ok := op.OperationName()
	if !ok {
		return
	}
	if _, dup := r.seen[name]; dup {
		r.ctx.Report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("There can be only one operation named '%s'", name), op.Span()))
		return
	}
	r.seen[name] = op
}

// loneAnonymousOperation rejects an anonymous operation unless it is the
// document's only operation.
type loneAnonymousOperation struct {
	ctx   *astvalidation.RuleContext
	total int
}

func NewLoneAnonymousOperation(ctx *astvalidation.RuleContext) interface{} {
	return &loneAnonymousOperation{ctx: ctx, total: len(ctx.Document.OperationDefinitions())}
}

func (r *loneAnonymousOperation) EnterOperationDefinition(op ast.OperationDefinition, w *astvisitor.Walker) {
	if _, named := op.OperationName(); named {
		return
	}
	if r.total > 1 {
		r.ctx.Report.AddExternalError(operationreport.AtSpan(
			"This anonymous operation must be the only defined operation", op.Span()))
	}
}

// subscriptionRootSingleField enforces that a subscription operation's root
// selection set names exactly one field (after accounting for
// directly-selected fields only; fragment-contributed fields are out of
// scope for this check per the common GraphQL reading of the rule, which
// this implementation follows).
type subscriptionRootSingleField struct {
	ctx *astvalidation.RuleContext
}

func NewSubscriptionRootSingleField(ctx *astvalidation.RuleContext) interface{} {
	return &subscriptionRootSingleField{ctx: ctx}
}

func (r *subscriptionRootSingleField) EnterOperationDefinition(op ast.OperationDefinition, w *astvisitor.Walker) {
	if op.OperationType() != ast.OperationTypeSubscription {
		return
	}
	count := 0
	for _, sel := range op.OperationSelectionSet().Selections() {
		if f, ok := sel.(ast.Field); ok && f.FieldSelectionName() != "__typename" {
			count++
		}
	}
	if count != 1 {
		name, _ := op.OperationName()
		label := name
		if label == "" {
			label = "<anonymous>"
		}
		r.ctx.Report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("Subscription '%s' must select exactly one top-level field", label), op.Span()))
	}
}
