package rules

import (
	"fmt"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astvalidation"
	"github.com/graphql-tools/qlcore/pkg/astvisitor"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// fragmentNameUniqueness rejects two fragment definitions sharing a name.
type fragmentNameUniqueness struct {
	ctx  *astvalidation.RuleContext
	seen map[string]struct{}
}

func NewFragmentNameUniqueness(ctx *astvalidation.RuleContext) interface{} {
	return &fragmentNameUniqueness{ctx: ctx, seen: make(map[string]struct{})}
}

func (r *fragmentNameUniqueness) EnterFragmentDefinition(f ast.FragmentDefinition, w *astvisitor.Walker) {
	if _, dup := r.seen[f.FragmentName()]; dup {
		r.ctx.Report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("There can be only one fragment named '%s'", f.FragmentName()), f.Span()))
		return
	}
	r.seen[f.FragmentName()] = struct{}{}
}

// fragmentTypeExists rejects a fragment's type condition naming an
// undefined type.
type fragmentTypeExists struct {
	ctx *astvalidation.RuleContext
}

func NewFragmentTypeExists(ctx *astvalidation.RuleContext) interface{} {
	return &fragmentTypeExists{ctx: ctx}
}

func (r *fragmentTypeExists) EnterFragmentDefinition(f ast.FragmentDefinition, w *astvisitor.Walker) {
	if r.ctx.Schema == nil {
		return
	}
	if _, ok := r.ctx.Schema.GetTypeDefinition(f.FragmentTypeCondition()); !ok {
		r.ctx.Report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("Fragment '%s' has type condition on undefined type '%s'", f.FragmentName(), f.FragmentTypeCondition()), f.Span()))
	}
}

// fragmentOnCompositeType rejects a fragment (or inline fragment) whose
// type condition names a non-composite type: fragments only ever select
// fields, so their condition must be an object, interface, or union.
type fragmentOnCompositeType struct {
	ctx *astvalidation.RuleContext
}

func NewFragmentOnCompositeType(ctx *astvalidation.RuleContext) interface{} {
	return &fragmentOnCompositeType{ctx: ctx}
}

func (r *fragmentOnCompositeType) checkCondition(label, typeName string, span ast.Span) {
	if r.ctx.Schema == nil {
		return
	}
	t, ok := r.ctx.Schema.GetTypeDefinition(typeName)
	if !ok {
		return // fragment-type-exists already reports the unknown-type case
	}
	if !t.TypeDefinitionKind().IsComposite() {
		r.ctx.Report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("%s has type condition on non-composite type '%s'", label, typeName), span))
	}
}

func (r *fragmentOnCompositeType) EnterFragmentDefinition(f ast.FragmentDefinition, w *astvisitor.Walker) {
	r.checkCondition(fmt.Sprintf("Fragment '%s'", f.FragmentName()), f.FragmentTypeCondition(), f.Span())
}

func (r *fragmentOnCompositeType) EnterInlineFragment(i ast.InlineFragment, w *astvisitor.Walker) {
	if tc, ok := i.InlineFragmentTypeCondition(); ok {
		r.checkCondition("Inline fragment", tc, i.Span())
	}
}

// noUndefinedFragments rejects a `...Name` spread whose target fragment
// does not exist in the document.
type noUndefinedFragments struct {
	ctx *astvalidation.RuleContext
}

func NewNoUndefinedFragments(ctx *astvalidation.RuleContext) interface{} {
	return &noUndefinedFragments{ctx: ctx}
}

func (r *noUndefinedFragments) EnterFragmentSpread(s ast.FragmentSpread, w *astvisitor.Walker) {
	if _, ok := r.ctx.Cache.FragmentDefinition(s.FragmentSpreadName()); !ok {
		r.ctx.Report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("Fragment '%s' is not defined", s.FragmentSpreadName()), s.Span()))
	}
}

// fragmentsMustBeUsed rejects a fragment definition that no fragment spread
// anywhere in the document names. A spread inside another fragment counts,
// whether or not that fragment is itself reachable from an operation.
type fragmentsMustBeUsed struct {
	ctx      *astvalidation.RuleContext
	declared map[string]ast.FragmentDefinition
	used     map[string]struct{}
}

func NewFragmentsMustBeUsed(ctx *astvalidation.RuleContext) interface{} {
	declared := make(map[string]ast.FragmentDefinition, len(ctx.Document.FragmentDefinitions()))
	for _, f := range ctx.Document.FragmentDefinitions() {
		declared[f.FragmentName()] = f
	}
	return &fragmentsMustBeUsed{ctx: ctx, declared: declared, used: make(map[string]struct{})}
}

func (r *fragmentsMustBeUsed) EnterFragmentSpread(s ast.FragmentSpread, w *astvisitor.Walker) {
	r.used[s.FragmentSpreadName()] = struct{}{}
}

func (r *fragmentsMustBeUsed) Finish() {
	for name, f := range r.declared {
		if _, ok := r.used[name]; !ok {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Fragment '%s' is never used", name), f.Span()))
		}
	}
}

// noFragmentCycles rejects a fragment that spreads itself, directly or
// transitively.
type noFragmentCycles struct{}

func NewNoFragmentCycles(ctx *astvalidation.RuleContext) interface{} {
	for _, f := range ctx.Document.FragmentDefinitions() {
		if path := findCycle(ctx, f.FragmentName(), f.FragmentSelectionSet(), map[string]bool{f.FragmentName(): true}); path != "" {
			ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Fragment '%s' forms a cycle via '%s'", f.FragmentName(), path), f.Span()))
		}
	}
	return &noFragmentCycles{}
}

func findCycle(ctx *astvalidation.RuleContext, root string, s ast.SelectionSet, onPath map[string]bool) string {
	for _, sel := range s.Selections() {
		switch n := sel.(type) {
		case ast.FragmentSpread:
			name := n.FragmentSpreadName()
			if name == root {
				return name
			}
			if onPath[name] {
				continue
			}
			frag, ok := ctx.Cache.FragmentDefinition(name)
			if !ok {
				continue
			}
			onPath[name] = true
			if found := findCycle(ctx, root, frag.FragmentSelectionSet(), onPath); found != "" {
				onPath[name] = false
				return found
			}
			onPath[name] = false
		case ast.InlineFragment:
			if found := findCycle(ctx, root, n.InlineFragmentSelectionSet(), onPath); found != "" {
				return found
			}
		case ast.Field:
			if sub, ok := n.FieldSubSelectionSet(); ok {
				if found := findCycle(ctx, root, sub, onPath); found != "" {
					return found
				}
			}
		}
	}
	return ""
}

// possibleFragmentSpreads rejects a fragment spread or inline fragment
// whose type condition can never overlap with its enclosing type: e.g.
// spreading a `PersonFragment` (condition `Person`) inside a selection on
// `Product`, when neither is a subtype of the other and no concrete type
// could satisfy both. Like field-selections-merge, this rule drives its
// own top-down descent (via EnterOperationDefinition/EnterFragmentDefinition)
// rather than using per-node hooks, since it needs the *surrounding* type of
// each inline fragment/spread, and the walker's own EnclosingTypeDefinition
// has already moved on to the fragment's own condition by the time an
// EnterInlineFragment/EnterFragmentSpread hook fires.
type possibleFragmentSpreads struct {
	ctx *astvalidation.RuleContext
}

func NewPossibleFragmentSpreads(ctx *astvalidation.RuleContext) interface{} {
	return &possibleFragmentSpreads{ctx: ctx}
}

func (r *possibleFragmentSpreads) EnterOperationDefinition(op ast.OperationDefinition, w *astvisitor.Walker) {
	r.walk(op.OperationSelectionSet(), rootTypeName(r.ctx.Schema, op.OperationType()))
}

func (r *possibleFragmentSpreads) EnterFragmentDefinition(f ast.FragmentDefinition, w *astvisitor.Walker) {
	r.walk(f.FragmentSelectionSet(), f.FragmentTypeCondition())
}

func (r *possibleFragmentSpreads) walk(s ast.SelectionSet, enclosing string) {
	if r.ctx.Schema == nil || enclosing == "" {
		return
	}
	for _, sel := range s.Selections() {
		switch n := sel.(type) {
		case ast.Field:
			if sub, ok := n.FieldSubSelectionSet(); ok {
				r.walk(sub, fieldReturnTypeName(r.ctx.Schema, enclosing, n.FieldSelectionName()))
			}
		case ast.InlineFragment:
			tc, ok := n.InlineFragmentTypeCondition()
			if ok {
				if !r.overlap(enclosing, tc) {
					r.ctx.Report.AddExternalError(operationreport.AtSpan(
						fmt.Sprintf("Inline fragment on '%s' can never apply within type '%s'", tc, enclosing), n.Span()))
				}
				r.walk(n.InlineFragmentSelectionSet(), tc)
			} else {
				r.walk(n.InlineFragmentSelectionSet(), enclosing)
			}
		case ast.FragmentSpread:
			frag, ok := r.ctx.Cache.FragmentDefinition(n.FragmentSpreadName())
			if !ok {
				continue
			}
			if !r.overlap(enclosing, frag.FragmentTypeCondition()) {
				r.ctx.Report.AddExternalError(operationreport.AtSpan(
					fmt.Sprintf("Fragment '%s' on '%s' can never apply within type '%s'", n.FragmentSpreadName(), frag.FragmentTypeCondition(), enclosing), n.Span()))
			}
			// Deliberately not recursing into frag's own body here: its own
			// EnterFragmentDefinition call (every fragment is walked once,
			// document-wide) already checks it against its own condition.
		}
	}
}

func fieldReturnTypeName(schema ast.SchemaDefinition, enclosing, fieldName string) string {
	if fieldName == "__typename" {
		return "String"
	}
	t, ok := schema.GetTypeDefinition(enclosing)
	if !ok {
		return ""
	}
	holder, ok := t.(ast.FieldsDefinitionHolder)
	if !ok {
		return ""
	}
	for _, f := range holder.FieldsDefinition() {
		if f.FieldName() == fieldName {
			return f.FieldType().NamedTypeName()
		}
	}
	return ""
}

func (r *possibleFragmentSpreads) overlap(a, b string) bool {
	if a == b {
		return true
	}
	concreteA := r.concreteTypes(a)
	concreteB := r.concreteTypes(b)
	for name := range concreteA {
		if _, ok := concreteB[name]; ok {
			return true
		}
	}
	return false
}

// concreteTypes returns the set of object-type names a (an object,
// interface, or union name) could ever resolve to at runtime.
func (r *possibleFragmentSpreads) concreteTypes(typeName string) map[string]struct{} {
	out := make(map[string]struct{})
	t, ok := r.ctx.Schema.GetTypeDefinition(typeName)
	if !ok {
		return out
	}
	switch tt := t.(type) {
	case ast.UnionTypeDefinition:
		for _, m := range tt.UnionMemberTypes() {
			out[m] = struct{}{}
		}
	case ast.InterfaceTypeDefinition:
		for _, candidate := range r.ctx.Schema.TypeDefinitions() {
			obj, ok := candidate.(ast.ObjectTypeDefinition)
			if !ok {
				continue
			}
			for _, iface := range obj.ImplementsInterfaces() {
				if iface == typeName {
					out[obj.TypeDefinitionName()] = struct{}{}
					break
				}
			}
		}
	default:
		out[typeName] = struct{}{}
	}
	return out
}
