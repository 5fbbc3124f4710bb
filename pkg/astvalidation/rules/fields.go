package rules

import (
	"fmt"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astvalidation"
	"github.com/graphql-tools/qlcore/pkg/astvisitor"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// fieldExistsOnType rejects a field selection naming a field absent from
// its enclosing type. The walker has already resolved fieldDef/hasFieldDef
// for us; this rule just decides whether the absence is reportable (it
// isn't when the enclosing type is unknown, since some other rule already
// covers that case, or when it's an abstract type the walker couldn't
// resolve past an inline fragment without a type condition).
type fieldExistsOnType struct {
	ctx *astvalidation.RuleContext
}

func NewFieldExistsOnType(ctx *astvalidation.RuleContext) interface{} {
	return &fieldExistsOnType{ctx: ctx}
}

func (r *fieldExistsOnType) EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *astvisitor.Walker) {
	if hasFieldDef || w.EnclosingTypeDefinition == nil {
		return
	}
	r.ctx.Report.AddExternalError(operationreport.AtSpan(
		fmt.Sprintf("Field '%s' does not exist on type '%s'", f.FieldSelectionName(), w.EnclosingTypeDefinition.TypeDefinitionName()), f.Span()))
}

// selRoot pairs a selection set with the schema type name it is selected
// against, used by field-selections-merge to track type context across
// inline-fragment and fragment-spread boundaries while flattening.
type selRoot struct {
	set      ast.SelectionSet
	typeName string
}

// fieldSelectionsMerge implements spec.md §4.4.1: same-response-name field
// selections across an operation (and every fragment it transitively
// spreads) must be merge-compatible — same field definition (or
// non-composite-equal return types), argument multisets equivalent modulo
// order and null-vs-absent-default, and recursively merge-compatible
// sub-selections. It runs its own top-down recursive descent per operation
// and per top-level fragment definition rather than relying on the
// walker's own per-node hooks, since merge-compatibility fundamentally
// needs to flatten fragment-spread and inline-fragment contents into one
// logical selection set at each level, which the walker's plain traversal
// deliberately does not do.
type fieldSelectionsMerge struct {
	ctx *astvalidation.RuleContext
}

func NewFieldSelectionsMerge(ctx *astvalidation.RuleContext) interface{} {
	return &fieldSelectionsMerge{ctx: ctx}
}

func (r *fieldSelectionsMerge) EnterOperationDefinition(op ast.OperationDefinition, w *astvisitor.Walker) {
	typeName := rootTypeName(r.ctx.Schema, op.OperationType())
	r.check([]selRoot{{set: op.OperationSelectionSet(), typeName: typeName}})
}

func (r *fieldSelectionsMerge) EnterFragmentDefinition(f ast.FragmentDefinition, w *astvisitor.Walker) {
	r.check([]selRoot{{set: f.FragmentSelectionSet(), typeName: f.FragmentTypeCondition()}})
}

func rootTypeName(schema ast.SchemaDefinition, opType ast.OperationType) string {
	if schema == nil {
		return ""
	}
	switch opType {
	case ast.OperationTypeMutation:
		name, _ := schema.MutationTypeName()
		return name
	case ast.OperationTypeSubscription:
		name, _ := schema.SubscriptionTypeName()
		return name
	default:
		return schema.QueryTypeName()
	}
}

type fieldEntry struct {
	field        ast.Field
	enclosingType string
}

func (r *fieldSelectionsMerge) flatten(roots []selRoot, onFragmentPath map[string]bool) []fieldEntry {
	var out []fieldEntry
	for _, root := range roots {
		for _, sel := range root.set.Selections() {
			switch n := sel.(type) {
			case ast.Field:
				out = append(out, fieldEntry{field: n, enclosingType: root.typeName})
			case ast.InlineFragment:
				typeName := root.typeName
				if tc, ok := n.InlineFragmentTypeCondition(); ok {
					typeName = tc
				}
				out = append(out, r.flatten([]selRoot{{set: n.InlineFragmentSelectionSet(), typeName: typeName}}, onFragmentPath)...)
			case ast.FragmentSpread:
				name := n.FragmentSpreadName()
				if onFragmentPath[name] {
					continue
				}
				frag, ok := r.ctx.Cache.FragmentDefinition(name)
				if !ok {
					continue
				}
				onFragmentPath[name] = true
				out = append(out, r.flatten([]selRoot{{set: frag.FragmentSelectionSet(), typeName: frag.FragmentTypeCondition()}}, onFragmentPath)...)
				onFragmentPath[name] = false
			}
		}
	}
	return out
}

func (r *fieldSelectionsMerge) fieldReturnType(enclosingType, fieldName string) string {
	if fieldName == "__typename" {
		return "String"
	}
	if r.ctx.Schema == nil || enclosingType == "" {
		return ""
	}
	t, ok := r.ctx.Schema.GetTypeDefinition(enclosingType)
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

func (r *fieldSelectionsMerge) check(roots []selRoot) {
	entries := r.flatten(roots, make(map[string]bool))
	var order []string
	groups := make(map[string][]fieldEntry)
	for _, e := range entries {
		rn := e.field.FieldResponseName()
		if _, ok := groups[rn]; !ok {
			order = append(order, rn)
		}
		groups[rn] = append(groups[rn], e)
	}

	for _, rn := range order {
		group := groups[rn]
		if len(group) > 1 {
			r.checkGroupCompatible(rn, group)
		}
		var subRoots []selRoot
		for _, e := range group {
			sub, ok := e.field.FieldSubSelectionSet()
			if !ok {
				continue
			}
			subRoots = append(subRoots, selRoot{set: sub, typeName: r.fieldReturnType(e.enclosingType, e.field.FieldSelectionName())})
		}
		if len(subRoots) > 0 {
			r.check(subRoots)
		}
	}
}

func (r *fieldSelectionsMerge) checkGroupCompatible(responseName string, group []fieldEntry) {
	first := group[0]
	for _, other := range group[1:] {
		if other.field.FieldSelectionName() != first.field.FieldSelectionName() {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Fields for response name '%s' name different fields ('%s' and '%s')",
					responseName, first.field.FieldSelectionName(), other.field.FieldSelectionName()), other.field.Span()))
			continue
		}
		if !argumentsEquivalent(first.field.FieldArgumentApplications(), other.field.FieldArgumentApplications()) {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Fields for response name '%s' have incompatible arguments", responseName), other.field.Span()))
		}
		firstType := r.fieldReturnType(first.enclosingType, first.field.FieldSelectionName())
		otherType := r.fieldReturnType(other.enclosingType, other.field.FieldSelectionName())
		if firstType != "" && otherType != "" && firstType != otherType {
			r.ctx.Report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Fields for response name '%s' return conflicting types ('%s' and '%s')",
					responseName, firstType, otherType), other.field.Span()))
		}
	}
}

// argumentsEquivalent compares two argument-application lists as multisets
// of (name, value), treating an argument's absence as equivalent to an
// explicit null (spec.md §4.4.1: "absent/null treated identically when
// argument has no default value" — this repo applies that equivalence
// whenever one side omits the argument entirely, the common case the rule
// exists for).
func argumentsEquivalent(a, b []ast.ArgumentApplication) bool {
	am := argMap(a)
	bm := argMap(b)
	names := make(map[string]bool, len(am)+len(bm))
	for n := range am {
		names[n] = true
	}
	for n := range bm {
		names[n] = true
	}
	for name := range names {
		av, aok := am[name]
		bv, bok := bm[name]
		switch {
		case aok && bok:
			if !ast.Equal(av, bv) {
				return false
			}
		case aok && !bok:
			if !av.IsNull() {
				return false
			}
		case !aok && bok:
			if !bv.IsNull() {
				return false
			}
		}
	}
	return true
}

func argMap(args []ast.ArgumentApplication) map[string]ast.Value {
	m := make(map[string]ast.Value, len(args))
	for _, a := range args {
		m[a.ArgumentName()] = a.ArgumentValue()
	}
	return m
}
