package operationanalysis

import (
	"fmt"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astvalidation"
)

// AnalyzerContext is the read-only environment every built-in analyzer runs
// against: the schema, the document it was parsed alongside (for fragment
// lookup), the single operation under analysis, and the variable values it
// resolves references against. It reuses astvalidation.Cache for fragment
// lookup/closure, the same memoized structure the validator builds per run.
type AnalyzerContext struct {
	Schema    ast.SchemaDefinition
	Document  ast.ExecutableDocument
	Operation ast.OperationDefinition
	Variables VariableValues

	cache *astvalidation.Cache
}

// NewAnalyzerContext builds the shared environment one or more analyzers run
// against for a single operation. vars may be nil, treated as empty.
func NewAnalyzerContext(doc ast.ExecutableDocument, schema ast.SchemaDefinition, op ast.OperationDefinition, vars VariableValues) *AnalyzerContext {
	if vars == nil {
		vars = StaticVariableValues{}
	}
	return &AnalyzerContext{
		Schema:    schema,
		Document:  doc,
		Operation: op,
		Variables: vars,
		cache:     astvalidation.NewCache(doc, schema),
	}
}

func (ctx *AnalyzerContext) variableDefinition(name string) (ast.VariableDefinition, bool) {
	for _, vd := range ctx.Operation.OperationVariableDefinitions() {
		if vd.VariableName() == name {
			return vd, true
		}
	}
	return nil, false
}

// ResolveVariable looks up name in ctx.Variables, falling back to the
// operation's declared default value, and erroring if neither exists.
func (ctx *AnalyzerContext) ResolveVariable(name string) (ast.Value, error) {
	if v, ok := ctx.Variables.Get(name); ok {
		return v, nil
	}
	if vd, ok := ctx.variableDefinition(name); ok {
		if def, ok := vd.VariableDefault(); ok {
			return def, nil
		}
	}
	return ast.Value{}, fmt.Errorf("variable '$%s' has no supplied value and no default", name)
}

// Resolve eagerly substitutes every Variable reference within v (including
// nested inside Lists/Objects) with its resolved value, per spec.md §4.5.
func (ctx *AnalyzerContext) Resolve(v ast.Value) (ast.Value, error) {
	switch v.Kind() {
	case ast.ValueKindVariable:
		return ctx.ResolveVariable(v.VariableName())
	case ast.ValueKindList:
		items := v.List()
		out := make([]ast.Value, len(items))
		for i, item := range items {
			r, err := ctx.Resolve(item)
			if err != nil {
				return ast.Value{}, err
			}
			out[i] = r
		}
		return ast.ListVal(out, v.Span()), nil
	case ast.ValueKindObject:
		fields := v.Object()
		out := make([]ast.ObjectField, len(fields))
		for i, f := range fields {
			r, err := ctx.Resolve(f.Value)
			if err != nil {
				return ast.Value{}, err
			}
			out[i] = ast.ObjectField{Name: f.Name, Value: r}
		}
		return ast.ObjectVal(out, v.Span()), nil
	default:
		return v, nil
	}
}

// resolvedArguments resolves every argument application on f into a
// name->value map, for analyzers (ComplexityCost's ScaleFactorComputer) that
// want arguments by name rather than as an ordered list.
func (ctx *AnalyzerContext) resolvedArguments(f ast.Field) (map[string]ast.Value, error) {
	args := f.FieldArgumentApplications()
	out := make(map[string]ast.Value, len(args))
	for _, a := range args {
		v, err := ctx.Resolve(a.ArgumentValue())
		if err != nil {
			return nil, err
		}
		out[a.ArgumentName()] = v
	}
	return out, nil
}

// fieldVisit is one flattened field occurrence: the walk has already
// resolved which type it's selected from and how deep it's nested, crossing
// fragment-spread and inline-fragment boundaries transparently.
type fieldVisit struct {
	Field         ast.Field
	FieldDef      ast.FieldDefinition
	HasFieldDef   bool
	EnclosingType string
	Depth         int
}

// walk drives a top-down traversal of the operation's selections (and every
// fragment it transitively spreads), invoking visit for each field
// occurrence. visit returns whether to descend into that field's own
// sub-selection.
func (ctx *AnalyzerContext) walk(visit func(fieldVisit) bool) {
	root := rootTypeName(ctx.Schema, ctx.Operation.OperationType())
	ctx.walkSelectionSet(ctx.Operation.OperationSelectionSet(), root, 1, visit, map[string]bool{})
}

func (ctx *AnalyzerContext) walkSelectionSet(s ast.SelectionSet, enclosingType string, depth int, visit func(fieldVisit) bool, onFragmentPath map[string]bool) {
	for _, sel := range s.Selections() {
		switch n := sel.(type) {
		case ast.Field:
			fieldDef, hasFieldDef := lookupFieldDefinition(ctx.Schema, enclosingType, n.FieldSelectionName())
			fv := fieldVisit{Field: n, FieldDef: fieldDef, HasFieldDef: hasFieldDef, EnclosingType: enclosingType, Depth: depth}
			if visit(fv) {
				if sub, ok := n.FieldSubSelectionSet(); ok {
					childType := ""
					if hasFieldDef {
						childType = fieldDef.FieldType().NamedTypeName()
					}
					ctx.walkSelectionSet(sub, childType, depth+1, visit, onFragmentPath)
				}
			}
		case ast.InlineFragment:
			cond := enclosingType
			if tc, ok := n.InlineFragmentTypeCondition(); ok {
				cond = tc
			}
			ctx.walkSelectionSet(n.InlineFragmentSelectionSet(), cond, depth, visit, onFragmentPath)
		case ast.FragmentSpread:
			name := n.FragmentSpreadName()
			if onFragmentPath[name] {
				continue // noFragmentCycles forbids this; don't loop if it somehow slipped through
			}
			frag, ok := ctx.cache.FragmentDefinition(name)
			if !ok {
				continue
			}
			onFragmentPath[name] = true
			ctx.walkSelectionSet(frag.FragmentSelectionSet(), frag.FragmentTypeCondition(), depth, visit, onFragmentPath)
			onFragmentPath[name] = false
		}
	}
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

func lookupFieldDefinition(schema ast.SchemaDefinition, typeName, fieldName string) (ast.FieldDefinition, bool) {
	if fieldName == "__typename" || schema == nil || typeName == "" {
		return nil, false
	}
	t, ok := schema.GetTypeDefinition(typeName)
	if !ok {
		return nil, false
	}
	holder, ok := t.(ast.FieldsDefinitionHolder)
	if !ok {
		return nil, false
	}
	for _, f := range holder.FieldsDefinition() {
		if f.FieldName() == fieldName {
			return f, true
		}
	}
	return nil, false
}

// concreteTypesOf returns the set of object-type names typeName (an object,
// interface, or union name) could ever resolve to at runtime.
func concreteTypesOf(schema ast.SchemaDefinition, typeName string) map[string]struct{} {
	out := make(map[string]struct{})
	if schema == nil {
		return out
	}
	t, ok := schema.GetTypeDefinition(typeName)
	if !ok {
		return out
	}
	switch tt := t.(type) {
	case ast.UnionTypeDefinition:
		for _, m := range tt.UnionMemberTypes() {
			out[m] = struct{}{}
		}
	case ast.InterfaceTypeDefinition:
		for _, candidate := range schema.TypeDefinitions() {
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
