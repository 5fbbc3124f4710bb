package operationanalysis

import "github.com/graphql-tools/qlcore/pkg/ast"

// ComplexityCost computes a worst-case execution cost bound for an
// operation: the sum of per-field costs, each scaled by its
// ScaleFactorComputer-supplied multiplier, aggregated bottom-up over a tree
// of nested selection scopes keyed by (response name, parent type) — sibling
// field costs are summed, nested costs are multiplied by the enclosing
// field's multiplier, and an abstract (union/interface) selection's cost is
// the maximum over every concrete type it could resolve to at runtime.
//
// Grounded on bluejay-validator's arena-backed ScaleFactorCost
// (original_source's executable/operation/analyzers/complexity_cost/
// {arena,mod}.rs and scale_factor.rs): this module expresses the same
// scope-tree shape as plain recursion over response-name groups rather than
// a literal arena/stack of node ids, since Go's call stack already gives a
// scope stack for free.
type ComplexityCost struct {
	computer ScaleFactorComputer
}

// NewComplexityCost builds a ComplexityCost analyzer. A nil computer falls
// back to DefaultScaleFactorComputer.
func NewComplexityCost(computer ScaleFactorComputer) *ComplexityCost {
	if computer == nil {
		computer = DefaultScaleFactorComputer{}
	}
	return &ComplexityCost{computer: computer}
}

func (a *ComplexityCost) Run(ctx *AnalyzerContext) (int, error) {
	root := rootTypeName(ctx.Schema, ctx.Operation.OperationType())
	return a.costOfSelectionSet(ctx, ctx.Operation.OperationSelectionSet(), root)
}

func (a *ComplexityCost) costOfSelectionSet(ctx *AnalyzerContext, s ast.SelectionSet, enclosingType string) (int, error) {
	if ctx.Schema != nil {
		if t, ok := ctx.Schema.GetTypeDefinition(enclosingType); ok {
			switch t.TypeDefinitionKind() {
			case ast.TypeDefinitionKindUnion, ast.TypeDefinitionKindInterface:
				return a.costOverConcreteTypes(ctx, s, enclosingType)
			}
		}
	}
	return a.costOfConcreteSelectionSet(ctx, s, enclosingType)
}

func (a *ComplexityCost) costOverConcreteTypes(ctx *AnalyzerContext, s ast.SelectionSet, abstractType string) (int, error) {
	concrete := concreteTypesOf(ctx.Schema, abstractType)
	max := 0
	first := true
	for name := range concrete {
		cost, err := a.costOfConcreteSelectionSet(ctx, s, name)
		if err != nil {
			return 0, err
		}
		if first || cost > max {
			max = cost
			first = false
		}
	}
	return max, nil
}

// fieldGroup accumulates every selection sharing one response name under one
// concrete enclosing type — the merge field-selections-merge also performs,
// reused here to decide what one "scope" in the cost tree actually is.
type fieldGroup struct {
	field       ast.Field
	fieldDef    ast.FieldDefinition
	hasFieldDef bool
	children    []ast.SelectionSet
}

func (a *ComplexityCost) costOfConcreteSelectionSet(ctx *AnalyzerContext, s ast.SelectionSet, enclosingType string) (int, error) {
	groups := make(map[string]*fieldGroup)
	var order []string

	var collect func(sel ast.SelectionSet, cond string) error
	collect = func(sel ast.SelectionSet, cond string) error {
		if cond != enclosingType {
			set := concreteTypesOf(ctx.Schema, cond)
			if _, ok := set[enclosingType]; !ok {
				return nil
			}
		}
		for _, sl := range sel.Selections() {
			switch n := sl.(type) {
			case ast.Field:
				rn := n.FieldResponseName()
				g, ok := groups[rn]
				if !ok {
					fieldDef, hasFieldDef := lookupFieldDefinition(ctx.Schema, enclosingType, n.FieldSelectionName())
					g = &fieldGroup{field: n, fieldDef: fieldDef, hasFieldDef: hasFieldDef}
					groups[rn] = g
					order = append(order, rn)
				}
				if sub, ok := n.FieldSubSelectionSet(); ok {
					g.children = append(g.children, sub)
				}
			case ast.InlineFragment:
				inner := enclosingType
				if tc, ok := n.InlineFragmentTypeCondition(); ok {
					inner = tc
				}
				if err := collect(n.InlineFragmentSelectionSet(), inner); err != nil {
					return err
				}
			case ast.FragmentSpread:
				frag, ok := ctx.cache.FragmentDefinition(n.FragmentSpreadName())
				if !ok {
					continue
				}
				if err := collect(frag.FragmentSelectionSet(), frag.FragmentTypeCondition()); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := collect(s, enclosingType); err != nil {
		return 0, err
	}

	total := 0
	for _, rn := range order {
		g := groups[rn]
		resolvedArgs, err := ctx.resolvedArguments(g.field)
		if err != nil {
			return 0, err
		}
		var fieldDef ast.FieldDefinition
		if g.hasFieldDef {
			fieldDef = g.fieldDef
		}
		cost, multiplier, hasMultiplier := a.computer.ScaleFactor(g.field, fieldDef, enclosingType, resolvedArgs)

		childType := ""
		if g.hasFieldDef {
			childType = g.fieldDef.FieldType().NamedTypeName()
		}
		childCost := 0
		for _, child := range g.children {
			c, err := a.costOfSelectionSet(ctx, child, childType)
			if err != nil {
				return 0, err
			}
			childCost += c
		}

		nodeCost := cost + childCost
		if hasMultiplier {
			nodeCost *= multiplier
		}
		total += nodeCost
	}
	return total, nil
}
