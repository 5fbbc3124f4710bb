package operationanalysis

import "github.com/graphql-tools/qlcore/pkg/ast"

// ScaleFactorComputer supplies ComplexityCost with the cost and repetition
// multiplier of one field occurrence, given the field itself, its parent
// type, and its resolved arguments. Grounded on bluejay-validator's
// ScaleFactorComputer (original_source's
// executable/operation/analyzers/scale_factor.rs): a pagination field's
// `first`/`last` argument, for instance, fans its children's cost out by
// that many repetitions.
type ScaleFactorComputer interface {
	ScaleFactor(field ast.Field, fieldDef ast.FieldDefinition, parentType string, resolvedArgs map[string]ast.Value) (cost int, multiplier int, hasMultiplier bool)
}

// DefaultScaleFactorComputer charges 1 per field with no repetition
// multiplier. Callers with pagination arguments or expensive resolvers
// should supply their own ScaleFactorComputer instead.
type DefaultScaleFactorComputer struct{}

func (DefaultScaleFactorComputer) ScaleFactor(field ast.Field, fieldDef ast.FieldDefinition, parentType string, resolvedArgs map[string]ast.Value) (int, int, bool) {
	return 1, 0, false
}
