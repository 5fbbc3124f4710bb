package operationmerge

import "github.com/graphql-tools/qlcore/pkg/ast"

// This file is the merger's implementation of the executable capability
// interfaces declared in pkg/ast/capabilities.go — the second
// ExecutableDocument backend capabilities.go's doc comment anticipates,
// alongside the parser's ParsedExecutableDocument. Every merged node is a
// synthesized value with no single byte range in any one source document,
// so Span() returns the zero Span throughout; nothing downstream (the
// validator, the analyzer, a printer) depends on a merged node's span being
// meaningful, only present.
//
// Argument and directive applications are NOT given a dedicated Merged*
// type: ast.ParsedArgumentApplication already is exactly "a name and a
// value", with no lexical-origin-specific behavior, so the merger reuses it
// directly rather than defining a redundant twin (see
// bluejay-operation-merger/src/argument.rs's MergedArgument, which is
// likewise a thin wrapper with no merge logic of its own beyond recursively
// rewriting the value).

// MergedSelectionSet is an ordered, already-flattened selection set: no
// FragmentSpread ever appears in one, since the merger always inlines a
// spread's target into an InlineFragment carrying the same type condition
// (spec.md §4.6 step 4).
type MergedSelectionSet struct {
	selections []ast.Selection
}

func (s *MergedSelectionSet) Span() ast.Span          { return ast.Span{} }
func (s *MergedSelectionSet) Selections() []ast.Selection { return s.selections }

// MergedField is a field selection in the merged output. Alias is non-nil
// only when the field's response name differs from its selection name —
// either because the source selection itself used an alias, or because the
// merger suffixed it to resolve an @suffixOnMerge-flagged conflict.
type MergedField struct {
	alias        *string
	name         string
	arguments    []ast.ArgumentApplication
	subSelection *MergedSelectionSet
}

func (f *MergedField) Span() ast.Span      { return ast.Span{} }
func (f *MergedField) isSelection()        {}
func (f *MergedField) FieldSelectionName() string { return f.name }

func (f *MergedField) FieldAlias() (string, bool) {
	if f.alias == nil {
		return "", false
	}
	return *f.alias, true
}

// FieldResponseName is the alias if present, else the field name.
func (f *MergedField) FieldResponseName() string {
	if f.alias != nil {
		return *f.alias
	}
	return f.name
}

func (f *MergedField) FieldArgumentApplications() []ast.ArgumentApplication { return f.arguments }

// FieldSelectionDirectives is always empty: the only directive a field
// selection could carry into the merger, @suffixOnMerge, is consumed to
// decide disambiguation and never survives into the output (mirroring
// MergedVariableDefinition's own EmptyDirectives::DEFAULT in the Rust
// original).
func (f *MergedField) FieldSelectionDirectives() []ast.DirectiveApplication { return nil }

func (f *MergedField) FieldSubSelectionSet() (ast.SelectionSet, bool) {
	if f.subSelection == nil {
		return nil, false
	}
	return f.subSelection, true
}

// MergedInlineFragment is either a source inline fragment carried through
// unchanged (sans directives) or the inlined body of a fragment spread,
// given the spread target's own type condition.
type MergedInlineFragment struct {
	typeCondition *string
	selectionSet  *MergedSelectionSet
}

func (i *MergedInlineFragment) Span() ast.Span { return ast.Span{} }
func (i *MergedInlineFragment) isSelection()   {}

func (i *MergedInlineFragment) InlineFragmentTypeCondition() (string, bool) {
	if i.typeCondition == nil {
		return "", false
	}
	return *i.typeCondition, true
}

func (i *MergedInlineFragment) InlineFragmentDirectives() []ast.DirectiveApplication { return nil }
func (i *MergedInlineFragment) InlineFragmentSelectionSet() ast.SelectionSet          { return i.selectionSet }

// MergedVariableDefinition holds a possibly-renamed variable name, its type,
// and an optional merged default value. Its directives are always dropped
// in the output, even though the directive values (@suffixOnMerge /
// @replaceOnMerge) drove the renaming decision upstream.
type MergedVariableDefinition struct {
	name         string
	typ          ast.TypeRef
	defaultValue *ast.Value
}

func (v *MergedVariableDefinition) Span() ast.Span           { return ast.Span{} }
func (v *MergedVariableDefinition) VariableName() string     { return v.name }
func (v *MergedVariableDefinition) VariableType() ast.TypeRef { return v.typ }

func (v *MergedVariableDefinition) VariableDefault() (ast.Value, bool) {
	if v.defaultValue == nil {
		return ast.Value{}, false
	}
	return *v.defaultValue, true
}

func (v *MergedVariableDefinition) VariableDirectives() []ast.DirectiveApplication { return nil }

// MergedOperationDefinition is the single operation a merge produces.
type MergedOperationDefinition struct {
	opType       ast.OperationType
	name         *string
	variables    []ast.VariableDefinition
	selectionSet *MergedSelectionSet
}

func (o *MergedOperationDefinition) Span() ast.Span             { return ast.Span{} }
func (o *MergedOperationDefinition) isExecutableDefinition()     {}
func (o *MergedOperationDefinition) OperationType() ast.OperationType { return o.opType }

func (o *MergedOperationDefinition) OperationName() (string, bool) {
	if o.name == nil {
		return "", false
	}
	return *o.name, true
}

func (o *MergedOperationDefinition) OperationVariableDefinitions() []ast.VariableDefinition {
	return o.variables
}

func (o *MergedOperationDefinition) OperationDirectives() []ast.DirectiveApplication { return nil }
func (o *MergedOperationDefinition) OperationSelectionSet() ast.SelectionSet          { return o.selectionSet }

// MergedFragmentDefinition exists solely to satisfy ast.FragmentDefinition's
// contract shape; the merger inlines every fragment spread, so no fragment
// definition ever survives into a merged document and no value of this type
// is ever constructed. Every method panics if somehow reached, mirroring
// bluejay-operation-merger/src/fragment_definition.rs's uninhabited
// `_never: Never` field.
type MergedFragmentDefinition struct{}

const mergedFragmentDefinitionUninhabited = "operationmerge: MergedFragmentDefinition is uninhabited; fragment definitions are always inlined by the merger"

func (MergedFragmentDefinition) Span() ast.Span                  { panic(mergedFragmentDefinitionUninhabited) }
func (MergedFragmentDefinition) isExecutableDefinition()         { panic(mergedFragmentDefinitionUninhabited) }
func (MergedFragmentDefinition) IndexableName() string           { panic(mergedFragmentDefinitionUninhabited) }
func (MergedFragmentDefinition) FragmentName() string            { panic(mergedFragmentDefinitionUninhabited) }
func (MergedFragmentDefinition) FragmentTypeCondition() string   { panic(mergedFragmentDefinitionUninhabited) }
func (MergedFragmentDefinition) FragmentDirectives() []ast.DirectiveApplication {
	panic(mergedFragmentDefinitionUninhabited)
}
func (MergedFragmentDefinition) FragmentSelectionSet() ast.SelectionSet {
	panic(mergedFragmentDefinitionUninhabited)
}

// MergedExecutableDocument wraps the single merged operation. No fragment
// definitions ever appear (spec.md §4.6: "fragment definitions do not
// appear, all inlined").
type MergedExecutableDocument struct {
	operation *MergedOperationDefinition
}

func (d *MergedExecutableDocument) Definitions() []ast.ExecutableDefinition {
	return []ast.ExecutableDefinition{d.operation}
}

func (d *MergedExecutableDocument) OperationDefinitions() []ast.OperationDefinition {
	return []ast.OperationDefinition{d.operation}
}

func (d *MergedExecutableDocument) FragmentDefinitions() []ast.FragmentDefinition { return nil }

func (d *MergedExecutableDocument) GetFragmentDefinition(string) (ast.FragmentDefinition, bool) {
	return nil, false
}

var (
	_ ast.SelectionSet         = (*MergedSelectionSet)(nil)
	_ ast.Field                = (*MergedField)(nil)
	_ ast.InlineFragment       = (*MergedInlineFragment)(nil)
	_ ast.VariableDefinition   = (*MergedVariableDefinition)(nil)
	_ ast.OperationDefinition  = (*MergedOperationDefinition)(nil)
	_ ast.FragmentDefinition   = MergedFragmentDefinition{}
	_ ast.ExecutableDocument   = (*MergedExecutableDocument)(nil)
)
