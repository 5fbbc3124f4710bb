package ast

// This file is the parser's concrete implementation of the executable
// capability interfaces declared in capabilities.go. It is intentionally a
// thin, immutable value-holder: all behavior lives in the interfaces'
// consumers (validator, analyzer, merger, printer).

type ParsedArgumentApplication struct {
	Name  Name
	Value Value
	span  Span
}

func NewParsedArgumentApplication(name Name, value Value) *ParsedArgumentApplication {
	return &ParsedArgumentApplication{Name: name, Value: value, span: Merge(name.Span(), value.Span())}
}

func (a *ParsedArgumentApplication) Span() Span            { return a.span }
func (a *ParsedArgumentApplication) ArgumentName() string   { return a.Name.Value }
func (a *ParsedArgumentApplication) ArgumentValue() Value   { return a.Value }

type ParsedDirectiveApplication struct {
	Name      Name
	Arguments []ArgumentApplication
	span      Span
}

func NewParsedDirectiveApplication(at Span, name Name, args []ArgumentApplication, end Span) *ParsedDirectiveApplication {
	return &ParsedDirectiveApplication{Name: name, Arguments: args, span: Merge(at, end)}
}

func (d *ParsedDirectiveApplication) Span() Span                          { return d.span }
func (d *ParsedDirectiveApplication) DirectiveName() string               { return d.Name.Value }
func (d *ParsedDirectiveApplication) DirectiveArguments() []ArgumentApplication { return d.Arguments }

type ParsedSelectionSet struct {
	selections []Selection
	span       Span
}

func NewParsedSelectionSet(selections []Selection, span Span) *ParsedSelectionSet {
	return &ParsedSelectionSet{selections: selections, span: span}
}

func (s *ParsedSelectionSet) Span() Span             { return s.span }
func (s *ParsedSelectionSet) Selections() []Selection { return s.selections }

type ParsedField struct {
	Alias        *Name
	Name         Name
	Arguments    []ArgumentApplication
	Directives   []DirectiveApplication
	SubSelection *ParsedSelectionSet
	span         Span
}

// NewParsedField constructs a field selection. span must cover the alias (if
// any) through the sub-selection (if any).
func NewParsedField(alias *Name, name Name, args []ArgumentApplication, directives []DirectiveApplication, subSelection *ParsedSelectionSet, span Span) *ParsedField {
	return &ParsedField{Alias: alias, Name: name, Arguments: args, Directives: directives, SubSelection: subSelection, span: span}
}

func (f *ParsedField) Span() Span      { return f.span }
func (f *ParsedField) isSelection()    {}
func (f *ParsedField) FieldSelectionName() string { return f.Name.Value }

func (f *ParsedField) FieldAlias() (string, bool) {
	if f.Alias == nil {
		return "", false
	}
	return f.Alias.Value, true
}

// FieldResponseName is the alias if present, else the field name, per
// spec.md §3.4.
func (f *ParsedField) FieldResponseName() string {
	if f.Alias != nil {
		return f.Alias.Value
	}
	return f.Name.Value
}

func (f *ParsedField) FieldArgumentApplications() []ArgumentApplication { return f.Arguments }
func (f *ParsedField) FieldSelectionDirectives() []DirectiveApplication { return f.Directives }

func (f *ParsedField) FieldSubSelectionSet() (SelectionSet, bool) {
	if f.SubSelection == nil {
		return nil, false
	}
	return f.SubSelection, true
}

type ParsedInlineFragment struct {
	TypeCondition *Name
	Directives    []DirectiveApplication
	SelectionSet  *ParsedSelectionSet
	span          Span
}

// NewParsedInlineFragment constructs an inline fragment selection.
func NewParsedInlineFragment(typeCondition *Name, directives []DirectiveApplication, selectionSet *ParsedSelectionSet, span Span) *ParsedInlineFragment {
	return &ParsedInlineFragment{TypeCondition: typeCondition, Directives: directives, SelectionSet: selectionSet, span: span}
}

func (i *ParsedInlineFragment) Span() Span   { return i.span }
func (i *ParsedInlineFragment) isSelection() {}

func (i *ParsedInlineFragment) InlineFragmentTypeCondition() (string, bool) {
	if i.TypeCondition == nil {
		return "", false
	}
	return i.TypeCondition.Value, true
}

func (i *ParsedInlineFragment) InlineFragmentDirectives() []DirectiveApplication {
	return i.Directives
}

func (i *ParsedInlineFragment) InlineFragmentSelectionSet() SelectionSet { return i.SelectionSet }

type ParsedFragmentSpread struct {
	Name       Name
	Directives []DirectiveApplication
	span       Span
}

// NewParsedFragmentSpread constructs a `...Name @directives` selection.
func NewParsedFragmentSpread(name Name, directives []DirectiveApplication, span Span) *ParsedFragmentSpread {
	return &ParsedFragmentSpread{Name: name, Directives: directives, span: span}
}

func (s *ParsedFragmentSpread) Span() Span                               { return s.span }
func (s *ParsedFragmentSpread) isSelection()                             {}
func (s *ParsedFragmentSpread) FragmentSpreadName() string               { return s.Name.Value }
func (s *ParsedFragmentSpread) FragmentSpreadDirectives() []DirectiveApplication { return s.Directives }

type ParsedVariableDefinition struct {
	Name         Name
	Type         TypeRef
	DefaultValue *Value
	Directives   []DirectiveApplication
	span         Span
}

// NewParsedVariableDefinition constructs a `$name: Type = default @directives`
// variable definition.
func NewParsedVariableDefinition(name Name, typ TypeRef, defaultValue *Value, directives []DirectiveApplication, span Span) *ParsedVariableDefinition {
	return &ParsedVariableDefinition{Name: name, Type: typ, DefaultValue: defaultValue, Directives: directives, span: span}
}

func (v *ParsedVariableDefinition) Span() Span            { return v.span }
func (v *ParsedVariableDefinition) VariableName() string  { return v.Name.Value }
func (v *ParsedVariableDefinition) VariableType() TypeRef  { return v.Type }

func (v *ParsedVariableDefinition) VariableDefault() (Value, bool) {
	if v.DefaultValue == nil {
		return Value{}, false
	}
	return *v.DefaultValue, true
}

func (v *ParsedVariableDefinition) VariableDirectives() []DirectiveApplication { return v.Directives }

type ParsedOperationDefinition struct {
	Type                OperationType
	Name                *Name
	VariableDefinitions []VariableDefinition
	Directives          []DirectiveApplication
	SelectionSet        *ParsedSelectionSet
	span                Span
}

// NewParsedOperationDefinition constructs an operation definition, explicit
// or implicit (name == nil).
func NewParsedOperationDefinition(opType OperationType, name *Name, varDefs []VariableDefinition, directives []DirectiveApplication, selectionSet *ParsedSelectionSet, span Span) *ParsedOperationDefinition {
	return &ParsedOperationDefinition{Type: opType, Name: name, VariableDefinitions: varDefs, Directives: directives, SelectionSet: selectionSet, span: span}
}

func (o *ParsedOperationDefinition) Span() Span            { return o.span }
func (o *ParsedOperationDefinition) isExecutableDefinition() {}
func (o *ParsedOperationDefinition) OperationType() OperationType { return o.Type }

func (o *ParsedOperationDefinition) OperationName() (string, bool) {
	if o.Name == nil {
		return "", false
	}
	return o.Name.Value, true
}

func (o *ParsedOperationDefinition) OperationVariableDefinitions() []VariableDefinition {
	return o.VariableDefinitions
}

func (o *ParsedOperationDefinition) OperationDirectives() []DirectiveApplication { return o.Directives }

func (o *ParsedOperationDefinition) OperationSelectionSet() SelectionSet { return o.SelectionSet }

type ParsedFragmentDefinition struct {
	Name          Name
	TypeCondition Name
	Directives    []DirectiveApplication
	SelectionSet  *ParsedSelectionSet
	span          Span
}

// NewParsedFragmentDefinition constructs a named fragment definition.
func NewParsedFragmentDefinition(name Name, typeCondition Name, directives []DirectiveApplication, selectionSet *ParsedSelectionSet, span Span) *ParsedFragmentDefinition {
	return &ParsedFragmentDefinition{Name: name, TypeCondition: typeCondition, Directives: directives, SelectionSet: selectionSet, span: span}
}

func (f *ParsedFragmentDefinition) Span() Span             { return f.span }
func (f *ParsedFragmentDefinition) isExecutableDefinition() {}
func (f *ParsedFragmentDefinition) IndexableName() string  { return f.Name.Value }
func (f *ParsedFragmentDefinition) FragmentName() string   { return f.Name.Value }
func (f *ParsedFragmentDefinition) FragmentTypeCondition() string { return f.TypeCondition.Value }
func (f *ParsedFragmentDefinition) FragmentDirectives() []DirectiveApplication { return f.Directives }
func (f *ParsedFragmentDefinition) FragmentSelectionSet() SelectionSet { return f.SelectionSet }

// ParsedExecutableDocument is the parser's ExecutableDocument implementation.
// It borrows from the source buffer and is immutable after construction
// (spec.md §3.4 lifecycle).
type ParsedExecutableDocument struct {
	definitions []ExecutableDefinition
	operations  []OperationDefinition
	fragments   []FragmentDefinition
	byName      map[string]FragmentDefinition
}

func NewParsedExecutableDocument(definitions []ExecutableDefinition) *ParsedExecutableDocument {
	doc := &ParsedExecutableDocument{definitions: definitions, byName: make(map[string]FragmentDefinition)}
	for _, d := range definitions {
		switch n := d.(type) {
		case OperationDefinition:
			doc.operations = append(doc.operations, n)
		case FragmentDefinition:
			doc.fragments = append(doc.fragments, n)
			doc.byName[n.FragmentName()] = n
		}
	}
	return doc
}

func (d *ParsedExecutableDocument) Definitions() []ExecutableDefinition { return d.definitions }
func (d *ParsedExecutableDocument) OperationDefinitions() []OperationDefinition { return d.operations }
func (d *ParsedExecutableDocument) FragmentDefinitions() []FragmentDefinition   { return d.fragments }

func (d *ParsedExecutableDocument) GetFragmentDefinition(name string) (FragmentDefinition, bool) {
	f, ok := d.byName[name]
	return f, ok
}
