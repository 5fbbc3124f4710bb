package ast

// This file is the parser's concrete implementation of the schema-side
// capability interfaces declared in capabilities.go.

type ParsedInputValueDefinition struct {
	Name         Name
	Description  *StringValue
	Type         TypeRef
	DefaultValue *Value
	Directives   []DirectiveApplication
	span         Span
}

// NewParsedInputValueDefinition constructs an argument or input-field
// definition.
func NewParsedInputValueDefinition(name Name, description *StringValue, typ TypeRef, defaultValue *Value, directives []DirectiveApplication, span Span) *ParsedInputValueDefinition {
	return &ParsedInputValueDefinition{Name: name, Description: description, Type: typ, DefaultValue: defaultValue, Directives: directives, span: span}
}

func (v *ParsedInputValueDefinition) Span() Span           { return v.span }
func (v *ParsedInputValueDefinition) InputValueName() string { return v.Name.Value }

func (v *ParsedInputValueDefinition) InputValueDescription() (string, bool) {
	if v.Description == nil {
		return "", false
	}
	return v.Description.Value, true
}

func (v *ParsedInputValueDefinition) InputValueType() TypeRef { return v.Type }

func (v *ParsedInputValueDefinition) InputValueDefault() (Value, bool) {
	if v.DefaultValue == nil {
		return Value{}, false
	}
	return *v.DefaultValue, true
}

func (v *ParsedInputValueDefinition) InputValueDirectives() []DirectiveApplication { return v.Directives }

type ParsedEnumValueDefinition struct {
	Name        Name
	Description *StringValue
	Directives  []DirectiveApplication
	span        Span
}

// NewParsedEnumValueDefinition constructs one Enum type member.
func NewParsedEnumValueDefinition(name Name, description *StringValue, directives []DirectiveApplication, span Span) *ParsedEnumValueDefinition {
	return &ParsedEnumValueDefinition{Name: name, Description: description, Directives: directives, span: span}
}

func (e *ParsedEnumValueDefinition) Span() Span           { return e.span }
func (e *ParsedEnumValueDefinition) EnumValueName() string { return e.Name.Value }

func (e *ParsedEnumValueDefinition) EnumValueDescription() (string, bool) {
	if e.Description == nil {
		return "", false
	}
	return e.Description.Value, true
}

func (e *ParsedEnumValueDefinition) EnumValueDirectives() []DirectiveApplication { return e.Directives }

type ParsedFieldDefinition struct {
	Name        Name
	Description *StringValue
	Arguments   []InputValueDefinition
	Type        TypeRef
	Directives  []DirectiveApplication
	span        Span
}

// NewParsedFieldDefinition constructs one Object/Interface field definition.
func NewParsedFieldDefinition(name Name, description *StringValue, arguments []InputValueDefinition, typ TypeRef, directives []DirectiveApplication, span Span) *ParsedFieldDefinition {
	return &ParsedFieldDefinition{Name: name, Description: description, Arguments: arguments, Type: typ, Directives: directives, span: span}
}

func (f *ParsedFieldDefinition) Span() Span       { return f.span }
func (f *ParsedFieldDefinition) FieldName() string { return f.Name.Value }

func (f *ParsedFieldDefinition) FieldDescription() (string, bool) {
	if f.Description == nil {
		return "", false
	}
	return f.Description.Value, true
}

func (f *ParsedFieldDefinition) FieldArguments() []InputValueDefinition { return f.Arguments }
func (f *ParsedFieldDefinition) FieldType() TypeRef                     { return f.Type }
func (f *ParsedFieldDefinition) FieldDirectives() []DirectiveApplication { return f.Directives }

type ParsedDirectiveDefinition struct {
	Name        Name
	Description *StringValue
	Arguments   []InputValueDefinition
	Repeatable  bool
	Locations   []DirectiveLocation
	span        Span
}

// NewParsedDirectiveDefinition constructs a `directive @name(...) on LOC |
// ...` definition.
func NewParsedDirectiveDefinition(name Name, description *StringValue, arguments []InputValueDefinition, repeatable bool, locations []DirectiveLocation, span Span) *ParsedDirectiveDefinition {
	return &ParsedDirectiveDefinition{Name: name, Description: description, Arguments: arguments, Repeatable: repeatable, Locations: locations, span: span}
}

func (d *ParsedDirectiveDefinition) Span() Span                  { return d.span }
func (d *ParsedDirectiveDefinition) IndexableName() string       { return d.Name.Value }
func (d *ParsedDirectiveDefinition) DirectiveDefinitionName() string { return d.Name.Value }

func (d *ParsedDirectiveDefinition) DirectiveDefinitionDescription() (string, bool) {
	if d.Description == nil {
		return "", false
	}
	return d.Description.Value, true
}

func (d *ParsedDirectiveDefinition) DirectiveDefinitionArguments() []InputValueDefinition {
	return d.Arguments
}
func (d *ParsedDirectiveDefinition) DirectiveDefinitionRepeatable() bool { return d.Repeatable }
func (d *ParsedDirectiveDefinition) DirectiveDefinitionLocations() []DirectiveLocation {
	return d.Locations
}

// ParsedTypeDefinition is the common concrete body shared by every
// TypeDefinition kind; kind-specific fields are attached by embedding this
// in ParsedScalarType, ParsedEnumType, etc.
type ParsedTypeDefinition struct {
	Kind        TypeDefinitionKind
	Name        Name
	Description *StringValue
	Directives  []DirectiveApplication
	span        Span
}

func (t *ParsedTypeDefinition) Span() Span                           { return t.span }
func (t *ParsedTypeDefinition) IndexableName() string                { return t.Name.Value }
func (t *ParsedTypeDefinition) TypeDefinitionKind() TypeDefinitionKind { return t.Kind }
func (t *ParsedTypeDefinition) TypeDefinitionName() string           { return t.Name.Value }

func (t *ParsedTypeDefinition) TypeDefinitionDescription() (string, bool) {
	if t.Description == nil {
		return "", false
	}
	return t.Description.Value, true
}

func (t *ParsedTypeDefinition) TypeDefinitionDirectives() []DirectiveApplication { return t.Directives }

type ParsedScalarType struct {
	ParsedTypeDefinition
}

func newParsedTypeDefinition(kind TypeDefinitionKind, name Name, description *StringValue, directives []DirectiveApplication, span Span) ParsedTypeDefinition {
	return ParsedTypeDefinition{Kind: kind, Name: name, Description: description, Directives: directives, span: span}
}

// NewParsedScalarType constructs a built-in or custom scalar type
// definition.
func NewParsedScalarType(kind TypeDefinitionKind, name Name, description *StringValue, directives []DirectiveApplication, span Span) *ParsedScalarType {
	return &ParsedScalarType{ParsedTypeDefinition: newParsedTypeDefinition(kind, name, description, directives, span)}
}

type ParsedEnumType struct {
	ParsedTypeDefinition
	Values []EnumValueDefinition
}

// NewParsedEnumType constructs an Enum type definition.
func NewParsedEnumType(name Name, description *StringValue, directives []DirectiveApplication, values []EnumValueDefinition, span Span) *ParsedEnumType {
	return &ParsedEnumType{ParsedTypeDefinition: newParsedTypeDefinition(TypeDefinitionKindEnum, name, description, directives, span), Values: values}
}

func (e *ParsedEnumType) EnumValueDefinitions() []EnumValueDefinition { return e.Values }

type ParsedInputObjectType struct {
	ParsedTypeDefinition
	Fields []InputValueDefinition
}

// NewParsedInputObjectType constructs an Input Object type definition.
func NewParsedInputObjectType(name Name, description *StringValue, directives []DirectiveApplication, fields []InputValueDefinition, span Span) *ParsedInputObjectType {
	return &ParsedInputObjectType{ParsedTypeDefinition: newParsedTypeDefinition(TypeDefinitionKindInputObject, name, description, directives, span), Fields: fields}
}

func (i *ParsedInputObjectType) InputFieldDefinitions() []InputValueDefinition { return i.Fields }

type ParsedObjectType struct {
	ParsedTypeDefinition
	Fields     []FieldDefinition
	Interfaces []string
}

// NewParsedObjectType constructs an Object type definition.
func NewParsedObjectType(name Name, description *StringValue, directives []DirectiveApplication, fields []FieldDefinition, interfaces []string, span Span) *ParsedObjectType {
	return &ParsedObjectType{ParsedTypeDefinition: newParsedTypeDefinition(TypeDefinitionKindObject, name, description, directives, span), Fields: fields, Interfaces: interfaces}
}

func (o *ParsedObjectType) FieldsDefinition() []FieldDefinition { return o.Fields }
func (o *ParsedObjectType) ImplementsInterfaces() []string      { return o.Interfaces }

type ParsedInterfaceType struct {
	ParsedTypeDefinition
	Fields     []FieldDefinition
	Interfaces []string
}

// NewParsedInterfaceType constructs an Interface type definition.
func NewParsedInterfaceType(name Name, description *StringValue, directives []DirectiveApplication, fields []FieldDefinition, interfaces []string, span Span) *ParsedInterfaceType {
	return &ParsedInterfaceType{ParsedTypeDefinition: newParsedTypeDefinition(TypeDefinitionKindInterface, name, description, directives, span), Fields: fields, Interfaces: interfaces}
}

func (i *ParsedInterfaceType) FieldsDefinition() []FieldDefinition { return i.Fields }
func (i *ParsedInterfaceType) ImplementsInterfaces() []string      { return i.Interfaces }

type ParsedUnionType struct {
	ParsedTypeDefinition
	Members []string
}

// NewParsedUnionType constructs a Union type definition.
func NewParsedUnionType(name Name, description *StringValue, directives []DirectiveApplication, members []string, span Span) *ParsedUnionType {
	return &ParsedUnionType{ParsedTypeDefinition: newParsedTypeDefinition(TypeDefinitionKindUnion, name, description, directives, span), Members: members}
}

func (u *ParsedUnionType) UnionMemberTypes() []string { return u.Members }

// ParsedDefinitionDocument is the parser's DefinitionDocument implementation:
// an un-indexed, ordered list of type and directive definitions, plus the
// names given to the root operation type slots by any `schema { ... }`
// block (or the implicit Query/Mutation/Subscription convention if absent).
type ParsedDefinitionDocument struct {
	Types                []TypeDefinition
	Directives           []DirectiveDefinition
	QueryName            string
	MutationName         string
	HasMutation          bool
	SubscriptionName     string
	HasSubscription      bool
}

func (d *ParsedDefinitionDocument) TypeDefinitions() []TypeDefinition           { return d.Types }
func (d *ParsedDefinitionDocument) DirectiveDefinitions() []DirectiveDefinition { return d.Directives }

func (d *ParsedDefinitionDocument) RootOperationTypeNames() (query, mutation string, hasMutation bool, subscription string, hasSubscription bool) {
	return d.QueryName, d.MutationName, d.HasMutation, d.SubscriptionName, d.HasSubscription
}
