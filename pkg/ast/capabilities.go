package ast

// This file is the capability layer spec.md §3/§9 calls for: trait-like
// contracts over every schema and executable AST node, so that parsed,
// merged, and visibility-filtered backends can share one validator, one
// analyzer, and one printer. A concrete, parser-produced implementation of
// every interface here lives alongside it in schema_concrete.go and
// executable_concrete.go; pkg/operationmerge provides a second
// implementation of the executable interfaces (see its doc comment).

// OperationType is query/mutation/subscription.
type OperationType int

const (
	OperationTypeQuery OperationType = iota
	OperationTypeMutation
	OperationTypeSubscription
)

func (t OperationType) String() string {
	switch t {
	case OperationTypeQuery:
		return "query"
	case OperationTypeMutation:
		return "mutation"
	case OperationTypeSubscription:
		return "subscription"
	default:
		return "unknown"
	}
}

// DirectiveLocation is one member of the closed set in spec.md §3.3.
type DirectiveLocation int

const (
	DirectiveLocationQuery DirectiveLocation = iota
	DirectiveLocationMutation
	DirectiveLocationSubscription
	DirectiveLocationField
	DirectiveLocationFragmentDefinition
	DirectiveLocationFragmentSpread
	DirectiveLocationInlineFragment
	DirectiveLocationVariableDefinition
	DirectiveLocationSchema
	DirectiveLocationScalar
	DirectiveLocationObject
	DirectiveLocationFieldDefinition
	DirectiveLocationArgumentDefinition
	DirectiveLocationInterface
	DirectiveLocationUnion
	DirectiveLocationEnum
	DirectiveLocationEnumValue
	DirectiveLocationInputObject
	DirectiveLocationInputFieldDefinition
)

var directiveLocationNames = map[DirectiveLocation]string{
	DirectiveLocationQuery:                "QUERY",
	DirectiveLocationMutation:             "MUTATION",
	DirectiveLocationSubscription:         "SUBSCRIPTION",
	DirectiveLocationField:                "FIELD",
	DirectiveLocationFragmentDefinition:   "FRAGMENT_DEFINITION",
	DirectiveLocationFragmentSpread:       "FRAGMENT_SPREAD",
	DirectiveLocationInlineFragment:       "INLINE_FRAGMENT",
	DirectiveLocationVariableDefinition:   "VARIABLE_DEFINITION",
	DirectiveLocationSchema:               "SCHEMA",
	DirectiveLocationScalar:               "SCALAR",
	DirectiveLocationObject:               "OBJECT",
	DirectiveLocationFieldDefinition:      "FIELD_DEFINITION",
	DirectiveLocationArgumentDefinition:   "ARGUMENT_DEFINITION",
	DirectiveLocationInterface:            "INTERFACE",
	DirectiveLocationUnion:                "UNION",
	DirectiveLocationEnum:                 "ENUM",
	DirectiveLocationEnumValue:            "ENUM_VALUE",
	DirectiveLocationInputObject:          "INPUT_OBJECT",
	DirectiveLocationInputFieldDefinition: "INPUT_FIELD_DEFINITION",
}

func (l DirectiveLocation) String() string { return directiveLocationNames[l] }

// TypeDefinitionKind discriminates the schema TypeDefinition sum type.
type TypeDefinitionKind int

const (
	TypeDefinitionKindBuiltinScalar TypeDefinitionKind = iota
	TypeDefinitionKindCustomScalar
	TypeDefinitionKindEnum
	TypeDefinitionKindInputObject
	TypeDefinitionKindObject
	TypeDefinitionKindInterface
	TypeDefinitionKindUnion
)

func (k TypeDefinitionKind) IsComposite() bool {
	switch k {
	case TypeDefinitionKindObject, TypeDefinitionKindInterface, TypeDefinitionKindUnion:
		return true
	default:
		return false
	}
}

func (k TypeDefinitionKind) IsInput() bool {
	switch k {
	case TypeDefinitionKindBuiltinScalar, TypeDefinitionKindCustomScalar, TypeDefinitionKindEnum, TypeDefinitionKindInputObject:
		return true
	default:
		return false
	}
}

func (k TypeDefinitionKind) IsOutput() bool {
	switch k {
	case TypeDefinitionKindBuiltinScalar, TypeDefinitionKindCustomScalar, TypeDefinitionKindEnum,
		TypeDefinitionKindObject, TypeDefinitionKindInterface, TypeDefinitionKindUnion:
		return true
	default:
		return false
	}
}

// DirectiveApplication is a single `@name(arg: value, ...)` application, used
// on both schema-side and executable-side nodes.
type DirectiveApplication interface {
	HasSpan
	DirectiveName() string
	DirectiveArguments() []ArgumentApplication
}

// ArgumentApplication is a single `name: value` pair inside an argument list
// or a directive application.
type ArgumentApplication interface {
	HasSpan
	ArgumentName() string
	ArgumentValue() Value
}

// InputValueDefinition describes one argument or input-object field: its
// type and optional default value (spec.md §3.3).
type InputValueDefinition interface {
	HasSpan
	InputValueName() string
	InputValueDescription() (string, bool)
	InputValueType() TypeRef
	InputValueDefault() (Value, bool)
	InputValueDirectives() []DirectiveApplication
}

// EnumValueDefinition describes one member of an Enum type.
type EnumValueDefinition interface {
	HasSpan
	EnumValueName() string
	EnumValueDescription() (string, bool)
	EnumValueDirectives() []DirectiveApplication
}

// FieldDefinition describes one field of an Object or Interface type.
type FieldDefinition interface {
	HasSpan
	FieldName() string
	FieldDescription() (string, bool)
	FieldArguments() []InputValueDefinition
	FieldType() TypeRef
	FieldDirectives() []DirectiveApplication
}

// DirectiveDefinition describes a `directive @name(...) on LOCATION | ...`.
type DirectiveDefinition interface {
	HasSpan
	Indexable
	DirectiveDefinitionName() string
	DirectiveDefinitionDescription() (string, bool)
	DirectiveDefinitionArguments() []InputValueDefinition
	DirectiveDefinitionRepeatable() bool
	DirectiveDefinitionLocations() []DirectiveLocation
}

// TypeDefinition is the schema TypeDefinition sum type of spec.md §3.3. Every
// variant embeds the common accessors; kind-specific data is reached through
// the As* type-switch helpers below.
type TypeDefinition interface {
	HasSpan
	Indexable
	TypeDefinitionKind() TypeDefinitionKind
	TypeDefinitionName() string
	TypeDefinitionDescription() (string, bool)
	TypeDefinitionDirectives() []DirectiveApplication
}

// ScalarTypeDefinition is a built-in or custom scalar.
type ScalarTypeDefinition interface {
	TypeDefinition
}

// EnumTypeDefinition exposes its ordered enum value definitions.
type EnumTypeDefinition interface {
	TypeDefinition
	EnumValueDefinitions() []EnumValueDefinition
}

// InputObjectTypeDefinition exposes its ordered input-field definitions.
type InputObjectTypeDefinition interface {
	TypeDefinition
	InputFieldDefinitions() []InputValueDefinition
}

// FieldsDefinitionHolder is shared by Object and Interface types.
type FieldsDefinitionHolder interface {
	TypeDefinition
	FieldsDefinition() []FieldDefinition
}

// ObjectTypeDefinition exposes its fields and the interfaces it implements.
type ObjectTypeDefinition interface {
	FieldsDefinitionHolder
	ImplementsInterfaces() []string
}

// InterfaceTypeDefinition exposes its fields and the interfaces it itself
// implements (interfaces may implement other interfaces).
type InterfaceTypeDefinition interface {
	FieldsDefinitionHolder
	ImplementsInterfaces() []string
}

// UnionTypeDefinition exposes its ordered member object-type names.
type UnionTypeDefinition interface {
	TypeDefinition
	UnionMemberTypes() []string
}

// RootOperationTypes names the query/mutation/subscription root object
// types, by name, so schema-side cycles stay name-keyed per spec.md §9.
type RootOperationTypes interface {
	QueryTypeName() string
	MutationTypeName() (string, bool)
	SubscriptionTypeName() (string, bool)
}

// SchemaDefinition is a fully indexed definition document: O(1) lookup of
// any type or directive by name, plus the three root operation type slots
// (spec.md §4.3).
type SchemaDefinition interface {
	RootOperationTypes
	GetTypeDefinition(name string) (TypeDefinition, bool)
	GetDirectiveDefinition(name string) (DirectiveDefinition, bool)
	TypeDefinitions() []TypeDefinition
	DirectiveDefinitions() []DirectiveDefinition
}

// ExecutableDefinition is the sum OperationDefinition | FragmentDefinition
// (spec.md §3.4).
type ExecutableDefinition interface {
	HasSpan
	isExecutableDefinition()
}

// VariableDefinition is `$name: Type = defaultValue @directives`.
type VariableDefinition interface {
	HasSpan
	VariableName() string
	VariableType() TypeRef
	VariableDefault() (Value, bool)
	VariableDirectives() []DirectiveApplication
}

// OperationDefinition is an executable operation, explicit or implicit
// (spec.md §3.4).
type OperationDefinition interface {
	ExecutableDefinition
	OperationType() OperationType
	OperationName() (string, bool)
	OperationVariableDefinitions() []VariableDefinition
	OperationDirectives() []DirectiveApplication
	OperationSelectionSet() SelectionSet
}

// FragmentDefinition is a named fragment; its identity (Indexable) is its
// name.
type FragmentDefinition interface {
	ExecutableDefinition
	Indexable
	FragmentName() string
	FragmentTypeCondition() string
	FragmentDirectives() []DirectiveApplication
	FragmentSelectionSet() SelectionSet
}

// Selection is the sum Field | InlineFragment | FragmentSpread.
type Selection interface {
	HasSpan
	isSelection()
}

// Field is a selected field, possibly aliased and possibly with a
// sub-selection.
type Field interface {
	Selection
	FieldAlias() (string, bool)
	FieldSelectionName() string
	FieldResponseName() string
	FieldArgumentApplications() []ArgumentApplication
	FieldSelectionDirectives() []DirectiveApplication
	FieldSubSelectionSet() (SelectionSet, bool)
}

// InlineFragment is `... on Type? @directives { ... }`.
type InlineFragment interface {
	Selection
	InlineFragmentTypeCondition() (string, bool)
	InlineFragmentDirectives() []DirectiveApplication
	InlineFragmentSelectionSet() SelectionSet
}

// FragmentSpread is `...Name @directives`.
type FragmentSpread interface {
	Selection
	FragmentSpreadName() string
	FragmentSpreadDirectives() []DirectiveApplication
}

// SelectionSet is an ordered `{ ... }` block.
type SelectionSet interface {
	HasSpan
	Selections() []Selection
}

// ExecutableDocument is a parsed (or merged) sequence of operation and
// fragment definitions (spec.md §3.4).
type ExecutableDocument interface {
	Definitions() []ExecutableDefinition
	OperationDefinitions() []OperationDefinition
	FragmentDefinitions() []FragmentDefinition
	GetFragmentDefinition(name string) (FragmentDefinition, bool)
}

// DefinitionDocument is a parsed schema-definition document, prior to
// building (indexing) it into a SchemaDefinition (spec.md §4.3).
type DefinitionDocument interface {
	TypeDefinitions() []TypeDefinition
	DirectiveDefinitions() []DirectiveDefinition
	RootOperationTypeNames() (query string, mutation string, hasMutation bool, subscription string, hasSubscription bool)
}
