// Package schemabuilder turns a parsed ast.DefinitionDocument into an
// indexed ast.SchemaDefinition (spec.md §4.3): a single walk builds
// name->TypeDefinition and name->DirectiveDefinition maps, checks every
// cross-reference invariant the document claims to satisfy, and reports
// every violation it finds rather than stopping at the first one. Grounded
// on the teacher's asttransform.MergeDefinitionWithBaseSchema/handleSchema
// idiom: a base set of built-in declarations merged with the user's
// document into one name-indexed table, with duplicate/unknown-reference
// detection folded into the same pass.
package schemabuilder

import (
	"fmt"
	"sort"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// builtinScalarNames lists the five scalars spec.md §3.3 requires to exist
// regardless of whether the source document declares them explicitly.
var builtinScalarNames = []string{"Int", "Float", "String", "Boolean", "ID"}

// schema is the builder's concrete ast.SchemaDefinition: two name-keyed
// maps for O(1) lookup, plus the three root operation type slots. Keys are
// plain strings; the deterministic-iteration helpers sort them with
// sort.Strings when an invariant check needs a stable error order.
type schema struct {
	types      map[string]ast.TypeDefinition
	directives map[string]ast.DirectiveDefinition

	queryName        string
	mutationName     string
	hasMutation      bool
	subscriptionName string
	hasSubscription  bool
}

func (s *schema) QueryTypeName() string { return s.queryName }

func (s *schema) MutationTypeName() (string, bool) {
	return s.mutationName, s.hasMutation
}

func (s *schema) SubscriptionTypeName() (string, bool) {
	return s.subscriptionName, s.hasSubscription
}

func (s *schema) GetTypeDefinition(name string) (ast.TypeDefinition, bool) {
	t, ok := s.types[name]
	return t, ok
}

func (s *schema) GetDirectiveDefinition(name string) (ast.DirectiveDefinition, bool) {
	d, ok := s.directives[name]
	return d, ok
}

func (s *schema) TypeDefinitions() []ast.TypeDefinition {
	names := make([]string, 0, len(s.types))
	for n := range s.types {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]ast.TypeDefinition, 0, len(names))
	for _, n := range names {
		out = append(out, s.types[n])
	}
	return out
}

func (s *schema) DirectiveDefinitions() []ast.DirectiveDefinition {
	names := make([]string, 0, len(s.directives))
	for n := range s.directives {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]ast.DirectiveDefinition, 0, len(names))
	for _, n := range names {
		out = append(out, s.directives[n])
	}
	return out
}

// Build walks doc once, producing an indexed ast.SchemaDefinition and
// reporting every invariant violation spec.md §4.3 names. The returned
// schema is always non-nil; callers must check report.HasErrors() before
// trusting it fully reflects doc.
func Build(doc ast.DefinitionDocument, report *operationreport.Report) ast.SchemaDefinition {
	s := &schema{
		types:      make(map[string]ast.TypeDefinition),
		directives: make(map[string]ast.DirectiveDefinition),
	}

	for _, name := range builtinScalarNames {
		s.types[name] = ast.NewParsedScalarType(ast.TypeDefinitionKindBuiltinScalar, ast.NewName(name, ast.Span{}), nil, nil, ast.Span{})
	}

	for _, t := range doc.TypeDefinitions() {
		name := t.TypeDefinitionName()
		if existing, ok := s.types[name]; ok {
			if isBuiltinScalar(existing) && t.TypeDefinitionKind() == ast.TypeDefinitionKindCustomScalar {
				// An explicit `scalar Int` etc. redeclares a built-in; spec.md
				// treats the built-in as always-present, so silently prefer
				// the document's own declaration (it may carry directives).
				s.types[name] = t
				continue
			}
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Duplicate type definition '%s'", name), t.Span()))
			continue
		}
		s.types[name] = t
	}

	for _, d := range doc.DirectiveDefinitions() {
		name := d.DirectiveDefinitionName()
		if _, ok := s.directives[name]; ok {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Duplicate directive definition '@%s'", name), d.Span()))
			continue
		}
		if _, reserved := builtinDirectiveLocations[name]; reserved {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("'@%s' redefines a built-in directive", name), d.Span()))
			continue
		}
		checkDirectiveDefinition(d, report)
		s.directives[name] = d
	}

	query, mutation, hasMutation, subscription, hasSubscription := doc.RootOperationTypeNames()
	s.queryName, s.mutationName, s.hasMutation = query, mutation, hasMutation
	s.subscriptionName, s.hasSubscription = subscription, hasSubscription

	checkRootOperationTypes(s, report)

	for _, t := range s.types {
		checkTypeDefinition(s, t, report)
	}
	checkNoCyclicNonNullInputReferences(s, report)

	return s
}

func isBuiltinScalar(t ast.TypeDefinition) bool {
	return t.TypeDefinitionKind() == ast.TypeDefinitionKindBuiltinScalar
}

// builtinDirectiveLocations are the names spec.md reserves regardless of
// whether this module implements their runtime semantics; redeclaring one
// in the document is always an error.
var builtinDirectiveLocations = map[string]struct{}{
	"skip":       {},
	"include":    {},
	"deprecated": {},
}

func checkDirectiveDefinition(d ast.DirectiveDefinition, report *operationreport.Report) {
	seen := make(map[string]struct{}, len(d.DirectiveDefinitionArguments()))
	for _, arg := range d.DirectiveDefinitionArguments() {
		if _, dup := seen[arg.InputValueName()]; dup {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Duplicate argument '%s' on directive '@%s'", arg.InputValueName(), d.DirectiveDefinitionName()), arg.Span()))
			continue
		}
		seen[arg.InputValueName()] = struct{}{}
	}
	if len(d.DirectiveDefinitionLocations()) == 0 {
		report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("Directive '@%s' must declare at least one location", d.DirectiveDefinitionName()), d.Span()))
	}
}

func checkRootOperationTypes(s *schema, report *operationreport.Report) {
	checkRootSlot(s, "query", s.queryName, true, report)
	if s.hasMutation {
		checkRootSlot(s, "mutation", s.mutationName, false, report)
	}
	if s.hasSubscription {
		checkRootSlot(s, "subscription", s.subscriptionName, false, report)
	}
}

func checkRootSlot(s *schema, slot, typeName string, required bool, report *operationreport.Report) {
	if typeName == "" {
		if required {
			report.AddExternalError(operationreport.NewExternalError(
				fmt.Sprintf("Schema is missing its %s root operation type", slot), nil))
		}
		return
	}
	t, ok := s.types[typeName]
	if !ok {
		report.AddExternalError(operationreport.NewExternalError(
			fmt.Sprintf("%s root operation type '%s' is not defined", slot, typeName), nil))
		return
	}
	if t.TypeDefinitionKind() != ast.TypeDefinitionKindObject {
		report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("%s root operation type '%s' must be an object type", slot, typeName), t.Span()))
	}
}

func checkTypeDefinition(s *schema, t ast.TypeDefinition, report *operationreport.Report) {
	switch tt := t.(type) {
	case ast.ObjectTypeDefinition:
		checkFieldsDefinitionHolder(s, tt, report)
		checkImplementsInterfaces(s, tt, report)
	case ast.InterfaceTypeDefinition:
		checkFieldsDefinitionHolder(s, tt, report)
		checkImplementsInterfaces(s, tt, report)
	case ast.InputObjectTypeDefinition:
		checkInputFields(s, tt, report)
	case ast.EnumTypeDefinition:
		checkEnumValues(tt, report)
	case ast.UnionTypeDefinition:
		checkUnionMembers(s, tt, report)
	}
}

func checkFieldsDefinitionHolder(s *schema, t ast.FieldsDefinitionHolder, report *operationreport.Report) {
	seen := make(map[string]struct{}, len(t.FieldsDefinition()))
	for _, f := range t.FieldsDefinition() {
		if _, dup := seen[f.FieldName()]; dup {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Duplicate field '%s' on type '%s'", f.FieldName(), t.TypeDefinitionName()), f.Span()))
			continue
		}
		seen[f.FieldName()] = struct{}{}

		retName := f.FieldType().NamedTypeName()
		retType, ok := s.types[retName]
		if !ok {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Field '%s.%s' references unknown type '%s'", t.TypeDefinitionName(), f.FieldName(), retName), f.Span()))
		} else if !retType.TypeDefinitionKind().IsOutput() {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Field '%s.%s' return type '%s' is not an output type", t.TypeDefinitionName(), f.FieldName(), retName), f.Span()))
		}

		argSeen := make(map[string]struct{}, len(f.FieldArguments()))
		for _, arg := range f.FieldArguments() {
			if _, dup := argSeen[arg.InputValueName()]; dup {
				report.AddExternalError(operationreport.AtSpan(
					fmt.Sprintf("Duplicate argument '%s' on field '%s.%s'", arg.InputValueName(), t.TypeDefinitionName(), f.FieldName()), arg.Span()))
				continue
			}
			argSeen[arg.InputValueName()] = struct{}{}
			checkInputValueType(s, t.TypeDefinitionName()+"."+f.FieldName()+"("+arg.InputValueName()+")", arg, report)
		}
	}
}

func checkImplementsInterfaces(s *schema, t ast.TypeDefinition, report *operationreport.Report) {
	var names []string
	switch tt := t.(type) {
	case ast.ObjectTypeDefinition:
		names = tt.ImplementsInterfaces()
	case ast.InterfaceTypeDefinition:
		names = tt.ImplementsInterfaces()
	default:
		return
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Type '%s' implements interface '%s' more than once", t.TypeDefinitionName(), name), t.Span()))
			continue
		}
		seen[name] = struct{}{}
		iface, ok := s.types[name]
		if !ok {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Type '%s' implements unknown interface '%s'", t.TypeDefinitionName(), name), t.Span()))
			continue
		}
		if iface.TypeDefinitionKind() != ast.TypeDefinitionKindInterface {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Type '%s' implements '%s', which is not an interface", t.TypeDefinitionName(), name), t.Span()))
		}
	}
}

func checkInputFields(s *schema, t ast.InputObjectTypeDefinition, report *operationreport.Report) {
	seen := make(map[string]struct{}, len(t.InputFieldDefinitions()))
	for _, f := range t.InputFieldDefinitions() {
		if _, dup := seen[f.InputValueName()]; dup {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Duplicate input field '%s' on type '%s'", f.InputValueName(), t.TypeDefinitionName()), f.Span()))
			continue
		}
		seen[f.InputValueName()] = struct{}{}
		checkInputValueType(s, t.TypeDefinitionName()+"."+f.InputValueName(), f, report)
	}
}

func checkInputValueType(s *schema, label string, v ast.InputValueDefinition, report *operationreport.Report) {
	name := v.InputValueType().NamedTypeName()
	t, ok := s.types[name]
	if !ok {
		report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("'%s' references unknown type '%s'", label, name), v.Span()))
		return
	}
	if !t.TypeDefinitionKind().IsInput() {
		report.AddExternalError(operationreport.AtSpan(
			fmt.Sprintf("'%s' type '%s' is not an input type", label, name), v.Span()))
	}
}

func checkEnumValues(t ast.EnumTypeDefinition, report *operationreport.Report) {
	seen := make(map[string]struct{}, len(t.EnumValueDefinitions()))
	for _, v := range t.EnumValueDefinitions() {
		if _, dup := seen[v.EnumValueName()]; dup {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Duplicate enum value '%s' on '%s'", v.EnumValueName(), t.TypeDefinitionName()), v.Span()))
			continue
		}
		seen[v.EnumValueName()] = struct{}{}
	}
}

func checkUnionMembers(s *schema, t ast.UnionTypeDefinition, report *operationreport.Report) {
	seen := make(map[string]struct{}, len(t.UnionMemberTypes()))
	for _, name := range t.UnionMemberTypes() {
		if _, dup := seen[name]; dup {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Union '%s' lists member '%s' more than once", t.TypeDefinitionName(), name), t.Span()))
			continue
		}
		seen[name] = struct{}{}
		member, ok := s.types[name]
		if !ok {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Union '%s' references unknown type '%s'", t.TypeDefinitionName(), name), t.Span()))
			continue
		}
		if member.TypeDefinitionKind() != ast.TypeDefinitionKindObject {
			report.AddExternalError(operationreport.AtSpan(
				fmt.Sprintf("Union '%s' member '%s' is not an object type", t.TypeDefinitionName(), name), t.Span()))
		}
	}
}

// checkNoCyclicNonNullInputReferences rejects an Input Object that requires
// itself transitively through a chain of non-nullable fields with no
// nullable field anywhere in the cycle to break the recursion — such a type
// can never be instantiated. Nullable fields and list wrappers around a
// non-null element are both safe: a list can be empty, and a nullable field
// can be omitted.
func checkNoCyclicNonNullInputReferences(s *schema, report *operationreport.Report) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(s.types))
	var reported = make(map[string]struct{})

	var visit func(name string, path []string) bool
	visit = func(name string, path []string) bool {
		switch state[name] {
		case done:
			return false
		case visiting:
			return true
		}
		t, ok := s.types[name]
		if !ok {
			return false
		}
		input, ok := t.(ast.InputObjectTypeDefinition)
		if !ok {
			state[name] = done
			return false
		}
		state[name] = visiting
		cyclic := false
		for _, f := range input.InputFieldDefinitions() {
			ft := f.InputValueType()
			if !requiresNonNullNamedType(ft) {
				continue
			}
			next := ft.NamedTypeName()
			if visit(next, append(path, name)) {
				cyclic = true
				if _, already := reported[name]; !already {
					reported[name] = struct{}{}
					report.AddExternalError(operationreport.AtSpan(
						fmt.Sprintf("Input object '%s' has a cyclic chain of required fields with no nullable escape", name), t.Span()))
				}
			}
		}
		state[name] = done
		return cyclic
	}

	names := make([]string, 0, len(s.types))
	for n := range s.types {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		visit(n, nil)
	}
}

// requiresNonNullNamedType reports whether a value of type ft must always
// carry a concrete value of its ultimate named type: true only for a bare
// non-null named type. A non-null list is satisfiable with an empty list
// regardless of its element's nullability, so it never forces the cycle.
func requiresNonNullNamedType(ft ast.TypeRef) bool {
	return ft.Kind() == ast.TypeRefKindNamed && ft.Required()
}
