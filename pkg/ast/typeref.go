package ast

import "strings"

// TypeRefKind discriminates TypeRef.
type TypeRefKind int

const (
	TypeRefKindNamed TypeRefKind = iota
	TypeRefKindList
)

// TypeRef is a schema type reference: recursively either a NamedType(name,
// required?) or a ListType(inner, required?), per spec.md §3.3. Required
// means non-nullable.
type TypeRef struct {
	kind     TypeRefKind
	name     string // valid when kind == TypeRefKindNamed
	inner    *TypeRef
	required bool
	span     Span
}

func NewNamedTypeRef(name string, required bool, span Span) TypeRef {
	return TypeRef{kind: TypeRefKindNamed, name: name, required: required, span: span}
}

func NewListTypeRef(inner TypeRef, required bool, span Span) TypeRef {
	return TypeRef{kind: TypeRefKindList, inner: &inner, required: required, span: span}
}

func (t TypeRef) Kind() TypeRefKind { return t.kind }
func (t TypeRef) Required() bool    { return t.required }
func (t TypeRef) Span() Span        { return t.span }

// Name returns the named type's identifier; only valid when Kind() ==
// TypeRefKindNamed.
func (t TypeRef) Name() string { return t.name }

// OfType returns the inner type reference of a list type; only valid when
// Kind() == TypeRefKindList.
func (t TypeRef) OfType() TypeRef { return *t.inner }

// NamedTypeName unwraps List wrappers to find the innermost named type name,
// used wherever a rule needs "what type does this ultimately reference"
// regardless of list/required nesting.
func (t TypeRef) NamedTypeName() string {
	for t.kind == TypeRefKindList {
		t = *t.inner
	}
	return t.name
}

// String renders a TypeRef in GraphQL SDL type-reference syntax, e.g.
// `[String!]!`.
func (t TypeRef) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t TypeRef) write(b *strings.Builder) {
	switch t.kind {
	case TypeRefKindNamed:
		b.WriteString(t.name)
	case TypeRefKindList:
		b.WriteByte('[')
		t.inner.write(b)
		b.WriteByte(']')
	}
	if t.required {
		b.WriteByte('!')
	}
}

// Equal reports whether two type references denote the same type, including
// nullability at every level (per spec.md's "all-variable-usages-allowed"
// rule, which must distinguish `Int` from `Int!`).
func (t TypeRef) Equal(o TypeRef) bool {
	if t.kind != o.kind || t.required != o.required {
		return false
	}
	switch t.kind {
	case TypeRefKindNamed:
		return t.name == o.name
	case TypeRefKindList:
		return t.inner.Equal(*o.inner)
	default:
		return false
	}
}
