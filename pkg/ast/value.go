package ast

import "fmt"

// ValueKind discriminates the Value sum type (spec.md §3.2).
type ValueKind int

const (
	ValueKindNull ValueKind = iota
	ValueKindBoolean
	ValueKindInteger
	ValueKindFloat
	ValueKindString
	ValueKindEnum
	ValueKindList
	ValueKindObject
	ValueKindVariable
)

func (k ValueKind) String() string {
	switch k {
	case ValueKindNull:
		return "Null"
	case ValueKindBoolean:
		return "Boolean"
	case ValueKindInteger:
		return "Integer"
	case ValueKindFloat:
		return "Float"
	case ValueKindString:
		return "String"
	case ValueKindEnum:
		return "Enum"
	case ValueKindList:
		return "List"
	case ValueKindObject:
		return "Object"
	case ValueKindVariable:
		return "Variable"
	default:
		return "Unknown"
	}
}

// ObjectField is one entry of an Object value; Objects are ordered, per
// spec.md §3.2 ("Containers expose ordered iteration").
type ObjectField struct {
	Name  string
	Value Value
}

// Value is the value domain of spec.md §3.2:
//
//	Null | Boolean | Integer(i32) | Float(f64) | String | Enum(name) |
//	List([Value]) | Object({name -> Value}) | Variable(name)
//
// The domain is conceptually parameterized by a boolean CONST (whether
// Variable is inhabited). Go has no clean way to express that as a static
// type parameter over a sum type without heavy boilerplate, so — per the
// dynamic-enforcement fallback spec.md §9 explicitly sanctions — this repo
// uses one Value type everywhere and rejects a Variable appearing in a const
// position at the call site (AssertConst), not at the type system level.
type Value struct {
	kind     ValueKind
	span     Span
	boolean  bool
	integer  int32
	float    float64
	str      string
	enumName string
	varName  string
	list     []Value
	object   []ObjectField
}

func NullValue(span Span) Value { return Value{kind: ValueKindNull, span: span} }

func BooleanVal(b bool, span Span) Value {
	return Value{kind: ValueKindBoolean, boolean: b, span: span}
}

func IntegerVal(i int32, span Span) Value {
	return Value{kind: ValueKindInteger, integer: i, span: span}
}

func FloatVal(f float64, span Span) Value {
	return Value{kind: ValueKindFloat, float: f, span: span}
}

func StringVal(s string, span Span) Value {
	return Value{kind: ValueKindString, str: s, span: span}
}

func EnumVal(name string, span Span) Value {
	return Value{kind: ValueKindEnum, enumName: name, span: span}
}

func ListVal(items []Value, span Span) Value {
	return Value{kind: ValueKindList, list: items, span: span}
}

func ObjectVal(fields []ObjectField, span Span) Value {
	return Value{kind: ValueKindObject, object: fields, span: span}
}

func VariableVal(name string, span Span) Value {
	return Value{kind: ValueKindVariable, varName: name, span: span}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) Span() Span      { return v.span }

func (v Value) IsNull() bool     { return v.kind == ValueKindNull }
func (v Value) IsVariable() bool { return v.kind == ValueKindVariable }

// Boolean returns the payload of a Boolean value; callers must check Kind first.
func (v Value) Boolean() bool { return v.boolean }

// Integer returns the payload of an Integer value.
func (v Value) Integer() int32 { return v.integer }

// Float returns the payload of a Float value.
func (v Value) Float() float64 { return v.float }

// Str returns the payload of a String value.
func (v Value) Str() string { return v.str }

// EnumName returns the payload of an Enum value.
func (v Value) EnumName() string { return v.enumName }

// VariableName returns the payload of a Variable value.
func (v Value) VariableName() string { return v.varName }

// List returns a borrowed, ordered view over a List value's items.
func (v Value) List() []Value { return v.list }

// Object returns a borrowed, ordered view over an Object value's fields.
func (v Value) Object() []ObjectField { return v.object }

// ObjectFieldByName looks up a field of an Object value by name, returning
// ok=false if absent (distinct from present-and-null).
func (v Value) ObjectFieldByName(name string) (Value, bool) {
	for _, f := range v.object {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// ErrVariableInConstContext is returned by AssertConst when a Variable value
// appears where spec.md's CONST=true domain statically forbids it (schema
// literals, default values).
type ErrVariableInConstContext struct {
	Name string
	Span Span
}

func (e *ErrVariableInConstContext) Error() string {
	return fmt.Sprintf("variable $%s is not allowed in a const context", e.Name)
}

// AssertConst walks v and returns an error if any Variable appears anywhere
// within it (including nested inside Lists/Objects). This is the dynamic
// enforcement of spec.md §3.2's CONST=true parameterization.
func AssertConst(v Value) error {
	switch v.kind {
	case ValueKindVariable:
		return &ErrVariableInConstContext{Name: v.varName, Span: v.span}
	case ValueKindList:
		for _, item := range v.list {
			if err := AssertConst(item); err != nil {
				return err
			}
		}
	case ValueKindObject:
		for _, f := range v.object {
			if err := AssertConst(f.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Equal reports semantic equality of two values, per spec.md §4.4.1: order of
// Object fields is insignificant, but List order is significant. Equal does
// NOT treat absent-vs-null specially; that rule is argument-set-level (see
// pkg/astvalidation/rules' selection-merge rule) and applied by the caller.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case ValueKindNull:
		return true
	case ValueKindBoolean:
		return a.boolean == b.boolean
	case ValueKindInteger:
		return a.integer == b.integer
	case ValueKindFloat:
		return a.float == b.float
	case ValueKindString:
		return a.str == b.str
	case ValueKindEnum:
		return a.enumName == b.enumName
	case ValueKindVariable:
		return a.varName == b.varName
	case ValueKindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case ValueKindObject:
		if len(a.object) != len(b.object) {
			return false
		}
		bFields := make(map[string]Value, len(b.object))
		for _, f := range b.object {
			bFields[f.Name] = f.Value
		}
		for _, f := range a.object {
			bv, ok := bFields[f.Name]
			if !ok || !Equal(f.Value, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
