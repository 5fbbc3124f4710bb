// Package operationanalysis is the single-operation analyzer framework of
// spec.md §4.5: each analyzer traverses one operation (and the fragments it
// transitively spreads) with variable references resolved eagerly against a
// caller-supplied VariableValues source, and finalizes to its own output
// type. Grounded on original_source/bluejay-validator's
// executable/operation/{analyzer,analyzers}.rs shape, carried into this
// module's already-established self-driven-descent idiom (see
// pkg/astvalidation/rules' field-selections-merge and
// possible-fragment-spreads) rather than astvisitor.Walker's per-node hooks,
// since every built-in analyzer here needs to flatten across fragment-spread
// boundaries while keeping track of enclosing type and nesting depth — the
// same reason those two validator rules drive their own recursion.
package operationanalysis

import (
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/graphql-tools/qlcore/pkg/ast"
)

// VariableValues resolves a declared variable's runtime value by name.
// Get reports ok=false for a variable with no supplied value (the caller
// then falls back to the variable's declared default, or treats it as an
// error, per spec.md §4.5's "eager resolution, or an error for missing
// values").
type VariableValues interface {
	Get(name string) (ast.Value, bool)
}

// StaticVariableValues is a VariableValues source backed by an in-memory
// map, useful for tests and for callers who already hold resolved values.
type StaticVariableValues map[string]ast.Value

func (m StaticVariableValues) Get(name string) (ast.Value, bool) {
	v, ok := m[name]
	return v, ok
}

// RawJSONVariableValues is implemented by a VariableValues source that can
// also hand back a variable's original JSON encoding. InputSize uses this to
// sum a variable's byte-equivalent weight directly off the wire via
// buger/jsonparser, without first resolving the whole value into an
// ast.Value tree.
type RawJSONVariableValues interface {
	VariableValues
	RawJSON(name string) ([]byte, bool)
}

// JSONVariableValues is a VariableValues source backed by a raw JSON object,
// the shape variables arrive in over HTTP. tidwall/gjson powers by-name
// lookup and ast.Value conversion.
type JSONVariableValues struct {
	raw []byte
}

// NewJSONVariableValues wraps a `{"varName": value, ...}` JSON document.
func NewJSONVariableValues(raw []byte) *JSONVariableValues {
	return &JSONVariableValues{raw: raw}
}

// GraphQL variable names are plain identifiers ([_A-Za-z][_0-9A-Za-z]*), so
// they never collide with gjson's path metacharacters and need no escaping.

func (v *JSONVariableValues) Get(name string) (ast.Value, bool) {
	result := gjson.GetBytes(v.raw, name)
	if !result.Exists() {
		return ast.Value{}, false
	}
	return gjsonToValue(result), true
}

// RawJSON returns the variable's raw, still-encoded JSON bytes, satisfying
// RawJSONVariableValues.
func (v *JSONVariableValues) RawJSON(name string) ([]byte, bool) {
	result := gjson.GetBytes(v.raw, name)
	if !result.Exists() {
		return nil, false
	}
	return []byte(result.Raw), true
}

func gjsonToValue(r gjson.Result) ast.Value {
	switch r.Type {
	case gjson.Null:
		return ast.NullValue(ast.Span{})
	case gjson.True:
		return ast.BooleanVal(true, ast.Span{})
	case gjson.False:
		return ast.BooleanVal(false, ast.Span{})
	case gjson.Number:
		if !strings.ContainsAny(r.Raw, ".eE") && r.Num == math.Trunc(r.Num) {
			return ast.IntegerVal(int32(r.Num), ast.Span{})
		}
		return ast.FloatVal(r.Num, ast.Span{})
	case gjson.String:
		return ast.StringVal(r.String(), ast.Span{})
	case gjson.JSON:
		if r.IsArray() {
			items := r.Array()
			out := make([]ast.Value, len(items))
			for i, item := range items {
				out[i] = gjsonToValue(item)
			}
			return ast.ListVal(out, ast.Span{})
		}
		var fields []ast.ObjectField
		r.ForEach(func(key, value gjson.Result) bool {
			fields = append(fields, ast.ObjectField{Name: key.String(), Value: gjsonToValue(value)})
			return true
		})
		return ast.ObjectVal(fields, ast.Span{})
	default:
		return ast.NullValue(ast.Span{})
	}
}
