package operationanalysis

import (
	"bytes"
	"unicode/utf8"

	"github.com/buger/jsonparser"

	"github.com/graphql-tools/qlcore/pkg/ast"
)

// InputSize computes the bytes-equivalent weight of every argument value
// reachable from an operation, for quota enforcement ahead of execution
// (spec.md §4.5): strings count codepoints, lists sum their elements,
// objects sum each field's name length plus its value's weight, and scalars
// otherwise cost 1 — unless ScalarWeights overrides a named input type's
// per-value weight (spec.md §6: "InputSize: per-type weights (default 1)").
//
// When a field's argument is a Variable and the VariableValues source also
// implements RawJSONVariableValues, InputSize weighs the variable's raw JSON
// bytes directly via buger/jsonparser instead of first resolving it to an
// ast.Value tree — the zero-allocation fast path spec.md's analyzer
// framework calls for. That fast path has no schema-type context to apply
// ScalarWeights against, so it's only taken when no override is configured;
// a caller that sets ScalarWeights trades the fast path for an accurate,
// type-aware weight.
type InputSize struct {
	// ScalarWeights overrides the default weight of 1 for a scalar-kind leaf
	// value, keyed by its declared input type name (e.g. "Int", "ID", or a
	// custom scalar). Types absent from the map keep the default.
	ScalarWeights map[string]int
}

func NewInputSize(scalarWeights map[string]int) *InputSize {
	return &InputSize{ScalarWeights: scalarWeights}
}

func (a *InputSize) Run(ctx *AnalyzerContext) (int, error) {
	total := 0
	var runErr error
	ctx.walk(func(fv fieldVisit) bool {
		for _, arg := range fv.Field.FieldArgumentApplications() {
			typeName := ""
			if fv.HasFieldDef {
				if iv, ok := inputValueDefinition(fv.FieldDef, arg.ArgumentName()); ok {
					typeName = iv.InputValueType().NamedTypeName()
				}
			}
			w, err := a.argumentWeight(ctx, arg.ArgumentValue(), typeName)
			if err != nil {
				runErr = err
				return false
			}
			total += w
		}
		return runErr == nil
	})
	if runErr != nil {
		return 0, runErr
	}
	return total, nil
}

func inputValueDefinition(fieldDef ast.FieldDefinition, name string) (ast.InputValueDefinition, bool) {
	for _, iv := range fieldDef.FieldArguments() {
		if iv.InputValueName() == name {
			return iv, true
		}
	}
	return nil, false
}

func (a *InputSize) argumentWeight(ctx *AnalyzerContext, v ast.Value, typeName string) (int, error) {
	if v.IsVariable() && len(a.ScalarWeights) == 0 {
		if raw, ok := rawJSON(ctx.Variables, v.VariableName()); ok {
			if w, err := jsonWeight(raw); err == nil {
				return w, nil
			}
		}
	}
	resolved, err := ctx.Resolve(v)
	if err != nil {
		return 0, err
	}
	return a.valueWeight(ctx, resolved, typeName), nil
}

func rawJSON(vars VariableValues, name string) ([]byte, bool) {
	raw, ok := vars.(RawJSONVariableValues)
	if !ok {
		return nil, false
	}
	return raw.RawJSON(name)
}

// valueWeight weighs v, resolving nested input-object field types off the
// schema so a ScalarWeights override applies at any depth, not just the
// argument's own top-level type.
func (a *InputSize) valueWeight(ctx *AnalyzerContext, v ast.Value, typeName string) int {
	switch v.Kind() {
	case ast.ValueKindNull:
		return 0
	case ast.ValueKindString:
		if w, ok := a.ScalarWeights[typeName]; ok {
			return w
		}
		return utf8.RuneCountInString(v.Str())
	case ast.ValueKindEnum:
		if w, ok := a.ScalarWeights[typeName]; ok {
			return w
		}
		return utf8.RuneCountInString(v.EnumName())
	case ast.ValueKindList:
		total := 0
		for _, item := range v.List() {
			total += a.valueWeight(ctx, item, typeName)
		}
		return total
	case ast.ValueKindObject:
		total := 0
		for _, f := range v.Object() {
			total += utf8.RuneCountInString(f.Name) + a.valueWeight(ctx, f.Value, inputObjectFieldType(ctx, typeName, f.Name))
		}
		return total
	default: // Boolean, Integer, Float
		if w, ok := a.ScalarWeights[typeName]; ok {
			return w
		}
		return 1
	}
}

// inputObjectFieldType resolves field's declared type name within the
// named input object type, falling back to "" (no override applies) when
// the schema doesn't back this lookup or the type isn't an input object.
func inputObjectFieldType(ctx *AnalyzerContext, typeName, field string) string {
	if ctx.Schema == nil || typeName == "" {
		return ""
	}
	t, ok := ctx.Schema.GetTypeDefinition(typeName)
	if !ok {
		return ""
	}
	io, ok := t.(ast.InputObjectTypeDefinition)
	if !ok {
		return ""
	}
	for _, iv := range io.InputFieldDefinitions() {
		if iv.InputValueName() == field {
			return iv.InputValueType().NamedTypeName()
		}
	}
	return ""
}

// jsonWeight sums the byte-equivalent weight of a raw JSON value without
// decoding it into an ast.Value.
func jsonWeight(data []byte) (int, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0, nil
	}
	switch data[0] {
	case '"':
		// data is the raw source text, quotes included (e.g. gjson.Result.Raw);
		// ParseString expects the string's content with the quotes stripped.
		s, err := jsonparser.ParseString(data[1 : len(data)-1])
		if err != nil {
			return 0, err
		}
		return utf8.RuneCountInString(s), nil
	case '[':
		total := 0
		var iterErr error
		_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
			if err != nil || iterErr != nil {
				iterErr = err
				return
			}
			w, werr := jsonWeightTyped(value, dataType)
			if werr != nil {
				iterErr = werr
				return
			}
			total += w
		})
		if err != nil {
			return 0, err
		}
		return total, iterErr
	case '{':
		total := 0
		err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, offset int) error {
			w, err := jsonWeightTyped(value, dataType)
			if err != nil {
				return err
			}
			total += utf8.RuneCount(key) + w
			return nil
		})
		return total, err
	case 'n': // null
		return 0, nil
	default: // true, false, or a number
		return 1, nil
	}
}

func jsonWeightTyped(value []byte, dataType jsonparser.ValueType) (int, error) {
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return 0, err
		}
		return utf8.RuneCountInString(s), nil
	case jsonparser.Null:
		return 0, nil
	case jsonparser.Array, jsonparser.Object:
		return jsonWeight(value)
	default: // Number, Boolean
		return 1, nil
	}
}
