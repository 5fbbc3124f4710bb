package operationanalysis

import (
	"fmt"

	"github.com/graphql-tools/qlcore/pkg/ast"
)

// ScalarCoercionHook lets a caller teach VariableValuesAreValid how to
// coerce a custom scalar's value; it should return an error if v is not a
// valid representation of typeName.
type ScalarCoercionHook func(typeName string, v ast.Value) error

// VariableValueError reports one variable whose supplied value doesn't
// coerce to its declared type.
type VariableValueError struct {
	VariableName string
	Message      string
}

// VariableValuesAreValid checks every declared variable's resolved value
// against its declared type, applying standard input coercion (enum
// membership, input-object field completeness, list wrapping) and
// delegating custom-scalar coercion to an optional hook (spec.md §4.5).
type VariableValuesAreValid struct {
	coerce ScalarCoercionHook
}

func NewVariableValuesAreValid(coerce ScalarCoercionHook) *VariableValuesAreValid {
	return &VariableValuesAreValid{coerce: coerce}
}

func (a *VariableValuesAreValid) Run(ctx *AnalyzerContext) []VariableValueError {
	var errs []VariableValueError
	for _, vd := range ctx.Operation.OperationVariableDefinitions() {
		v, ok := ctx.Variables.Get(vd.VariableName())
		if !ok {
			if _, hasDefault := vd.VariableDefault(); hasDefault || !vd.VariableType().Required() {
				continue
			}
			errs = append(errs, VariableValueError{VariableName: vd.VariableName(), Message: "missing value for required variable"})
			continue
		}
		if err := a.checkValue(ctx, vd.VariableName(), v, vd.VariableType()); err != nil {
			errs = append(errs, VariableValueError{VariableName: vd.VariableName(), Message: err.Error()})
		}
	}
	return errs
}

func (a *VariableValuesAreValid) checkValue(ctx *AnalyzerContext, name string, v ast.Value, typ ast.TypeRef) error {
	if v.IsNull() {
		if typ.Required() {
			return fmt.Errorf("value for '$%s' must not be null", name)
		}
		return nil
	}
	if typ.Kind() == ast.TypeRefKindList {
		if v.Kind() != ast.ValueKindList {
			return a.checkValue(ctx, name, v, typ.OfType())
		}
		for _, item := range v.List() {
			if err := a.checkValue(ctx, name, item, typ.OfType()); err != nil {
				return err
			}
		}
		return nil
	}

	typeName := typ.NamedTypeName()
	if ctx.Schema == nil {
		return nil
	}
	def, ok := ctx.Schema.GetTypeDefinition(typeName)
	if !ok {
		return nil
	}
	switch def.TypeDefinitionKind() {
	case ast.TypeDefinitionKindEnum:
		valueName := v.EnumName()
		if v.Kind() == ast.ValueKindString {
			valueName = v.Str()
		} else if v.Kind() != ast.ValueKindEnum {
			return fmt.Errorf("value for '$%s' must be an enum value of '%s'", name, typeName)
		}
		enumType := def.(ast.EnumTypeDefinition)
		for _, ev := range enumType.EnumValueDefinitions() {
			if ev.EnumValueName() == valueName {
				return nil
			}
		}
		return fmt.Errorf("value for '$%s' names '%s', which is not a member of enum '%s'", name, valueName, typeName)
	case ast.TypeDefinitionKindInputObject:
		if v.Kind() != ast.ValueKindObject {
			return fmt.Errorf("value for '$%s' must be an input object of type '%s'", name, typeName)
		}
		inputType := def.(ast.InputObjectTypeDefinition)
		fieldDefs := make(map[string]ast.InputValueDefinition, len(inputType.InputFieldDefinitions()))
		for _, f := range inputType.InputFieldDefinitions() {
			fieldDefs[f.InputValueName()] = f
		}
		present := make(map[string]struct{}, len(v.Object()))
		for _, of := range v.Object() {
			present[of.Name] = struct{}{}
			fd, ok := fieldDefs[of.Name]
			if !ok {
				return fmt.Errorf("'%s' is not a field of input type '%s'", of.Name, typeName)
			}
			if err := a.checkValue(ctx, name, of.Value, fd.InputValueType()); err != nil {
				return err
			}
		}
		for _, f := range inputType.InputFieldDefinitions() {
			_, hasDefault := f.InputValueDefault()
			if !f.InputValueType().Required() || hasDefault {
				continue
			}
			if _, ok := present[f.InputValueName()]; !ok {
				return fmt.Errorf("required field '%s' not present on input object '%s'", f.InputValueName(), typeName)
			}
		}
		return nil
	case ast.TypeDefinitionKindBuiltinScalar:
		return checkBuiltinScalar(name, typeName, v)
	default: // custom scalar
		if a.coerce != nil {
			return a.coerce(typeName, v)
		}
		return nil
	}
}

func checkBuiltinScalar(name, typeName string, v ast.Value) error {
	switch typeName {
	case "Int":
		if v.Kind() != ast.ValueKindInteger {
			return fmt.Errorf("value for '$%s' must be an Int", name)
		}
	case "Float":
		if v.Kind() != ast.ValueKindFloat && v.Kind() != ast.ValueKindInteger {
			return fmt.Errorf("value for '$%s' must be a Float", name)
		}
	case "String":
		if v.Kind() != ast.ValueKindString {
			return fmt.Errorf("value for '$%s' must be a String", name)
		}
	case "ID":
		if v.Kind() != ast.ValueKindString && v.Kind() != ast.ValueKindInteger {
			return fmt.Errorf("value for '$%s' must be an ID", name)
		}
	case "Boolean":
		if v.Kind() != ast.ValueKindBoolean {
			return fmt.Errorf("value for '$%s' must be a Boolean", name)
		}
	}
	return nil
}
