package operationmerge

import (
	"fmt"
	"strings"

	"github.com/graphql-tools/qlcore/pkg/ast"
)

// Print renders doc back into GraphQL operation syntax. It exists
// principally so a merge's output has a stable, human-readable form to
// snapshot-test against (golden files under testdata/), rather than
// asserting against the merged node tree field by field.
func Print(doc *MergedExecutableDocument) string {
	var b strings.Builder
	printOperation(&b, doc.operation)
	return b.String()
}

func printOperation(b *strings.Builder, op *MergedOperationDefinition) {
	b.WriteString(op.OperationType().String())
	if name, ok := op.OperationName(); ok {
		b.WriteByte(' ')
		b.WriteString(name)
	}
	if vars := op.OperationVariableDefinitions(); len(vars) > 0 {
		b.WriteByte('(')
		for i, v := range vars {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('$')
			b.WriteString(v.VariableName())
			b.WriteString(": ")
			b.WriteString(v.VariableType().String())
			if def, ok := v.VariableDefault(); ok {
				b.WriteString(" = ")
				printValue(b, def)
			}
		}
		b.WriteByte(')')
	}
	b.WriteByte(' ')
	printSelectionSet(b, op.OperationSelectionSet(), 0)
	b.WriteByte('\n')
}

func printSelectionSet(b *strings.Builder, set ast.SelectionSet, depth int) {
	b.WriteString("{\n")
	for _, sel := range set.Selections() {
		printSelection(b, sel, depth+1)
	}
	writeIndent(b, depth)
	b.WriteByte('}')
}

func printSelection(b *strings.Builder, sel ast.Selection, depth int) {
	switch n := sel.(type) {
	case ast.Field:
		printField(b, n, depth)
	case ast.InlineFragment:
		printInlineFragment(b, n, depth)
	default:
		panic(fmt.Sprintf("operationmerge: Print does not support selection type %T", sel))
	}
}

func printField(b *strings.Builder, f ast.Field, depth int) {
	writeIndent(b, depth)
	if alias, ok := f.FieldAlias(); ok {
		b.WriteString(alias)
		b.WriteString(": ")
	}
	b.WriteString(f.FieldSelectionName())
	if args := f.FieldArgumentApplications(); len(args) > 0 {
		printArguments(b, args)
	}
	if sub, ok := f.FieldSubSelectionSet(); ok {
		b.WriteByte(' ')
		printSelectionSet(b, sub, depth)
	}
	b.WriteByte('\n')
}

func printInlineFragment(b *strings.Builder, f ast.InlineFragment, depth int) {
	writeIndent(b, depth)
	b.WriteString("...")
	if cond, ok := f.InlineFragmentTypeCondition(); ok {
		b.WriteString(" on ")
		b.WriteString(cond)
	}
	b.WriteByte(' ')
	printSelectionSet(b, f.InlineFragmentSelectionSet(), depth)
	b.WriteByte('\n')
}

func printArguments(b *strings.Builder, args []ast.ArgumentApplication) {
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.ArgumentName())
		b.WriteString(": ")
		printValue(b, arg.ArgumentValue())
	}
	b.WriteByte(')')
}

func printValue(b *strings.Builder, v ast.Value) {
	switch v.Kind() {
	case ast.ValueKindNull:
		b.WriteString("null")
	case ast.ValueKindBoolean:
		fmt.Fprintf(b, "%t", v.Boolean())
	case ast.ValueKindInteger:
		fmt.Fprintf(b, "%d", v.Integer())
	case ast.ValueKindFloat:
		fmt.Fprintf(b, "%g", v.Float())
	case ast.ValueKindString:
		fmt.Fprintf(b, "%q", v.Str())
	case ast.ValueKindEnum:
		b.WriteString(v.EnumName())
	case ast.ValueKindVariable:
		b.WriteByte('$')
		b.WriteString(v.VariableName())
	case ast.ValueKindList:
		b.WriteByte('[')
		for i, item := range v.List() {
			if i > 0 {
				b.WriteString(", ")
			}
			printValue(b, item)
		}
		b.WriteByte(']')
	case ast.ValueKindObject:
		b.WriteByte('{')
		for i, f := range v.Object() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			printValue(b, f.Value)
		}
		b.WriteByte('}')
	}
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
