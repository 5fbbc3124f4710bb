package astvalidation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astparser"
)

func parseForCache(t *testing.T, src string) ast.ExecutableDocument {
	t.Helper()
	doc, report := astparser.ParseExecutableDocument(src, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())
	return doc
}

func TestNewCache_FragmentDefinitionResolvesByName(t *testing.T) {
	doc := parseForCache(t, `
		query { person { ...Frag } }
		fragment Frag on Person { name }
	`)
	c := NewCache(doc, nil)
	f, ok := c.FragmentDefinition("Frag")
	require.True(t, ok)
	require.Equal(t, "Frag", f.FragmentName())

	_, ok = c.FragmentDefinition("Missing")
	require.False(t, ok)
}

func TestFragmentClosure_ReturnsTransitiveSpreadsInFirstSeenOrder(t *testing.T) {
	doc := parseForCache(t, `
		query {
			person {
				...A
				... on Person {
					...B
				}
			}
		}
		fragment A on Person { friends { ...C } }
		fragment B on Person { name }
		fragment C on Person { age }
	`)
	c := NewCache(doc, nil)
	op := doc.OperationDefinitions()[0]
	sel := op.OperationSelectionSet().Selections()[0].(ast.Field)
	sub, _ := sel.FieldSubSelectionSet()
	closure := c.FragmentClosure(sub)
	require.Equal(t, []string{"A", "C", "B"}, closure)
}

func TestFragmentClosure_StopsAtUndefinedFragmentSpread(t *testing.T) {
	doc := parseForCache(t, `query { person { ...Missing } }`)
	c := NewCache(doc, nil)
	op := doc.OperationDefinitions()[0]
	sel := op.OperationSelectionSet().Selections()[0].(ast.Field)
	sub, _ := sel.FieldSubSelectionSet()
	closure := c.FragmentClosure(sub)
	require.Equal(t, []string{"Missing"}, closure)
}

func TestFragmentClosure_DoesNotLoopOnCyclicSpreads(t *testing.T) {
	doc := parseForCache(t, `
		query { person { ...A } }
		fragment A on Person { friends { ...B } }
		fragment B on Person { friends { ...A } }
	`)
	c := NewCache(doc, nil)
	op := doc.OperationDefinitions()[0]
	sel := op.OperationSelectionSet().Selections()[0].(ast.Field)
	sub, _ := sel.FieldSubSelectionSet()

	closure := c.FragmentClosure(sub)
	require.ElementsMatch(t, []string{"A", "B"}, closure)
}

func TestFieldPathType_RoundTripsThroughStoreAndGet(t *testing.T) {
	doc := parseForCache(t, `query { person { name } }`)
	c := NewCache(doc, nil)

	_, ok := c.FieldPathType("person/name")
	require.False(t, ok)

	scalar := ast.NewParsedScalarType(ast.TypeDefinitionKindBuiltinScalar, ast.NewName("String", ast.Span{}), nil, nil, ast.Span{})
	c.StoreFieldPathType("person/name", scalar)

	got, ok := c.FieldPathType("person/name")
	require.True(t, ok)
	require.Equal(t, "String", got.TypeDefinitionName())
}
