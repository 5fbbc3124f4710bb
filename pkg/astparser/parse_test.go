package astparser

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/graphql-tools/qlcore/pkg/ast"
)

func firstSelection(t *testing.T, set ast.SelectionSet) ast.Selection {
	t.Helper()
	sels := set.Selections()
	require.NotEmpty(t, sels)
	return sels[0]
}

func TestParseExecutableDocument_ParsesNamedQueryWithArguments(t *testing.T) {
	doc, report := ParseExecutableDocument(`
		query GetPerson($id: ID!) {
			person(id: $id) {
				name
				nick: nickname
			}
		}
	`, Config{})
	require.False(t, report.HasErrors(), report.Error())
	require.Len(t, doc.OperationDefinitions(), 1)

	op := doc.OperationDefinitions()[0]
	require.Equal(t, ast.OperationTypeQuery, op.OperationType())
	name, ok := op.OperationName()
	require.True(t, ok)
	require.Equal(t, "GetPerson", name)

	vars := op.OperationVariableDefinitions()
	require.Len(t, vars, 1)
	require.Equal(t, "id", vars[0].VariableName())

	sel := firstSelection(t, op.OperationSelectionSet())
	field, ok := sel.(ast.Field)
	require.True(t, ok)
	require.Equal(t, "person", field.FieldSelectionName())
	require.Len(t, field.FieldArgumentApplications(), 1)

	sub, ok := field.FieldSubSelectionSet()
	require.True(t, ok)
	require.Len(t, sub.Selections(), 2)

	aliased := sub.Selections()[1].(ast.Field)
	alias, ok := aliased.FieldAlias()
	require.True(t, ok)
	require.Equal(t, "nick", alias)
	require.Equal(t, "nickname", aliased.FieldSelectionName())
	require.Equal(t, "nick", aliased.FieldResponseName())
}

func TestParseExecutableDocument_ShorthandQueryHasNilNameAndQueryType(t *testing.T) {
	doc, report := ParseExecutableDocument(`{ person { name } }`, Config{})
	require.False(t, report.HasErrors())
	op := doc.OperationDefinitions()[0]
	require.Equal(t, ast.OperationTypeQuery, op.OperationType())
	_, ok := op.OperationName()
	require.False(t, ok)
}

func TestParseExecutableDocument_ParsesFragmentSpreadAndInlineFragment(t *testing.T) {
	doc, report := ParseExecutableDocument(`
		query {
			person {
				...PersonFields
				... on Person @skip(if: false) {
					name
				}
			}
		}
		fragment PersonFields on Person {
			id
		}
	`, Config{})
	require.False(t, report.HasErrors(), report.Error())
	require.Len(t, doc.OperationDefinitions(), 1)
	require.Len(t, doc.FragmentDefinitions(), 1)

	op := doc.OperationDefinitions()[0]
	sel := firstSelection(t, op.OperationSelectionSet())
	field := sel.(ast.Field)
	sub, _ := field.FieldSubSelectionSet()
	require.Len(t, sub.Selections(), 2)

	spread, ok := sub.Selections()[0].(ast.FragmentSpread)
	require.True(t, ok)
	require.Equal(t, "PersonFields", spread.FragmentSpreadName())

	inline, ok := sub.Selections()[1].(ast.InlineFragment)
	require.True(t, ok)
	cond, ok := inline.InlineFragmentTypeCondition()
	require.True(t, ok)
	require.Equal(t, "Person", cond)
	require.Len(t, inline.InlineFragmentDirectives(), 1)
}

func TestParseExecutableDocument_MutationAndSubscriptionKeywords(t *testing.T) {
	for _, tc := range []struct {
		src      string
		expected ast.OperationType
	}{
		{`mutation { doThing }`, ast.OperationTypeMutation},
		{`subscription { onThing }`, ast.OperationTypeSubscription},
	} {
		doc, report := ParseExecutableDocument(tc.src, Config{})
		require.False(t, report.HasErrors(), report.Error())
		require.Equal(t, tc.expected, doc.OperationDefinitions()[0].OperationType())
	}
}

func TestParseExecutableDocument_VariableDefaultValueMustBeConst(t *testing.T) {
	_, report := ParseExecutableDocument(`
		query($id: ID = $other) {
			person(id: $id) { name }
		}
	`, Config{})
	require.True(t, report.HasErrors())
}

func TestParseExecutableDocument_FragmentNamedOnIsRejected(t *testing.T) {
	_, report := ParseExecutableDocument(`
		fragment on on Person { id }
	`, Config{})
	require.True(t, report.HasErrors())
}

// TestParseExecutableDocument_ErrorMessageSnapshot golden-tests the exact
// rendered report output a caller sees, not just HasErrors() — this is the
// parser error output spec.md §6 treats snapshot testing as the primary
// acceptance harness for. No leading whitespace in the source, so the
// reported byte offset is easy to verify by hand against the golden file.
func TestParseExecutableDocument_ErrorMessageSnapshot(t *testing.T) {
	_, report := ParseExecutableDocument(`fragment on on Person { id }`, Config{})
	require.True(t, report.HasErrors())

	g := goldie.New(t)
	g.Assert(t, "fragment_name_on_rejected", []byte(report.Error()))
}

func TestParseExecutableDocument_RecoversAfterMalformedDefinition(t *testing.T) {
	doc, report := ParseExecutableDocument(`
		query {
			)
		}
		query Second {
			person { name }
		}
	`, Config{})
	require.True(t, report.HasErrors())
	// the malformed first definition is skipped, recovery finds the second
	names := make([]string, 0, len(doc.OperationDefinitions()))
	for _, op := range doc.OperationDefinitions() {
		if n, ok := op.OperationName(); ok {
			names = append(names, n)
		}
	}
	require.Contains(t, names, "Second")
}

func TestParseExecutableDocument_MaxDepthExceeded(t *testing.T) {
	// build a deeply nested selection set exceeding a tiny configured cap
	src := "query {"
	const depth = 10
	for i := 0; i < depth; i++ {
		src += "a {"
	}
	src += "b"
	for i := 0; i < depth; i++ {
		src += "}"
	}
	src += "}"

	_, report := ParseExecutableDocument(src, Config{MaxDepth: 3})
	require.True(t, report.HasErrors())
}

func TestParseDefinitionDocument_ParsesObjectTypeWithFieldsAndDirectives(t *testing.T) {
	doc, report := ParseDefinitionDocument(`
		schema { query: Query }

		type Query {
			person(id: ID!): Person
		}

		type Person {
			id: ID!
			name: String
			nickname: String @deprecated(reason: "use name")
		}
	`, Config{})
	require.False(t, report.HasErrors(), report.Error())
	require.NotNil(t, doc)
}

func TestParseDefinitionDocument_ParsesEnumAndUnion(t *testing.T) {
	doc, report := ParseDefinitionDocument(`
		enum Color {
			RED
			GREEN
			BLUE @deprecated
		}

		type Person { id: ID! }
		type Product { id: ID! }
		union SearchResult = Person | Product
	`, Config{})
	require.False(t, report.HasErrors(), report.Error())
	require.NotNil(t, doc)
}
