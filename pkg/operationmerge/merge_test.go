package operationmerge

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astparser"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
	"github.com/graphql-tools/qlcore/pkg/schemabuilder"
)

const mergeTestSchemaSrc = `
schema { query: Query }

type Query {
  person(id: ID!): Person
}

type Person {
  id: ID!
  name: String
  nickname: String
  friends(limit: Int): [Person!]!
}
`

func buildMergeTestSchema(t *testing.T) ast.SchemaDefinition {
	t.Helper()
	doc, report := astparser.ParseDefinitionDocument(mergeTestSchemaSrc, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())
	schemaReport := &operationreport.Report{}
	schema := schemabuilder.Build(doc, schemaReport)
	require.False(t, schemaReport.HasErrors(), schemaReport.Error())
	return schema
}

func parseMergeSource(t *testing.T, src string) Source {
	t.Helper()
	doc, report := astparser.ParseExecutableDocument(src, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())
	require.Len(t, doc.OperationDefinitions(), 1)
	return Source{Document: doc, Operation: doc.OperationDefinitions()[0]}
}

func fieldByResponseName(t *testing.T, set ast.SelectionSet, name string) *MergedField {
	t.Helper()
	for _, sel := range set.Selections() {
		if f, ok := sel.(*MergedField); ok && f.FieldResponseName() == name {
			return f
		}
	}
	t.Fatalf("no field with response name %q in %#v", name, set.Selections())
	return nil
}

func TestMerge_SingletonInlinesFragments(t *testing.T) {
	schema := buildMergeTestSchema(t)
	src := parseMergeSource(t, `
		query {
			person(id: "1") {
				...Info
			}
		}
		fragment Info on Person {
			name
			nickname
		}
	`)

	doc, mergeErr := Merge([]Source{src}, schema)
	require.Nil(t, mergeErr)
	require.Empty(t, doc.FragmentDefinitions())

	ops := doc.OperationDefinitions()
	require.Len(t, ops, 1)
	top := ops[0].OperationSelectionSet()
	require.Len(t, top.Selections(), 1)

	person := fieldByResponseName(t, top, "person")
	sub, ok := person.FieldSubSelectionSet()
	require.True(t, ok)
	require.Len(t, sub.Selections(), 2)
	fieldByResponseName(t, sub, "name")
	fieldByResponseName(t, sub, "nickname")
}

// TestPrint_RendersMergedSingletonAsGoldenText snapshot-tests Print's
// output against a checked-in golden file — the merged-AST printing
// output spec.md §6 treats snapshot testing as the primary acceptance
// harness for.
func TestPrint_RendersMergedSingletonAsGoldenText(t *testing.T) {
	schema := buildMergeTestSchema(t)
	src := parseMergeSource(t, `
		query {
			person(id: "1") {
				...Info
			}
		}
		fragment Info on Person {
			name
			nickname
		}
	`)

	doc, mergeErr := Merge([]Source{src}, schema)
	require.Nil(t, mergeErr)

	g := goldie.New(t)
	g.Assert(t, "print_merged_singleton", []byte(Print(doc)))
}

func TestMerge_OperationTypeMismatch(t *testing.T) {
	schema := buildMergeTestSchema(t)
	a := parseMergeSource(t, `query { person(id: "1") { name } }`)
	b := parseMergeSource(t, `mutation { person(id: "1") { name } }`)

	_, mergeErr := Merge([]Source{a, b}, schema)
	require.NotNil(t, mergeErr)
	require.Equal(t, ErrorKindOperationTypeMismatch, mergeErr.Kind)
}

func TestMerge_UnknownFragmentSpread(t *testing.T) {
	schema := buildMergeTestSchema(t)
	src := parseMergeSource(t, `query { person(id: "1") { ...Missing } }`)

	_, mergeErr := Merge([]Source{src}, schema)
	require.NotNil(t, mergeErr)
	require.Equal(t, ErrorKindFragmentDefinitionNotFound, mergeErr.Kind)
	require.Equal(t, "Missing", mergeErr.FragmentName)
}

func TestMerge_UnsupportedDirectiveRejected(t *testing.T) {
	schema := buildMergeTestSchema(t)
	src := parseMergeSource(t, `query { person(id: "1") { name @skip(if: false) } }`)

	_, mergeErr := Merge([]Source{src}, schema)
	require.NotNil(t, mergeErr)
	require.Equal(t, ErrorKindDirectivesNotSupported, mergeErr.Kind)
}

func TestMerge_MergesSameFieldAcrossOperations(t *testing.T) {
	schema := buildMergeTestSchema(t)
	a := parseMergeSource(t, `query { person(id: "1") { name } }`)
	b := parseMergeSource(t, `query { person(id: "1") { nickname } }`)

	doc, mergeErr := Merge([]Source{a, b}, schema)
	require.Nil(t, mergeErr)

	top := doc.OperationDefinitions()[0].OperationSelectionSet()
	require.Len(t, top.Selections(), 1)
	person := fieldByResponseName(t, top, "person")
	sub, ok := person.FieldSubSelectionSet()
	require.True(t, ok)
	require.Len(t, sub.Selections(), 2)
}

func TestMerge_DifferingArgumentsWithoutSuffixIsError(t *testing.T) {
	schema := buildMergeTestSchema(t)
	a := parseMergeSource(t, `query { person(id: "1") { name } }`)
	b := parseMergeSource(t, `query { person(id: "2") { name } }`)

	_, mergeErr := Merge([]Source{a, b}, schema)
	require.NotNil(t, mergeErr)
	require.Equal(t, ErrorKindArgumentsNotCompatible, mergeErr.Kind)
	require.Equal(t, "person", mergeErr.ResponseName)
}

func TestMerge_SuffixOnMergeDisambiguatesConflictingField(t *testing.T) {
	schema := buildMergeTestSchema(t)
	a := parseMergeSource(t, `query { person(id: "1") @suffixOnMerge { name } }`)
	b := parseMergeSource(t, `query { person(id: "2") @suffixOnMerge { name } }`)

	doc, mergeErr := Merge([]Source{a, b}, schema)
	require.Nil(t, mergeErr)

	top := doc.OperationDefinitions()[0].OperationSelectionSet()
	require.Len(t, top.Selections(), 2)

	var responseNames []string
	for _, sel := range top.Selections() {
		f := sel.(*MergedField)
		responseNames = append(responseNames, f.FieldResponseName())
		require.Equal(t, "person", f.FieldSelectionName())
	}
	require.Contains(t, responseNames, "person")
	require.NotEqual(t, responseNames[0], responseNames[1])
}

func TestMerge_VariableTypeMismatchWithoutSuffixIsError(t *testing.T) {
	schema := buildMergeTestSchema(t)
	a := parseMergeSource(t, `query($id: ID!) { person(id: $id) { name } }`)
	b := parseMergeSource(t, `query($id: String!) { person(id: "x") { name } }`)

	_, mergeErr := Merge([]Source{a, b}, schema)
	require.NotNil(t, mergeErr)
	require.Equal(t, ErrorKindVariableTypeMismatch, mergeErr.Kind)
	require.Equal(t, "id", mergeErr.VariableName)
}

func TestMerge_CompatibleVariablesDeduplicate(t *testing.T) {
	schema := buildMergeTestSchema(t)
	a := parseMergeSource(t, `query($id: ID!) { person(id: $id) { name } }`)
	b := parseMergeSource(t, `query($id: ID!) { person(id: $id) { nickname } }`)

	doc, mergeErr := Merge([]Source{a, b}, schema)
	require.Nil(t, mergeErr)

	vars := doc.OperationDefinitions()[0].OperationVariableDefinitions()
	require.Len(t, vars, 1)
	require.Equal(t, "id", vars[0].VariableName())
}

func TestMerge_ReplaceOnMergeOverridesVariable(t *testing.T) {
	schema := buildMergeTestSchema(t)
	a := parseMergeSource(t, `query($id: ID!) { person(id: $id) { name } }`)
	b := parseMergeSource(t, `query($id: ID! @replaceOnMerge) { person(id: $id) { nickname } }`)

	doc, mergeErr := Merge([]Source{a, b}, schema)
	require.Nil(t, mergeErr)

	vars := doc.OperationDefinitions()[0].OperationVariableDefinitions()
	require.Len(t, vars, 1)
	require.Equal(t, "id", vars[0].VariableName())
}
