package schemabuilder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astparser"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

func parseDefs(t *testing.T, src string) ast.DefinitionDocument {
	t.Helper()
	doc, report := astparser.ParseDefinitionDocument(src, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())
	return doc
}

func TestBuild_IndexesBuiltinScalarsEvenWithoutSchemaBlock(t *testing.T) {
	doc := parseDefs(t, `type Query { name: String }`)
	report := &operationreport.Report{}
	schema := Build(doc, report)
	require.False(t, report.HasErrors(), report.Error())

	for _, name := range []string{"Int", "Float", "String", "Boolean", "ID"} {
		typ, ok := schema.GetTypeDefinition(name)
		require.True(t, ok, name)
		require.Equal(t, ast.TypeDefinitionKindBuiltinScalar, typ.TypeDefinitionKind())
	}
	require.Equal(t, "Query", schema.QueryTypeName())
}

func TestBuild_DefaultsRootOperationTypeNamesByConvention(t *testing.T) {
	doc := parseDefs(t, `
		type Query { name: String }
		type Mutation { noop: Boolean }
	`)
	report := &operationreport.Report{}
	schema := Build(doc, report)
	require.False(t, report.HasErrors(), report.Error())
	require.Equal(t, "Query", schema.QueryTypeName())
	mutation, ok := schema.MutationTypeName()
	require.True(t, ok)
	require.Equal(t, "Mutation", mutation)
	_, ok = schema.SubscriptionTypeName()
	require.False(t, ok)
}

func TestBuild_ExplicitSchemaBlockOverridesRootNames(t *testing.T) {
	doc := parseDefs(t, `
		schema { query: QueryRoot }
		type QueryRoot { name: String }
	`)
	report := &operationreport.Report{}
	schema := Build(doc, report)
	require.False(t, report.HasErrors(), report.Error())
	require.Equal(t, "QueryRoot", schema.QueryTypeName())
}

func TestBuild_MissingQueryRootIsError(t *testing.T) {
	doc := parseDefs(t, `type Foo { name: String }`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.True(t, report.HasErrors())
}

func TestBuild_DuplicateTypeDefinitionIsError(t *testing.T) {
	doc := parseDefs(t, `
		type Query { name: String }
		type Query { other: String }
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.True(t, report.HasErrors())
}

func TestBuild_ExplicitScalarRedeclarationOfBuiltinIsAccepted(t *testing.T) {
	doc := parseDefs(t, `
		scalar Int
		type Query { name: String }
	`)
	report := &operationreport.Report{}
	schema := Build(doc, report)
	require.False(t, report.HasErrors(), report.Error())
	typ, ok := schema.GetTypeDefinition("Int")
	require.True(t, ok)
	require.Equal(t, ast.TypeDefinitionKindCustomScalar, typ.TypeDefinitionKind())
}

func TestBuild_DuplicateFieldOnTypeIsError(t *testing.T) {
	doc := parseDefs(t, `
		type Query {
			name: String
			name: String
		}
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.True(t, report.HasErrors())
}

func TestBuild_FieldReferencingUnknownTypeIsError(t *testing.T) {
	doc := parseDefs(t, `type Query { person: Person }`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.True(t, report.HasErrors())
}

func TestBuild_FieldReturnTypeMustBeOutputType(t *testing.T) {
	doc := parseDefs(t, `
		input PersonInput { name: String }
		type Query { person: PersonInput }
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.True(t, report.HasErrors())
}

func TestBuild_DuplicateArgumentOnFieldIsError(t *testing.T) {
	doc := parseDefs(t, `
		type Query {
			person(id: ID, id: ID): String
		}
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.True(t, report.HasErrors())
}

func TestBuild_ImplementsUnknownInterfaceIsError(t *testing.T) {
	doc := parseDefs(t, `
		type Query { name: String }
		type Person implements Node { id: ID! }
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.True(t, report.HasErrors())
}

func TestBuild_ImplementsNonInterfaceTypeIsError(t *testing.T) {
	doc := parseDefs(t, `
		type Query { name: String }
		type Other { id: ID! }
		type Person implements Other { id: ID! }
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.True(t, report.HasErrors())
}

func TestBuild_ValidInterfaceImplementationPasses(t *testing.T) {
	doc := parseDefs(t, `
		type Query { name: String }
		interface Node { id: ID! }
		type Person implements Node { id: ID! }
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.False(t, report.HasErrors(), report.Error())
}

func TestBuild_UnionMemberMustBeObjectType(t *testing.T) {
	doc := parseDefs(t, `
		type Query { name: String }
		interface Node { id: ID! }
		union Things = Node
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.True(t, report.HasErrors())
}

func TestBuild_DuplicateEnumValueIsError(t *testing.T) {
	doc := parseDefs(t, `
		type Query { name: String }
		enum Color { RED RED }
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.True(t, report.HasErrors())
}

func TestBuild_CustomDirectiveDefinitionIsIndexed(t *testing.T) {
	doc := parseDefs(t, `
		type Query { name: String }
		directive @cached(ttl: Int!) on FIELD
	`)
	report := &operationreport.Report{}
	schema := Build(doc, report)
	require.False(t, report.HasErrors(), report.Error())
	d, ok := schema.GetDirectiveDefinition("cached")
	require.True(t, ok)
	require.Equal(t, "cached", d.DirectiveDefinitionName())
}

func TestBuild_RedeclaringBuiltinDirectiveIsError(t *testing.T) {
	doc := parseDefs(t, `
		type Query { name: String }
		directive @skip(if: Boolean!) on FIELD
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.True(t, report.HasErrors())
}

func TestBuild_CyclicRequiredInputFieldsIsError(t *testing.T) {
	doc := parseDefs(t, `
		type Query { name: String }
		input A { b: B! }
		input B { a: A! }
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.True(t, report.HasErrors())
}

func TestBuild_NullableEscapeBreaksInputCycle(t *testing.T) {
	doc := parseDefs(t, `
		type Query { name: String }
		input A { b: B }
		input B { a: A! }
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.False(t, report.HasErrors(), report.Error())
}

func TestBuild_NonNullListOfRequiredSelfReferenceIsSafe(t *testing.T) {
	doc := parseDefs(t, `
		type Query { name: String }
		input A { children: [A!]! }
	`)
	report := &operationreport.Report{}
	Build(doc, report)
	require.False(t, report.HasErrors(), report.Error())
}
