package rules

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astparser"
	"github.com/graphql-tools/qlcore/pkg/astvalidation"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
	"github.com/graphql-tools/qlcore/pkg/schemabuilder"
)

const testSchemaSrc = `
schema { query: Query }

interface Node {
  id: ID!
}

type Query {
  person(id: ID!): Person
  search: SearchResult
  peopleByFilter(filter: PersonFilter, color: Color): [Person!]!
  peopleByIds(ids: [ID!]!): [Person!]!
}

type Person implements Node {
  id: ID!
  name: String
  age: Int
  friends(limit: Int = 10): [Person!]!
}

type Product implements Node {
  id: ID!
  title: String
}

union SearchResult = Person | Product

enum Color {
  RED
  GREEN
  BLUE
}

input PersonFilter {
  name: String
  minAge: Int = 0
}

directive @cached(ttl: Int!) on FIELD
directive @important repeatable on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT
`

func buildTestSchema(t *testing.T) ast.SchemaDefinition {
	t.Helper()
	doc, report := astparser.ParseDefinitionDocument(testSchemaSrc, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())
	schemaReport := &operationreport.Report{}
	schema := schemabuilder.Build(doc, schemaReport)
	require.False(t, schemaReport.HasErrors(), schemaReport.Error())
	return schema
}

func parseOp(t *testing.T, src string) ast.ExecutableDocument {
	t.Helper()
	doc, report := astparser.ParseExecutableDocument(src, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())
	return doc
}

// requireNoValidationErrors is a require.False(report.HasErrors()) that, on
// failure, dumps the full parsed document alongside the report so a
// mismatch between what a rule saw and what the test author intended is
// debuggable from the test output directly, without re-running under a
// debugger.
func requireNoValidationErrors(t *testing.T, report *operationreport.Report, doc ast.ExecutableDocument) {
	t.Helper()
	if report.HasErrors() {
		t.Fatalf("unexpected validation errors: %s\ndocument: %s", report.Error(), spew.Sdump(doc))
	}
}

func validate(t *testing.T, src string, factories ...astvalidation.RuleFactory) *operationreport.Report {
	t.Helper()
	schema := buildTestSchema(t)
	doc := parseOp(t, src)
	return astvalidation.Validate(doc, schema, factories, nil)
}

// validateWithDoc is validate, but also returns the parsed document so a
// caller can hand it to requireNoValidationErrors for an AST dump on
// failure.
func validateWithDoc(t *testing.T, src string, factories ...astvalidation.RuleFactory) (*operationreport.Report, ast.ExecutableDocument) {
	t.Helper()
	schema := buildTestSchema(t)
	doc := parseOp(t, src)
	return astvalidation.Validate(doc, schema, factories, nil), doc
}
