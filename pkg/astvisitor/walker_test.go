package astvisitor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astparser"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
	"github.com/graphql-tools/qlcore/pkg/schemabuilder"
)

const testSchemaSrc = `
schema { query: Query }

type Query {
  person(id: ID!): Person
}

type Person {
  id: ID!
  name: String
  friends: [Person!]!
}
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

func parseTestOperation(t *testing.T, src string) (*ast.ParsedExecutableDocument, ast.OperationDefinition) {
	t.Helper()
	doc, report := astparser.ParseExecutableDocument(src, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())
	require.Len(t, doc.OperationDefinitions(), 1)
	return doc, doc.OperationDefinitions()[0]
}

type recordingVisitor struct {
	entered     []string
	fieldDefsOK []bool
	enclosing   []string
}

func (r *recordingVisitor) EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *Walker) {
	r.entered = append(r.entered, f.FieldSelectionName())
	r.fieldDefsOK = append(r.fieldDefsOK, hasFieldDef)
	if w.EnclosingTypeDefinition != nil {
		r.enclosing = append(r.enclosing, w.EnclosingTypeDefinition.TypeDefinitionName())
	} else {
		r.enclosing = append(r.enclosing, "")
	}
}

func TestWalk_VisitsFieldsWithResolvedEnclosingType(t *testing.T) {
	schema := buildTestSchema(t)
	doc, _ := parseTestOperation(t, `
		query {
			person(id: "1") {
				name
				friends { name }
			}
		}
	`)

	v := &recordingVisitor{}
	w := NewWalker(8)
	w.Register(v)
	w.Walk(doc, schema, &operationreport.Report{})

	require.Equal(t, []string{"person", "name", "friends", "name"}, v.entered)
	require.Equal(t, []bool{true, true, true, true}, v.fieldDefsOK)
	require.Equal(t, []string{"Query", "Person", "Person", "Person"}, v.enclosing)
}

func TestWalk_UnknownFieldHasNoFieldDef(t *testing.T) {
	schema := buildTestSchema(t)
	doc, _ := parseTestOperation(t, `query { person(id: "1") { bogus } }`)

	v := &recordingVisitor{}
	w := NewWalker(8)
	w.Register(v)
	w.Walk(doc, schema, &operationreport.Report{})

	require.Equal(t, []string{"person", "bogus"}, v.entered)
	require.Equal(t, []bool{true, false}, v.fieldDefsOK)
}

func TestWalk_TypenameIsAlwaysSelectable(t *testing.T) {
	schema := buildTestSchema(t)
	doc, _ := parseTestOperation(t, `query { person(id: "1") { __typename } }`)

	v := &recordingVisitor{}
	w := NewWalker(8)
	w.Register(v)
	w.Walk(doc, schema, &operationreport.Report{})

	require.Equal(t, []string{"person", "__typename"}, v.entered)
	require.Equal(t, []bool{true, true}, v.fieldDefsOK)
}

type stoppingVisitor struct{ seen []string }

func (s *stoppingVisitor) EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *Walker) {
	s.seen = append(s.seen, f.FieldSelectionName())
	if f.FieldSelectionName() == "name" {
		w.StopWalking()
	}
}

func TestWalk_StopWalkingHaltsTraversalImmediately(t *testing.T) {
	schema := buildTestSchema(t)
	doc, _ := parseTestOperation(t, `
		query {
			person(id: "1") {
				name
				friends { name }
			}
		}
	`)

	v := &stoppingVisitor{}
	w := NewWalker(8)
	w.Register(v)
	w.Walk(doc, schema, &operationreport.Report{})

	require.Equal(t, []string{"person", "name"}, v.seen)
}

type pathRecordingVisitor struct{ paths [][]string }

func (p *pathRecordingVisitor) EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *Walker) {
	if f.FieldSelectionName() == "name" {
		p.paths = append(p.paths, append([]string(nil), w.Path()...))
	}
}

func TestWalk_PathTracksResponseNameAncestry(t *testing.T) {
	schema := buildTestSchema(t)
	doc, _ := parseTestOperation(t, `
		query {
			person(id: "1") {
				friends { me: name }
			}
		}
	`)

	v := &pathRecordingVisitor{}
	w := NewWalker(8)
	w.Register(v)
	w.Walk(doc, schema, &operationreport.Report{})

	require.Len(t, v.paths, 1)
	require.Equal(t, []string{"person", "friends", "me"}, v.paths[0])
}

func TestWalk_TraversesThroughFragmentSpreadAndInlineFragment(t *testing.T) {
	schema := buildTestSchema(t)
	doc, _ := parseTestOperation(t, `
		query {
			person(id: "1") {
				...PersonName
				... on Person {
					friends { name }
				}
			}
		}
		fragment PersonName on Person {
			name
		}
	`)

	v := &recordingVisitor{}
	w := NewWalker(8)
	w.Register(v)
	w.Walk(doc, schema, &operationreport.Report{})

	// the spread is not followed, so "name" only shows up twice: once from
	// the inline fragment's "friends { name }", and once more from the
	// walker's separate top-level pass over the fragment definition itself
	// (not from expanding the spread in place).
	require.Equal(t, []string{"person", "friends", "name", "name"}, v.entered)
}
