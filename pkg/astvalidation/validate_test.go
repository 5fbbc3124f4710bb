package astvalidation

import (
	"testing"

	"github.com/jensneuse/abstractlogger"
	"github.com/stretchr/testify/require"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astparser"
	"github.com/graphql-tools/qlcore/pkg/astvisitor"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
	"github.com/graphql-tools/qlcore/pkg/schemabuilder"
)

// recordingLogger captures every Debug call so tests can assert Validate
// actually logs through a caller-supplied logger, rather than just
// accepting and ignoring the parameter.
type recordingLogger struct {
	abstractlogger.Noop
	debugMsgs []string
}

func (l *recordingLogger) Debug(msg string, fields ...abstractlogger.Field) {
	l.debugMsgs = append(l.debugMsgs, msg)
}

const validateTestSchemaSrc = `
schema { query: Query }

type Query {
  person(id: ID!): Person
}

type Person {
  id: ID!
  name: String
}
`

func buildValidateTestSchema(t *testing.T) ast.SchemaDefinition {
	t.Helper()
	doc, report := astparser.ParseDefinitionDocument(validateTestSchemaSrc, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())
	schemaReport := &operationreport.Report{}
	schema := schemabuilder.Build(doc, schemaReport)
	require.False(t, schemaReport.HasErrors(), schemaReport.Error())
	return schema
}

func TestValidate_RunsMultipleRulesInOnePass(t *testing.T) {
	schema := buildValidateTestSchema(t)
	doc, report := astparser.ParseExecutableDocument(`query { person(id: "1") { name } }`, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())

	callCount := 0
	factory := func(ctx *RuleContext) interface{} {
		callCount++
		return struct{}{}
	}
	result := Validate(doc, schema, []RuleFactory{factory, factory}, nil)
	require.False(t, result.HasErrors())
	require.Equal(t, 2, callCount)
}

func TestValidate_BuildsOneCacheSharedAcrossRules(t *testing.T) {
	schema := buildValidateTestSchema(t)
	doc, report := astparser.ParseExecutableDocument(`
		query { person(id: "1") { ...Frag } }
		fragment Frag on Person { name }
	`, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())

	var seenCache *Cache
	factory := func(ctx *RuleContext) interface{} {
		seenCache = ctx.Cache
		return struct{}{}
	}
	Validate(doc, schema, []RuleFactory{factory, factory}, nil)
	require.NotNil(t, seenCache)
	_, ok := seenCache.FragmentDefinition("Frag")
	require.True(t, ok)
}

type finishTrackingRule struct{ finished bool }

func (f *finishTrackingRule) Finish() { f.finished = true }

func TestValidate_CallsFinishOnFinalizerRulesAfterWalk(t *testing.T) {
	schema := buildValidateTestSchema(t)
	doc, report := astparser.ParseExecutableDocument(`query { person(id: "1") { name } }`, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())

	var built *finishTrackingRule
	factory := func(ctx *RuleContext) interface{} {
		built = &finishTrackingRule{}
		return built
	}
	Validate(doc, schema, []RuleFactory{factory}, nil)
	require.True(t, built.finished)
}

// unknownFieldRejecter is a minimal standalone rule (no astvalidation/rules
// dependency) used to confirm a caller-supplied RuleFactory's hook methods
// are registered on the walker and append straight to the shared Report.
type unknownFieldRejecter struct{ ctx *RuleContext }

func (r *unknownFieldRejecter) EnterField(f ast.Field, fieldDef ast.FieldDefinition, hasFieldDef bool, w *astvisitor.Walker) {
	if !hasFieldDef {
		r.ctx.Report.AddExternalError(operationreport.AtSpan("unknown field", f.Span()))
	}
}

func TestValidate_RuleInstanceAppendsDirectlyToSharedReport(t *testing.T) {
	schema := buildValidateTestSchema(t)
	doc, report := astparser.ParseExecutableDocument(`query { person(id: "1") { bogus } }`, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())

	factory := func(ctx *RuleContext) interface{} {
		return &unknownFieldRejecter{ctx: ctx}
	}
	result := Validate(doc, schema, []RuleFactory{factory}, nil)
	require.True(t, result.HasErrors())
}

func TestValidate_LogsStartAndDoneThroughSuppliedLogger(t *testing.T) {
	schema := buildValidateTestSchema(t)
	doc, report := astparser.ParseExecutableDocument(`query { person(id: "1") { name } }`, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())

	logger := &recordingLogger{}
	factory := func(ctx *RuleContext) interface{} { return struct{}{} }
	Validate(doc, schema, []RuleFactory{factory}, logger)
	require.Equal(t, []string{"astvalidation: validate start", "astvalidation: validate done"}, logger.debugMsgs)
}

func TestValidate_NilLoggerDoesNotPanic(t *testing.T) {
	schema := buildValidateTestSchema(t)
	doc, report := astparser.ParseExecutableDocument(`query { person(id: "1") { name } }`, astparser.Config{})
	require.False(t, report.HasErrors(), report.Error())

	factory := func(ctx *RuleContext) interface{} { return struct{}{} }
	require.NotPanics(t, func() {
		Validate(doc, schema, []RuleFactory{factory}, nil)
	})
}
