package astvalidation

import (
	"github.com/google/uuid"
	"github.com/jensneuse/abstractlogger"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astvisitor"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// Validate runs every rule in rules over doc in a single astvisitor.Walker
// pass against schema, returning the combined Report. rules combined this
// way behave as one tuple-shaped composite rule (spec.md §4.4: "rules
// combined into tuple-shaped composite rule run in single pass").
//
// logger may be nil, in which case nothing is logged. Every call is stamped
// with its own correlation ID so a caller fanning calls out across
// goroutines (pkg/batch) can line up the start/end log entries for one
// particular call even when they interleave with others on the same
// logger.
func Validate(doc ast.ExecutableDocument, schema ast.SchemaDefinition, rules []RuleFactory, logger abstractlogger.Logger) *operationreport.Report {
	if logger == nil {
		logger = abstractlogger.Noop{}
	}
	correlationID := uuid.New().String()
	logger.Debug("astvalidation: validate start", abstractlogger.String("correlation_id", correlationID), abstractlogger.Int("rule_count", len(rules)))

	report := &operationreport.Report{}
	cache := NewCache(doc, schema)
	ctx := &RuleContext{Document: doc, Schema: schema, Cache: cache, Report: report}

	walker := astvisitor.NewWalker(32)
	instances := make([]interface{}, 0, len(rules))
	for _, rf := range rules {
		inst := rf(ctx)
		instances = append(instances, inst)
		walker.Register(inst)
	}
	walker.Walk(doc, schema, report)
	for _, inst := range instances {
		if f, ok := inst.(Finalizer); ok {
			f.Finish()
		}
	}

	logger.Debug("astvalidation: validate done", abstractlogger.String("correlation_id", correlationID), abstractlogger.Bool("has_errors", report.HasErrors()))
	return report
}
