package astvalidation

import (
	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// RuleContext is what every built-in rule constructor closes over: the
// document and schema being validated, the shared Cache, and the Report
// every rule appends its findings to. spec.md §4.4: "Rule construction
// receives (executable_doc, schema, cache)".
type RuleContext struct {
	Document ast.ExecutableDocument
	Schema   ast.SchemaDefinition
	Cache    *Cache
	Report   *operationreport.Report
}

// RuleFactory builds one rule instance for a validation run. The returned
// value is registered on the shared astvisitor.Walker via Register, so it
// should implement one or more of astvisitor's Enter*/Leave* interfaces.
// A Rule is exactly "a Visitor plus a finalized error iterator" (spec.md
// §4.4): the Visitor half is satisfied by the returned value's hook
// methods; the "finalized error iterator" half is satisfied by each hook
// appending directly to ctx.Report as it observes violations, rather than
// buffering its own list and flushing it at the end — since every rule
// shares one Report, there is nothing left to finalize once the walk ends.
type RuleFactory func(ctx *RuleContext) interface{}

// Finalizer is implemented by a rule that needs to run one last check after
// the whole document has been walked — typically a "declared but never
// used" check (fragments-must-be-used), which can only be decided once
// every spread in the document has been seen. all-variables-used does not
// need one: it reports from LeaveOperationDefinition, per operation.
type Finalizer interface {
	Finish()
}
