// Package batch is the one concurrency-aware layer of this module, sitting
// strictly above the synchronous core spec.md §5 requires ("the core itself
// stays single-threaded"): it fans independent Validate/Analyze calls out
// over a worker pool and collects their results, rather than adding any
// concurrency inside astvalidation or operationanalysis themselves.
package batch

import (
	"context"

	"github.com/jensneuse/abstractlogger"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/astvalidation"
	"github.com/graphql-tools/qlcore/pkg/operationanalysis"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// ValidationJob is one independent document/schema/rule-set combination to
// validate.
type ValidationJob struct {
	Document ast.ExecutableDocument
	Schema   ast.SchemaDefinition
	Rules    []astvalidation.RuleFactory
}

// ValidateAll runs every job's astvalidation.Validate concurrently, one
// goroutine per job, and returns each job's Report in the same order as
// jobs. A job whose Report.HasErrors() is true does not stop the others;
// the only error ValidateAll itself returns is from ctx cancellation.
//
// logger is shared across every job's Validate call; since each call stamps
// its own correlation ID, log lines from concurrent jobs on the same batch
// can still be told apart. logger may be nil.
func ValidateAll(ctx context.Context, jobs []ValidationJob, logger abstractlogger.Logger) ([]*operationreport.Report, error) {
	reports := make([]*operationreport.Report, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			reports[i] = astvalidation.Validate(job.Document, job.Schema, job.Rules, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// AnalysisJob is one independent operation to analyze.
type AnalysisJob struct {
	Document      ast.ExecutableDocument
	Schema        ast.SchemaDefinition
	Operation     ast.OperationDefinition
	Variables     operationanalysis.VariableValues
	ScaleFactor   operationanalysis.ScaleFactorComputer
	Coerce        operationanalysis.ScalarCoercionHook
	ScalarWeights map[string]int
}

// AnalyzeAll runs operationanalysis.Analyze over every job concurrently.
// Unlike ValidateAll, a per-job Analyze error (malformed variables, an
// unresolvable scalar coercion) is not fatal to the batch: it's collected
// and every job's error, if any, is combined with go.uber.org/multierr so a
// caller sees every failure at once instead of just the first. Reports for
// successful jobs are still returned positionally; a failed job's slot is
// nil.
//
// logger is shared across every job's Analyze call; see ValidateAll's
// comment on correlation IDs. logger may be nil.
func AnalyzeAll(ctx context.Context, jobs []AnalysisJob, logger abstractlogger.Logger) ([]*operationanalysis.Report, error) {
	reports := make([]*operationanalysis.Report, len(jobs))
	errs := make([]error, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			default:
			}
			analyzerCtx := operationanalysis.NewAnalyzerContext(job.Document, job.Schema, job.Operation, job.Variables)
			report, err := operationanalysis.Analyze(analyzerCtx, job.ScaleFactor, job.Coerce, job.ScalarWeights, logger)
			if err != nil {
				errs[i] = err
				return nil
			}
			reports[i] = report
			return nil
		})
	}
	// g.Wait only ever returns the gctx.Err() from a cancelled context here,
	// since every job goroutine above swallows its own error into errs.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var combined error
	for _, err := range errs {
		combined = multierr.Append(combined, err)
	}
	if combined != nil {
		return reports, combined
	}
	return reports, nil
}
