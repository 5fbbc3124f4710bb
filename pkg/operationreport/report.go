// Package operationreport is the structured error model shared by every
// later phase (parser, schema builder, validator, analyzer, merger), per
// spec.md §6/§7. Grounded directly on the teacher's operationreport.Report,
// which every phase in v2/pkg/engine/plan and v2/pkg/asttransform threads
// through by pointer and checks with report.HasErrors().
package operationreport

import (
	"fmt"
	"strings"

	"github.com/graphql-tools/qlcore/pkg/ast"
)

// Annotation is a primary or secondary pointer into the source, per
// spec.md §6.
type Annotation struct {
	Message string
	Span    ast.Span
}

// ExternalError is a single boundary-facing, structured error: a human
// message plus a primary annotation and zero or more secondary annotations
// (spec.md §6/§7 taxon 1-3).
type ExternalError struct {
	Message             string
	PrimaryAnnotation   *Annotation
	SecondaryAnnotations []Annotation
	// Path, when non-empty, is the response-name path to the offending
	// selection/argument/value. graphqlerrors.ToGraphQLErrors does not
	// render it.
	Path []string
}

func (e ExternalError) Error() string {
	if e.PrimaryAnnotation == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (at byte %d)", e.Message, e.PrimaryAnnotation.Span.Start)
}

// InternalError wraps a programmer-error / invariant violation (spec.md §7
// taxon 3, "fatal to that operation only", never to the process). The
// wrapped error may be any error; no package in this module calls
// AddInternalError.
type InternalError struct {
	Err error
}

func (e InternalError) Error() string { return "internal error: " + e.Err.Error() }
func (e InternalError) Unwrap() error { return e.Err }

// Report accumulates errors across a single parse/build/validate/analyze/merge
// run. It never panics; every phase appends to it and callers check
// HasErrors() once at the end, mirroring the teacher's
// `report := operationreport.Report{}; ...; if report.HasErrors() { return report }`
// idiom used throughout v2/pkg/asttransform and v2/pkg/engine/plan.
type Report struct {
	ExternalErrors []ExternalError
	InternalErrors []InternalError
}

func (r *Report) AddExternalError(err ExternalError) {
	r.ExternalErrors = append(r.ExternalErrors, err)
}

func (r *Report) AddInternalError(err error) {
	r.InternalErrors = append(r.InternalErrors, InternalError{Err: err})
}

func (r *Report) HasErrors() bool {
	return len(r.ExternalErrors) > 0 || len(r.InternalErrors) > 0
}

func (r *Report) Reset() {
	r.ExternalErrors = nil
	r.InternalErrors = nil
}

// Error implements the error interface so a *Report itself can be returned
// and propagated as the run's single failure value.
func (r *Report) Error() string {
	var b strings.Builder
	for i, e := range r.ExternalErrors {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	for i, e := range r.InternalErrors {
		if i > 0 || len(r.ExternalErrors) > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// NewExternalError is a small constructor mirroring
// original_source/bluejay-parser/src/error.rs's `Error::new(message,
// primary_annotation, secondary_annotations)`.
func NewExternalError(message string, primary *Annotation, secondary ...Annotation) ExternalError {
	return ExternalError{Message: message, PrimaryAnnotation: primary, SecondaryAnnotations: secondary}
}

func AtSpan(message string, span ast.Span) ExternalError {
	return NewExternalError(message, &Annotation{Message: message, Span: span})
}
