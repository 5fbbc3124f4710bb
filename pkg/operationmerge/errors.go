package operationmerge

import (
	"fmt"

	"github.com/graphql-tools/qlcore/pkg/ast"
)

// ErrorKind discriminates the merge-error sum type of spec.md §4.6, grounded
// on original_source/bluejay-operation-merger/src/error.rs's Error enum.
type ErrorKind int

const (
	// ErrorKindOperationTypeMismatch: the input operations don't all share
	// one OperationType (query/mutation/subscription).
	ErrorKindOperationTypeMismatch ErrorKind = iota
	// ErrorKindFragmentDefinitionNotFound: a spread names a fragment absent
	// from its owning document.
	ErrorKindFragmentDefinitionNotFound
	// ErrorKindDirectivesNotSupported: a directive other than
	// @suffixOnMerge/@replaceOnMerge appears, or one of those two appears at
	// a location it isn't valid for.
	ErrorKindDirectivesNotSupported
	// ErrorKindArgumentsNotCompatible: two field selections sharing a
	// response name carry arguments that aren't equivalent.
	ErrorKindArgumentsNotCompatible
	// ErrorKindDifferingFieldNamesForResponseName: two field selections
	// sharing a response name select different underlying field names, with
	// no @suffixOnMerge to disambiguate.
	ErrorKindDifferingFieldNamesForResponseName
	// ErrorKindVariableTypeMismatch: the same variable name is declared with
	// differing types across operations and can't be safely renamed.
	ErrorKindVariableTypeMismatch
	// ErrorKindVariableDefaultValueMismatch: the same variable name is
	// declared with differing default values across operations and can't be
	// safely renamed.
	ErrorKindVariableDefaultValueMismatch
)

// Error is the merger's single error type; Kind discriminates which of the
// name fields below is populated, mirroring the Rust original's enum
// variants without Go needing a sum type of its own.
type Error struct {
	Kind ErrorKind

	OperationName string // OperationTypeMismatch
	FragmentName  string // FragmentDefinitionNotFound
	ResponseName  string // ArgumentsNotCompatible, DifferingFieldNamesForResponseName
	VariableName  string // VariableTypeMismatch, VariableDefaultValueMismatch

	Span ast.Span
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrorKindOperationTypeMismatch:
		if e.OperationName != "" {
			return fmt.Sprintf("operation %q does not share an operation type with the others being merged", e.OperationName)
		}
		return "operations being merged do not share an operation type"
	case ErrorKindFragmentDefinitionNotFound:
		return fmt.Sprintf("fragment %q is not defined", e.FragmentName)
	case ErrorKindDirectivesNotSupported:
		return "directive is not supported on a merged operation"
	case ErrorKindArgumentsNotCompatible:
		return fmt.Sprintf("arguments for response name %q are not compatible across merged operations", e.ResponseName)
	case ErrorKindDifferingFieldNamesForResponseName:
		return fmt.Sprintf("response name %q is used for differing field names across merged operations", e.ResponseName)
	case ErrorKindVariableTypeMismatch:
		return fmt.Sprintf("variable $%s is declared with differing types across merged operations", e.VariableName)
	case ErrorKindVariableDefaultValueMismatch:
		return fmt.Sprintf("variable $%s is declared with differing default values across merged operations", e.VariableName)
	default:
		return "operation merge failed"
	}
}

func errOperationTypeMismatch(name string) *Error {
	return &Error{Kind: ErrorKindOperationTypeMismatch, OperationName: name}
}

func errFragmentDefinitionNotFound(name string, span ast.Span) *Error {
	return &Error{Kind: ErrorKindFragmentDefinitionNotFound, FragmentName: name, Span: span}
}

func errDirectivesNotSupported(span ast.Span) *Error {
	return &Error{Kind: ErrorKindDirectivesNotSupported, Span: span}
}

func errArgumentsNotCompatible(responseName string, span ast.Span) *Error {
	return &Error{Kind: ErrorKindArgumentsNotCompatible, ResponseName: responseName, Span: span}
}

func errDifferingFieldNamesForResponseName(responseName string, span ast.Span) *Error {
	return &Error{Kind: ErrorKindDifferingFieldNamesForResponseName, ResponseName: responseName, Span: span}
}

func errVariableTypeMismatch(name string, span ast.Span) *Error {
	return &Error{Kind: ErrorKindVariableTypeMismatch, VariableName: name, Span: span}
}

func errVariableDefaultValueMismatch(name string, span ast.Span) *Error {
	return &Error{Kind: ErrorKindVariableDefaultValueMismatch, VariableName: name, Span: span}
}
