package operationmerge

import "github.com/graphql-tools/qlcore/pkg/ast"

// The only two directives recognized anywhere in a mergeable document
// (spec.md §4.6 step 6), grounded on
// original_source/bluejay-operation-merger/src/directives.rs's
// EmptyDirectives::ensure_empty.
const (
	directiveSuffixOnMerge  = "suffixOnMerge"
	directiveReplaceOnMerge = "replaceOnMerge"
)

// checkFieldDirectives validates the directives on a field selection:
// @suffixOnMerge is the only one permitted here, and its presence signals
// that a response-name conflict involving this field should be resolved by
// suffixing rather than rejected. Any other directive, at any location
// other than field or variable-definition, is DirectivesNotSupported.
func checkFieldDirectives(directives []ast.DirectiveApplication) (suffix bool, err *Error) {
	for _, d := range directives {
		if d.DirectiveName() != directiveSuffixOnMerge {
			return false, errDirectivesNotSupported(d.Span())
		}
		suffix = true
	}
	return suffix, nil
}

// checkVariableDirectives validates the directives on a variable
// definition: @suffixOnMerge asks for renaming on collision, @replaceOnMerge
// asks for this operation's declaration to win outright instead.
func checkVariableDirectives(directives []ast.DirectiveApplication) (suffix, replace bool, err *Error) {
	for _, d := range directives {
		switch d.DirectiveName() {
		case directiveSuffixOnMerge:
			suffix = true
		case directiveReplaceOnMerge:
			replace = true
		default:
			return false, false, errDirectivesNotSupported(d.Span())
		}
	}
	return suffix, replace, nil
}

// checkNoDirectives rejects any directive at a location where neither
// recognized directive is valid (inline fragments, fragment spreads,
// fragment definitions, operations themselves).
func checkNoDirectives(directives []ast.DirectiveApplication) *Error {
	if len(directives) == 0 {
		return nil
	}
	return errDirectivesNotSupported(directives[0].Span())
}
