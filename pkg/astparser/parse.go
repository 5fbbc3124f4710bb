// Package astparser turns a lexer.Token stream into the ast capability
// types: ParseExecutableDocument for operations/fragments, and
// ParseDefinitionDocument for schema definitions (spec.md §4.2). Parsing
// never panics and never stops at the first error: a malformed definition
// is skipped (recovering at the next plausible top-level boundary) and
// every accumulated diagnostic is returned on the operationreport.Report.
package astparser

import (
	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/lexer"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

// Config configures a parse run.
type Config struct {
	// RubyCompatibility is forwarded to the lexer unchanged; see
	// lexer.Config.RubyCompatibility.
	RubyCompatibility bool
	// MaxDepth caps selection-set/value/type-reference recursion depth. Zero
	// selects DefaultMaxDepth.
	MaxDepth int
}

func (c Config) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

func (c Config) lexerConfig() lexer.Config {
	return lexer.Config{RubyCompatibility: c.RubyCompatibility}
}

// ParseExecutableDocument parses src as an executable document: a sequence
// of operation and fragment definitions. The returned document is always
// non-nil (possibly with fewer definitions than the source text suggested,
// if some failed to parse); callers must check report.HasErrors() before
// trusting it fully reflects src.
func ParseExecutableDocument(src string, config Config) (*ast.ParsedExecutableDocument, *operationreport.Report) {
	report := &operationreport.Report{}
	tokens := NewTokens(lexer.New(src, config.lexerConfig()), report)
	dl := NewDepthLimiter(config.maxDepth())
	defs := parseExecutableDefinitions(tokens, dl, report)
	return ast.NewParsedExecutableDocument(defs), report
}

// ParseDefinitionDocument parses src as a schema-definition document: a
// sequence of schema/type/directive definitions. The root operation type
// names default to the "Query"/"Mutation"/"Subscription" convention unless
// overridden by a `schema { ... }` block, per spec.md §3.3.
func ParseDefinitionDocument(src string, config Config) (*ast.ParsedDefinitionDocument, *operationreport.Report) {
	report := &operationreport.Report{}
	tokens := NewTokens(lexer.New(src, config.lexerConfig()), report)
	dl := NewDepthLimiter(config.maxDepth())
	doc := parseDefinitionDocument(tokens, dl, report)
	return doc, report
}
