// Package astvalidation is the rule engine of spec.md §4.4: a single
// astvisitor.Walker pass over an executable document, with every built-in
// rule (and any caller-supplied one) registered on it at once, each
// accumulating ExternalErrors onto a shared operationreport.Report. Grounded
// on original_source/bluejay-core/src/validation/executable/*.rs's
// Rule/Visitor/Error shapes, carried into this module's
// interface-typed Walker idiom.
package astvalidation

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/graphql-tools/qlcore/pkg/ast"
)

// fragmentClosureCacheSize is the capacity the closures LRU is allocated
// with. FragmentClosure neither reads nor writes that table: it recomputes
// the closure on every call.
const fragmentClosureCacheSize = 256

// fieldPathTypeCacheSize bounds the per-field-path type memo table.
const fieldPathTypeCacheSize = 1024

// Cache is the validator's single-owner lazy structure (spec.md §5: "not
// thread-safe, sharing a validation run across threads unsupported"). It
// resolves fragment definitions by name, computes each fragment's
// transitive fragment-spread closure (with cycle protection), and memoizes
// the type resolved for a given field path so repeated sibling-selection
// lookups don't re-walk the schema.
type Cache struct {
	doc    ast.ExecutableDocument
	schema ast.SchemaDefinition

	fragmentsByName map[string]ast.FragmentDefinition
	closures        *lru.Cache[string, []string]
	fieldPathTypes  *lru.Cache[string, ast.TypeDefinition]
}

// NewCache builds a Cache over doc/schema. schema may be nil for
// schema-unaware rules; fragment-closure computation still works without
// one.
func NewCache(doc ast.ExecutableDocument, schema ast.SchemaDefinition) *Cache {
	byName := make(map[string]ast.FragmentDefinition, len(doc.FragmentDefinitions()))
	for _, f := range doc.FragmentDefinitions() {
		byName[f.FragmentName()] = f
	}
	closures, _ := lru.New[string, []string](fragmentClosureCacheSize)
	fieldPathTypes, _ := lru.New[string, ast.TypeDefinition](fieldPathTypeCacheSize)
	return &Cache{doc: doc, schema: schema, fragmentsByName: byName, closures: closures, fieldPathTypes: fieldPathTypes}
}

// FragmentDefinition resolves a spread's target by name.
func (c *Cache) FragmentDefinition(name string) (ast.FragmentDefinition, bool) {
	f, ok := c.fragmentsByName[name]
	return f, ok
}

// FragmentClosure returns every fragment name transitively spread from
// selectionSet's fragment spreads (including ones nested inside inline
// fragments), deduplicated, in first-seen order. A spread naming a fragment
// that does not exist, or that would revisit a fragment already on the
// current path (a cycle), is simply not expanded further — detecting and
// reporting those conditions is no-undefined-fragments' and
// no-fragment-cycles' job, not the cache's.
func (c *Cache) FragmentClosure(selectionSet ast.SelectionSet) []string {
	var order []string
	seen := make(map[string]bool)
	var visit func(s ast.SelectionSet, onPath map[string]bool)
	visit = func(s ast.SelectionSet, onPath map[string]bool) {
		for _, sel := range s.Selections() {
			switch n := sel.(type) {
			case ast.FragmentSpread:
				name := n.FragmentSpreadName()
				if onPath[name] {
					continue
				}
				if !seen[name] {
					seen[name] = true
					order = append(order, name)
				}
				frag, ok := c.fragmentsByName[name]
				if !ok {
					continue
				}
				onPath[name] = true
				visit(frag.FragmentSelectionSet(), onPath)
				onPath[name] = false
			case ast.InlineFragment:
				visit(n.InlineFragmentSelectionSet(), onPath)
			case ast.Field:
				if sub, ok := n.FieldSubSelectionSet(); ok {
					visit(sub, onPath)
				}
			}
		}
	}
	visit(selectionSet, make(map[string]bool))
	return order
}

// FieldPathType memoizes "what type does response-name-path p resolve to",
// keyed by the caller-supplied path string (typically strings.Join(path,
// "/")). Callers compute the type once and Store it; later lookups for the
// same path (common when several rules independently re-derive sibling
// field types) hit the cache instead of re-walking the schema.
func (c *Cache) FieldPathType(path string) (ast.TypeDefinition, bool) {
	return c.fieldPathTypes.Get(path)
}

func (c *Cache) StoreFieldPathType(path string, t ast.TypeDefinition) {
	c.fieldPathTypes.Add(path, t)
}
