package ast

import "github.com/cespare/xxhash/v2"

// Indexable is implemented by entities that carry a hashable, totally-ordered
// identity used for graph keying: fragment definitions and schema type-table
// entries. Per spec.md §9, identity is the entity's name (unique by
// invariant); no object-to-object back-pointers ever appear in the data
// model, so cycles (e.g. an interface-implementing object referencing the
// interface that lists it) live only in name-keyed lookup structures.
type Indexable interface {
	IndexableName() string
}

// Hash returns a stable, order-independent identity hash for an Indexable,
// suitable for use as a map/set key alongside (or instead of) the raw name
// when callers want a fixed-width key.
func Hash(i Indexable) uint64 {
	return xxhash.Sum64String(i.IndexableName())
}

// Less provides the "totally-ordered" half of Indexable's contract: a stable
// lexical order over names, used when a deterministic iteration order over a
// name-keyed collection matters (e.g. error-message ordering).
func Less(a, b Indexable) bool {
	return a.IndexableName() < b.IndexableName()
}
