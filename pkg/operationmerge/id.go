package operationmerge

import "go.uber.org/atomic"

// IdGenerator is a monotonic, process-local counter used to mint
// disambiguating suffixes for renamed variables and response names
// (spec.md §4.6 step 3). Grounded on
// original_source/bluejay-operation-merger/src/id.rs's
// `IdGenerator{next_id: Rc<AtomicUsize>}`; the counter is atomic so a
// generator handle can be cloned cheaply, not because callers are expected
// to share one across goroutines (spec.md §5: the core is single-threaded).
type IdGenerator struct {
	next *atomic.Uint64
}

// NewIdGenerator allocates a fresh generator starting at 0.
func NewIdGenerator() *IdGenerator {
	return &IdGenerator{next: atomic.NewUint64(0)}
}

// Next returns the next id in sequence, starting from 0.
func (g *IdGenerator) Next() uint64 {
	return g.next.Add(1) - 1
}

// Clone returns a handle sharing this generator's counter, so nested merge
// helpers can mint ids from the same sequence without threading the
// original pointer through every call.
func (g *IdGenerator) Clone() *IdGenerator {
	return &IdGenerator{next: g.next}
}
