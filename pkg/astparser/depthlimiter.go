package astparser

// DefaultMaxDepth is the default parser recursion cap (spec.md §4.2/§6).
const DefaultMaxDepth = 2000

// maxDepthExceededMessage is the message of errMaxDepthExceeded, and of the
// operationreport.ExternalError the parser reports (via
// Tokens.UnexpectedToken) when a descent would exceed the configured cap.
const maxDepthExceededMessage = "Maximum nesting depth exceeded"

// DepthLimiter threads a recursion budget through every recursive parser
// entry point. It is grounded directly on
// original_source/bluejay-parser/src/ast/depth_limiter.rs: `Bump` returns a
// *new* limiter one level deeper rather than mutating in place, so a sibling
// call cannot accidentally reuse a deeper call's budget by holding onto a
// stale reference. Go cannot forbid copying a struct the way Rust's missing
// Clone/Copy impls do, so the convention enforced here is purely
// call-discipline: always shadow the limiter you bumped
// (`dl, err := dl.Bump()`) and never reuse the pre-bump value after a deeper
// call returns.
type DepthLimiter struct {
	maxDepth     int
	currentDepth int
}

func NewDepthLimiter(maxDepth int) DepthLimiter {
	return DepthLimiter{maxDepth: maxDepth}
}

// Bump returns a limiter one level deeper, or an error if the cap is already
// reached.
func (d DepthLimiter) Bump() (DepthLimiter, error) {
	if d.currentDepth >= d.maxDepth {
		return DepthLimiter{}, errMaxDepthExceeded{}
	}
	return DepthLimiter{maxDepth: d.maxDepth, currentDepth: d.currentDepth + 1}, nil
}

type errMaxDepthExceeded struct{}

func (errMaxDepthExceeded) Error() string { return maxDepthExceededMessage }

func isMaxDepthExceeded(err error) bool {
	_, ok := err.(errMaxDepthExceeded)
	return ok
}
