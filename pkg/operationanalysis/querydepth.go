package operationanalysis

// QueryDepth computes the maximum selection-set nesting of an operation.
// Fragment spreads count through their target: a field reached only via a
// spread several levels deep is just as deep as one written inline, since
// AnalyzerContext.walk already flattens fragment boundaries transparently.
type QueryDepth struct{}

func NewQueryDepth() *QueryDepth { return &QueryDepth{} }

// Run returns the maximum Depth any field occurrence reached.
func (a *QueryDepth) Run(ctx *AnalyzerContext) int {
	max := 0
	ctx.walk(func(fv fieldVisit) bool {
		if fv.Depth > max {
			max = fv.Depth
		}
		return true
	})
	return max
}
