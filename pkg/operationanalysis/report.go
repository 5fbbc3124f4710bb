package operationanalysis

import (
	"github.com/google/uuid"
	"github.com/jensneuse/abstractlogger"
)

// Report is the tuple output of running every built-in analyzer over one
// operation in a single call, per spec.md §4.5 ("multiple analyzers compose
// as a tuple producing a tuple output").
type Report struct {
	QueryDepth     int
	InputSize      int
	ComplexityCost int
	Deprecations   []DeprecatedUse
	VariableErrors []VariableValueError
}

// Analyze runs QueryDepth, InputSize, ComplexityCost, Deprecation, and
// VariableValuesAreValid over ctx in one call. scaleFactor may be nil (falls
// back to DefaultScaleFactorComputer); coerce may be nil (custom scalars are
// then accepted without further checking); scalarWeights may be nil (every
// scalar leaf then costs the InputSize default of 1).
//
// logger may be nil, in which case nothing is logged. As with
// astvalidation.Validate, every call is stamped with its own correlation ID
// so log lines from concurrent callers (pkg/batch) can be told apart.
func Analyze(ctx *AnalyzerContext, scaleFactor ScaleFactorComputer, coerce ScalarCoercionHook, scalarWeights map[string]int, logger abstractlogger.Logger) (*Report, error) {
	if logger == nil {
		logger = abstractlogger.Noop{}
	}
	correlationID := uuid.New().String()
	logger.Debug("operationanalysis: analyze start", abstractlogger.String("correlation_id", correlationID))

	depth := NewQueryDepth().Run(ctx)

	size, err := NewInputSize(scalarWeights).Run(ctx)
	if err != nil {
		logger.Error("operationanalysis: analyze failed", abstractlogger.String("correlation_id", correlationID), abstractlogger.Error(err))
		return nil, err
	}

	cost, err := NewComplexityCost(scaleFactor).Run(ctx)
	if err != nil {
		logger.Error("operationanalysis: analyze failed", abstractlogger.String("correlation_id", correlationID), abstractlogger.Error(err))
		return nil, err
	}

	deprecations := NewDeprecation().Run(ctx)
	variableErrors := NewVariableValuesAreValid(coerce).Run(ctx)

	logger.Debug("operationanalysis: analyze done", abstractlogger.String("correlation_id", correlationID), abstractlogger.Int("complexity_cost", cost))

	return &Report{
		QueryDepth:     depth,
		InputSize:      size,
		ComplexityCost: cost,
		Deprecations:   deprecations,
		VariableErrors: variableErrors,
	}, nil
}
