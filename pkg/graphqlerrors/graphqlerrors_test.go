package graphqlerrors

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/graphql-tools/qlcore/pkg/ast"
	"github.com/graphql-tools/qlcore/pkg/operationreport"
)

func TestFormatErrors_PointsCaretAtColumn(t *testing.T) {
	source := "query {\n  bogus\n}"
	err := operationreport.AtSpan("Field 'bogus' does not exist on type 'Query'", ast.Span{Start: 10, End: 15})

	out := FormatErrors(source, []operationreport.ExternalError{err})
	require.Contains(t, out, "line 2, column 3")
	require.Contains(t, out, "  bogus")
	require.Contains(t, out, "^")
}

func TestToGraphQLErrors_ProducesLocationsArray(t *testing.T) {
	source := "query {\n  bogus\n}"
	err := operationreport.AtSpan("Field 'bogus' does not exist on type 'Query'", ast.Span{Start: 10, End: 15})

	out, jsonErr := ToGraphQLErrors(source, []operationreport.ExternalError{err})
	require.NoError(t, jsonErr)

	require.Equal(t, "Field 'bogus' does not exist on type 'Query'", gjson.GetBytes(out, "0.message").String())
	require.Equal(t, int64(2), gjson.GetBytes(out, "0.locations.0.line").Int())
	require.Equal(t, int64(3), gjson.GetBytes(out, "0.locations.0.column").Int())
}
