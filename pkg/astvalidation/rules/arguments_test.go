package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgumentNamesUnique_RejectsDuplicateArgument(t *testing.T) {
	report := validate(t, `query { person(id: "1", id: "2") { name } }`, NewArgumentNamesUnique)
	require.True(t, report.HasErrors())
}

func TestArgumentNamesUnique_AcceptsDistinctArguments(t *testing.T) {
	report := validate(t, `query { peopleByFilter(filter: {name: "a"}, color: RED) { name } }`, NewArgumentNamesUnique)
	require.False(t, report.HasErrors(), report.Error())
}

func TestRequiredArgumentsPresent_RejectsMissingRequiredArgument(t *testing.T) {
	report := validate(t, `query { person { name } }`, NewRequiredArgumentsPresent)
	require.True(t, report.HasErrors())
}

func TestRequiredArgumentsPresent_DefaultedArgumentIsNotRequired(t *testing.T) {
	report := validate(t, `query { person(id: "1") { friends { name } } }`, NewRequiredArgumentsPresent)
	require.False(t, report.HasErrors(), report.Error())
}

func TestArgumentValuesMatchInputType_RejectsNullForNonNullArgument(t *testing.T) {
	report := validate(t, `query { person(id: null) { name } }`, NewArgumentValuesMatchInputType)
	require.True(t, report.HasErrors())
}

func TestArgumentValuesMatchInputType_AllowsVariableValuedArgument(t *testing.T) {
	report := validate(t, `query($id: ID!) { person(id: $id) { name } }`, NewArgumentValuesMatchInputType)
	require.False(t, report.HasErrors(), report.Error())
}

func TestArgumentValuesMatchInputType_RejectsUnknownEnumMember(t *testing.T) {
	report := validate(t, `query { peopleByFilter(color: PURPLE) { name } }`, NewArgumentValuesMatchInputType)
	require.True(t, report.HasErrors())
}

func TestArgumentValuesMatchInputType_AcceptsKnownEnumMember(t *testing.T) {
	report := validate(t, `query { peopleByFilter(color: RED) { name } }`, NewArgumentValuesMatchInputType)
	require.False(t, report.HasErrors(), report.Error())
}

func TestArgumentValuesMatchInputType_RejectsUnknownInputObjectField(t *testing.T) {
	report := validate(t, `query { peopleByFilter(filter: {nickname: "x"}) { name } }`, NewArgumentValuesMatchInputType)
	require.True(t, report.HasErrors())
}

func TestArgumentValuesMatchInputType_RejectsWrongShapedInputObjectFieldValue(t *testing.T) {
	report := validate(t, `query { peopleByFilter(filter: {minAge: RED}) { name } }`, NewArgumentValuesMatchInputType)
	require.True(t, report.HasErrors())
}

func TestArgumentValuesMatchInputType_AcceptsValidInputObject(t *testing.T) {
	report := validate(t, `query { peopleByFilter(filter: {name: "a", minAge: 3}) { name } }`, NewArgumentValuesMatchInputType)
	require.False(t, report.HasErrors(), report.Error())
}

func TestArgumentValuesMatchInputType_RejectsUnknownArgument(t *testing.T) {
	report := validate(t, `query { person(id: "1", bogus: 1) { name } }`, NewArgumentValuesMatchInputType)
	require.True(t, report.HasErrors())
}

func TestArgumentValuesMatchInputType_SingleValueCoercesIntoList(t *testing.T) {
	report := validate(t, `query { peopleByIds(ids: "1") { name } }`, NewArgumentValuesMatchInputType)
	require.False(t, report.HasErrors(), report.Error())
}

func TestArgumentValuesMatchInputType_AcceptsExplicitListForListArgument(t *testing.T) {
	report := validate(t, `query { peopleByIds(ids: ["1", "2"]) { name } }`, NewArgumentValuesMatchInputType)
	require.False(t, report.HasErrors(), report.Error())
}
