package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperationNameUniqueness_RejectsDuplicateOperationName(t *testing.T) {
	report := validate(t, `
		query Get { person(id: "1") { name } }
		query Get { person(id: "2") { name } }
	`, NewOperationNameUniqueness)
	require.True(t, report.HasErrors())
}

func TestOperationNameUniqueness_AcceptsDistinctNames(t *testing.T) {
	report := validate(t, `
		query GetOne { person(id: "1") { name } }
		query GetTwo { person(id: "2") { name } }
	`, NewOperationNameUniqueness)
	require.False(t, report.HasErrors(), report.Error())
}

func TestLoneAnonymousOperation_RejectsAnonymousAlongsideNamedOperation(t *testing.T) {
	report := validate(t, `
		{ person(id: "1") { name } }
		query Named { person(id: "2") { name } }
	`, NewLoneAnonymousOperation)
	require.True(t, report.HasErrors())
}

func TestLoneAnonymousOperation_AcceptsSingleAnonymousOperation(t *testing.T) {
	report := validate(t, `{ person(id: "1") { name } }`, NewLoneAnonymousOperation)
	require.False(t, report.HasErrors(), report.Error())
}

func TestSubscriptionRootSingleField_RejectsMultipleRootFields(t *testing.T) {
	report := validate(t, `
		subscription {
			person(id: "1") { name }
			search { __typename }
		}
	`, NewSubscriptionRootSingleField)
	require.True(t, report.HasErrors())
}

func TestSubscriptionRootSingleField_IgnoresTypenameWhenCountingRootFields(t *testing.T) {
	report := validate(t, `
		subscription {
			__typename
			person(id: "1") { name }
		}
	`, NewSubscriptionRootSingleField)
	require.False(t, report.HasErrors(), report.Error())
}

func TestSubscriptionRootSingleField_AcceptsQueryWithMultipleRootFields(t *testing.T) {
	report := validate(t, `
		query {
			person(id: "1") { name }
			search { __typename }
		}
	`, NewSubscriptionRootSingleField)
	require.False(t, report.HasErrors(), report.Error())
}

func TestValidateDefault_RunsEveryBuiltinRuleOverAValidDocument(t *testing.T) {
	schema := buildTestSchema(t)
	doc := parseOp(t, `
		query GetPerson($id: ID!) {
			person(id: $id) {
				name
				...PersonAge
			}
		}
		fragment PersonAge on Person {
			age
		}
	`)
	report := ValidateDefault(doc, schema)
	require.False(t, report.HasErrors(), report.Error())
}

func TestValidateDefault_CatchesViolationFromAnyBuiltinRule(t *testing.T) {
	schema := buildTestSchema(t)
	doc := parseOp(t, `query { person(id: "1") { bogus } }`)
	report := ValidateDefault(doc, schema)
	require.True(t, report.HasErrors())
}
