package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariableUniqueness_RejectsDuplicateVariableName(t *testing.T) {
	report := validate(t, `
		query($id: ID!, $id: ID!) {
			person(id: $id) { name }
		}
	`, NewVariableUniqueness)
	require.True(t, report.HasErrors())
}

func TestVariableUniqueness_AcceptsDistinctNames(t *testing.T) {
	report := validate(t, `
		query($id: ID!, $limit: Int) {
			person(id: $id) { friends(limit: $limit) { name } }
		}
	`, NewVariableUniqueness)
	require.False(t, report.HasErrors(), report.Error())
}

func TestVariablesAreInputTypes_RejectsUndefinedVariableType(t *testing.T) {
	report := validate(t, `
		query($id: Bogus!) {
			person(id: $id) { name }
		}
	`, NewVariablesAreInputTypes)
	require.True(t, report.HasErrors())
}

func TestVariablesAreInputTypes_RejectsObjectTypeAsVariableType(t *testing.T) {
	report := validate(t, `
		query($p: Person) {
			person(id: "1") { name }
		}
	`, NewVariablesAreInputTypes)
	require.True(t, report.HasErrors())
}

func TestVariablesAreInputTypes_AcceptsScalarAndInputObjectTypes(t *testing.T) {
	report := validate(t, `
		query($id: ID!, $filter: PersonFilter) {
			person(id: $id) { name }
			peopleByFilter(filter: $filter) { name }
		}
	`, NewVariablesAreInputTypes)
	require.False(t, report.HasErrors(), report.Error())
}

func TestAllVariableUsesDefined_RejectsUndeclaredVariableReference(t *testing.T) {
	report := validate(t, `
		query {
			person(id: $id) { name }
		}
	`, NewAllVariableUsesDefined)
	require.True(t, report.HasErrors())
}

func TestAllVariableUsesDefined_AcceptsDeclaredVariableReference(t *testing.T) {
	report := validate(t, `
		query($id: ID!) {
			person(id: $id) { name }
		}
	`, NewAllVariableUsesDefined)
	require.False(t, report.HasErrors(), report.Error())
}

func TestAllVariableUsesDefined_RejectsUndeclaredVariableInsideInputObjectField(t *testing.T) {
	report := validate(t, `
		query {
			peopleByFilter(filter: {name: $name}) { name }
		}
	`, NewAllVariableUsesDefined)
	require.True(t, report.HasErrors())
}

func TestAllVariablesUsed_RejectsDeclaredButUnreferencedVariable(t *testing.T) {
	report := validate(t, `
		query($id: ID!, $limit: Int) {
			person(id: $id) { name }
		}
	`, NewAllVariablesUsed)
	require.True(t, report.HasErrors())
}

func TestAllVariablesUsed_AcceptsVariableUsedInsideInputObjectField(t *testing.T) {
	report := validate(t, `
		query($name: String) {
			peopleByFilter(filter: {name: $name}) { name }
		}
	`, NewAllVariablesUsed)
	require.False(t, report.HasErrors(), report.Error())
}

func TestAllVariableUsagesAllowed_RejectsNullableVariableWithoutDefaultAtNonNullPosition(t *testing.T) {
	report := validate(t, `
		query($id: ID) {
			person(id: $id) { name }
		}
	`, NewAllVariableUsagesAllowed)
	require.True(t, report.HasErrors())
}

func TestAllVariableUsagesAllowed_AcceptsNullableVariableWithDefaultAtNonNullPosition(t *testing.T) {
	report := validate(t, `
		query($id: ID = "1") {
			person(id: $id) { name }
		}
	`, NewAllVariableUsagesAllowed)
	require.False(t, report.HasErrors(), report.Error())
}

func TestAllVariableUsagesAllowed_RejectsMismatchedListNesting(t *testing.T) {
	report := validate(t, `
		query($ids: ID!) {
			peopleByIds(ids: $ids) { name }
		}
	`, NewAllVariableUsagesAllowed)
	require.True(t, report.HasErrors())
}

func TestAllVariableUsagesAllowed_AcceptsExactTypeMatch(t *testing.T) {
	report := validate(t, `
		query($ids: [ID!]!) {
			peopleByIds(ids: $ids) { name }
		}
	`, NewAllVariableUsagesAllowed)
	require.False(t, report.HasErrors(), report.Error())
}
