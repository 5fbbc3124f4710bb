package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFragmentNameUniqueness_RejectsDuplicateFragmentName(t *testing.T) {
	report := validate(t, `
		query { person(id: "1") { ...Frag } }
		fragment Frag on Person { name }
		fragment Frag on Person { age }
	`, NewFragmentNameUniqueness)
	require.True(t, report.HasErrors())
}

func TestFragmentNameUniqueness_AcceptsDistinctNames(t *testing.T) {
	report := validate(t, `
		query { person(id: "1") { ...A ...B } }
		fragment A on Person { name }
		fragment B on Person { age }
	`, NewFragmentNameUniqueness)
	require.False(t, report.HasErrors(), report.Error())
}

func TestFragmentTypeExists_RejectsUndefinedTypeCondition(t *testing.T) {
	report := validate(t, `
		query { person(id: "1") { ...Frag } }
		fragment Frag on Nonexistent { name }
	`, NewFragmentTypeExists)
	require.True(t, report.HasErrors())
}

func TestFragmentOnCompositeType_RejectsScalarTypeCondition(t *testing.T) {
	report := validate(t, `
		query { person(id: "1") { ...Frag } }
		fragment Frag on String { name }
	`, NewFragmentOnCompositeType)
	require.True(t, report.HasErrors())
}

func TestFragmentOnCompositeType_AcceptsInterfaceTypeCondition(t *testing.T) {
	report := validate(t, `
		query { person(id: "1") { ...Frag } }
		fragment Frag on Node { id }
	`, NewFragmentOnCompositeType)
	require.False(t, report.HasErrors(), report.Error())
}

func TestFragmentOnCompositeType_RejectsScalarInlineFragmentCondition(t *testing.T) {
	report := validate(t, `
		query {
			person(id: "1") {
				... on String { name }
			}
		}
	`, NewFragmentOnCompositeType)
	require.True(t, report.HasErrors())
}

func TestNoUndefinedFragments_RejectsSpreadOfUnknownFragment(t *testing.T) {
	report := validate(t, `query { person(id: "1") { ...Missing } }`, NewNoUndefinedFragments)
	require.True(t, report.HasErrors())
}

func TestNoUndefinedFragments_AcceptsSpreadOfDefinedFragment(t *testing.T) {
	report := validate(t, `
		query { person(id: "1") { ...Frag } }
		fragment Frag on Person { name }
	`, NewNoUndefinedFragments)
	require.False(t, report.HasErrors(), report.Error())
}

func TestFragmentsMustBeUsed_RejectsUnspreadFragment(t *testing.T) {
	report := validate(t, `
		query { person(id: "1") { name } }
		fragment Frag on Person { age }
	`, NewFragmentsMustBeUsed)
	require.True(t, report.HasErrors())
}

func TestFragmentsMustBeUsed_AcceptsSpreadFragment(t *testing.T) {
	report := validate(t, `
		query { person(id: "1") { ...Frag } }
		fragment Frag on Person { age }
	`, NewFragmentsMustBeUsed)
	require.False(t, report.HasErrors(), report.Error())
}

func TestNoFragmentCycles_RejectsDirectSelfSpread(t *testing.T) {
	report := validate(t, `
		query { person(id: "1") { ...Frag } }
		fragment Frag on Person { ...Frag }
	`, NewNoFragmentCycles)
	require.True(t, report.HasErrors())
}

func TestNoFragmentCycles_RejectsIndirectCycle(t *testing.T) {
	report := validate(t, `
		query { person(id: "1") { ...A } }
		fragment A on Person { friends { ...B } }
		fragment B on Person { friends { ...A } }
	`, NewNoFragmentCycles)
	require.True(t, report.HasErrors())
}

func TestNoFragmentCycles_AcceptsAcyclicSpreads(t *testing.T) {
	report := validate(t, `
		query { person(id: "1") { ...A } }
		fragment A on Person { friends { ...B } }
		fragment B on Person { name }
	`, NewNoFragmentCycles)
	require.False(t, report.HasErrors(), report.Error())
}

func TestPossibleFragmentSpreads_RejectsDisjointInlineFragment(t *testing.T) {
	report := validate(t, `
		query {
			person(id: "1") {
				... on Product { title }
			}
		}
	`, NewPossibleFragmentSpreads)
	require.True(t, report.HasErrors())
}

func TestPossibleFragmentSpreads_AcceptsSpreadOnImplementedInterface(t *testing.T) {
	report := validate(t, `
		query {
			person(id: "1") {
				...Frag
			}
		}
		fragment Frag on Node { id }
	`, NewPossibleFragmentSpreads)
	require.False(t, report.HasErrors(), report.Error())
}

func TestPossibleFragmentSpreads_AcceptsOverlappingUnionMember(t *testing.T) {
	report := validate(t, `
		query {
			search {
				... on Person { name }
			}
		}
	`, NewPossibleFragmentSpreads)
	require.False(t, report.HasErrors(), report.Error())
}

func TestPossibleFragmentSpreads_RejectsFragmentSpreadOnDisjointUnionMember(t *testing.T) {
	report := validate(t, `
		query {
			person(id: "1") {
				...OnProduct
			}
		}
		fragment OnProduct on Product { title }
	`, NewPossibleFragmentSpreads)
	require.True(t, report.HasErrors())
}

func TestFragmentsMustBeUsed_FinishesAfterFullWalk(t *testing.T) {
	// Confirms the Finalizer contract: Validate calls Finish() once the walk
	// completes rather than expecting the rule to decide mid-walk.
	report := validate(t, `
		query { person(id: "1") { name } }
		fragment Unused on Person { age }
	`, NewFragmentsMustBeUsed)
	require.True(t, report.HasErrors())
	require.Contains(t, report.Error(), "Unused")
}
