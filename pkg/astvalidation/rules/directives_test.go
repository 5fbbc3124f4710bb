package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectiveExists_RejectsUndeclaredDirective(t *testing.T) {
	report := validate(t, `query { person(id: "1") { name @bogus } }`, NewDirectiveExists)
	require.True(t, report.HasErrors())
}

func TestDirectiveExists_AcceptsDeclaredDirective(t *testing.T) {
	report := validate(t, `query { person(id: "1") { name @cached(ttl: 5) } }`, NewDirectiveExists)
	require.False(t, report.HasErrors(), report.Error())
}

func TestDirectiveValidLocation_RejectsDirectiveAtDisallowedLocation(t *testing.T) {
	report := validate(t, `
		query {
			person(id: "1") {
				...Frag @cached(ttl: 1)
			}
		}
		fragment Frag on Person { name }
	`, NewDirectiveValidLocation)
	require.True(t, report.HasErrors())
}

func TestDirectiveValidLocation_AcceptsDirectiveAtAllowedLocation(t *testing.T) {
	report := validate(t, `query { person(id: "1") { name @cached(ttl: 1) } }`, NewDirectiveValidLocation)
	require.False(t, report.HasErrors(), report.Error())
}

func TestDirectiveValidLocation_AllowsDirectiveDeclaredForMultipleLocations(t *testing.T) {
	report := validate(t, `
		query {
			person(id: "1") {
				...Frag @important
			}
		}
		fragment Frag on Person { name }
	`, NewDirectiveValidLocation)
	require.False(t, report.HasErrors(), report.Error())
}

func TestNonRepeatableDirectiveNotRepeated_RejectsDuplicateApplication(t *testing.T) {
	report := validate(t, `query { person(id: "1") { name @cached(ttl: 1) @cached(ttl: 2) } }`, NewNonRepeatableDirectiveNotRepeated)
	require.True(t, report.HasErrors())
}

func TestNonRepeatableDirectiveNotRepeated_AllowsRepeatableDirectiveTwice(t *testing.T) {
	report := validate(t, `
		query {
			person(id: "1") {
				...Frag @important @important
			}
		}
		fragment Frag on Person { name }
	`, NewNonRepeatableDirectiveNotRepeated)
	require.False(t, report.HasErrors(), report.Error())
}

func TestDirectiveArgumentsValid_IsAlwaysANoOp(t *testing.T) {
	// directive-arguments-valid is a deliberate no-op umbrella; argument
	// checks on directives are owned by argument-names-unique and friends.
	report := validate(t, `query { person(id: "1") { name @cached } }`, NewDirectiveArgumentsValid)
	require.False(t, report.HasErrors(), report.Error())
}
