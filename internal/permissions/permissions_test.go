package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		expected []Permission
	}{
		{
			name:     "known codes preserve input order",
			raw:      []string{"RuleRead", "PolicyRead", "AlertModify"},
			expected: []Permission{RuleRead, PolicyRead, AlertModify},
		},
		{
			name:     "unknown codes are dropped silently",
			raw:      []string{"RuleRead", "TotallyMadeUp", "PolicyRead"},
			expected: []Permission{RuleRead, PolicyRead},
		},
		{
			name:     "all unknown yields empty",
			raw:      []string{"Nope", "AlsoNope"},
			expected: nil,
		},
		{
			name:     "summary read maps to metrics read",
			raw:      []string{"SummaryRead"},
			expected: []Permission{MetricsRead},
		},
		{
			name:     "empty input",
			raw:      nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Convert(tt.raw))
		})
	}
}

func TestAnyOf(t *testing.T) {
	spec := AnyOf(RuleRead, PolicyRead)
	assert.Equal(t, Spec{"any_of": []string{"View Rules", "View Policies"}}, spec)
}

func TestAllOf(t *testing.T) {
	spec := AllOf(AlertModify)
	assert.Equal(t, Spec{"all_of": []string{"Manage Alerts"}}, spec)
}

func TestSpecMixedInput(t *testing.T) {
	// Raw display strings and enum values may be mixed; both render as
	// display strings in the given order.
	spec := AllOf(RuleRead, "Custom Permission", MetricsRead)
	assert.Equal(t, Spec{"all_of": []string{"View Rules", "Custom Permission", "Read Panther Metrics"}}, spec)
}

func TestSpecEmpty(t *testing.T) {
	assert.Equal(t, Spec{"any_of": []string{}}, AnyOf())
}
