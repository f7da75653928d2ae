package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeDate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected *Date
	}{
		{
			name:     "empty input omitted",
			input:    "",
			expected: nil,
		},
		{
			name:     "whitespace only omitted",
			input:    "   ",
			expected: nil,
		},
		{
			name:     "full date",
			input:    "1986-09-21",
			expected: &Date{Value: "1986-09-21", Year: 1986, Month: 9, Day: 21},
		},
		{
			name:     "year and month only",
			input:    "1986-09",
			expected: &Date{Value: "1986-09", Year: 1986, Month: 9},
		},
		{
			name:     "bare year",
			input:    "1986",
			expected: &Date{Value: "1986", Year: 1986},
		},
		{
			name:     "slash separated year month",
			input:    "1986/9",
			expected: &Date{Value: "1986/9", Year: 1986, Month: 9},
		},
		{
			name:     "month out of range keeps value only",
			input:    "1986-13",
			expected: &Date{Value: "1986-13"},
		},
		{
			name:     "unparseable keeps value only",
			input:    "sometime in the 80s",
			expected: &Date{Value: "sometime in the 80s"},
		},
		{
			name:     "long form date",
			input:    "Sep 21, 1986",
			expected: &Date{Value: "Sep 21, 1986", Year: 1986, Month: 9, Day: 21},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecomposeDate(tt.input))
		})
	}
}

func TestDecomposeDateImplausibleYear(t *testing.T) {
	t.Parallel()
	d := DecomposeDate("0086-09-21")
	require.NotNil(t, d)
	assert.Equal(t, "0086-09-21", d.Value)
	assert.Zero(t, d.Year)
	assert.Zero(t, d.Month)
	assert.Zero(t, d.Day)
}
