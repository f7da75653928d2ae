package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCrossRef(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain name untouched",
			input:    "Chris Claremont",
			expected: "Chris Claremont",
		},
		{
			name:     "brackets stripped",
			input:    "X-Men [vol. 2]",
			expected: "X-Men vol. 2",
		},
		{
			name:     "pipe stripped",
			input:    "Days of Future Past|alias",
			expected: "Days of Future Pastalias",
		},
		{
			name:     "hash and caret stripped",
			input:    "Issue #141 ^1",
			expected: "Issue 141 1",
		},
		{
			name:     "whitespace collapsed and trimmed",
			input:    "  Uncanny   X-Men  ",
			expected: "Uncanny X-Men",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeCrossRef(tt.input)
			assert.Equal(t, tt.expected, result)
			assert.NotContains(t, result, "[")
			assert.NotContains(t, result, "]")
			assert.NotContains(t, result, "|")
			assert.NotContains(t, result, "#")
			assert.NotContains(t, result, "^")
		})
	}
}

func TestSanitizeTag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercased",
			input:    "StoryArc",
			expected: "storyarc",
		},
		{
			name:     "spaces become hyphens",
			input:    "Days of Future Past",
			expected: "days-of-future-past",
		},
		{
			name:     "punctuation stripped",
			input:    "Marvel Comics, Inc.",
			expected: "marvel-comics-inc",
		},
		{
			name:     "repeated hyphens collapsed",
			input:    "a -- b",
			expected: "a-b",
		},
		{
			name:     "leading and trailing hyphens trimmed",
			input:    "-weird-",
			expected: "weird",
		},
		{
			name:     "empty result falls back",
			input:    "???",
			expected: "unknown",
		},
		{
			name:     "empty input falls back",
			input:    "",
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeTag(tt.input))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain name untouched",
			input:    "Uncanny X-Men 141",
			expected: "Uncanny X-Men 141",
		},
		{
			name:     "illegal characters stripped",
			input:    `What If <#141> a/b\c|d:e"f*g?`,
			expected: "What If 141 abcdefg",
		},
		{
			name:     "bracket syntax stripped",
			input:    "Uncanny X-Men [1981] ^2",
			expected: "Uncanny X-Men 1981 2",
		},
		{
			name:     "trailing dots trimmed",
			input:    "To Be Continued...",
			expected: "To Be Continued",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}
