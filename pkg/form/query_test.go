package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryString(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		keepBlank bool
		expected  [][2]string
	}{
		{
			name:     "single pair",
			query:    "x=1",
			expected: [][2]string{{"x", "1"}},
		},
		{
			name:     "repeated key preserves order",
			query:    "x=1&y=3&x=2",
			expected: [][2]string{{"x", "1"}, {"y", "3"}, {"x", "2"}},
		},
		{
			name:     "semicolon separator",
			query:    "a=1;b=2",
			expected: [][2]string{{"a", "1"}, {"b", "2"}},
		},
		{
			name:     "plus decodes to space",
			query:    "q=hello+world",
			expected: [][2]string{{"q", "hello world"}},
		},
		{
			name:     "percent escapes",
			query:    "q=a%26b&r=%3D",
			expected: [][2]string{{"q", "a&b"}, {"r", "="}},
		},
		{
			name:     "encoded key",
			query:    "a+b=c",
			expected: [][2]string{{"a b", "c"}},
		},
		{
			name:     "blank value dropped by default",
			query:    "x=&y=1",
			expected: [][2]string{{"y", "1"}},
		},
		{
			name:      "blank value kept",
			query:     "x=&y=1",
			keepBlank: true,
			expected:  [][2]string{{"x", ""}, {"y", "1"}},
		},
		{
			name:      "pair without equals",
			query:     "flag",
			keepBlank: true,
			expected:  [][2]string{{"flag", ""}},
		},
		{
			name:     "pair without equals dropped by default",
			query:    "flag&x=1",
			expected: [][2]string{{"x", "1"}},
		},
		{
			name:     "empty segments skipped",
			query:    "&&x=1;;",
			expected: [][2]string{{"x", "1"}},
		},
		{
			name:     "value keeps second equals",
			query:    "x=a=b",
			expected: [][2]string{{"x", "a=b"}},
		},
		{
			name:     "empty query",
			query:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := parseQueryString(tt.query, tt.keepBlank)

			require.Len(t, fields, len(tt.expected))

			for i, pair := range tt.expected {
				assert.Equal(t, pair[0], fields[i].Name)

				text, ok := fields[i].Value.Text()
				require.True(t, ok, "query fields must decode as text")
				assert.Equal(t, pair[1], text)
				assert.Nil(t, fields[i].Filename, "query fields are not file parts")
			}
		})
	}
}

func TestUnescapeQuery(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "passthrough", in: "plain", expected: "plain"},
		{name: "plus", in: "a+b", expected: "a b"},
		{name: "hex escape", in: "a%20b", expected: "a b"},
		{name: "lowercase hex", in: "%2f", expected: "/"},
		{name: "uppercase hex", in: "%2F", expected: "/"},
		{name: "truncated escape kept literally", in: "100%", expected: "100%"},
		{name: "short escape kept literally", in: "a%2", expected: "a%2"},
		{name: "bad hex kept literally", in: "a%zzb", expected: "a%zzb"},
		{name: "mixed", in: "50%25+off%", expected: "50% off%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, unescapeQuery(tt.in))
		})
	}
}
