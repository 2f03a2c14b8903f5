package questions

import (
	"testing"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		limit    int
		expected []string
	}{
		{
			name:     "numbered list with preamble",
			raw:      "Here are your questions:\n1. Who uses it?\n2) What must it do?\n\n3. How is success measured?",
			limit:    5,
			expected: []string{"Who uses it?", "What must it do?", "How is success measured?"},
		},
		{
			name:     "dashes and asterisks",
			raw:      "- First?\n* Second?",
			limit:    5,
			expected: []string{"First?", "Second?"},
		},
		{
			name:     "limit applies",
			raw:      "1. a\n2. b\n3. c\n4. d\n5. e\n6. f\n7. g",
			limit:    5,
			expected: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "markers need whitespace",
			raw:      "2024.Plans\n-dash\n1.  spaced",
			limit:    5,
			expected: []string{"spaced"},
		},
		{
			name:     "junk",
			raw:      "I cannot help with that.",
			limit:    5,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Extract(tt.raw, tt.limit))
		})
	}
}

func TestFallback(t *testing.T) {
	got := Fallback(domain.Project{Name: "Task App"})
	assert.Len(t, got, 5)
	assert.Equal(t, "What are the primary goals and objectives of Task App?", got[0])

	unnamed := Fallback(domain.Project{})
	assert.Contains(t, unnamed[0], domain.DefaultProjectName)
}
