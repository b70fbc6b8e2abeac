package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain JSON untouched", `{"a": 1}`, `{"a": 1}`},
		{"json fenced block", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"generic fenced block", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced with surrounding whitespace", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
		{"language identifier skipped", "```javascript\n{\"a\": 1}\n```", `{"a": 1}`},
		{"brace on first line kept", "```\n{\"a\":\n1}\n```", "{\"a\":\n1}"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
