package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "only separators", input: " , ,", expected: nil},
		{name: "single", input: "kafka:9092", expected: []string{"kafka:9092"}},
		{name: "trims whitespace", input: " a , b,c ", expected: []string{"a", "b", "c"}},
		{name: "drops repeats keeping order", input: "b,a,b,c,a", expected: []string{"b", "a", "c"}},
		{name: "case sensitive", input: "A,a", expected: []string{"A", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.input))
		})
	}
}
