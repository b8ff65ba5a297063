package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n ", ""},
		{"trims", "  Paris  ", "paris"},
		{"lower-cases", "TRUE", "true"},
		{"collapses runs", "the   quick\t\tbrown\n fox", "the quick brown fox"},
		{"already canonical", "paris", "paris"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "  Mixed Case  Input ", "one", "A\tB\nC", "  ", "ALL CAPS SENTENCE"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}
