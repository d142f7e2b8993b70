package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"trim and collapse", "  محمد   علي  ", "محمد علي"},
		{"hamza above alef", "أحمد", "احمد"},
		{"hamza below alef", "إبراهيم", "ابراهيم"},
		{"madda alef", "آمنة", "امنة"},
		{"ha to ta marbuta", "مدرسه", "مدرسة"},
		{"alef maqsura", "على", "علي"},
		{"abd prefix split", "عبدالرحمن", "عبد الرحمن"},
		{"abd prefix already spaced", "عبد الرحمن", "عبد الرحمن"},
		{"latin lowercased", "  JOHN  Smith ", "john smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeFoldsVariants(t *testing.T) {
	assert.Equal(t, Normalize("احمد"), Normalize("أحمد"))
	assert.Equal(t, Normalize("عبد الله"), Normalize("عبدالله"))
	assert.Equal(t, Normalize("مدرسة"), Normalize("مدرسه"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"عبدالله",
		"عبدعبدالله",
		"  أحمد   محمد إبراهيم ",
		"مدرسه النور الابتدائيه",
		"Mixed CASE عبدالكريم",
		"علي\tحسن\nكاظم",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
