package arxiv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAuthorName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "John Smith", "john_smith"},
		{"accents stripped", "José García", "jose_garcia"},
		{"unaccented equivalent", "Jose Garcia", "jose_garcia"},
		{"hyphen preserved", "Mary-Jane Watson", "mary-jane_watson"},
		{"extra whitespace", "  John   Smith  ", "john_smith"},
		{"punctuation dropped", "J. R. R. Tolkien", "j_r_r_tolkien"},
		{"apostrophe", "O'Brien", "obrien"},
		{"umlaut", "Jürgen Müller", "jurgen_muller"},
		{"empty", "", ""},
		{"already a slug", "jose_garcia", "jose_garcia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAuthorName(tt.input))
		})
	}
}

func TestNormalizeAuthorNameIdempotent(t *testing.T) {
	inputs := []string{
		"José García",
		"Mary-Jane Watson",
		"  John   Smith  ",
		"Łukasz Kaiser",
	}

	for _, input := range inputs {
		once := NormalizeAuthorName(input)
		assert.Equal(t, once, NormalizeAuthorName(once), "input %q", input)
	}
}
