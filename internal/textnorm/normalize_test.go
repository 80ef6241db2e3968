package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMacrons(t *testing.T) {
	assert.Equal(t, Normalize("ngaruawahia"), Normalize("Ngāruawāhia"))
	assert.Equal(t, "ngaruawahia", Normalize("Ngāruawāhia"))
}

func TestNormalizeCases(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \t\n ", ""},
		{"upper", "ROTOKAURI", "rotokauri"},
		{"collapse spaces", "  Forest   Lake\tRoad ", "forest lake road"},
		{"macron upper", "WHĀNAU", "whanau"},
		{"accents", "Café Crème", "cafe creme"},
		{"precomposed vs combining", "ā", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Ngāruawāhia",
		"  Te Awa o Katapaki  ",
		"KŌURA and tuna",
		"Pōkeno Road",
		"",
		"already normal",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("Whāingaroa", "whaingaroa"))
	assert.False(t, Equal("Raglan", "Whaingaroa"))
}

func TestContainsWord(t *testing.T) {
	assert.True(t, ContainsWord("Protect tuna (eel) passage.", "eel"))
	assert.True(t, ContainsWord("Kōura habitat", "koura"))
	assert.False(t, ContainsWord("Steel culverts", "eel"))
	assert.False(t, ContainsWord("combat erosion", "bat"))
	assert.False(t, ContainsWord("anything", ""))
}
