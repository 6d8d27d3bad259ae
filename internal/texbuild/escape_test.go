package texbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape_EmptyString(t *testing.T) {
	assert.Equal(t, "", Escape(""))
}

func TestEscape_NoSpecialCharacters(t *testing.T) {
	text := "Heeft uw bedrijf een breedbandverbinding"
	assert.Equal(t, text, Escape(text))
}

func TestEscape_Ampersand(t *testing.T) {
	assert.Equal(t, "inkoop \\& verkoop", Escape("inkoop & verkoop"))
}

func TestEscape_Percent(t *testing.T) {
	assert.Equal(t, "100\\% van de omzet", Escape("100% van de omzet"))
}

func TestEscape_Underscore(t *testing.T) {
	assert.Equal(t, "gebruik\\_ict", Escape("gebruik_ict"))
}

func TestEscape_Backslash(t *testing.T) {
	assert.Equal(t, "a\\textbackslash{}b", Escape("a\\b"))
}

func TestEscape_Unicode(t *testing.T) {
	assert.Equal(t, "enquête 100\\%", Escape("enquête 100%"))
}
