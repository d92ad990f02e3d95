package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Лев Толстой":          "lev-tolstoy",
		"Щи да каша":           "shchi-da-kasha",
		"Объявления, новости!": "obyavleniya-novosti",
		"Crème brûlée":         "creme-brulee",
		"  Cats   and  Dogs  ": "cats-and-dogs",
		"already-a_slug":       "already-a_slug",
		"--- ---":              "",
		"Ёжик в тумане 2":      "ezhik-v-tumane-2",
		"Київ":                 "kiyiv",
	}

	for in, want := range cases {
		assert.Equal(t, want, GenerateSlug(in), "input %q", in)
	}
}

func TestGenerateSlug_Truncates(t *testing.T) {
	slug := GenerateSlug(strings.Repeat("ab ", 150))
	assert.LessOrEqual(t, len(slug), MaxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestTransliterate_KeepsCase(t *testing.T) {
	assert.Equal(t, "Zhuk i Yozh", Transliterate("Жук и Yozh"))
}
