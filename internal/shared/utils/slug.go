package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9_-]+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// MaxSlugLength matches groups.slug VARCHAR(200)
const MaxSlugLength = 200

// GenerateSlug builds a URL slug from a group title
// "Лев Толстой: жизнь" → "lev-tolstoy-zhizn"
func GenerateSlug(input string) string {
	// Step 1: Cyrillic → Latin, then strip remaining accents ("Café" → "Cafe")
	ascii := RemoveDiacritics(Transliterate(input))

	// Step 2: Lowercase, spaces → hyphens
	hyphenated := strings.Join(strings.Fields(strings.ToLower(ascii)), "-")

	// Step 3: Keep only a-z, 0-9, "_" and "-"
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")

	// Step 4: "a--b---c" → "a-b-c", trim hyphens
	trimmed := strings.Trim(hyphenRuns.ReplaceAllString(cleaned, "-"), "-")

	if len(trimmed) > MaxSlugLength {
		trimmed = strings.TrimRight(trimmed[:MaxSlugLength], "-")
	}
	return trimmed
}

// RemoveDiacritics drops combining marks: "Crème brûlée" → "Creme brulee"
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	// Ukrainian / Belarusian
	'є': "ye", 'і': "i", 'ї': "yi", 'ґ': "g", 'ў': "u",
}

// Transliterate rewrites Cyrillic letters with Latin ones, keeping the case
// of the first letter. Other characters are left as they are.
func Transliterate(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	for _, r := range input {
		lower := unicode.ToLower(r)
		latin, ok := cyrillic[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if lower != r && latin != "" {
			latin = strings.ToUpper(latin[:1]) + latin[1:]
		}
		b.WriteString(latin)
	}
	return b.String()
}
