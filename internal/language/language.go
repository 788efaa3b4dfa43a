package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// wordForms maps plain English language names to their primary subtag.
// Covers the languages that dominate this catalog; anything else must
// arrive as a code or tag.
var wordForms = map[string]string{
	"hindi":     "hi",
	"english":   "en",
	"punjabi":   "pa",
	"tamil":     "ta",
	"telugu":    "te",
	"bengali":   "bn",
	"marathi":   "mr",
	"kannada":   "kn",
	"malayalam": "ml",
	"gujarati":  "gu",
	"urdu":      "ur",
	"bhojpuri":  "bho",
	"assamese":  "as",
	"odia":      "or",
	"spanish":   "es",
	"french":    "fr",
	"korean":    "ko",
	"japanese":  "ja",
}

// Normalize resolves input (a BCP-47 tag, an ISO 639 code or a plain
// English name) to a canonical tag string.
func Normalize(input string) (string, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return "", false
	}
	if code, ok := wordForms[trimmed]; ok {
		trimmed = code
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", false
	}
	return tag.String(), true
}

// Valid reports whether input resolves to a known tag.
func Valid(input string) bool {
	_, ok := Normalize(input)
	return ok
}

// DisplayName returns the English name of a language tag, or the input
// uppercased when it does not resolve.
func DisplayName(tagValue string) string {
	trimmed := strings.TrimSpace(tagValue)
	if trimmed == "" {
		return "Unknown"
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return strings.ToUpper(trimmed)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return tag.String()
}
