package prompts

import "unicode"

// Language selects the localized prompt and template variant.
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// Detect picks the language variant for a user message. Presence of any
// CJK-script rune selects Chinese; everything else falls back to English.
// This is a heuristic, not a language classifier; a mixed-script message
// gets the Chinese variant.
func Detect(s string) Language {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) ||
			unicode.Is(unicode.Hiragana, r) ||
			unicode.Is(unicode.Katakana, r) ||
			unicode.Is(unicode.Hangul, r) {
			return LangChinese
		}
	}
	return LangEnglish
}
