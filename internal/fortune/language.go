package fortune

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

var languageISO6393 = map[string]string{
	LanguageKorean:  "kor",
	LanguageEnglish: "eng",
}

// DetectLanguageCode returns the ISO 639-3 code of text, "und" when unsure.
func DetectLanguageCode(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6393()
	if code == "" {
		return "und"
	}
	if info.IsReliable() || info.Confidence >= 0.3 {
		return code
	}
	return "und"
}

// MatchesLanguage reports whether the narrative is written in the prompt language.
// Undetermined text counts as a match.
func MatchesLanguage(text, lang string) bool {
	detected := DetectLanguageCode(text)
	if detected == "" || detected == "und" {
		return true
	}
	return detected == languageISO6393[ResolveLanguage(lang)]
}
