package fortune

import (
	"strings"

	"github.com/ichi0g0y/lucky-by-birthday/internal/types"
)

const (
	LanguageKorean  = "ko"
	LanguageEnglish = "en"
)

// ComposePrompt builds the single sentence sent to the model.
// Hour and minute clauses are included only when provided.
func ComposePrompt(fields types.BirthFields, lang string) string {
	var b strings.Builder

	switch ResolveLanguage(lang) {
	case LanguageEnglish:
		b.WriteString("I am born on ")
		b.WriteString(string(fields.Year) + " year ")
		b.WriteString(string(fields.Month) + " month ")
		b.WriteString(string(fields.Day) + " day")
		if fields.Hour != "" {
			b.WriteString(" " + string(fields.Hour) + " hour")
		}
		if fields.Minute != "" {
			b.WriteString(" " + string(fields.Minute) + " minute")
		}
	default:
		b.WriteString("나는 ")
		b.WriteString(string(fields.Year) + "년 ")
		b.WriteString(string(fields.Month) + "월 ")
		b.WriteString(string(fields.Day) + "일")
		if fields.Hour != "" {
			b.WriteString(" " + string(fields.Hour) + "시")
		}
		if fields.Minute != "" {
			b.WriteString(" " + string(fields.Minute) + "분")
		}
		b.WriteString(" 생이다")
	}

	return b.String()
}

func ResolveLanguage(value string) string {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case LanguageEnglish, "eng", "english":
		return LanguageEnglish
	default:
		return LanguageKorean
	}
}
