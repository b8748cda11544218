package nutrition

import "strings"

// Language selects the locale used for prompts and fallback text.
type Language string

const (
	English Language = "english"
	Hebrew  Language = "hebrew"
)

// ParseLanguage maps a raw selector onto a supported language.
// Anything that is not Hebrew is treated as English.
func ParseLanguage(raw string) Language {
	if strings.EqualFold(strings.TrimSpace(raw), string(Hebrew)) {
		return Hebrew
	}
	return English
}
