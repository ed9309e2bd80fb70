package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// wordHinted lists the languages matched by their full English name. Catalogs
// routinely carry hints like "French" alongside BCP 47 codes.
var wordHinted = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Italian,
	language.Portuguese,
	language.Japanese,
	language.Korean,
	language.Chinese,
	language.Russian,
	language.Arabic,
	language.Hindi,
	language.Dutch,
	language.Polish,
	language.Swedish,
	language.Danish,
	language.Norwegian,
	language.Finnish,
	language.Turkish,
	language.Ukrainian,
	language.Greek,
	language.Czech,
	language.Romanian,
	language.Hungarian,
	language.Vietnamese,
	language.Thai,
	language.Indonesian,
	language.Hebrew,
}

// ToISO2 converts a language hint to its two-letter ISO 639-1 code.
// Accepts ISO codes ("fr", "fra") and full English names ("French").
// Returns "" when the hint is empty or cannot be normalized.
func ToISO2(hint string) string {
	trimmed := strings.TrimSpace(hint)
	if trimmed == "" {
		return ""
	}

	if tag, err := language.Parse(trimmed); err == nil {
		if code := baseISO2(tag); code != "" {
			return code
		}
	}

	for _, tag := range wordHinted {
		if strings.EqualFold(display.English.Languages().Name(tag), trimmed) {
			return baseISO2(tag)
		}
	}
	return ""
}

// DisplayName returns the English name for a language hint, or the hint
// itself when it cannot be normalized. Used for log output only.
func DisplayName(hint string) string {
	code := ToISO2(hint)
	if code == "" {
		return strings.TrimSpace(hint)
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

func baseISO2(tag language.Tag) string {
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	code := base.String()
	if len(code) != 2 {
		return ""
	}
	return code
}
