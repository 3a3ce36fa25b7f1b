package menuval

import (
	"fmt"
	"strings"
)

// Language is a language code understood by the translation pipeline.
type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
	// LangAuto asks the provider to detect the source language.
	LangAuto Language = "auto"
)

// LanguageNames maps language codes to human-readable names for prompts and reports.
var LanguageNames = map[Language]string{
	LangEnglish: "English",
	LangArabic:  "Arabic",
	LangAuto:    "Auto-detect",
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[Language]bool{
	LangArabic: true,
}

// languageAliases maps user-facing spellings to language codes.
var languageAliases = map[string]Language{
	"en":      LangEnglish,
	"eng":     LangEnglish,
	"english": LangEnglish,
	"ar":      LangArabic,
	"ara":     LangArabic,
	"arabic":  LangArabic,
	"عربي":    LangArabic,
	"العربية": LangArabic,
	"auto":    LangAuto,
}

// ParseLanguage resolves a language flag such as "English", "en_US" or "ar".
func ParseLanguage(s string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if lang, ok := languageAliases[key]; ok {
		return lang, nil
	}
	// Locale forms like en_US or ar-SA
	if idx := strings.IndexAny(key, "-_"); idx > 0 {
		if lang, ok := languageAliases[key[:idx]]; ok {
			return lang, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q (want English or Arabic)", s)
}

// TargetFor returns the translation target for a source language.
// English translates to Arabic and Arabic translates to English.
func TargetFor(source Language) (Language, error) {
	switch source {
	case LangEnglish:
		return LangArabic, nil
	case LangArabic:
		return LangEnglish, nil
	default:
		return "", fmt.Errorf("no translation target for source language %q", source)
	}
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(lang Language) string {
	if name, ok := LanguageNames[lang]; ok {
		return name
	}
	return string(lang)
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(lang Language) string {
	if RTLLanguages[lang] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(lang Language) bool {
	return GetDirection(lang) == "rtl"
}
