package lingocache

import "strings"

// LanguageNames maps language codes to human-readable names, used for
// provider prompts and for validating Accept-Language values.
var LanguageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"bn": "Bengali",
	"ta": "Tamil",
	"te": "Telugu",
	"mr": "Marathi",
	"gu": "Gujarati",
	"kn": "Kannada",
	"ml": "Malayalam",
	"pa": "Punjabi",
	"or": "Odia",
	"as": "Assamese",
	"ur": "Urdu",
	"ne": "Nepali",
	"si": "Sinhala",
	"ar": "Arabic",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"pt": "Portuguese",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"ru": "Russian",
	"id": "Indonesian",
	"sw": "Swahili",
}

// NormalizeLang lowercases a language tag and strips any region subtag, so
// "hi-IN", "hi_IN", and "HI" all normalize to "hi".
func NormalizeLang(lang string) string {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}

// GetLanguageName returns the human-readable name for a language code, or
// the code itself if unknown.
func GetLanguageName(lang string) string {
	if name, ok := LanguageNames[NormalizeLang(lang)]; ok {
		return name
	}
	return lang
}

// IsKnownLanguage reports whether the language code is in the registry.
func IsKnownLanguage(lang string) bool {
	_, ok := LanguageNames[NormalizeLang(lang)]
	return ok
}

// SameLanguage reports whether two language tags refer to the same base
// language, in which case translation can be bypassed entirely.
func SameLanguage(a, b string) bool {
	return NormalizeLang(a) == NormalizeLang(b)
}
