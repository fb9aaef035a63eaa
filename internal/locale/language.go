package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the two supported display languages.
type Language int

const (
	EnUs Language = iota
	PtBr
)

// String returns the spelling used in the config file.
func (l Language) String() string {
	switch l {
	case PtBr:
		return "PtBr"
	default:
		return "EnUs"
	}
}

// Tag returns the BCP 47 tag of the message catalogue for l.
func (l Language) Tag() language.Tag {
	switch l {
	case PtBr:
		return language.BrazilianPortuguese
	default:
		return language.AmericanEnglish
	}
}

// ParseLanguage reads a config file value. Unknown values fall back to EnUs.
func ParseLanguage(s string) Language {
	switch normalize(s) {
	case "ptbr":
		return PtBr
	default:
		return EnUs
	}
}

// FromLocaleEnv maps a LANG value such as "pt_BR.UTF-8" to a Language.
func FromLocaleEnv(v string) Language {
	name, _, _ := strings.Cut(v, ".")
	if name == "pt_BR" {
		return PtBr
	}
	return EnUs
}

// Resolve picks the language from the config value when set, and from the
// LANG environment value otherwise.
func Resolve(configLang, envLang string) Language {
	if strings.TrimSpace(configLang) != "" {
		return ParseLanguage(configLang)
	}
	return FromLocaleEnv(envLang)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "").Replace(s)
}
