package models

import (
	"fmt"
	"strings"
)

// Language is one of the storefront's display languages.
type Language string

const (
	LangVI Language = "vi"
	LangEN Language = "en"
	LangZH Language = "zh"
)

// DefaultLanguage is the storefront's primary language; shelf labels and
// notifications use it.
const DefaultLanguage = LangVI

// ParseLanguage accepts "vi", "en" or "zh"; blank means DefaultLanguage.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultLanguage, nil
	case LangVI:
		return LangVI, nil
	case LangEN:
		return LangEN, nil
	case LangZH:
		return LangZH, nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// LocalizedString carries one text per display language.
type LocalizedString struct {
	VI string `json:"vi" yaml:"vi"`
	EN string `json:"en" yaml:"en"`
	ZH string `json:"zh" yaml:"zh"`
}

// Same repeats one text for every language.
func Same(s string) LocalizedString {
	return LocalizedString{VI: s, EN: s, ZH: s}
}

func (l LocalizedString) Get(lang Language) string {
	switch lang {
	case LangEN:
		return l.EN
	case LangZH:
		return l.ZH
	default:
		return l.VI
	}
}

func (l LocalizedString) IsZero() bool {
	return l == LocalizedString{}
}

// IsComplete reports whether every language has a non-blank text.
func (l LocalizedString) IsComplete() bool {
	for _, s := range []string{l.VI, l.EN, l.ZH} {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}
