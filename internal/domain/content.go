package domain

import (
	"fmt"
	"strings"
)

// Language is the tag a form was submitted in.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// ParseLanguage validates a submitted language tag. Empty defaults to English.
func ParseLanguage(raw string) (Language, error) {
	switch Language(strings.TrimSpace(raw)) {
	case "", LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageArabic:
		return LanguageArabic, nil
	default:
		return "", fmt.Errorf("unsupported language %q", raw)
	}
}

// Content is text written in exactly one language.
type Content struct {
	lang Language
	text string
}

// EnglishOnly builds English content.
func EnglishOnly(text string) Content {
	return Content{lang: LanguageEnglish, text: strings.TrimSpace(text)}
}

// ArabicOnly builds Arabic content.
func ArabicOnly(text string) Content {
	return Content{lang: LanguageArabic, text: strings.TrimSpace(text)}
}

// ContentFor picks the field matching lang from a bilingual form submission.
func ContentFor(lang Language, english, arabic string) Content {
	if lang == LanguageArabic {
		return ArabicOnly(arabic)
	}
	return EnglishOnly(english)
}

func (c Content) Language() Language { return c.lang }
func (c Content) Text() string       { return c.text }
func (c Content) IsEmpty() bool      { return c.text == "" }

// English returns the text when the content is English, else "".
func (c Content) English() string {
	if c.lang == LanguageEnglish {
		return c.text
	}
	return ""
}

// Arabic returns the text when the content is Arabic, else "".
func (c Content) Arabic() string {
	if c.lang == LanguageArabic {
		return c.text
	}
	return ""
}

// LocalizedText is an optional English/Arabic pair.
type LocalizedText struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

// Pick returns the variant for lang, falling back to English.
func (t LocalizedText) Pick(lang Language) string {
	if lang == LanguageArabic && t.AR != "" {
		return t.AR
	}
	return t.EN
}
