package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage("")
	require.NoError(t, err)
	assert.Equal(t, LanguageEnglish, lang)

	lang, err = ParseLanguage(" ar ")
	require.NoError(t, err)
	assert.Equal(t, LanguageArabic, lang)

	_, err = ParseLanguage("fr")
	assert.Error(t, err)
}

func TestContentHoldsExactlyOneLanguage(t *testing.T) {
	c := ContentFor(LanguageArabic, "ignored", " سبب ")
	assert.Equal(t, LanguageArabic, c.Language())
	assert.Equal(t, "سبب", c.Text())
	assert.Equal(t, "سبب", c.Arabic())
	assert.Empty(t, c.English())

	c = ContentFor(LanguageEnglish, "family trip", "ignored")
	assert.Equal(t, "family trip", c.English())
	assert.Empty(t, c.Arabic())
	assert.False(t, c.IsEmpty())
	assert.True(t, EnglishOnly("  ").IsEmpty())
}

func TestLocalizedTextPick(t *testing.T) {
	text := LocalizedText{EN: "Dubai", AR: "دبي"}
	assert.Equal(t, "دبي", text.Pick(LanguageArabic))
	assert.Equal(t, "Dubai", text.Pick(LanguageEnglish))
	assert.Equal(t, "Dubai", LocalizedText{EN: "Dubai"}.Pick(LanguageArabic))
}

func TestHelpDeskStaffServes(t *testing.T) {
	var none *HelpDeskStaff
	assert.False(t, none.Serves("IT"))
	assert.True(t, (&HelpDeskStaff{Department: "IT", IsActive: true}).Serves("IT"))
	assert.False(t, (&HelpDeskStaff{Department: "IT", IsActive: false}).Serves("IT"))
	assert.False(t, (&HelpDeskStaff{Department: "HR", IsActive: true}).Serves("IT"))
}
