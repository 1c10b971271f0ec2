package ubersuggest

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is given
const DefaultLocale = "en-us"

// LanguageFromLocale returns the lower-cased part before the first '-'
func LanguageFromLocale(locale string) string {
	return strings.Split(strings.ToLower(locale), "-")[0]
}

// CountryFromLocale returns the lower-cased part after the first '-', or ""
// when there is none
func CountryFromLocale(locale string) string {
	parts := strings.Split(strings.ToLower(locale), "-")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// ParseLocale splits a "<language>-<country>" locale and checks both parts are
// known ISO codes. An empty locale yields the default.
func ParseLocale(locale string) (lang, country string, err error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DefaultLocale
	}

	lang = LanguageFromLocale(locale)
	country = CountryFromLocale(locale)
	if lang == "" || country == "" {
		return "", "", fmt.Errorf("%w: %q, expected <language>-<country>", ErrInvalidLocale, locale)
	}

	if _, err := language.ParseBase(lang); err != nil {
		return "", "", fmt.Errorf("%w: language %q: %w", ErrInvalidLocale, lang, err)
	}
	if _, err := language.ParseRegion(country); err != nil {
		return "", "", fmt.Errorf("%w: country %q: %w", ErrInvalidLocale, country, err)
	}

	return lang, country, nil
}
