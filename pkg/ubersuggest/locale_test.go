package ubersuggest

import (
	"errors"
	"testing"
)

func TestLocaleHelpers(t *testing.T) {
	tests := []struct {
		locale   string
		language string
		country  string
	}{
		{"pt-br", "pt", "br"},
		{"en-us", "en", "us"},
		{"ES-MX", "es", "mx"},
		{"de-DE", "de", "de"},
		{"en", "en", ""},
	}

	for _, test := range tests {
		if got := LanguageFromLocale(test.locale); got != test.language {
			t.Errorf("LanguageFromLocale(%q) = %q, expected %q", test.locale, got, test.language)
		}
		if got := CountryFromLocale(test.locale); got != test.country {
			t.Errorf("CountryFromLocale(%q) = %q, expected %q", test.locale, got, test.country)
		}
	}
}

func TestParseLocale(t *testing.T) {
	lang, country, err := ParseLocale("PT-BR")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if lang != "pt" || country != "br" {
		t.Errorf("Expected pt/br, got %s/%s", lang, country)
	}

	lang, country, err = ParseLocale("")
	if err != nil || lang != "en" || country != "us" {
		t.Errorf("Expected default en/us, got %s/%s (%v)", lang, country, err)
	}
}

func TestParseLocale_Invalid(t *testing.T) {
	for _, locale := range []string{"english", "en-", "-us", "en-zz9", "12-us"} {
		if _, _, err := ParseLocale(locale); !errors.Is(err, ErrInvalidLocale) {
			t.Errorf("ParseLocale(%q): expected ErrInvalidLocale, got %v", locale, err)
		}
	}
}
