package language_test

import (
	"testing"

	"refscribe/internal/language"
)

func TestToISO2(t *testing.T) {
	cases := []struct {
		hint string
		want string
	}{
		{"fr", "fr"},
		{"fra", "fr"},
		{"French", "fr"},
		{"french", "fr"},
		{"  es  ", "es"},
		{"Spanish", "es"},
		{"deu", "de"},
		{"en-US", "en"},
		{"", ""},
		{"klingon", ""},
		{"??", ""},
	}
	for _, tc := range cases {
		if got := language.ToISO2(tc.hint); got != tc.want {
			t.Errorf("ToISO2(%q) = %q, want %q", tc.hint, got, tc.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := language.DisplayName("fr"); got != "French" {
		t.Fatalf("DisplayName(fr) = %q, want French", got)
	}
	if got := language.DisplayName("unknown-hint"); got != "unknown-hint" {
		t.Fatalf("DisplayName fallback = %q", got)
	}
}
