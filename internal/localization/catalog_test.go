package localization_test

import (
	"testing"

	"github.com/goliatone/go-storefront/internal/localization"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := localization.DefaultCatalog()

	if catalog.Default() != "es" {
		t.Fatalf("expected es default, got %s", catalog.Default())
	}
	targets := catalog.Targets()
	if len(targets) != 3 || targets[0] != "en" || targets[2] != "it" {
		t.Fatalf("unexpected targets %v", targets)
	}
	fr, ok := catalog.Lookup("FR")
	if !ok || fr.Name != "Français" || fr.Label != "FR" {
		t.Fatalf("unexpected french entry %+v", fr)
	}
}

func TestCatalogFromCodes(t *testing.T) {
	catalog := localization.CatalogFromCodes("en", []string{"es", "EN", "pt", "es"})

	codes := catalog.Codes()
	want := []string{"en", "es", "pt"}
	if len(codes) != len(want) {
		t.Fatalf("expected %v, got %v", want, codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, codes)
		}
	}
	pt, _ := catalog.Lookup("pt")
	if pt.Label != "PT" || pt.Name != "PT" {
		t.Fatalf("expected derived label for unknown language, got %+v", pt)
	}
	if locale := catalog.Locale(); locale.Current != "en" || locale.Default != "en" {
		t.Fatalf("unexpected locale %+v", locale)
	}
}

func TestNegotiate(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", "es"},
		{"fr-CH, fr;q=0.9, en;q=0.8", "fr"},
		{"en-US,en;q=0.9", "en"},
		{"de-DE", "es"},
		{"it", "it"},
		{"not a header;;", "es"},
	}
	for _, tc := range cases {
		if got := localization.Negotiate(tc.header, supported, "es"); got != tc.want {
			t.Fatalf("Negotiate(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
