package detect

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeLangNameAliases(t *testing.T) {
	cases := map[string]string{
		"HTM":     "html",
		".html":   "html",
		"gohtml":  "go-template",
		"J2":      "jinja",
		" hbs ":   "handlebars",
		"*":       "all",
		"unknown": "unknown",
	}
	for input, want := range cases {
		if got := NormalizeLangName(input); got != want {
			t.Fatalf("NormalizeLangName(%q)=%q want %q", input, got, want)
		}
	}
}

func TestCanonicalDetectLangsDedupes(t *testing.T) {
	got := CanonicalDetectLangs([]string{" htm ", "HTML", "tmpl", "", "gohtml", "j2"})
	want := []string{"html", "go-template", "jinja"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestFromPathAndContent(t *testing.T) {
	cases := []struct {
		path string
		data string
		want Info
	}{
		{"index.html", "", Info{Name: "html"}},
		{"site/INDEX.HTM", "", Info{Name: "html"}},
		{"views/show.html.erb", "", Info{Name: "erb"}},
		{"layout.gohtml", "", Info{Name: "go-template"}},
		{"notes.txt", "<!DOCTYPE html>\n<html>", Info{Name: "html"}},
		{"notes.txt", "\ufeff  <HTML lang=en>", Info{Name: "html"}},
		{"notes.txt", "plain text", Info{}},
		{"image.html", "GIF89a\x00\x01", Info{Binary: true}},
		{"Makefile", "all:", Info{}},
	}
	for _, tc := range cases {
		if got := FromPathAndContent(tc.path, []byte(tc.data)); got != tc.want {
			t.Errorf("FromPathAndContent(%q)=%+v want %+v", tc.path, got, tc.want)
		}
	}
}

func TestMatchesLang(t *testing.T) {
	html := Info{Name: "html"}
	erb := Info{Name: "erb"}
	if !MatchesLang(html, nil) {
		t.Fatal("html should match the default set")
	}
	if MatchesLang(erb, nil) {
		t.Fatal("erb should not match the default set")
	}
	if !MatchesLang(erb, []string{"html", "rails"}) {
		t.Fatal("erb should match via alias")
	}
	if !MatchesLang(erb, []string{"all"}) {
		t.Fatal("all should match any detected language")
	}
	if MatchesLang(Info{}, []string{"all"}) {
		t.Fatal("undetected files never match")
	}
	if MatchesLang(Info{Name: "html", Binary: true}, nil) {
		t.Fatal("binary files never match")
	}
}

func TestExtensionsAndKnown(t *testing.T) {
	got := Extensions("HTM")
	sort.Strings(got)
	if diff := cmp.Diff([]string{"htm", "html", "shtml", "xhtml"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if !KnownLanguage("templ") || !KnownLanguage("any") || KnownLanguage("cobol") {
		t.Fatal("KnownLanguage mismatch")
	}
}
