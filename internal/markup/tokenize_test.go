package markup

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phyten/dslint/internal/model"
)

func TestTokenizeSimpleTag(t *testing.T) {
	src := `<div data-show="$visible">Hello</div>`
	tags := Tokenize(src)
	if len(tags) != 2 {
		t.Fatalf("want 2 tags (open and close), got %d", len(tags))
	}
	want := Tag{
		Name: "div",
		Attributes: []Attribute{{
			Name:      "data-show",
			Value:     "$visible",
			HasValue:  true,
			NameSpan:  model.Span{Start: 5, End: 14},
			ValueSpan: model.Span{Start: 16, End: 24},
		}},
	}
	if diff := cmp.Diff(want, tags[0]); diff != "" {
		t.Fatalf("tag mismatch (-want +got):\n%s", diff)
	}
	if tags[1].Name != "div" || len(tags[1].Attributes) != 0 {
		t.Fatalf("closing tag = %+v", tags[1])
	}
}

func TestTokenizeValueForms(t *testing.T) {
	src := `<input disabled value="" data-a='x y' data-b=plain data-c = "spaced" data-d=>`
	tags := Tokenize(src)
	if len(tags) != 1 {
		t.Fatalf("want 1 tag, got %d", len(tags))
	}
	type row struct {
		Name     string
		Value    string
		HasValue bool
	}
	var got []row
	for _, a := range tags[0].Attributes {
		got = append(got, row{a.Name, a.Value, a.HasValue})
	}
	want := []row{
		{"disabled", "", false},
		{"value", "", true},
		{"data-a", "x y", true},
		{"data-b", "plain", true},
		{"data-c", "spaced", true},
		{"data-d", "", true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeの値なしの等号(t *testing.T) {
	cases := map[string]bool{
		`<div data-text=>`:    true,
		`<div data-text= >`:   true,
		`<div data-text=`:     false,
		"<div data-text=  \n": false,
	}
	for src, want := range cases {
		tags := Tokenize(src)
		if len(tags) != 1 || len(tags[0].Attributes) != 1 {
			t.Fatalf("%q: got %+v", src, tags)
		}
		a := tags[0].Attributes[0]
		if a.HasValue != want || a.Value != "" {
			t.Errorf("%q: HasValue=%v Value=%q, want HasValue=%v", src, a.HasValue, a.Value, want)
		}
	}
}

func TestTokenizeSkipsCommentsAndDeclarations(t *testing.T) {
	src := "<!DOCTYPE html><?xml version=\"1.0\"?><!-- <div x-show=\"a\"> --><p id=a>"
	tags := Tokenize(src)
	if len(tags) != 1 || tags[0].Name != "p" {
		t.Fatalf("got %+v", tags)
	}
}

func TestTokenizeUnterminatedComment(t *testing.T) {
	tags := Tokenize(`<a href="/"><!-- never closed <div data-show="">`)
	if len(tags) != 1 || tags[0].Name != "a" {
		t.Fatalf("got %+v", tags)
	}
}

func TestTokenizeSelfClosingAndStraySlash(t *testing.T) {
	tags := Tokenize(`<img src="a.png"/><br / data-x="1"><span>`)
	var names []string
	for _, tg := range tags {
		names = append(names, tg.Name)
	}
	if diff := cmp.Diff([]string{"img", "br", "span"}, names); diff != "" {
		t.Fatalf("tag names (-want +got):\n%s", diff)
	}
	if len(tags[1].Attributes) != 1 || tags[1].Attributes[0].Name != "data-x" {
		t.Fatalf("stray slash should be skipped, got %+v", tags[1].Attributes)
	}
}

func TestTokenizeMalformedOpenBracket(t *testing.T) {
	tags := Tokenize(`a <= b, c <> d <div data-text="$x">`)
	if len(tags) != 1 || tags[0].Name != "div" {
		t.Fatalf("got %+v", tags)
	}
}

func TestTokenizeUnterminatedTagKeepsAttributes(t *testing.T) {
	tags := Tokenize(`<div data-show="$a" data-text="unterminated`)
	if len(tags) != 1 {
		t.Fatalf("got %d tags", len(tags))
	}
	attrs := tags[0].Attributes
	if len(attrs) != 2 {
		t.Fatalf("got %d attributes", len(attrs))
	}
	if attrs[1].Value != "unterminated" || attrs[1].ValueSpan.End != len(`<div data-show="$a" data-text="unterminated`) {
		t.Fatalf("unterminated value = %+v", attrs[1])
	}
}

func TestTokenizeTotalityAndSpanValidity(t *testing.T) {
	inputs := []string{
		"",
		"<",
		"<<<<",
		"<!--",
		"<!",
		"<?",
		"</",
		"<a",
		"<a b",
		"<a b=",
		"<a b='",
		`<a b="`,
		"<a =x>",
		"<a/",
		"<a b=c/>",
		"<\x00\xff data-x=\"\xff\">",
		strings.Repeat(`<div data-on:click="@get('/x')" `, 50),
		"<div\n\tdata-show\r\n=\f'$a'\n>",
	}
	for _, src := range inputs {
		for _, tg := range Tokenize(src) {
			for _, a := range tg.Attributes {
				checkSpan(t, src, a.NameSpan)
				if got := src[a.NameSpan.Start:a.NameSpan.End]; got != a.Name {
					t.Errorf("%q: name span text %q != name %q", src, got, a.Name)
				}
				if a.HasValue {
					checkSpan(t, src, a.ValueSpan)
					if a.NameSpan.End > a.ValueSpan.Start {
						t.Errorf("%q: name span ends after value span starts: %+v", src, a)
					}
					if got := src[a.ValueSpan.Start:a.ValueSpan.End]; got != a.Value {
						t.Errorf("%q: value span text %q != value %q", src, got, a.Value)
					}
				}
			}
		}
	}
}

func checkSpan(t *testing.T, src string, s model.Span) {
	t.Helper()
	if s.Start < 0 || s.Start > s.End || s.End > len(src) {
		t.Errorf("%q: invalid span %+v", src, s)
	}
}

func TestAttributeSpanPrefersValue(t *testing.T) {
	tags := Tokenize(`<a data-x="v" data-y>`)
	x, y := tags[0].Attributes[0], tags[0].Attributes[1]
	if x.Span() != x.ValueSpan {
		t.Fatalf("valued attribute span = %+v", x.Span())
	}
	if y.Span() != y.NameSpan {
		t.Fatalf("bare attribute span = %+v", y.Span())
	}
}
