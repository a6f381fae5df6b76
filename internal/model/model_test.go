package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineIndexPosition(t *testing.T) {
	src := "ab\ncde\n\nf"
	x := NewLineIndex(src)
	cases := []struct {
		off  int
		want Position
	}{
		{0, Position{1, 1}},
		{1, Position{1, 2}},
		{2, Position{1, 3}},
		{3, Position{2, 1}},
		{6, Position{2, 4}},
		{7, Position{3, 1}},
		{8, Position{4, 1}},
		{9, Position{4, 2}},
		{100, Position{4, 2}},
		{-5, Position{1, 1}},
	}
	for _, tc := range cases {
		if got := x.Position(tc.off); got != tc.want {
			t.Errorf("Position(%d)=%+v want %+v", tc.off, got, tc.want)
		}
	}
	if x.Lines() != 4 {
		t.Fatalf("Lines=%d want 4", x.Lines())
	}
}

func TestSpanTextClamps(t *testing.T) {
	src := "hello"
	if got := (Span{1, 3}).Text(src); got != "el" {
		t.Fatalf("got %q", got)
	}
	if got := (Span{3, 99}).Text(src); got != "lo" {
		t.Fatalf("got %q", got)
	}
	if got := (Span{4, 2}).Text(src); got != "" {
		t.Fatalf("inverted span should be empty, got %q", got)
	}
	if (Span{4, 2}).Len() != 0 {
		t.Fatal("inverted span should have zero length")
	}
}

func TestSinkKeepsDiscoveryOrder(t *testing.T) {
	var s Sink
	s.Report("b", "second", Span{10, 12})
	s.Report("a", "first", Span{0, 1})
	s.Add(Diagnostic{Rule: "c", Message: "third", Enforced: true, Span: Span{5, 6}})

	want := []Diagnostic{
		{Rule: "b", Message: "second", Span: Span{10, 12}},
		{Rule: "a", Message: "first", Span: Span{0, 1}},
		{Rule: "c", Message: "third", Enforced: true, Span: Span{5, 6}},
	}
	got := s.Diagnostics()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
	got[0].Rule = "mutated"
	if s.Diagnostics()[0].Rule != "b" {
		t.Fatal("Diagnostics must return a copy")
	}
}
