package colorutil

import (
	"math"
	"testing"
)

func TestContrastRatioExtremes(t *testing.T) {
	if got := ContrastRatio(Black, White); math.Abs(got-21) > 0.01 {
		t.Fatalf("black/white contrast = %.3f, want 21", got)
	}
	if got := ContrastRatio(White, White); math.Abs(got-1) > 0.001 {
		t.Fatalf("white/white contrast = %.3f, want 1", got)
	}
	if ContrastRatio(Black, White) != ContrastRatio(White, Black) {
		t.Fatal("contrast ratio should be symmetric")
	}
}

func TestEnsureContrast(t *testing.T) {
	lightBG := RGB{249, 250, 251}
	pale := RGB{255, 230, 120}
	got := EnsureContrast(pale, lightBG, 4.5)
	if got != Black {
		t.Fatalf("pale yellow on light bg should fall back to black, got %+v", got)
	}
	if ContrastRatio(got, lightBG) < 4.5 {
		t.Fatalf("result contrast too low: %.2f", ContrastRatio(got, lightBG))
	}

	darkBG := RGB{30, 30, 30}
	if got := EnsureContrast(RGB{20, 20, 60}, darkBG, 0); got != White {
		t.Fatalf("navy on dark bg should fall back to white, got %+v", got)
	}
	keep := RGB{255, 95, 95}
	if got := EnsureContrast(keep, darkBG, 4.5); got != keep {
		t.Fatalf("readable colour should be kept, got %+v", got)
	}
}

func TestANSI256(t *testing.T) {
	cases := []struct {
		in   RGB
		want int
	}{
		{Black, 16},
		{White, 231},
		{RGB{255, 0, 0}, 196},
		{RGB{0, 0, 255}, 21},
		{RGB{128, 128, 128}, 232 + (128-8)*24/247},
	}
	for _, tc := range cases {
		if got := tc.in.ANSI256(); got != tc.want {
			t.Errorf("%+v.ANSI256() = %d, want %d", tc.in, got, tc.want)
		}
	}
}
