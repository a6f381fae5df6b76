package colorutil

import "math"

type RGB struct {
	R uint8
	G uint8
	B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

func (c RGB) Array() [3]uint8 { return [3]uint8{c.R, c.G, c.B} }

// ANSI256 は 256 色パレットの最も近いインデックスを返します。
// 無彩色はグレースケール帯 (232-255)、それ以外は 6x6x6 キューブへ丸めます。
func (c RGB) ANSI256() int {
	if c.R == c.G && c.G == c.B {
		switch {
		case c.R < 8:
			return 16
		case c.R > 248:
			return 231
		default:
			return 232 + (int(c.R)-8)*24/247
		}
	}
	rr := int(c.R) * 5 / 255
	gg := int(c.G) * 5 / 255
	bb := int(c.B) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func luminance(c RGB) float64 {
	r := srgbToLinear(float64(c.R) / 255.0)
	g := srgbToLinear(float64(c.G) / 255.0)
	b := srgbToLinear(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG 2.x contrast ratio (1..21).
func ContrastRatio(fg, bg RGB) float64 {
	l1 := luminance(fg)
	l2 := luminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func AutoTextColor(bg RGB) RGB {
	if ContrastRatio(Black, bg) >= ContrastRatio(White, bg) {
		return Black
	}
	return White
}

// EnsureContrast は fg が bg に対して minRatio を満たさない場合、
// 白か黒のより読みやすい方に置き換えます。
func EnsureContrast(fg, bg RGB, minRatio float64) RGB {
	if minRatio <= 0 {
		minRatio = 4.5
	}
	if ContrastRatio(fg, bg) >= minRatio {
		return fg
	}
	return AutoTextColor(bg)
}
