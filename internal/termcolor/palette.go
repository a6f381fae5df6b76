package termcolor

import (
	"strings"

	"github.com/phyten/dslint/internal/colorutil"
)

// tone は 8 色端末向けの色番号と、明暗それぞれの背景向け RGB の組です。
type tone struct {
	basic int
	dark  colorutil.RGB
	light colorutil.RGB
}

var (
	darkBackground  = colorutil.RGB{R: 30, G: 30, B: 30}
	lightBackground = colorutil.RGB{R: 249, G: 250, B: 251}
)

var severityTones = map[string]tone{
	"error":   {basic: 1, dark: colorutil.RGB{R: 255, G: 95, B: 95}, light: colorutil.RGB{R: 190, G: 24, B: 24}},
	"warning": {basic: 3, dark: colorutil.RGB{R: 255, G: 200, B: 60}, light: colorutil.RGB{R: 140, G: 90, B: 0}},
	"info":    {basic: 4, dark: colorutil.RGB{R: 110, G: 170, B: 255}, light: colorutil.RGB{R: 20, G: 80, B: 190}},
	"hint":    {basic: 6, dark: colorutil.RGB{R: 80, G: 210, B: 210}, light: colorutil.RGB{R: 0, G: 110, B: 110}},
}

var ruleTones = map[string]tone{
	"no-alpine-vue-attrs": {basic: 5, dark: colorutil.RGB{R: 215, G: 135, B: 255}, light: colorutil.RGB{R: 120, G: 40, B: 160}},
	"require-value":       {basic: 3, dark: colorutil.RGB{R: 255, G: 215, B: 95}, light: colorutil.RGB{R: 130, G: 90, B: 0}},
	"for-template":        {basic: 6, dark: colorutil.RGB{R: 95, G: 215, B: 215}, light: colorutil.RGB{R: 0, G: 105, B: 110}},
	"typo":                {basic: 2, dark: colorutil.RGB{R: 135, G: 215, B: 95}, light: colorutil.RGB{R: 30, G: 110, B: 30}},
	"invalid-modifier":    {basic: 4, dark: colorutil.RGB{R: 135, G: 175, B: 255}, light: colorutil.RGB{R: 30, G: 70, B: 170}},
	"action-syntax":       {basic: 1, dark: colorutil.RGB{R: 255, G: 135, B: 135}, light: colorutil.RGB{R: 170, G: 30, B: 50}},
}

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// LocationStyle は file:line:col 列の控えめな表示です。
func LocationStyle() Style {
	return Style{Dim: true}
}

// SeverityStyle は error/warning/info/hint に色を付けます。error は太字です。
func SeverityStyle(severity string, scheme Scheme, profile Profile) Style {
	key := strings.ToLower(strings.TrimSpace(severity))
	t, ok := severityTones[key]
	if !ok {
		return Style{}
	}
	s := t.style(scheme, profile)
	s.Bold = key == "error"
	return s
}

// RuleStyle はルール ID (datastar/ 付きでも可) ごとに色を変えます。
func RuleStyle(rule string, scheme Scheme, profile Profile) Style {
	id := strings.TrimPrefix(strings.TrimSpace(rule), "datastar/")
	t, ok := ruleTones[id]
	if !ok {
		return Style{}
	}
	return t.style(scheme, profile)
}

func (t tone) style(scheme Scheme, profile Profile) Style {
	fg, bg := t.dark, darkBackground
	if scheme == SchemeLight {
		fg, bg = t.light, lightBackground
	}
	fg = colorutil.EnsureContrast(fg, bg, 4.5)
	switch profile {
	case ProfileTrueColor:
		rgb := fg.Array()
		return Style{FGTrue: &rgb}
	case ProfileANSI256:
		idx := fg.ANSI256()
		return Style{FG256: &idx}
	default:
		basic := t.basic
		return Style{FGBasic: &basic}
	}
}
