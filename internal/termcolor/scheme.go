package termcolor

import (
	"strconv"
	"strings"
)

// Scheme は端末背景の明暗です。
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// SchemeEnv は背景の明暗を明示する環境変数です (light|dark)。
const SchemeEnv = "DSLINT_COLOR_SCHEME"

// DetectScheme picks the palette for severity colours.
// DSLINT_COLOR_SCHEME wins, then the background index of COLORFGBG (7 and above is light),
// then a TERM name containing "light". Anything else is dark.
func DetectScheme(env map[string]string) Scheme {
	if env == nil {
		return SchemeDark
	}
	switch strings.ToLower(strings.TrimSpace(env[SchemeEnv])) {
	case "light":
		return SchemeLight
	case "dark":
		return SchemeDark
	}
	if s, ok := schemeFromColorfgbg(env["COLORFGBG"]); ok {
		return s
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}

// schemeFromColorfgbg は "fg;bg" の最後の値を背景色番号として読みます。末尾が空ならその一つ前を使います。
func schemeFromColorfgbg(raw string) (Scheme, bool) {
	if strings.TrimSpace(raw) == "" {
		return SchemeUnknown, false
	}
	fields := strings.Split(raw, ";")
	last := strings.TrimSpace(fields[len(fields)-1])
	if last == "" && len(fields) >= 2 {
		last = strings.TrimSpace(fields[len(fields)-2])
	}
	bg, err := strconv.Atoi(last)
	switch {
	case err != nil || bg < 0:
		return SchemeUnknown, false
	case bg >= 7:
		return SchemeLight, true
	default:
		return SchemeDark, true
	}
}
