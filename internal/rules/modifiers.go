package rules

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/phyten/dslint/internal/markup"
	"github.com/phyten/dslint/internal/model"
)

var (
	eventModifiers = []string{
		"once", "passive", "capture", "case", "delay", "debounce",
		"throttle", "viewtransition", "window", "outside", "prevent", "stop",
	}
	intersectModifiers = []string{
		"once", "exit", "half", "full", "threshold", "delay",
		"debounce", "throttle", "viewtransition",
	}
	persistModifiers   = []string{"session"}
	initModifiers      = []string{"delay", "viewtransition"}
	intervalModifiers  = []string{"delay", "debounce", "throttle", "viewtransition"}
	frameModifiers     = []string{"debounce", "throttle"}
	effectModifiers    = []string{"viewtransition"}
	caseOnlyModifiers  = []string{"case"}
	caseValues         = []string{"camel", "kebab", "snake", "pascal"}
	caseOnlyPrefixes   = []string{"data-signals", "data-computed", "data-ref", "data-bind", "data-indicator"}
	orderingModifiers  = []string{"leading", "trailing", "notrailing", "noleading"}
	caseModifierPrefix = "case."
)

// AllowedModifiers は基底名 base に付けられる修飾子の一覧を返します。該当しない属性は空です。
func AllowedModifiers(base string) []string {
	switch {
	case strings.HasPrefix(base, "data-on:"):
		return eventModifiers
	case base == "data-on-intersect":
		return intersectModifiers
	case base == "data-persist":
		return persistModifiers
	case base == "data-init":
		return initModifiers
	case base == "data-on-interval", base == "data-on-signal-patch":
		return intervalModifiers
	case base == "data-on-raf", base == "data-on-resize":
		return frameModifiers
	case base == "data-effect":
		return effectModifiers
	case hasAnyPrefix(base, caseOnlyPrefixes):
		return caseOnlyModifiers
	}
	return nil
}

// CheckModifiers は __ 区切りの修飾子を属性ごとの許可リストと照合します。
func CheckModifiers(tag markup.Tag, sink *model.Sink) {
	for _, attr := range tag.Attributes {
		if !markup.IsDatastar(attr.Name) {
			continue
		}
		mods := markup.Modifiers(attr.Name)
		if len(mods) == 0 {
			continue
		}
		base := markup.BaseName(attr.Name)
		allowed := AllowedModifiers(base)

		for _, mod := range mods {
			modBase, _, _ := markup.ModifierBase(mod)
			if modBase == "case" {
				// case bypasses the family allow-list
				if v, ok := strings.CutPrefix(mod, caseModifierPrefix); ok && !slices.Contains(caseValues, v) {
					sink.Report(RuleModifier, fmt.Sprintf("Invalid case modifier '%s'. Valid options: camel, kebab, snake, pascal", v), attr.NameSpan)
				}
				continue
			}
			if slices.Contains(allowed, modBase) || isTimingModifier(modBase) {
				continue
			}
			sink.Report(RuleModifier, fmt.Sprintf("Invalid modifier '%s' for '%s'. Valid modifiers: %s", mod, base, strings.Join(allowed, ", ")), attr.NameSpan)
		}
	}
}

// isTimingModifier は "500ms" "1s" "leading" や数値のような時間・順序指定かどうかを返します。
func isTimingModifier(mod string) bool {
	if strings.HasSuffix(mod, "ms") || strings.HasSuffix(mod, "s") {
		return true
	}
	if slices.Contains(orderingModifiers, mod) {
		return true
	}
	_, err := strconv.ParseFloat(mod, 64)
	return err == nil
}
