package rules

import (
	"fmt"
	"strings"

	"github.com/phyten/dslint/internal/markup"
	"github.com/phyten/dslint/internal/model"
)

type typoEntry struct {
	typo       string
	suggestion string
}

// 先頭から照合し、最初に一致したものだけを報告する。
var typoTable = []typoEntry{
	{"data-on-click", "data-on:click"},
	{"data-on-submit", "data-on:submit"},
	{"data-on-input", "data-on:input"},
	{"data-on-change", "data-on:change"},
	{"data-on-keydown", "data-on:keydown"},
	{"data-on-keyup", "data-on:keyup"},
	{"data-on-focus", "data-on:focus"},
	{"data-on-blur", "data-on:blur"},
	{"data-on-mouseenter", "data-on:mouseenter"},
	{"data-on-mouseleave", "data-on:mouseleave"},
	{"data-bind-value", "data-bind:value"},
	{"data-bind-checked", "data-bind:checked"},
	{"data-attr-disabled", "data-attr:disabled"},
	{"data-attr-href", "data-attr:href"},
	{"data-class-active", "data-class:active"},
	{"data-style-color", "data-style:color"},

	{"data-intersects", "data-on-intersect"},
	{"data-intersect", "data-on-intersect"},
	{"data-onload", "data-on:load or data-init"},
	{"data-onclick", "data-on:click"},
	{"data-onsubmit", "data-on:submit"},

	{"data-signal", "data-signals"},

	{"data-visible", "data-show"},
	{"data-hidden", "data-show (with negation)"},
	{"data-content", "data-text or data-html"},
	{"data-value", "data-bind"},
	{"data-model", "data-bind"},

	{"data-if", "data-show"},
	{"data-else", "data-show (with negation)"},
	{"data-v-show", "data-show"},
	{"data-v-if", "data-show"},
	{"data-x-show", "data-show"},
	{"data-x-if", "data-show"},
}

const hyphenEventPrefix = "data-on-"

// Events that are legitimately spelled with a hyphen.
var hyphenEvents = map[string]struct{}{
	"data-on-intersect":    {},
	"data-on-interval":     {},
	"data-on-signal-patch": {},
	"data-on-raf":          {},
	"data-on-resize":       {},
	"data-on-load":         {},
}

var colonPrefixes = []struct {
	wrong   string
	correct string
}{
	{"data-bind-", "data-bind:"},
	{"data-attr-", "data-attr:"},
	{"data-class-", "data-class:"},
	{"data-style-", "data-style:"},
	{"data-indicator-", "data-indicator:"},
}

// CheckTypos は既知の誤記と、コロンで区切るべき箇所のハイフンを報告します。
func CheckTypos(tag markup.Tag, sink *model.Sink) {
	for _, attr := range tag.Attributes {
		if !markup.IsDatastar(attr.Name) {
			continue
		}
		base := markup.BaseName(attr.Name)

		if suggestion, ok := lookupTypo(base); ok {
			sink.Report(RuleTypo, fmt.Sprintf("Possible typo: '%s' - did you mean '%s'?", base, suggestion), attr.NameSpan)
			continue
		}

		if strings.HasPrefix(base, hyphenEventPrefix) {
			if _, ok := hyphenEvents[base]; !ok {
				ev := base[len(hyphenEventPrefix):]
				sink.Report(RuleTypo, fmt.Sprintf("Use colon for events: 'data-on:%s' instead of 'data-on-%s'", ev, ev), attr.NameSpan)
			}
		}

		for _, p := range colonPrefixes {
			if !strings.HasPrefix(base, p.wrong) {
				continue
			}
			suffix := base[len(p.wrong):]
			sink.Report(RuleTypo, fmt.Sprintf("Use colon separator: '%s%s' instead of '%s%s'", p.correct, suffix, p.wrong, suffix), attr.NameSpan)
		}
	}
}

func lookupTypo(base string) (string, bool) {
	for _, e := range typoTable {
		if e.typo == base {
			return e.suggestion, true
		}
	}
	return "", false
}
