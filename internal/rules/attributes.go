package rules

import (
	"fmt"
	"strings"

	"github.com/phyten/dslint/internal/markup"
	"github.com/phyten/dslint/internal/model"
)

var alpineVuePrefixes = []string{"x-", "x:", "v-", "@", ":"}

// CheckAlpineVue は Alpine.js / Vue.js 風の属性を報告します。
func CheckAlpineVue(tag markup.Tag, sink *model.Sink) {
	for _, attr := range tag.Attributes {
		if hasAnyPrefix(attr.Name, alpineVuePrefixes) {
			sink.Report(RuleAlpineVue, "Disallowed Alpine/Vue-style attribute: "+attr.Name, attr.NameSpan)
		}
	}
}

var valueRequired = map[string]struct{}{
	"data-show":        {},
	"data-text":        {},
	"data-html":        {},
	"data-class":       {},
	"data-effect":      {},
	"data-computed":    {},
	"data-replace-url": {},
}

var valueRequiredPrefixes = []string{"data-on:", "data-attr:", "data-class:", "data-style:", "data-computed:"}

// CheckRequiredValues は式を取る属性に値がない、または空の場合に報告します。
func CheckRequiredValues(tag markup.Tag, sink *model.Sink) {
	for _, attr := range tag.Attributes {
		if !requiresValue(attr.Name) {
			continue
		}
		if attr.HasValue && attr.Value != "" {
			continue
		}
		sink.Report(RuleRequireValue, fmt.Sprintf("Datastar attribute '%s' requires a value", attr.Name), attr.NameSpan)
	}
}

func requiresValue(name string) bool {
	base := markup.BaseName(name)
	if _, ok := valueRequired[base]; ok {
		return true
	}
	return hasAnyPrefix(base, valueRequiredPrefixes)
}

const (
	forAttr     = "data-for"
	templateTag = "template"
)

// CheckForTemplate は data-for が <template> 以外に付いている場合に報告します。
func CheckForTemplate(tag markup.Tag, sink *model.Sink) {
	if strings.EqualFold(tag.Name, templateTag) {
		return
	}
	for _, attr := range tag.Attributes {
		if markup.BaseName(attr.Name) != forAttr {
			continue
		}
		sink.Report(RuleForTemplate, fmt.Sprintf("data-for must be on a <template> element, found on <%s>", tag.Name), attr.NameSpan)
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
