package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/phyten/dslint/internal/markup"
	"github.com/phyten/dslint/internal/model"
)

var (
	sseActions = []string{"@get", "@post", "@patch", "@put", "@delete"}
	proActions = []string{"@clipboard", "@fit"}
	allActions = append(append([]string{}, sseActions...), proActions...)
)

// CheckActions は値を持つ Datastar 属性から @action(...) 呼び出しを探し、構文を検査します。
func CheckActions(tag markup.Tag, sink *model.Sink) {
	for _, attr := range tag.Attributes {
		if !markup.IsDatastar(attr.Name) || !attr.HasValue {
			continue
		}
		checkActionValue(attr.Value, attr.Span(), sink)
	}
}

func checkActionValue(value string, span model.Span, sink *model.Sink) {
	n := len(value)
	i := 0
	for i < n {
		if value[i] != '@' {
			i++
			continue
		}
		start := i
		i++
		for i < n && isActionByte(value[i]) {
			i++
		}
		name := value[start:i]
		if len(name) <= 1 {
			continue
		}

		isSSE := slices.Contains(sseActions, name)
		if !isSSE && !slices.Contains(proActions, name) {
			if s, ok := SuggestAction(name); ok {
				sink.Report(RuleActionSyntax, fmt.Sprintf("Unknown action '%s'. Did you mean '%s'?", name, s), span)
			}
			continue
		}

		for i < n && value[i] == ' ' {
			i++
		}
		if i >= n || value[i] != '(' {
			sink.Report(RuleActionSyntax, fmt.Sprintf("Action '%s' requires parentheses, e.g., %s('/path')", name, name), span)
			continue
		}

		open := i
		end, ok := matchParen(value, open)
		if !ok {
			sink.Report(RuleActionSyntax, fmt.Sprintf("Unclosed parentheses in '%s' call", name), span)
			return
		}
		i = end + 1

		if !isSSE {
			continue
		}
		first, _, _ := strings.Cut(value[open+1:end], ",")
		first = strings.TrimSpace(first)
		switch {
		case first == "":
			sink.Report(RuleActionSyntax, fmt.Sprintf("SSE action '%s' requires a URL argument, e.g., %s('/api/endpoint')", name, name), span)
		case !looksLikeURL(first) && !looksLikeExpression(first):
			sink.Report(RuleActionSyntax, fmt.Sprintf("SSE action '%s' URL should start with '/' or be a string/expression, got: %s", name, first), span)
		}
	}
}

// matchParen は value[open] の '(' に対応する ')' の位置を返します。
// 引用符 (", ', `) の中の括弧は数えず、引用中のバックスラッシュは次の 1 バイトと一緒に読み飛ばします。
// 入力末尾までに深さが 0 に戻らなければ ok=false です。
func matchParen(value string, open int) (int, bool) {
	n := len(value)
	depth := 1
	for i := open + 1; i < n; i++ {
		switch c := value[i]; c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		case '"', '\'', '`':
			i++
			for i < n && value[i] != c {
				if value[i] == '\\' && i+1 < n {
					i++
				}
				i++
			}
		}
	}
	return 0, false
}

func isActionByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// SuggestAction は未知のアクション名に近い既知のアクションを返します。
// 大文字小文字を無視した完全一致か、既知名 ("@" を除く) を部分文字列として含むかで判定するため、
// "@target" のように偶然 "get" を含む名前にも提案が出ます。
func SuggestAction(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, a := range allActions {
		if lower == strings.ToLower(a) || strings.Contains(lower, a[1:]) {
			return a, true
		}
	}
	return "", false
}

func looksLikeURL(arg string) bool {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "/") {
		return true
	}
	if len(arg) < 2 {
		return false
	}
	switch q := arg[0]; q {
	case '\'', '"', '`':
		if arg[len(arg)-1] == q {
			return strings.HasPrefix(arg[1:len(arg)-1], "/")
		}
	}
	return false
}

func looksLikeExpression(arg string) bool {
	arg = strings.TrimSpace(arg)
	return strings.ContainsAny(arg, "$+") || strings.HasPrefix(arg, "`")
}
