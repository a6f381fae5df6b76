package output

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/phyten/dslint/internal/engine"
)

type SortKey struct {
	Name string
	Desc bool
}

type SortSpec struct {
	Keys []SortKey
}

// severityRank は error を先頭に並べるための順位です。
var severityRank = map[string]int{"error": 0, "warning": 1, "info": 2, "hint": 3}

// ParseSortSpec は "-severity,file" のような指定を解釈します。
// 先頭の '-' で降順、'+' または記号なしで昇順です。
func ParseSortSpec(raw string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortSpec{}, nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]SortKey, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: empty segment")
		}
		desc := false
		switch token[0] {
		case '+':
			token = token[1:]
		case '-':
			desc = true
			token = token[1:]
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: sign without name")
		}
		name := strings.ToLower(token)
		switch name {
		case "location":
			keys = append(keys, SortKey{Name: "file", Desc: desc}, SortKey{Name: "line", Desc: desc}, SortKey{Name: "col", Desc: desc})
			continue
		case "column":
			name = "col"
		case "rule_id":
			name = "rule"
		case "file", "line", "col", "rule", "severity", "message", "lang":
		default:
			return SortSpec{}, fmt.Errorf("invalid sort key: %s", token)
		}
		keys = append(keys, SortKey{Name: name, Desc: desc})
	}
	return SortSpec{Keys: keys}, nil
}

// ApplySort は安定ソートで items を並べ替えます。同順位は file, line, col の順です。
func ApplySort(items []engine.Item, spec SortSpec) {
	keys := append(append([]SortKey{}, spec.Keys...), SortKey{Name: "file"}, SortKey{Name: "line"}, SortKey{Name: "col"})
	slices.SortStableFunc(items, func(a, b engine.Item) int {
		for _, key := range keys {
			c := compareBy(a, b, key.Name)
			if c == 0 {
				continue
			}
			if key.Desc {
				return -c
			}
			return c
		}
		return 0
	})
}

func compareBy(a, b engine.Item, name string) int {
	switch name {
	case "file":
		return cmp.Compare(a.File, b.File)
	case "line":
		return cmp.Compare(a.Line, b.Line)
	case "col":
		return cmp.Compare(a.Col, b.Col)
	case "rule":
		return cmp.Compare(a.Rule, b.Rule)
	case "severity":
		return cmp.Compare(rankOf(a.Severity), rankOf(b.Severity))
	case "message":
		return cmp.Compare(a.Message, b.Message)
	case "lang":
		return cmp.Compare(a.Lang, b.Lang)
	}
	return 0
}

func rankOf(severity string) int {
	if r, ok := severityRank[severity]; ok {
		return r
	}
	return len(severityRank)
}
