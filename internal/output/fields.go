package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/dslint/internal/engine"
)

type Field struct {
	Key    string
	Header string
}

type FieldSelection struct {
	Fields []Field
}

// DefaultFields は --fields 未指定時の列です。
const DefaultFields = "location,severity,rule,message"

var fieldHeaders = map[string]string{
	"location": "LOCATION",
	"file":     "FILE",
	"line":     "LINE",
	"col":      "COL",
	"end":      "END",
	"rule":     "RULE",
	"rule_id":  "RULE_ID",
	"severity": "SEVERITY",
	"message":  "MESSAGE",
	"text":     "TEXT",
	"lang":     "LANG",
	"span":     "SPAN",
	"url":      "URL",
}

var fieldAliases = map[string]string{
	"loc":    "location",
	"column": "col",
	"msg":    "message",
	"level":  "severity",
	"source": "text",
	"link":   "url",
}

// ResolveFields は "file,line,rule" のようなカンマ区切りを列の一覧に変換します。
func ResolveFields(raw string) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultFields
	}
	parts := strings.Split(raw, ",")
	sel := FieldSelection{Fields: make([]Field, 0, len(parts))}
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return FieldSelection{}, fmt.Errorf("invalid fields: empty entry")
		}
		key := strings.ToLower(name)
		if canon, ok := fieldAliases[key]; ok {
			key = canon
		}
		header, ok := fieldHeaders[key]
		if !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", name)
		}
		sel.Fields = append(sel.Fields, Field{Key: key, Header: header})
	}
	return sel, nil
}

func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

func RowValues(it engine.Item, fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = FieldValue(it, f.Key)
	}
	return out
}

func FieldValue(it engine.Item, key string) string {
	switch key {
	case "location":
		return fmt.Sprintf("%s:%d:%d", it.File, it.Line, it.Col)
	case "file":
		return it.File
	case "line":
		return strconv.Itoa(it.Line)
	case "col":
		return strconv.Itoa(it.Col)
	case "end":
		return fmt.Sprintf("%d:%d", it.EndLine, it.EndCol)
	case "rule":
		return it.Rule
	case "rule_id":
		return it.RuleID
	case "severity":
		return it.Severity
	case "message":
		return it.Message
	case "text":
		return it.Text
	case "lang":
		return it.Lang
	case "span":
		return fmt.Sprintf("%d-%d", it.Span.Start, it.Span.End)
	case "url":
		return it.URL
	default:
		return ""
	}
}
