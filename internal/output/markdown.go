package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/dslint/internal/engine"
)

var markdownEscaper = strings.NewReplacer(
	"\r\n", "<br>",
	"\r", "",
	"\n", "<br>",
	"|", "\\|",
	"<", "&lt;",
	">", "&gt;",
)

// WriteMarkdownTable renders items as a GitHub Flavored Markdown table.
// 属性のソース断片に含まれる '<' はタグとして解釈されないよう実体参照にします。
func WriteMarkdownTable(w io.Writer, items []engine.Item, sel FieldSelection) error {
	headers := Headers(sel.Fields)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	lines := [][]string{headers, sep}
	for _, it := range items {
		row := RowValues(it, sel.Fields)
		for i := range row {
			row[i] = markdownEscaper.Replace(row[i])
		}
		lines = append(lines, row)
	}
	for _, cells := range lines {
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | ")); err != nil {
			return err
		}
	}
	return nil
}
