package output

import (
	"io"
	"strings"

	"github.com/phyten/dslint/internal/engine"
	"github.com/phyten/dslint/internal/textutil"
)

// WriteTSV はタブ区切りで出力します。セル内のタブと改行は空白に畳みます。
func WriteTSV(w io.Writer, items []engine.Item, sel FieldSelection) error {
	var b strings.Builder
	b.WriteString(strings.Join(Headers(sel.Fields), "\t"))
	b.WriteByte('\n')
	for _, it := range items {
		row := RowValues(it, sel.Fields)
		for i := range row {
			row[i] = textutil.SingleLine(row[i])
		}
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
