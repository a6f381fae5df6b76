package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/dslint/internal/engine"
	"github.com/phyten/dslint/internal/termcolor"
	"github.com/phyten/dslint/internal/textutil"
)

const columnGap = "  "

// TableOptions は表出力の見た目を決めます。
type TableOptions struct {
	Color termcolor.Settings
	// MaxCellWidth は 1 セルの最大表示幅です。0 以下なら切り詰めません。
	MaxCellWidth int
}

// WriteTable は端末向けに列を揃えた表を出力します。
// 幅は ANSI を除いた表示幅で数えるため、色付けしても列がずれません。
func WriteTable(w io.Writer, items []engine.Item, sel FieldSelection, opts TableOptions) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([][]string, len(items))
	for r, it := range items {
		rows[r] = RowValues(it, sel.Fields)
	}
	return writeGrid(w, Headers(sel.Fields), rows, opts, func(r, col int, cell string) string {
		it := items[r]
		switch sel.Fields[col].Key {
		case "severity":
			return opts.Color.Severity(it.Severity, cell)
		case "rule", "rule_id":
			return opts.Color.Rule(it.Rule, cell)
		case "location", "file":
			return opts.Color.Location(cell)
		}
		return cell
	})
}

// WritePlainTable は診断以外の行 (ルール一覧など) を同じ体裁で出力します。
func WritePlainTable(w io.Writer, headers []string, rows [][]string, opts TableOptions) error {
	return writeGrid(w, headers, rows, opts, nil)
}

func writeGrid(w io.Writer, headers []string, rows [][]string, opts TableOptions, decorate func(r, col int, cell string) string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = textutil.VisibleWidth(h)
	}
	for _, row := range rows {
		for i := range row {
			cell := textutil.SingleLine(row[i])
			if opts.MaxCellWidth > 0 {
				cell = textutil.TruncateByWidth(cell, opts.MaxCellWidth, "…")
			}
			row[i] = cell
			if cw := textutil.VisibleWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var b strings.Builder
	// colour the cell, not its padding
	writeLine := func(cells []string, paint func(col int, cell string) string) {
		last := len(cells) - 1
		for i, cell := range cells {
			b.WriteString(paint(i, cell))
			if i < last {
				b.WriteString(strings.Repeat(" ", widths[i]-textutil.VisibleWidth(cell)))
				b.WriteString(columnGap)
			}
		}
		b.WriteByte('\n')
	}

	writeLine(headers, func(_ int, cell string) string { return opts.Color.Header(cell) })
	for r, row := range rows {
		writeLine(row, func(col int, cell string) string {
			if decorate == nil {
				return cell
			}
			return decorate(r, col, cell)
		})
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSummary prints the "N problems in M of K files" line.
func WriteSummary(w io.Writer, res *engine.Result, color termcolor.Settings) error {
	if res == nil {
		return nil
	}
	if res.Total == 0 {
		_, err := fmt.Fprintf(w, "no problems found in %d %s\n", res.Files, plural(res.Files, "file", "files"))
		return err
	}
	line := fmt.Sprintf("%d %s in %d of %d %s",
		res.Total, plural(res.Total, "problem", "problems"),
		res.FilesWithIssues, res.Files, plural(res.Files, "file", "files"))
	if res.ErrorCount > 0 {
		line += fmt.Sprintf(" (%d %s skipped)", res.ErrorCount, plural(res.ErrorCount, "file", "files"))
	}
	_, err := fmt.Fprintln(w, color.Severity("error", line))
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
