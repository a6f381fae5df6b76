// Package output は lint 結果を各形式で書き出します。
package output

import (
	"fmt"
	"io"

	"github.com/phyten/dslint/internal/engine"
)

// Options は Write の出力形式と見た目です。
type Options struct {
	Format string
	Fields FieldSelection
	Table  TableOptions
	Sarif  SarifRunMeta
	// Summary が true なら table の後に要約行を付けます。
	Summary bool
}

// Write は opts.Format に従って res を書き出します。
// Format は opts.NormalizeOutput 済みであることを前提とします。
func Write(w io.Writer, res *engine.Result, opts Options) error {
	if res == nil {
		res = &engine.Result{}
	}
	if len(opts.Fields.Fields) == 0 {
		sel, err := ResolveFields("")
		if err != nil {
			return err
		}
		opts.Fields = sel
	}
	switch opts.Format {
	case "", "table":
		if err := WriteTable(w, res.Items, opts.Fields, opts.Table); err != nil {
			return err
		}
		if opts.Summary {
			return WriteSummary(w, res, opts.Table.Color)
		}
		return nil
	case "tsv":
		return WriteTSV(w, res.Items, opts.Fields)
	case "csv":
		return WriteCSV(w, res.Items, opts.Fields)
	case "markdown":
		return WriteMarkdownTable(w, res.Items, opts.Fields)
	case "json":
		return WriteJSON(w, res)
	case "ndjson":
		return WriteNDJSON(w, res.Items)
	case "sarif":
		return WriteSARIF(w, res, opts.Sarif)
	default:
		return fmt.Errorf("unknown output format: %s", opts.Format)
	}
}
