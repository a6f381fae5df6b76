package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/dslint/internal/engine"
)

// WriteNDJSON streams items as newline-delimited JSON objects.
// HTML characters in messages are written as-is.
func WriteNDJSON(w io.Writer, items []engine.Item) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON は Result 全体を整形済み JSON で出力します。
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
