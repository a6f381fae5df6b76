package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/phyten/dslint/decree"
	"github.com/phyten/dslint/internal/detect"
	"github.com/phyten/dslint/internal/model"
)

// LintSource は 1 つのソース文字列を検査し、行・桁を付けた Item に変換します。
// 標準入力や HTTP 経由の検査でも同じ変換を使います。
func LintSource(d *decree.Decree, file, lang, src string) []Item {
	diags := d.Lint(file, src)
	if len(diags) == 0 {
		return nil
	}
	idx := model.NewLineIndex(src)
	items := make([]Item, 0, len(diags))
	for _, dg := range diags {
		start := idx.Position(dg.Span.Start)
		end := idx.Position(dg.Span.End)
		items = append(items, Item{
			File:     file,
			Lang:     lang,
			Line:     start.Line,
			Col:      start.Col,
			EndLine:  end.Line,
			EndCol:   end.Col,
			Rule:     dg.Rule,
			RuleID:   decree.QualifiedRule(dg.Rule),
			Severity: string(decree.SeverityOf(dg)),
			Enforced: dg.Enforced,
			Message:  dg.Message,
			Span:     dg.Span,
			Text:     dg.Span.Text(src),
		})
	}
	return items
}

type fileResult struct {
	items   []Item
	errs    []ItemError
	linted  bool
	skipped string
}

func lintFile(opts Options, d *decree.Decree, rel string, explicit bool) fileResult {
	full := rel
	if !filepath.IsAbs(full) {
		full = filepath.Join(opts.RepoDir, rel)
	}
	fi, err := os.Stat(full)
	if err != nil {
		return fileResult{errs: []ItemError{newItemError(rel, "stat", err)}}
	}
	if opts.MaxFileBytes > 0 && fi.Size() > int64(opts.MaxFileBytes) {
		return fileResult{errs: []ItemError{newItemError(rel, "size", fmt.Errorf("file is %d bytes, larger than max_file_bytes=%d", fi.Size(), opts.MaxFileBytes))}}
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return fileResult{errs: []ItemError{newItemError(rel, "read", err)}}
	}
	info := detect.FromPathAndContent(rel, data)
	if info.Binary {
		return fileResult{skipped: "binary"}
	}
	if !explicit && !detect.MatchesLang(info, opts.DetectLangs) {
		return fileResult{skipped: "lang"}
	}
	lang := info.Name
	if lang == "" {
		lang = "html"
	}
	if !utf8.Valid(data) {
		// offsets stay byte based; columns may not match an editor's
		opts.Logger.Debug("file is not valid UTF-8", zapFile(rel))
	}
	return fileResult{items: LintSource(d, filepath.ToSlash(rel), lang, string(data)), linted: true}
}

func newItemError(file, stage string, err error) ItemError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return ItemError{File: filepath.ToSlash(file), Stage: stage, Message: msg}
}
