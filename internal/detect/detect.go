// Package detect はファイル名と内容からマークアップの種類を判定します。
package detect

import (
	"bytes"
	"path/filepath"
	"strings"
)

type Info struct {
	Name   string
	Binary bool
}

// DefaultLangs はファイル種別の指定がないときに対象とする種類です。
var DefaultLangs = []string{"html"}

// sniffLen は内容判定で先頭から読むバイト数です。
const sniffLen = 8000

func FromPathAndContent(p string, data []byte) Info {
	if looksBinary(data) {
		return Info{Binary: true}
	}
	if name := detectByPath(p); name != "" {
		return Info{Name: name}
	}
	return Info{Name: detectByContent(data)}
}

// FromPath は内容を読まずにパスだけで判定します。
func FromPath(p string) Info {
	return Info{Name: detectByPath(p)}
}

func detectByPath(p string) string {
	lowerBase := strings.ToLower(filepath.Base(p))
	ext := filepath.Ext(lowerBase)
	if ext == "" {
		return ""
	}
	stem := strings.TrimSuffix(lowerBase, ext)
	// "page.html.erb" は外側の .erb を優先する
	if inner := filepath.Ext(stem); inner != "" {
		if lang, ok := compoundLanguages[inner+ext]; ok {
			return lang
		}
	}
	return extensionLanguages[ext]
}

func detectByContent(data []byte) string {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	head = bytes.TrimLeft(head, " \t\r\n\ufeff")
	lower := bytes.ToLower(head)
	for _, marker := range [][]byte{[]byte("<!doctype html"), []byte("<html")} {
		if bytes.HasPrefix(lower, marker) {
			return "html"
		}
	}
	return ""
}

func looksBinary(data []byte) bool {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	return bytes.IndexByte(head, 0) >= 0
}

func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, ".")
	if n == "" {
		return ""
	}
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	return n
}

func MatchesLang(info Info, allow []string) bool {
	if info.Binary {
		return false
	}
	if len(allow) == 0 {
		allow = DefaultLangs
	}
	detected := NormalizeLangName(info.Name)
	if detected == "" {
		return false
	}
	for _, raw := range allow {
		if n := NormalizeLangName(raw); n == detected || n == "all" {
			return true
		}
	}
	return false
}

func KnownLanguage(name string) bool {
	n := NormalizeLangName(name)
	if n == "all" {
		return true
	}
	_, ok := knownLanguages[n]
	return ok
}

// CanonicalDetectLangs は名前を正規化し、重複を除いた順序付きの一覧を返します。
func CanonicalDetectLangs(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		n := NormalizeLangName(raw)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Extensions は lang に対応する拡張子 ("." なし) を返します。
func Extensions(lang string) []string {
	n := NormalizeLangName(lang)
	var out []string
	for ext, l := range extensionLanguages {
		if l == n {
			out = append(out, strings.TrimPrefix(ext, "."))
		}
	}
	return out
}

var extensionLanguages = map[string]string{
	".html":       "html",
	".htm":        "html",
	".xhtml":      "html",
	".shtml":      "html",
	".gohtml":     "go-template",
	".tmpl":       "go-template",
	".gotmpl":     "go-template",
	".templ":      "templ",
	".jinja":      "jinja",
	".jinja2":     "jinja",
	".j2":         "jinja",
	".njk":        "nunjucks",
	".twig":       "twig",
	".liquid":     "liquid",
	".erb":        "erb",
	".hbs":        "handlebars",
	".handlebars": "handlebars",
	".mustache":   "handlebars",
	".php":        "php",
	".cshtml":     "razor",
	".razor":      "razor",
	".astro":      "astro",
	".svelte":     "svelte",
	".vue":        "vue",
	".jsx":        "jsx",
	".tsx":        "jsx",
	".md":         "markdown",
}

var compoundLanguages = map[string]string{
	".html.erb":    "erb",
	".html.twig":   "twig",
	".html.j2":     "jinja",
	".html.jinja":  "jinja",
	".html.tmpl":   "go-template",
	".html.liquid": "liquid",
	".html.hbs":    "handlebars",
}

var langAliases = map[string]string{
	"htm":         "html",
	"xhtml":       "html",
	"gohtml":      "go-template",
	"gotmpl":      "go-template",
	"tmpl":        "go-template",
	"gotemplate":  "go-template",
	"j2":          "jinja",
	"jinja2":      "jinja",
	"django":      "jinja",
	"hbs":         "handlebars",
	"mustache":    "handlebars",
	"cshtml":      "razor",
	"blazor":      "razor",
	"tsx":         "jsx",
	"md":          "markdown",
	"njk":         "nunjucks",
	"rails":       "erb",
	"html-erb":    "erb",
	"go-templ":    "templ",
	"a-h/templ":   "templ",
	"*":           "all",
	"any":         "all",
	"everything":  "all",
	"html5":       "html",
	"xhtml1":      "html",
	"shtml":       "html",
	"handlebar":   "handlebars",
	"liquid-html": "liquid",
}

var knownLanguages = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, l := range extensionLanguages {
		m[l] = struct{}{}
	}
	return m
}()
