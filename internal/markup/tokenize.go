// Package markup は HTML 風のマークアップからタグと属性をバイトオフセット付きで取り出します。
//
// 検証は行いません。壊れた入力は認識できるタグや属性が減るだけで、走査全体は止まりません。
package markup

import (
	"strings"

	"github.com/phyten/dslint/internal/model"
)

// Tag は開始・自己終了・終了いずれかのタグ 1 つ分です。
type Tag struct {
	Name       string
	Attributes []Attribute
}

// Attribute はタグ上の属性です。HasValue は '=' があったかどうかを表し、
// 値なしと空文字の値を区別します。ValueSpan は HasValue のときだけ意味を持ちます。
type Attribute struct {
	Name      string
	Value     string
	HasValue  bool
	NameSpan  model.Span
	ValueSpan model.Span
}

// Span は値があれば値の範囲、なければ名前の範囲を返します。
func (a Attribute) Span() model.Span {
	if a.HasValue {
		return a.ValueSpan
	}
	return a.NameSpan
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\n', '\t', '\r', '\f':
		return true
	}
	return false
}

func isTagNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == ':' || b == '_':
		return true
	}
	return false
}

// Tokenize は src を先頭から一度だけ走査してタグ列を返します。どの入力でも失敗しません。
func Tokenize(src string) []Tag {
	var tags []Tag
	n := len(src)
	i := 0
	for i < n {
		if src[i] != '<' {
			i++
			continue
		}

		if strings.HasPrefix(src[i+1:], "!--") {
			end := strings.Index(src[i+4:], "-->")
			if end < 0 {
				// unterminated comment swallows the rest
				break
			}
			i = i + 4 + end + 3
			continue
		}

		idx := i + 1
		if idx < n && src[idx] == '/' {
			idx++
		}
		idx = skipSpace(src, idx)

		if idx < n && (src[idx] == '!' || src[idx] == '?') {
			end := strings.IndexByte(src[idx:], '>')
			if end < 0 {
				break
			}
			i = idx + end + 1
			continue
		}

		nameStart := idx
		for idx < n && isTagNameByte(src[idx]) {
			idx++
		}
		if idx == nameStart {
			i++
			continue
		}

		tag := Tag{Name: src[nameStart:idx]}
		idx = scanAttributes(src, idx, &tag)
		tags = append(tags, tag)
		i = idx
	}
	return tags
}

// scanAttributes はタグ名の直後から属性を読み、タグを閉じた位置 (または入力末尾) を返します。
func scanAttributes(src string, idx int, tag *Tag) int {
	n := len(src)
	for {
		idx = skipSpace(src, idx)
		if idx >= n {
			return idx
		}
		switch src[idx] {
		case '>':
			return idx + 1
		case '/':
			if idx+1 < n && src[idx+1] == '>' {
				return idx + 2
			}
		}

		start := idx
		for idx < n && !isSpace(src[idx]) && src[idx] != '=' && src[idx] != '>' && src[idx] != '/' {
			idx++
		}
		if idx == start {
			// stray '=' or lone '/'
			idx++
			continue
		}
		attr := Attribute{
			Name:     src[start:idx],
			NameSpan: model.Span{Start: start, End: idx},
		}

		idx = skipSpace(src, idx)
		if idx < n && src[idx] == '=' {
			idx = skipSpace(src, idx+1)
			if idx < n {
				idx = scanValue(src, idx, &attr)
			}
		}
		tag.Attributes = append(tag.Attributes, attr)
	}
}

func scanValue(src string, idx int, attr *Attribute) int {
	n := len(src)
	if q := src[idx]; q == '"' || q == '\'' {
		idx++
		start := idx
		for idx < n && src[idx] != q {
			idx++
		}
		attr.Value = src[start:idx]
		attr.HasValue = true
		attr.ValueSpan = model.Span{Start: start, End: idx}
		if idx < n {
			idx++
		}
		return idx
	}
	start := idx
	for idx < n && !isSpace(src[idx]) && src[idx] != '>' {
		idx++
	}
	attr.Value = src[start:idx]
	attr.HasValue = true
	attr.ValueSpan = model.Span{Start: start, End: idx}
	return idx
}

func skipSpace(src string, idx int) int {
	for idx < len(src) && isSpace(src[idx]) {
		idx++
	}
	return idx
}
