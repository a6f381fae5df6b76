package model

// Span はソース先頭からのバイトオフセットによる半開区間 [Start, End) です。
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len is the byte length; inverted spans count as 0.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Clamp returns the span limited to [0, n].
func (s Span) Clamp(n int) Span {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > n {
			return n
		}
		return v
	}
	out := Span{Start: clamp(s.Start), End: clamp(s.End)}
	if out.End < out.Start {
		out.End = out.Start
	}
	return out
}

// Text slices src, clamping out-of-range ends.
func (s Span) Text(src string) string {
	c := s.Clamp(len(src))
	return src[c.Start:c.End]
}

// Position は 1 始まりの行・桁です。桁はバイト単位です。
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// LineIndex はバイトオフセットから行・桁を引くための行頭オフセット表です。
type LineIndex struct {
	starts []int
	size   int
}

// NewLineIndex は src の行頭オフセットを計算します。
func NewLineIndex(src string) *LineIndex {
	starts := make([]int, 1, 64)
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts, size: len(src)}
}

// Position は offset を含む行と桁を返します。
func (x *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > x.size {
		offset = x.size
	}
	lo, hi := 0, len(x.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if x.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Position{Line: lo + 1, Col: offset - x.starts[lo] + 1}
}

func (x *LineIndex) Lines() int { return len(x.starts) }
