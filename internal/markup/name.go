package markup

import "strings"

// ModifierDelimiter は属性名の基底名と修飾子を区切る文字列です。
const ModifierDelimiter = "__"

// DatastarPrefix は Datastar 属性の接頭辞です。
const DatastarPrefix = "data-"

// IsDatastar は name が Datastar 属性かどうかを返します。
func IsDatastar(name string) bool {
	return strings.HasPrefix(name, DatastarPrefix)
}

// BaseName は最初の区切りより前の部分を返します。
//
//	BaseName("data-on:click__debounce.500ms") == "data-on:click"
func BaseName(name string) string {
	base, _ := SplitName(name, ModifierDelimiter)
	return base
}

// Modifiers は区切りごとの修飾子を順に返します。末尾が区切りで終わる場合、空の修飾子は含めません。
//
//	Modifiers("data-on:click__debounce.500ms__once") == []string{"debounce.500ms", "once"}
func Modifiers(name string) []string {
	_, mods := SplitName(name, ModifierDelimiter)
	return mods
}

// SplitName は任意の区切り文字列で基底名と修飾子列に分解します。
func SplitName(name, delim string) (string, []string) {
	if delim == "" {
		return name, nil
	}
	pos := strings.Index(name, delim)
	if pos < 0 {
		return name, nil
	}
	base := name[:pos]
	var mods []string
	rest := name[pos+len(delim):]
	for {
		next := strings.Index(rest, delim)
		if next < 0 {
			if rest != "" {
				mods = append(mods, rest)
			}
			return base, mods
		}
		mods = append(mods, rest[:next])
		rest = rest[next+len(delim):]
	}
}

// JoinName は SplitName の逆です。
func JoinName(base string, mods []string, delim string) string {
	if len(mods) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	for _, m := range mods {
		b.WriteString(delim)
		b.WriteString(m)
	}
	return b.String()
}

// ModifierBase は "debounce.500ms" の "debounce" のように最初の '.' より前を返します。
func ModifierBase(mod string) (base, arg string, hasArg bool) {
	if dot := strings.IndexByte(mod, '.'); dot >= 0 {
		return mod[:dot], mod[dot+1:], true
	}
	return mod, "", false
}
