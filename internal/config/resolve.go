package config

import "strings"

// resolve は nil でない最後のレイヤーの値を返します。全て nil なら def です。
func resolve[T any](def T, layers ...*T) T {
	out := def
	for _, v := range layers {
		if v != nil {
			out = *v
		}
	}
	return out
}

// resolveList は一覧値を重ねます。空の一覧を明示したレイヤーは既定値を打ち消します。
func resolveList(def []string, layers ...*[]string) []string {
	out := cloneStrings(def)
	for _, v := range layers {
		if v == nil {
			continue
		}
		if len(*v) == 0 {
			out = []string{}
			continue
		}
		out = cloneStrings(*v)
	}
	return out
}

// resolveWord は output や fail-on のような語を重ね、前後の空白を落とします。
// 空白だけのレイヤーは未指定として扱い、fallback に戻します。
func resolveWord(def, fallback string, layers ...*string) string {
	out := strings.TrimSpace(resolve(def, layers...))
	if out == "" {
		return fallback
	}
	return out
}
