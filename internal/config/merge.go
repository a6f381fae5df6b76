package config

import (
	"strings"

	"github.com/phyten/dslint/internal/rules"
)

func boolPtr(v bool) *bool {
	b := v
	return &b
}

// MergeEngine は後のレイヤーほど優先してエンジン設定を重ねます。
func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	for _, layer := range layers {
		out.Paths = resolveList(out.Paths, layer.Paths)
		out.Excludes = resolveList(out.Excludes, layer.Excludes)
		out.PathRegex = resolveList(out.PathRegex, layer.PathRegex)
		out.ExcludeTypical = resolve(out.ExcludeTypical, layer.ExcludeTypical)
		out.DetectLangs = resolveList(out.DetectLangs, layer.DetectLangs)
		out.Jobs = resolve(out.Jobs, layer.Jobs)
		out.Repo = strings.TrimSpace(resolve(out.Repo, layer.Repo))
		out.Output = resolveWord(out.Output, "", layer.Output)
		out.Color = resolveWord(out.Color, "", layer.Color)
		out.MaxFileBytes = resolve(out.MaxFileBytes, layer.MaxFileBytes)
		out.NoGit = resolve(out.NoGit, layer.NoGit)
		out.Progress = resolve(out.Progress, layer.Progress)
		out.Fields = strings.TrimSpace(resolve(out.Fields, layer.Fields))
		out.Sort = strings.TrimSpace(resolve(out.Sort, layer.Sort))
		out.FailOn = resolveWord(out.FailOn, "", layer.FailOn)
	}
	out.Output = resolveWord(out.Output, "table")
	out.Color = resolveWord(out.Color, "auto")
	out.FailOn = resolveWord(out.FailOn, "any")
	return out
}

// MergeRules は後のレイヤーほど優先してルールの有効・無効を重ねます。
func MergeRules(base rules.Config, layers ...RulesConfig) rules.Config {
	out := base
	for _, layer := range layers {
		for _, group := range rules.Groups() {
			if v := *layer.field(group); v != nil {
				out.Set(group, *v)
			}
		}
	}
	return out
}
