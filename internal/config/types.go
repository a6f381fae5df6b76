package config

import (
	"strings"

	"github.com/phyten/dslint/internal/engine"
)

// EngineConfig は 1 つの設定レイヤー (ファイル / 環境変数 / フラグ) の値です。
// nil のフィールドは「このレイヤーでは未指定」を意味します。
type EngineConfig struct {
	Paths          *[]string `yaml:"path" toml:"path" json:"path"`
	Excludes       *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	PathRegex      *[]string `yaml:"path_regex" toml:"path_regex" json:"path_regex"`
	ExcludeTypical *bool     `yaml:"exclude_typical" toml:"exclude_typical" json:"exclude_typical"`
	DetectLangs    *[]string `yaml:"ext" toml:"ext" json:"ext"`
	Jobs           *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	Repo           *string   `yaml:"repo" toml:"repo" json:"repo"`
	Output         *string   `yaml:"output" toml:"output" json:"output"`
	Color          *string   `yaml:"color" toml:"color" json:"color"`
	MaxFileBytes   *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
	NoGit          *bool     `yaml:"no_git" toml:"no_git" json:"no_git"`
	Progress       *bool     `yaml:"progress" toml:"progress" json:"progress"`
	Fields         *string   `yaml:"fields" toml:"fields" json:"fields"`
	Sort           *string   `yaml:"sort" toml:"sort" json:"sort"`
	FailOn         *string   `yaml:"fail_on" toml:"fail_on" json:"fail_on"`
}

// RulesConfig はルールグループごとの有効・無効です。
type RulesConfig struct {
	AlpineVue      *bool `yaml:"alpine_vue" toml:"alpine_vue" json:"alpine_vue"`
	RequiredValues *bool `yaml:"required_values" toml:"required_values" json:"required_values"`
	ForTemplate    *bool `yaml:"for_template" toml:"for_template" json:"for_template"`
	Typos          *bool `yaml:"typos" toml:"typos" json:"typos"`
	Modifiers      *bool `yaml:"modifiers" toml:"modifiers" json:"modifiers"`
	Actions        *bool `yaml:"actions" toml:"actions" json:"actions"`
}

type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
	Rules  RulesConfig  `yaml:"rules" toml:"rules" json:"rules"`
}

type EngineSettings struct {
	Paths          []string
	Excludes       []string
	PathRegex      []string
	ExcludeTypical bool
	DetectLangs    []string
	Jobs           int
	Repo           string
	Output         string
	Color          string
	MaxFileBytes   int
	NoGit          bool
	Progress       bool
	Fields         string
	Sort           string
	FailOn         string
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		Paths:          cloneStrings(opts.Paths),
		Excludes:       cloneStrings(opts.Excludes),
		PathRegex:      cloneStrings(opts.PathRegex),
		ExcludeTypical: opts.ExcludeTypical,
		DetectLangs:    cloneStrings(opts.DetectLangs),
		Jobs:           opts.Jobs,
		Repo:           opts.RepoDir,
		Output:         "table",
		Color:          "auto",
		MaxFileBytes:   opts.MaxFileBytes,
		NoGit:          opts.NoGit,
		Progress:       opts.Progress,
		FailOn:         "any",
	}
}

func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Paths = cloneStrings(s.Paths)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.PathRegex = cloneStrings(s.PathRegex)
	opts.ExcludeTypical = s.ExcludeTypical
	opts.DetectLangs = cloneStrings(s.DetectLangs)
	opts.Jobs = s.Jobs
	if trimmed := strings.TrimSpace(s.Repo); trimmed != "" {
		opts.RepoDir = trimmed
	}
	opts.MaxFileBytes = s.MaxFileBytes
	opts.NoGit = s.NoGit
	opts.Progress = s.Progress
}

// field は RulesConfig の各ポインタをグループ名と対応付けます。
func (r *RulesConfig) field(group string) **bool {
	switch group {
	case "alpine_vue":
		return &r.AlpineVue
	case "required_values":
		return &r.RequiredValues
	case "for_template":
		return &r.ForTemplate
	case "typos":
		return &r.Typos
	case "modifiers":
		return &r.Modifiers
	case "actions":
		return &r.Actions
	}
	return nil
}

// Set はグループ group をこのレイヤーで on に固定します。未知のグループなら false を返します。
func (r *RulesConfig) Set(group string, on bool) bool {
	f := r.field(group)
	if f == nil {
		return false
	}
	*f = boolPtr(on)
	return true
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
