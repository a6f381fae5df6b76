// Package rules は Datastar 属性の検査器と、その有効・無効を切り替える設定を提供します。
package rules

import (
	"github.com/phyten/dslint/internal/markup"
	"github.com/phyten/dslint/internal/model"
)

// 診断のルール ID。
const (
	RuleAlpineVue    = "no-alpine-vue-attrs"
	RuleRequireValue = "require-value"
	RuleForTemplate  = "for-template"
	RuleTypo         = "typo"
	RuleModifier     = "invalid-modifier"
	RuleActionSyntax = "action-syntax"
)

// Checker は 1 つのタグを検査し、見つかった問題を sink に追記します。
// 検査器どうしは状態を共有しないため、任意の部分集合・順序で実行できます。
type Checker func(tag markup.Tag, sink *model.Sink)

// Config は検査グループごとの有効フラグです。ゼロ値は全て無効なので、既定値には DefaultConfig を使います。
type Config struct {
	CheckAlpineVue      bool `json:"check_alpine_vue"`
	CheckRequiredValues bool `json:"check_required_values"`
	CheckTypos          bool `json:"check_typos"`
	CheckModifiers      bool `json:"check_modifiers"`
	CheckActions        bool `json:"check_actions"`
	CheckForTemplate    bool `json:"check_for_template"`
}

// DefaultConfig は全ての検査を有効にした設定を返します。
func DefaultConfig() Config {
	return Config{
		CheckAlpineVue:      true,
		CheckRequiredValues: true,
		CheckTypos:          true,
		CheckModifiers:      true,
		CheckActions:        true,
		CheckForTemplate:    true,
	}
}

// Rule は検査器 1 つ分の登録情報です。
type Rule struct {
	ID          string
	Group       string
	Description string
	Check       Checker
	enabled     func(Config) bool
}

// Enabled は cfg でこのルールが有効かどうかを返します。
func (r Rule) Enabled(cfg Config) bool { return r.enabled(cfg) }

var registry = []Rule{
	{
		ID:          RuleAlpineVue,
		Group:       "alpine_vue",
		Description: "Disallows Alpine.js/Vue.js style attributes (x-, x:, v-, @, :)",
		Check:       CheckAlpineVue,
		enabled:     func(c Config) bool { return c.CheckAlpineVue },
	},
	{
		ID:          RuleRequireValue,
		Group:       "required_values",
		Description: "Requires values for expression-based attributes",
		Check:       CheckRequiredValues,
		enabled:     func(c Config) bool { return c.CheckRequiredValues },
	},
	{
		ID:          RuleForTemplate,
		Group:       "for_template",
		Description: "Requires data-for on <template> elements",
		Check:       CheckForTemplate,
		enabled:     func(c Config) bool { return c.CheckForTemplate },
	},
	{
		ID:          RuleTypo,
		Group:       "typos",
		Description: "Detects common typos and hyphen/colon separator mistakes in attribute names",
		Check:       CheckTypos,
		enabled:     func(c Config) bool { return c.CheckTypos },
	},
	{
		ID:          RuleModifier,
		Group:       "modifiers",
		Description: "Validates __modifier suffixes against per-attribute allow-lists",
		Check:       CheckModifiers,
		enabled:     func(c Config) bool { return c.CheckModifiers },
	},
	{
		ID:          RuleActionSyntax,
		Group:       "actions",
		Description: "Validates @action(...) call syntax and SSE URL arguments",
		Check:       CheckActions,
		enabled:     func(c Config) bool { return c.CheckActions },
	},
}

// All は登録済みのルールを実行順で返します。
func All() []Rule {
	out := make([]Rule, len(registry))
	copy(out, registry)
	return out
}

// Lookup は ID またはグループ名でルールを探します。
func Lookup(key string) (Rule, bool) {
	for _, r := range registry {
		if r.ID == key || r.Group == key {
			return r, true
		}
	}
	return Rule{}, false
}

// Checkers は cfg で有効な検査器を実行順で返します。
func Checkers(cfg Config) []Checker {
	out := make([]Checker, 0, len(registry))
	for _, r := range registry {
		if r.enabled(cfg) {
			out = append(out, r.Check)
		}
	}
	return out
}

// Set はグループ名で指定したフラグを書き換えます。未知のグループなら false を返します。
func (c *Config) Set(group string, on bool) bool {
	switch group {
	case "alpine_vue":
		c.CheckAlpineVue = on
	case "required_values":
		c.CheckRequiredValues = on
	case "for_template":
		c.CheckForTemplate = on
	case "typos":
		c.CheckTypos = on
	case "modifiers":
		c.CheckModifiers = on
	case "actions":
		c.CheckActions = on
	default:
		return false
	}
	return true
}

// Groups は設定キーとして使えるグループ名を返します。
func Groups() []string {
	out := make([]string, 0, len(registry))
	for _, r := range registry {
		out = append(out, r.Group)
	}
	return out
}
