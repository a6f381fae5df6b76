package engine

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/phyten/dslint/internal/execx"
	"github.com/phyten/dslint/internal/model"
	"github.com/phyten/dslint/internal/progress"
	"github.com/phyten/dslint/internal/rules"
)

// Item は 1 件の診断をファイル上の位置付きで表す
type Item struct {
	File     string     `json:"file"`
	Lang     string     `json:"lang,omitempty"`
	Line     int        `json:"line"`
	Col      int        `json:"col"`
	EndLine  int        `json:"end_line"`
	EndCol   int        `json:"end_col"`
	Rule     string     `json:"rule"`
	RuleID   string     `json:"rule_id"`
	Severity string     `json:"severity"`
	Enforced bool       `json:"enforced"`
	Message  string     `json:"message"`
	Span     model.Span `json:"span"`
	Text     string     `json:"text,omitempty"`
	URL      string     `json:"url,omitempty"`
}

// ItemError は 1 ファイルの処理に失敗した際の情報を表す
type ItemError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Options は実行オプション
type Options struct {
	RepoDir           string
	Paths             []string
	Excludes          []string
	ExcludeTypical    bool
	PathRegex         []string
	PathRegexCompiled []*regexp.Regexp
	DetectLangs       []string
	MaxFileBytes      int
	Jobs              int
	Rules             rules.Config
	NoGit             bool
	Progress          bool
	ProgressObserver  progress.Observer `json:"-"`
	Runner            execx.Runner      `json:"-"`
	Logger            *zap.Logger       `json:"-"`
}

// Result は出力
type Result struct {
	Items           []Item         `json:"items"`
	Total           int            `json:"total"`
	Files           int            `json:"files"`
	FilesWithIssues int            `json:"files_with_issues"`
	Counts          map[string]int `json:"counts,omitempty"`
	ElapsedMS       int64          `json:"elapsed_ms"`
	Errors          []ItemError    `json:"errors,omitempty"`
	ErrorCount      int            `json:"error_count"`
}
