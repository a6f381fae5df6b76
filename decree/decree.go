// Package decree は Datastar 属性リンタをホストから呼び出すための入口です。
//
// ホストは Name・Lint・Metadata の 3 つだけを使います。Lint はソース文字列のみに依存する純粋関数で、
// 複数ファイルを並行に処理する場合は呼び出しごとに独立して実行できます。
package decree

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phyten/dslint/internal/markup"
	"github.com/phyten/dslint/internal/model"
	"github.com/phyten/dslint/internal/rules"
)

// Name はこのルールセットの識別子です。
const Name = "datastar"

const (
	// ABIVersion はホストとの呼び出し規約のバージョンです。
	ABIVersion = "1"
	// Version はルールセット自体のバージョンです。
	Version = "0.3.0"

	description = "Datastar HTML attribute hygiene and best practices"
	authors     = "dslint authors"
)

// Diagnostic はホストへ返す診断です。
type Diagnostic = model.Diagnostic

// Config は検査グループごとの有効フラグです。
type Config = rules.Config

// DefaultConfig は全ての検査を有効にした設定を返します。
func DefaultConfig() Config { return rules.DefaultConfig() }

// Decree は設定済みの検査器一式です。生成後は変更しないため並行に使えます。
type Decree struct {
	cfg      Config
	checkers []rules.Checker
	log      *zap.Logger
}

// Option は New の追加設定です。
type Option func(*Decree)

// WithLogger は内部エラーの記録先を設定します。
func WithLogger(l *zap.Logger) Option {
	return func(d *Decree) {
		if l != nil {
			d.log = l
		}
	}
}

// New は cfg で有効な検査だけを実行する Decree を作ります。
func New(cfg Config, opts ...Option) *Decree {
	d := &Decree{
		cfg:      cfg,
		checkers: rules.Checkers(cfg),
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Default は全ての検査を有効にした Decree を返します。
func Default() *Decree { return New(DefaultConfig()) }

func (d *Decree) Name() string { return Name }

// Config は Decree の設定を返します。
func (d *Decree) Config() Config { return d.cfg }

// Lint は source を走査し、診断を発見順に返します。path は記録用で結果には影響しません。
func (d *Decree) Lint(path, source string) (out []Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("lint panicked", zap.String("path", path), zap.String("panic", fmt.Sprint(r)))
			out = nil
		}
	}()

	var sink model.Sink
	for _, tag := range markup.Tokenize(source) {
		for _, check := range d.checkers {
			check(tag, &sink)
		}
	}
	return clampAll(sink.Diagnostics(), len(source))
}

func clampAll(ds []Diagnostic, n int) []Diagnostic {
	for i := range ds {
		ds[i].Span = ds[i].Span.Clamp(n)
	}
	return ds
}

// QualifiedRule はホスト上で一意になる "datastar/<id>" 形式のルール名を返します。
func QualifiedRule(id string) string { return Name + "/" + id }
