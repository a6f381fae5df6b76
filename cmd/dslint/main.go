// Command dslint は HTML やテンプレート中の Datastar 属性を検査します。
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phyten/dslint/decree"
	"github.com/phyten/dslint/internal/logging"
	"github.com/phyten/dslint/internal/termcolor"
)

const (
	exitOK       = 0
	exitProblems = 1
	exitFailure  = 2
)

// app はコマンドが使う入出力と環境変数です。テストでは差し替えます。
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	env    map[string]string
}

func (a *app) getenv(key string) string { return a.env[key] }

// exitCodeError はメッセージを出さずに終了コードだけを返すためのエラーです。
type exitCodeError struct{ code int }

func (e exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		env:    termcolor.EnvMap(os.Environ()),
	}
	code := a.run(ctx, os.Args[1:])
	stop()
	_ = logging.Sync()
	os.Exit(code)
}

func (a *app) run(ctx context.Context, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	var exit exitCodeError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &exit):
		return exit.code
	default:
		logging.L().Error("dslint failed", zap.Error(err))
		return exitFailure
	}
}

// newRootCmd はサブコマンドを登録したルートを返します。
// サブコマンドを省略した場合は lint として動きます。
func newRootCmd(a *app) *cobra.Command {
	root := newLintCmd(a)
	root.Use = "dslint [paths...]"
	root.Short = "Lint Datastar attributes in HTML and templates"
	root.Long = `dslint reports Alpine/Vue leftovers, missing values, typos,
invalid modifiers and malformed actions in Datastar data-* attributes.`
	root.Version = decree.Version
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error (default DSLINT_LOG_LEVEL or warn)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
			return logging.SetLevel(f.Value.String())
		}
		return nil
	}

	root.AddCommand(newLintCmd(a))
	root.AddCommand(newRulesCmd(a))
	root.AddCommand(newMetadataCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newVersionCmd(a))
	return root
}
