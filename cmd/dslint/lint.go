package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/phyten/dslint/decree"
	"github.com/phyten/dslint/internal/config"
	"github.com/phyten/dslint/internal/detect"
	"github.com/phyten/dslint/internal/engine"
	engineopts "github.com/phyten/dslint/internal/engine/opts"
	"github.com/phyten/dslint/internal/gitremote"
	"github.com/phyten/dslint/internal/link"
	"github.com/phyten/dslint/internal/logging"
	"github.com/phyten/dslint/internal/output"
	"github.com/phyten/dslint/internal/progress"
	"github.com/phyten/dslint/internal/rules"
	"github.com/phyten/dslint/internal/termcolor"
)

const informationURI = "https://github.com/phyten/dslint"

func newLintCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint files and directories (default: current directory)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.lint(cmd, args)
		},
	}
	bindLintFlags(cmd.Flags())
	return cmd
}

func bindLintFlags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", "table", "output format ("+strings.Join(engineopts.OutputFormats, "|")+")")
	fs.String("color", "auto", "colorize output (auto|always|never)")
	fs.IntP("jobs", "j", 0, "max parallel workers (default: number of CPUs, up to 64)")
	fs.Int("max-file-bytes", engineopts.DefaultMaxFileBytes, "skip files larger than N bytes (0 = unlimited)")
	fs.StringSlice("ext", nil, "languages to lint, e.g. html,templ (default: html)")
	fs.StringArray("exclude", nil, "exclude paths matching the glob (repeatable)")
	fs.Bool("exclude-typical", false, "exclude vendor, node_modules, dist and similar directories")
	fs.StringArray("path-regex", nil, "only lint paths matching the regexp (repeatable)")
	fs.Bool("no-git", false, "walk the file tree instead of listing files tracked by git")
	fs.String("repo", ".", "root directory to lint")
	for _, r := range rules.All() {
		fs.Bool(groupFlag(r.Group), false, "disable "+r.ID+": "+r.Description)
	}
	fs.StringSlice("disable", nil, "disable rules by id or group")
	fs.String("fields", output.DefaultFields, "columns for table/tsv/csv/markdown")
	fs.String("sort", "", "sort keys, e.g. -severity,location")
	fs.Bool("stdin", false, "lint standard input instead of files")
	fs.String("stdin-filename", "stdin.html", "file name reported for --stdin")
	fs.String("config", "", "config file (default: .dslint.* up from --repo, then $XDG_CONFIG_HOME/dslint)")
	fs.Bool("progress", false, "force progress output on stderr")
	fs.Bool("no-progress", false, "disable progress output")
	fs.String("fail-on", "any", "exit 1 when problems are found (any|none)")
	fs.Bool("links", false, "attach a hosting URL (blob at HEAD) to each problem; use --fields ...,url to show it")
	fs.String("remote", gitremote.DefaultRemote, "git remote used for --links and SARIF provenance")
}

// groupFlag はグループ名を --no-* フラグ名にします (alpine_vue → no-alpine-vue)。
func groupFlag(group string) string {
	return "no-" + strings.ReplaceAll(group, "_", "-")
}

// flagLayer は明示的に指定されたフラグだけを設定レイヤーに写します。
// 位置引数はパスとして扱います。
func flagLayer(fs *pflag.FlagSet, args []string) (config.Config, error) {
	var cfg config.Config
	var errs []error
	e := &cfg.Engine

	str := func(name string, dst **string) {
		if !fs.Changed(name) {
			return
		}
		v, err := fs.GetString(name)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = &v
	}
	boolean := func(name string, dst **bool) {
		if !fs.Changed(name) {
			return
		}
		v, err := fs.GetBool(name)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = &v
	}
	integer := func(name string, dst **int) {
		if !fs.Changed(name) {
			return
		}
		v, err := fs.GetInt(name)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = &v
	}
	// StringSlice はカンマで区切り、StringArray (glob や正規表現) はそのまま使う。
	list := func(name string, dst **[]string) {
		if !fs.Changed(name) {
			return
		}
		var v []string
		var err error
		if fs.Lookup(name).Value.Type() == "stringArray" {
			v, err = fs.GetStringArray(name)
		} else {
			v, err = fs.GetStringSlice(name)
		}
		if err != nil {
			errs = append(errs, err)
			return
		}
		v = slices.DeleteFunc(v, func(s string) bool { return strings.TrimSpace(s) == "" })
		*dst = &v
	}

	if len(args) > 0 {
		paths := slices.Clone(args)
		e.Paths = &paths
	}
	str("output", &e.Output)
	str("color", &e.Color)
	integer("jobs", &e.Jobs)
	integer("max-file-bytes", &e.MaxFileBytes)
	list("ext", &e.DetectLangs)
	list("exclude", &e.Excludes)
	boolean("exclude-typical", &e.ExcludeTypical)
	list("path-regex", &e.PathRegex)
	boolean("no-git", &e.NoGit)
	str("repo", &e.Repo)
	str("fields", &e.Fields)
	str("sort", &e.Sort)
	str("fail-on", &e.FailOn)

	boolean("progress", &e.Progress)
	if fs.Changed("no-progress") {
		if off, err := fs.GetBool("no-progress"); err != nil {
			errs = append(errs, err)
		} else if off {
			v := false
			e.Progress = &v
		}
	}

	for _, group := range rules.Groups() {
		name := groupFlag(group)
		if !fs.Changed(name) {
			continue
		}
		off, err := fs.GetBool(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cfg.Rules.Set(group, !off)
	}
	if fs.Changed("disable") {
		names, err := fs.GetStringSlice("disable")
		if err != nil {
			errs = append(errs, err)
		}
		for _, name := range engineopts.SplitMulti(names) {
			r, ok := rules.Lookup(strings.ToLower(name))
			if !ok {
				errs = append(errs, fmt.Errorf("--disable: unknown rule %q", name))
				continue
			}
			cfg.Rules.Set(r.Group, false)
		}
	}
	return cfg, errors.Join(errs...)
}

// lintPlan は設定レイヤーを重ねた後の実行内容です。
type lintPlan struct {
	opts     engine.Options
	settings config.EngineSettings
	fields   output.FieldSelection
	sort     output.SortSpec
	color    termcolor.Settings
}

// plan は 設定ファイル → 環境変数 → フラグ の順に重ねて実行内容を決めます。
func (a *app) plan(fs *pflag.FlagSet, args []string) (lintPlan, error) {
	flags, err := flagLayer(fs, args)
	if err != nil {
		return lintPlan{}, err
	}
	env, err := config.FromEnv(a.getenv)
	if err != nil {
		return lintPlan{}, err
	}

	defaults := engineopts.Defaults(".")
	defaults.Progress = progress.ShouldShowProgress(false, false)
	base := config.EngineSettingsFromOptions(defaults)

	explicit, _ := fs.GetString("config")
	if explicit == "" {
		explicit = a.getenv("DSLINT_CONFIG")
	}
	repo := config.MergeEngine(base, env.Engine, flags.Engine).Repo
	path, source, err := config.Find(repo, explicit, a.getenv("XDG_CONFIG_HOME"), a.getenv("HOME"))
	if err != nil {
		return lintPlan{}, fmt.Errorf("find config: %w", err)
	}
	var file config.Config
	if path != "" {
		if file, err = config.Load(path); err != nil {
			return lintPlan{}, err
		}
		logging.L().Debug("config loaded", zap.String("path", path), zap.String("source", string(source)))
	}

	settings, err := config.NormalizeEngine(config.MergeEngine(base, file.Engine, env.Engine, flags.Engine))
	if err != nil {
		return lintPlan{}, err
	}
	p := lintPlan{opts: defaults, settings: settings}
	settings.ApplyToOptions(&p.opts)
	p.opts.Rules = config.MergeRules(defaults.Rules, file.Rules, env.Rules, flags.Rules)
	p.opts.Logger = logging.L()
	if err := engineopts.NormalizeAndValidate(&p.opts); err != nil {
		return lintPlan{}, err
	}

	if p.fields, err = output.ResolveFields(settings.Fields); err != nil {
		return lintPlan{}, err
	}
	if p.sort, err = output.ParseSortSpec(settings.Sort); err != nil {
		return lintPlan{}, err
	}
	stdout, _ := a.stdout.(*os.File)
	if p.color, err = termcolor.Detect(settings.Color, stdout, a.env); err != nil {
		return lintPlan{}, err
	}
	return p, nil
}

func (a *app) lint(cmd *cobra.Command, args []string) error {
	fs := cmd.Flags()
	p, err := a.plan(fs, args)
	if err != nil {
		return err
	}

	var res *engine.Result
	if stdinMode(fs) {
		name, _ := fs.GetString("stdin-filename")
		res, err = a.lintStdin(p.opts, name)
	} else {
		if p.opts.Progress {
			p.opts.ProgressObserver = progress.NewAutoObserver(a.stderr)
		}
		res, err = engine.Run(cmd.Context(), p.opts)
	}
	if err != nil {
		return err
	}

	output.ApplySort(res.Items, p.sort)
	links, _ := fs.GetBool("links")
	var vcs gitremote.Info
	if !p.opts.NoGit && !stdinMode(fs) && (links || p.settings.Output == "sarif") {
		remote, _ := fs.GetString("remote")
		vcs = detectRemote(cmd.Context(), p.opts, remote, links)
	}
	if links && vcs.Revision != "" {
		for i := range res.Items {
			it := &res.Items[i]
			it.URL = link.Range(vcs, it.File, it.Line, it.EndLine)
		}
	}
	sarif := output.SarifRunMeta{
		ToolName:       "dslint",
		ToolVersion:    decree.Version,
		InformationURI: informationURI,
		InvocationArgs: os.Args,
	}
	if vcs.Revision != "" {
		sarif.Repository = vcs.WebURL()
		sarif.Revision = vcs.Revision
	}
	err = output.Write(a.stdout, res, output.Options{
		Format:  p.settings.Output,
		Fields:  p.fields,
		Table:   output.TableOptions{Color: p.color},
		Sarif:   sarif,
		Summary: p.settings.Output == "table",
	})
	if err != nil {
		return fmt.Errorf("write %s output: %w", p.settings.Output, err)
	}
	if p.settings.FailOn == "any" && res.Total > 0 {
		return exitCodeError{code: exitProblems}
	}
	return nil
}

func stdinMode(fs *pflag.FlagSet) bool {
	v, _ := fs.GetBool("stdin")
	return v
}

// detectRemote はリンク生成用のリモート情報を取得します。取得できなければゼロ値です。
func detectRemote(ctx context.Context, opts engine.Options, remote string, requested bool) gitremote.Info {
	info, err := gitremote.Detect(ctx, opts.Runner, opts.RepoDir, remote)
	if err != nil {
		if requested {
			opts.Logger.Warn("links disabled: cannot resolve git remote", zap.String("remote", remote), zap.Error(err))
		} else {
			opts.Logger.Debug("no git remote for SARIF provenance", zap.Error(err))
		}
		return gitremote.Info{}
	}
	return info
}

// lintStdin は標準入力を name という 1 ファイルとして検査します。
func (a *app) lintStdin(opts engine.Options, name string) (*engine.Result, error) {
	start := time.Now()
	name = strings.TrimSpace(name)
	if name == "" {
		name = "stdin.html"
	}
	r := a.stdin
	if opts.MaxFileBytes > 0 {
		r = io.LimitReader(r, int64(opts.MaxFileBytes)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if opts.MaxFileBytes > 0 && len(data) > opts.MaxFileBytes {
		return nil, fmt.Errorf("stdin is larger than max_file_bytes=%d", opts.MaxFileBytes)
	}
	info := detect.FromPathAndContent(name, data)
	if info.Binary {
		return nil, errors.New("stdin looks like binary data")
	}
	lang := info.Name
	if lang == "" {
		lang = "html"
	}

	d := decree.New(opts.Rules, decree.WithLogger(opts.Logger))
	items := engine.LintSource(d, name, lang, string(data))
	res := &engine.Result{Items: items, Total: len(items), Files: 1, Counts: map[string]int{}}
	if len(items) > 0 {
		res.FilesWithIssues = 1
	}
	for _, it := range items {
		res.Counts[it.Rule]++
	}
	res.ElapsedMS = time.Since(start).Milliseconds()
	return res, nil
}
