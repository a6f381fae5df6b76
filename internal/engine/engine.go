package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/phyten/dslint/decree"
	"github.com/phyten/dslint/internal/execx"
	"github.com/phyten/dslint/internal/progress"
)

// Run は指定されたオプションに従ってファイルを列挙し、マークアップを並列に検査します。
//
// 成功時には診断と集計情報を保持した Result を返し、
// ファイル単位で発生したエラーは Result.Errors に集約されます。
// ctx が取り消された場合は ctx.Err() を返します。
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Runner == nil {
		opts.Runner = execx.DefaultRunner()
	}
	if len(opts.PathRegexCompiled) == 0 && len(opts.PathRegex) > 0 {
		rx, err := CompilePathRegex(opts.PathRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid --path-regex: %w", err)
		}
		opts.PathRegexCompiled = rx
	}
	log := opts.Logger

	files, err := listFiles(ctx, opts)
	if err != nil {
		return nil, err
	}
	files = filterPathsByRegex(files, opts.PathRegexCompiled)
	sort.Strings(files)
	log.Debug("files discovered", zap.Int("count", len(files)), zap.Int("jobs", opts.Jobs))

	explicit := explicitFiles(opts.RepoDir, opts.Paths)
	d := decree.New(opts.Rules, decree.WithLogger(log))

	obs := opts.ProgressObserver
	if obs == nil {
		obs = progress.NoopObserver{}
		if opts.Progress {
			obs = progress.NewAutoObserver(nil)
		}
	}
	est := progress.NewEstimator(len(files), progress.Config{})
	if snap, changed := est.Stage(progress.StageLint); changed {
		obs.Publish(snap)
	}

	// worker pool; results keep the file order
	results := make([]fileResult, len(files))
	var pubMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, max(len(files), 1)))
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fileStart := time.Now()
			res := lintFile(opts, d, file, explicit[file])
			results[i] = res
			if res.skipped != "" {
				log.Debug("file skipped", zapFile(file), zap.String("reason", res.skipped))
			} else {
				log.Debug("file linted", zapFile(file), zap.Int("findings", len(res.items)), zap.Duration("took", time.Since(fileStart)))
			}
			if snap, notify := est.Advance(1, len(res.items)); notify {
				pubMu.Lock()
				obs.Publish(snap)
				pubMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		obs.Done(est.Complete())
		return nil, err
	}
	obs.Done(est.Complete())

	res := collect(results)
	res.ElapsedMS = msSince(start)
	for _, e := range res.Errors {
		log.Warn("file not linted", zapFile(e.File), zap.String("stage", e.Stage), zap.String("error", e.Message))
	}
	return res, nil
}

func listFiles(ctx context.Context, opts Options) ([]string, error) {
	if !opts.NoGit {
		files, err := gitListFiles(ctx, opts.Runner, opts.RepoDir, opts.Paths, opts.Excludes, opts.ExcludeTypical)
		if err == nil {
			return files, nil
		}
		if !errors.Is(err, errNotRepo) {
			return nil, err
		}
		// not a repository: fall back to a plain walk
		opts.Logger.Debug("git unavailable, walking the file tree", zap.String("dir", opts.RepoDir))
	}
	return walkFiles(ctx, opts.RepoDir, opts.Paths, opts.Excludes, opts.ExcludeTypical)
}

// collect はファイル順を保ったまま結果を平坦化する。同一ファイル内は発見順のまま
func collect(results []fileResult) *Result {
	out := &Result{Counts: map[string]int{}}
	for _, r := range results {
		if r.linted {
			out.Files++
		}
		if len(r.items) > 0 {
			out.FilesWithIssues++
			out.Items = append(out.Items, r.items...)
			for _, it := range r.items {
				out.Counts[it.Rule]++
			}
		}
		out.Errors = append(out.Errors, r.errs...)
	}
	sort.SliceStable(out.Errors, func(i, j int) bool {
		if out.Errors[i].File == out.Errors[j].File {
			return out.Errors[i].Stage < out.Errors[j].Stage
		}
		return out.Errors[i].File < out.Errors[j].File
	})
	out.Total = len(out.Items)
	out.ErrorCount = len(out.Errors)
	return out
}

func zapFile(f string) zap.Field { return zap.String("file", f) }

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }
