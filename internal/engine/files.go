package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/phyten/dslint/internal/execx"
)

var typicalExcludeDirs = []string{"vendor", "node_modules", "dist", "build", "target", ".git"}

var typicalExcludePatterns = []string{
	":(glob,exclude)vendor/**",
	":(glob,exclude)node_modules/**",
	":(glob,exclude)dist/**",
	":(glob,exclude)build/**",
	":(glob,exclude)target/**",
	":(glob,exclude)**/*.min.*",
}

// errNotRepo は git 管理外のディレクトリを表す
var errNotRepo = errors.New("not a git repository")

// buildPathspecs builds the list to append after "--" for `git ls-files`.
func buildPathspecs(includes, excludes []string, typical bool) []string {
	normalizedIncludes := make([]string, 0, len(includes))
	for _, raw := range includes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		normalizedIncludes = append(normalizedIncludes, filepath.ToSlash(trimmed))
	}

	out := make([]string, 0, len(normalizedIncludes)+len(excludes)+len(typicalExcludePatterns)+1)
	if len(normalizedIncludes) == 0 {
		out = append(out, ".")
	} else {
		out = append(out, normalizedIncludes...)
	}

	if typical {
		out = append(out, typicalExcludePatterns...)
	}

	for _, raw := range excludes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		trimmed = filepath.ToSlash(trimmed)
		if strings.HasPrefix(trimmed, ":!") || strings.HasPrefix(trimmed, ":(exclude)") || strings.HasPrefix(trimmed, ":(glob,exclude)") {
			out = append(out, trimmed)
			continue
		}
		out = append(out, ":(glob,exclude)"+trimmed)
	}
	return out
}

// gitListFiles は追跡中と未追跡 (ignore 対象外) のファイルを列挙する
func gitListFiles(ctx context.Context, runner execx.Runner, repo string, includes, excludes []string, typical bool) ([]string, error) {
	args := []string{"-c", "core.quotePath=false", "ls-files", "-z", "--cached", "--others", "--exclude-standard", "--"}
	args = append(args, buildPathspecs(includes, excludes, typical)...)
	out, stderr, err := runner.Run(ctx, repo, "git", args...)
	if err != nil {
		if execx.IsNotFound(err) {
			return nil, errNotRepo
		}
		var ee *exec.ExitError
		if errors.As(err, &ee) && strings.Contains(strings.ToLower(string(stderr)), "not a git repository") {
			return nil, errNotRepo
		}
		return nil, fmt.Errorf("git ls-files: %w: %s", err, strings.TrimSpace(string(stderr)))
	}
	return splitNul(out), nil
}

func splitNul(out []byte) []string {
	if len(out) == 0 {
		return nil
	}
	parts := bytes.Split(out, []byte{0})
	seen := make(map[string]struct{}, len(parts))
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		s := filepath.ToSlash(string(p))
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		paths = append(paths, s)
	}
	return paths
}

// walkFiles は git を使わずにファイルを列挙する
func walkFiles(ctx context.Context, root string, includes, excludes []string, typical bool) ([]string, error) {
	if len(includes) == 0 {
		includes = []string{"."}
	}
	var files []string
	for _, inc := range includes {
		inc = strings.TrimSpace(inc)
		if inc == "" {
			continue
		}
		start := inc
		if !filepath.IsAbs(start) {
			start = filepath.Join(root, inc)
		}
		err := filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil || strings.HasPrefix(rel, "..") {
				rel = p
			}
			rel = filepath.ToSlash(rel)
			if d.IsDir() {
				if p != start && skipDir(d.Name(), rel, excludes, typical) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || excluded(rel, excludes, typical) {
				return nil
			}
			files = append(files, rel)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", inc, err)
		}
	}
	sort.Strings(files)
	return dedupeSorted(files), nil
}

func skipDir(name, rel string, excludes []string, typical bool) bool {
	if name == ".git" {
		return true
	}
	if typical {
		for _, d := range typicalExcludeDirs {
			if name == d {
				return true
			}
		}
	}
	return excluded(rel, excludes, false)
}

func excluded(rel string, excludes []string, typical bool) bool {
	base := path.Base(rel)
	if typical && strings.Contains(base, ".min.") {
		return true
	}
	for _, raw := range excludes {
		pat := strings.TrimSpace(filepath.ToSlash(raw))
		for _, prefix := range []string{":(glob,exclude)", ":(exclude)", ":!"} {
			pat = strings.TrimPrefix(pat, prefix)
		}
		if pat == "" {
			continue
		}
		if dir, ok := strings.CutSuffix(pat, "/**"); ok {
			if rel == dir || strings.HasPrefix(rel, dir+"/") {
				return true
			}
			continue
		}
		pat = strings.TrimPrefix(pat, "**/")
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		if ok, _ := path.Match(pat, base); ok {
			return true
		}
	}
	return false
}

func dedupeSorted(in []string) []string {
	out := in[:0]
	for i, s := range in {
		if i > 0 && s == in[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// CompilePathRegex は空要素を除いて正規表現をコンパイルする
func CompilePathRegex(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, raw := range patterns {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		rx, err := regexp.Compile(trimmed)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, rx)
	}
	return compiled, nil
}

func filterPathsByRegex(paths []string, rx []*regexp.Regexp) []string {
	if len(rx) == 0 {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		for _, r := range rx {
			if r.MatchString(p) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// explicitFiles は引数で直接指定された通常ファイルを返す。拡張子による絞り込みの対象外になる
func explicitFiles(root string, includes []string) map[string]bool {
	out := make(map[string]bool)
	for _, inc := range includes {
		inc = strings.TrimSpace(inc)
		if inc == "" || strings.HasPrefix(inc, ":") {
			continue
		}
		full := inc
		if !filepath.IsAbs(full) {
			full = filepath.Join(root, inc)
		}
		fi, err := os.Stat(full)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		rel := inc
		if r, err := filepath.Rel(root, full); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
		out[filepath.ToSlash(filepath.Clean(rel))] = true
	}
	return out
}
