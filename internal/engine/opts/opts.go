package opts

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/phyten/dslint/internal/detect"
	"github.com/phyten/dslint/internal/engine"
	"github.com/phyten/dslint/internal/rules"
)

const (
	maxJobs = 64

	// DefaultMaxFileBytes は 1 ファイルあたりの検査上限の既定値です。
	DefaultMaxFileBytes = 4 << 20
)

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// OutputFormats は --output に指定できる値です。
var OutputFormats = []string{"table", "tsv", "json", "ndjson", "csv", "markdown", "sarif"}

// Defaults returns the shared baseline options for both CLI and Web inputs.
func Defaults(repoDir string) engine.Options {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	return engine.Options{
		RepoDir:        repoDir,
		Jobs:           jobs,
		Rules:          rules.DefaultConfig(),
		MaxFileBytes:   DefaultMaxFileBytes,
		ExcludeTypical: false,
		DetectLangs:    nil,
		Progress:       false,
	}
}

// ApplyWebQueryToOptions copies recognised values from the query string into the
// provided options. Validation happens separately via NormalizeAndValidate.
func ApplyWebQueryToOptions(def engine.Options, q url.Values) (engine.Options, error) {
	out := def

	if raw, ok := lastLiteralValue(q["jobs"]); ok {
		n, err := ParseIntInRange(raw, "jobs", 1, maxJobs)
		if err != nil {
			return out, err
		}
		out.Jobs = n
	}
	if raw, ok := lastLiteralValue(q["max_file_bytes"]); ok {
		n, err := parseInt(raw, "max_file_bytes")
		if err != nil {
			return out, err
		}
		out.MaxFileBytes = n
	}
	if raw, ok := lastLiteralValue(q["exclude_typical"]); ok {
		v, err := ParseBool(raw, "exclude_typical")
		if err != nil {
			return out, err
		}
		out.ExcludeTypical = v
	}
	if raw, ok := lastLiteralValue(q["no_git"]); ok {
		v, err := ParseBool(raw, "no_git")
		if err != nil {
			return out, err
		}
		out.NoGit = v
	}
	if raw := q["path"]; len(raw) > 0 {
		paths := SplitMulti(raw)
		for _, p := range paths {
			if err := checkRepoLocal(p); err != nil {
				return out, err
			}
		}
		out.Paths = paths
	}
	if raw := q["exclude"]; len(raw) > 0 {
		out.Excludes = SplitMulti(raw)
	}
	if raw := q["path_regex"]; len(raw) > 0 {
		out.PathRegex = SplitMulti(raw)
	}
	if raw := q["lang"]; len(raw) > 0 {
		out.DetectLangs = SplitMulti(raw)
	}

	cfg, err := ApplyRuleQuery(out.Rules, q)
	if err != nil {
		return out, err
	}
	out.Rules = cfg
	return out, nil
}

// checkRepoLocal は Web から渡された path がリポジトリの外を指していないかを調べます。
// 絶対パス、".." で抜けるパス、git の pathspec magic (":(top)" など) を拒否します。
func checkRepoLocal(p string) error {
	if strings.HasPrefix(p, ":") || !filepath.IsLocal(filepath.FromSlash(p)) {
		return fmt.Errorf("path must stay inside the repository: %q", p)
	}
	return nil
}

// ApplyRuleQuery は "typos=0" や "check_typos=false"、"disable=typos,actions" のような
// クエリでルールの有効・無効を切り替える。ルール ID でも指定できる。
func ApplyRuleQuery(cfg rules.Config, q url.Values) (rules.Config, error) {
	for _, group := range rules.Groups() {
		for _, key := range []string{group, "check_" + group} {
			raw, ok := lastLiteralValue(q[key])
			if !ok {
				continue
			}
			v, err := ParseBool(raw, key)
			if err != nil {
				return cfg, err
			}
			cfg.Set(group, v)
		}
	}
	for _, key := range []string{"disable", "enable"} {
		for _, name := range SplitMulti(q[key]) {
			r, ok := rules.Lookup(strings.ToLower(name))
			if !ok {
				return cfg, fmt.Errorf("unknown rule for %s: %q", key, name)
			}
			cfg.Set(r.Group, key == "enable")
		}
	}
	return cfg, nil
}

// NormalizeAndValidate ensures the options are canonical and within the allowed ranges.
func NormalizeAndValidate(o *engine.Options) error {
	var errs []error
	if o.Jobs < 1 || o.Jobs > maxJobs {
		errs = append(errs, fmt.Errorf("jobs must be between 1 and %d", maxJobs))
	}
	if o.MaxFileBytes < 0 {
		errs = append(errs, fmt.Errorf("max_file_bytes must be >= 0"))
	}
	if strings.TrimSpace(o.RepoDir) == "" {
		o.RepoDir = "."
	}

	o.Paths = trimSlice(o.Paths)
	o.Excludes = trimSlice(o.Excludes)
	o.PathRegex = trimSlice(o.PathRegex)
	o.DetectLangs = trimSlice(o.DetectLangs)
	if len(o.DetectLangs) > 0 {
		o.DetectLangs = detect.CanonicalDetectLangs(o.DetectLangs)
		for _, l := range o.DetectLangs {
			if !detect.KnownLanguage(l) {
				errs = append(errs, fmt.Errorf("unknown --lang: %s", l))
			}
		}
	}

	compiled, err := engine.CompilePathRegex(o.PathRegex)
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid --path-regex: %w", err))
	}
	o.PathRegexCompiled = compiled

	return errors.Join(errs...)
}

// ParseBool converts a string literal into a boolean, accepting multiple synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the CLI/Web output format value.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "md":
		return "markdown", nil
	case "jsonl":
		return "ndjson", nil
	}
	for _, f := range OutputFormats {
		if v == f {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid --output: %s", value)
}

// SplitMulti turns repeated query parameters (and comma-separated values) into a flat slice.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func lastLiteralValue(vals []string) (string, bool) {
	flat := SplitMulti(vals)
	if len(flat) == 0 {
		return "", false
	}
	return flat[len(flat)-1], true
}

func trimSlice(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := values[:0]
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
