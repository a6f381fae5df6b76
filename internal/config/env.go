package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	engineopts "github.com/phyten/dslint/internal/engine/opts"
	"github.com/phyten/dslint/internal/rules"
)

// FromEnv は DSLINT_* 環境変数から設定レイヤーを組み立てます。
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := engineopts.SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		copyVals := make([]string, len(list))
		copy(copyVals, list)
		*target = &copyVals
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setList(&cfg.Engine.Paths, "DSLINT_PATH")
	setList(&cfg.Engine.Excludes, "DSLINT_EXCLUDE")
	setList(&cfg.Engine.PathRegex, "DSLINT_PATH_REGEX")
	setList(&cfg.Engine.DetectLangs, "DSLINT_EXT")
	setBool(&cfg.Engine.ExcludeTypical, "DSLINT_EXCLUDE_TYPICAL")
	setString(&cfg.Engine.Output, "DSLINT_OUTPUT")
	setString(&cfg.Engine.Color, "DSLINT_COLOR")
	setInt(&cfg.Engine.MaxFileBytes, "DSLINT_MAX_FILE_BYTES", 0, math.MaxInt)
	// Upper bounds are enforced by NormalizeAndValidate so every input path
	// shares the same error message.
	setInt(&cfg.Engine.Jobs, "DSLINT_JOBS", 0, math.MaxInt)
	setString(&cfg.Engine.Repo, "DSLINT_REPO")
	setBool(&cfg.Engine.NoGit, "DSLINT_NO_GIT")
	setBool(&cfg.Engine.Progress, "DSLINT_PROGRESS")
	setString(&cfg.Engine.Fields, "DSLINT_FIELDS")
	setString(&cfg.Engine.Sort, "DSLINT_SORT")
	setString(&cfg.Engine.FailOn, "DSLINT_FAIL_ON")

	for _, group := range rules.Groups() {
		setBool(cfg.Rules.field(group), "DSLINT_CHECK_"+strings.ToUpper(group))
	}
	if raw := strings.TrimSpace(getenv("DSLINT_DISABLE")); raw != "" {
		for _, name := range engineopts.SplitMulti([]string{raw}) {
			r, ok := rules.Lookup(strings.ToLower(name))
			if !ok {
				errs = append(errs, fmt.Errorf("DSLINT_DISABLE: unknown rule %q", name))
				continue
			}
			*cfg.Rules.field(r.Group) = boolPtr(false)
		}
	}

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
