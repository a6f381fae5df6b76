package config

import (
	"errors"
	"fmt"
	"strings"

	engineopts "github.com/phyten/dslint/internal/engine/opts"
)

func CanonicalizeColor(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "", "auto":
		return "auto", nil
	case "always", "never":
		return mode, nil
	default:
		return "", fmt.Errorf("invalid color: %s", raw)
	}
}

// CanonicalizeFailOn は終了コードを決める閾値 (none|any) を正規化します。
func CanonicalizeFailOn(raw string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "", "any", "error":
		return "any", nil
	case "none", "never":
		return "none", nil
	default:
		return "", fmt.Errorf("invalid fail_on: %s", raw)
	}
}

func NormalizeEngine(values EngineSettings) (EngineSettings, error) {
	var errs []error
	var err error
	if values.Output, err = engineopts.NormalizeOutput(values.Output); err != nil {
		errs = append(errs, err)
	}
	if values.Color, err = CanonicalizeColor(values.Color); err != nil {
		errs = append(errs, err)
	}
	if values.FailOn, err = CanonicalizeFailOn(values.FailOn); err != nil {
		errs = append(errs, err)
	}
	values.Fields = strings.TrimSpace(values.Fields)
	values.Sort = strings.TrimSpace(values.Sort)
	return values, errors.Join(errs...)
}
