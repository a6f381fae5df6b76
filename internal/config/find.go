package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source は設定ファイルがどこで見つかったかを表します。
type Source string

const (
	SourceNone     Source = ""
	SourceExplicit Source = "explicit"
	SourceAncestor Source = "cwd-up"
	SourceXDG      Source = "xdg"
	SourceHome     Source = "home"
)

var (
	dotFilenames = []string{
		".dslint.yaml",
		".dslint.yml",
		".dslint.toml",
		".dslint.json",
	}
	xdgFilenames = []string{
		"config.yaml",
		"config.yml",
		"config.toml",
		"config.json",
	}
)

// Find は設定ファイルを次の順で探します。
//
//  1. explicitPath (--config / DSLINT_CONFIG)
//  2. repoDir から親ディレクトリへ遡った .dslint.*
//  3. $XDG_CONFIG_HOME/dslint/config.* (未設定なら ~/.config)
//  4. ~/.dslint.*
//
// 見つからない場合は空のパスと SourceNone を返します。
func Find(repoDir, explicitPath, xdgHome, home string) (string, Source, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		candidate, err := filepath.Abs(explicit)
		if err != nil {
			return "", SourceNone, err
		}
		info, err := os.Stat(candidate)
		if err != nil {
			return "", SourceNone, err
		}
		if info.IsDir() {
			return "", SourceNone, fmt.Errorf("config %q points to a directory", candidate)
		}
		return candidate, SourceExplicit, nil
	}

	start := strings.TrimSpace(repoDir)
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", SourceNone, err
	}
	for {
		if found := firstRegular(dir, dotFilenames); found != "" {
			return found, SourceAncestor, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	homeDir := strings.TrimSpace(home)
	if homeDir == "" {
		if h, err := os.UserHomeDir(); err == nil {
			homeDir = h
		}
	}
	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" && homeDir != "" {
		xdgRoot = filepath.Join(homeDir, ".config")
	}
	if xdgRoot != "" {
		if found := firstRegular(filepath.Join(xdgRoot, "dslint"), xdgFilenames); found != "" {
			return found, SourceXDG, nil
		}
	}
	if homeDir != "" {
		if found := firstRegular(homeDir, dotFilenames); found != "" {
			return found, SourceHome, nil
		}
	}
	return "", SourceNone, nil
}

func firstRegular(dir string, names []string) string {
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}
