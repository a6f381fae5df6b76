// Package gitremote は Git のリモート URL と HEAD から、診断をホスティング上の行へ結び付ける情報を得ます。
package gitremote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/phyten/dslint/internal/execx"
)

// DefaultRemote は remote 名の指定がないときに使うリモートです。
const DefaultRemote = "origin"

// Info はリモートのホスト・オーナー・リポジトリと、検査したコミットです。
type Info struct {
	Host     string
	Owner    string
	Repo     string
	Scheme   string
	Revision string
	// Prefix は検査したディレクトリのリポジトリルートからの相対パスです ("site/" など)。
	Prefix string
}

// Detect は repoDir の remote.<remote>.url と HEAD を読み取ります。
func Detect(ctx context.Context, runner execx.Runner, repoDir, remote string) (Info, error) {
	if runner == nil {
		runner = execx.DefaultRunner()
	}
	remote = strings.TrimSpace(remote)
	if remote == "" {
		remote = DefaultRemote
	}
	key := fmt.Sprintf("remote.%s.url", remote)
	raw, err := gitOutput(ctx, runner, repoDir, "config", "--get", key)
	if err != nil {
		return Info{}, err
	}
	if raw == "" {
		return Info{}, fmt.Errorf("%s is empty", key)
	}
	info, err := Parse(raw)
	if err != nil {
		return Info{}, err
	}
	if info.Revision, err = gitOutput(ctx, runner, repoDir, "rev-parse", "HEAD"); err != nil {
		return Info{}, err
	}
	if info.Prefix, err = gitOutput(ctx, runner, repoDir, "rev-parse", "--show-prefix"); err != nil {
		return Info{}, err
	}
	return info, nil
}

func gitOutput(ctx context.Context, runner execx.Runner, dir string, args ...string) (string, error) {
	stdout, stderr, err := runner.Run(ctx, dir, "git", args...)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(stdout)), nil
}

// Parse は scp 形式 (git@host:owner/repo.git) と ssh/git/http(s) の URL を解析します。
func Parse(raw string) (Info, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Info{}, errors.New("empty remote url")
	}
	if rest, ok := strings.CutPrefix(raw, "git@"); ok {
		host, p, found := strings.Cut(rest, ":")
		if !found {
			return Info{}, fmt.Errorf("invalid ssh remote: %s", raw)
		}
		owner, repo, err := splitPath(p)
		if err != nil {
			return Info{}, err
		}
		return Info{Host: strings.ToLower(strings.TrimSpace(host)), Owner: owner, Repo: repo}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Info{}, fmt.Errorf("invalid remote url: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "ssh", "git", "http", "https":
	default:
		return Info{}, fmt.Errorf("unsupported remote url: %s", raw)
	}
	cleaned, err := url.PathUnescape(strings.TrimPrefix(u.Path, "/"))
	if err != nil {
		return Info{}, fmt.Errorf("invalid remote path: %w", err)
	}
	owner, repo, err := splitPath(cleaned)
	if err != nil {
		return Info{}, err
	}
	info := Info{Host: strings.ToLower(strings.TrimSpace(u.Host)), Owner: owner, Repo: repo}
	if scheme == "http" || scheme == "https" {
		info.Scheme = scheme
	}
	return info, nil
}

func splitPath(p string) (string, string, error) {
	cleaned := strings.TrimSpace(p)
	cleaned = strings.TrimSuffix(cleaned, ".git")
	cleaned = strings.Trim(cleaned, "/\\")
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "" {
		return "", "", errors.New("missing owner/repo in remote url")
	}
	segments := strings.Split(cleaned, "/")
	if len(segments) < 2 {
		return "", "", errors.New("remote url must include owner and repo")
	}
	owner := segments[len(segments)-2]
	repo := segments[len(segments)-1]
	if owner == "" || repo == "" {
		return "", "", errors.New("invalid owner or repo in remote url")
	}
	return owner, repo, nil
}

// WebURL はリポジトリのトップページの URL です。
func (i Info) WebURL() string {
	host := strings.TrimSuffix(i.Host, "/")
	return fmt.Sprintf("%s://%s/%s/%s", i.NormalizedScheme(), host, url.PathEscape(i.Owner), url.PathEscape(i.Repo))
}

// NormalizedScheme は http のリモートだけ http を返し、それ以外は https です。
func (i Info) NormalizedScheme() string {
	if strings.EqualFold(strings.TrimSpace(i.Scheme), "http") {
		return "http"
	}
	return "https"
}

// BlobPath はファイルパスを URL 用にセグメントごとエスケープします。
func BlobPath(file string) string {
	parts := strings.Split(filepath.ToSlash(file), "/")
	for idx, part := range parts {
		parts[idx] = url.PathEscape(part)
	}
	return path.Join(parts...)
}
