package common

import (
	"fmt"
	"strings"

	git "gopkg.in/src-d/go-git.v4"
)

// DetectProject derives the "owner/repo" project identifier from the
// origin remote of the git repository at path, so the project argument
// can be omitted when running inside a checkout.
func DetectProject(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("no origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}

	project := ProjectFromRemoteURL(urls[0])
	if project == "" {
		return "", fmt.Errorf("cannot parse project from remote URL %q", urls[0])
	}
	return project, nil
}

// ProjectFromRemoteURL extracts "owner/repo" from the common remote URL
// forms:
//
//	git@github.com:owner/repo.git
//	https://gitlab.com/owner/repo.git
//	ssh://git@github.com/owner/repo
func ProjectFromRemoteURL(url string) string {
	url = strings.TrimSuffix(strings.TrimSpace(url), ".git")

	// scp-like syntax: git@host:owner/repo
	if !strings.Contains(url, "://") {
		if _, after, found := strings.Cut(url, ":"); found {
			return strings.Trim(after, "/")
		}
		return ""
	}

	// URL syntax: scheme://[user@]host/owner/repo
	rest := url[strings.Index(url, "://")+3:]
	if i := strings.Index(rest, "/"); i >= 0 {
		return strings.Trim(rest[i+1:], "/")
	}
	return ""
}
