// Package gitmeta resolves best-effort repository context for report
// envelopes. Everything here is optional: a scan target outside a git
// repository simply yields an empty context.
package gitmeta

import (
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Context identifies the repository state a scan ran against.
type Context struct {
	Repository string `json:"repository_name,omitempty"`
	Commit     string `json:"commit_hash,omitempty"`
	Branch     string `json:"branch,omitempty"`
}

// Empty reports whether no repository information was resolved.
func (c Context) Empty() bool {
	return c.Repository == "" && c.Commit == "" && c.Branch == ""
}

// Resolve opens the repository containing root, if any, and returns its
// origin remote (shortened to owner/name where possible), HEAD commit, and
// branch. Failures at any step degrade to empty fields.
func Resolve(root string) Context {
	var ctx Context
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ctx
	}
	if head, err := repo.Head(); err == nil {
		ctx.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			ctx.Branch = head.Name().Short()
		}
	}
	if remote, err := repo.Remote("origin"); err == nil {
		urls := remote.Config().URLs
		if len(urls) > 0 {
			ctx.Repository = shortenRemote(urls[0])
		}
	}
	return ctx
}

// shortenRemote reduces a remote URL to owner/name when the URL has a
// recognizable shape, otherwise returns it trimmed of the .git suffix.
func shortenRemote(url string) string {
	s := strings.TrimSuffix(strings.TrimSpace(url), ".git")
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "/"); j >= 0 {
			s = s[j+1:]
		}
	} else if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimPrefix(s, "/")
}
