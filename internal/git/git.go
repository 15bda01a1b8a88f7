// Package git reads the revision of the solution collections so a rebuild can
// record exactly which checkout it indexed.
package git

import (
	"os"
	"os/exec"
	"strings"
)

// RepoInfo describes the checkout containing a collection root.
type RepoInfo struct {
	IsGitRepo bool
	Root      string
	Branch    string
	Commit    string
	Dirty     bool
}

// Revision returns "branch@shortcommit", with a trailing "+" for a dirty
// tree, or the empty string outside a repository.
func (r *RepoInfo) Revision() string {
	if r == nil || !r.IsGitRepo {
		return ""
	}
	commit := r.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	rev := r.Branch + "@" + commit
	if r.Dirty {
		rev += "+"
	}
	return rev
}

// GetRepoInfo inspects the repository containing dir. If dir is empty, it
// uses the current working directory. A directory outside any repository, or
// a machine without git, yields IsGitRepo=false rather than an error.
func GetRepoInfo(dir string) (*RepoInfo, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			//nolint:nilerr // Not being able to resolve cwd means no repository
			return &RepoInfo{IsGitRepo: false}, nil
		}
	}

	root, err := runGitCommand(dir, "rev-parse", "--show-toplevel")
	if err != nil || root == "" {
		//nolint:nilerr // Intentionally return non-repo info instead of error
		return &RepoInfo{IsGitRepo: false}, nil
	}

	info := &RepoInfo{IsGitRepo: true, Root: root}

	if branch, err := runGitCommand(dir, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		info.Branch = branch
	}

	// A fresh repository has no HEAD commit yet.
	if commit, err := runGitCommand(dir, "rev-parse", "HEAD"); err == nil {
		info.Commit = commit
	}

	if status, err := runGitCommand(dir, "status", "--porcelain"); err == nil {
		info.Dirty = status != ""
	}

	return info, nil
}

// runGitCommand executes a git command and returns the trimmed output
func runGitCommand(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	// Suppress stderr to avoid noise when not in a git repository
	cmd.Stderr = nil

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(output)), nil
}
