package gitinfo

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// GitInfoAdapter implements domain.RepoInspector using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

// Root returns the top of the work tree that contains dir.
func (g *GitInfoAdapter) Root(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

func (g *GitInfoAdapter) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// HasUncommittedChanges reports whether relPath (relative to root) is tracked
// and differs from HEAD in the index or the work tree. Clean and untracked
// files both report false; go-git lists neither as modified.
func (g *GitInfoAdapter) HasUncommittedChanges(root, relPath string) (bool, error) {
	repo, err := open(root)
	if err != nil {
		return false, fmt.Errorf("opening git repo: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("reading status: %w", err)
	}

	fs := status.File(filepath.ToSlash(relPath))
	if fs.Worktree == git.Untracked {
		return false, nil
	}
	return fs.Worktree != git.Unmodified || fs.Staging != git.Unmodified, nil
}

// open finds the repository from dir or any of its parents.
func open(dir string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
}
