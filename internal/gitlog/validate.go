package gitlog

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// ValidateTree checks that path opens as a git repository before any
// extraction runs. DetectDotGit traverses up the directory tree, so a
// subdirectory of a work tree is accepted the way the git CLI would.
func ValidateTree(path string) error {
	_, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return nil
}

// HeadBranch returns the branch name a tree's HEAD points at, or empty
// for a detached HEAD. Used for configuration diagnostics only.
func HeadBranch(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("opening repository at %s: %w", path, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}
