package gitworktree

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cpvmigrate/internal/domain/repositories"
)

// WorktreeRepository implements repositories.WorktreeRepository with go-git.
type WorktreeRepository struct{}

// NewWorktreeRepository creates a new go-git backed worktree repository.
func NewWorktreeRepository() repositories.WorktreeRepository {
	return &WorktreeRepository{}
}

// UncommittedFiles returns the paths that are modified, staged or untracked in
// the Git worktree enclosing root. A root outside any repository yields nil.
func (it *WorktreeRepository) UncommittedFiles(root string, paths []string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		logger.Debugf("%s is not inside a Git repository, skipping worktree check", root)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if errors.Is(err, git.ErrIsBareRepository) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}

	top := resolvePath(worktree.Filesystem.Root())

	var dirty []string
	for _, path := range paths {
		rel, relErr := filepath.Rel(top, resolvePath(path))
		if relErr != nil || strings.HasPrefix(rel, "..") {
			continue
		}

		fileStatus, ok := status[filepath.ToSlash(rel)]
		if !ok {
			continue
		}
		if fileStatus.Staging != git.Unmodified || fileStatus.Worktree != git.Unmodified {
			dirty = append(dirty, path)
		}
	}

	return dirty, nil
}

// resolvePath returns an absolute path with symlinks evaluated where possible.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, evalErr := filepath.EvalSymlinks(abs); evalErr == nil {
		return resolved
	}
	return abs
}
