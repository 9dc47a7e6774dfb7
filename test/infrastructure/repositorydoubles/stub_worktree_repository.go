//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/cpvmigrate/internal/domain/repositories"
)

// StubWorktreeRepository is a stub implementation of repositories.WorktreeRepository.
type StubWorktreeRepository struct {
	Dirty     []string
	Err       error
	CallCount int
}

var _ repositories.WorktreeRepository = (*StubWorktreeRepository)(nil)

func (s *StubWorktreeRepository) UncommittedFiles(_ string, _ []string) ([]string, error) {
	s.CallCount++
	return s.Dirty, s.Err
}
