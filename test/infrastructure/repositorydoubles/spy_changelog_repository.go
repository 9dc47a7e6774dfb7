//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/cpvmigrate/internal/domain/repositories"
)

// SpyChangelogRepository implements repositories.ChangelogRepository as a spy.
type SpyChangelogRepository struct {
	Result  bool
	Err     error
	Entries [][]string
}

var _ repositories.ChangelogRepository = (*SpyChangelogRepository)(nil)

func (s *SpyChangelogRepository) AddEntries(_ string, entries []string) (bool, error) {
	s.Entries = append(s.Entries, entries)
	return s.Result, s.Err
}
