//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
	"github.com/rios0rios0/cpvmigrate/internal/domain/repositories"
)

// SpyManifestRepository implements repositories.ManifestRepository as a configurable spy.
type SpyManifestRepository struct {
	// --- Find ---
	Files       []string
	FindErr     error
	FoundRoots  []string
	FindFilters [][]string

	// --- Collect ---
	Dependencies map[string][]entities.Dependency // path -> declarations
	CollectErr   error
	Collected    []string

	// --- StripVersions ---
	StripResult bool
	StripErr    error
	Stripped    []string
}

var _ repositories.ManifestRepository = (*SpyManifestRepository)(nil)

func (s *SpyManifestRepository) Find(
	_ context.Context, root string, patterns, _ []string,
) ([]string, error) {
	s.FoundRoots = append(s.FoundRoots, root)
	s.FindFilters = append(s.FindFilters, patterns)
	return s.Files, s.FindErr
}

func (s *SpyManifestRepository) Collect(path string) ([]entities.Dependency, error) {
	s.Collected = append(s.Collected, path)
	if s.CollectErr != nil {
		return nil, s.CollectErr
	}
	return s.Dependencies[path], nil
}

func (s *SpyManifestRepository) StripVersions(path string) (bool, error) {
	s.Stripped = append(s.Stripped, path)
	return s.StripResult, s.StripErr
}
