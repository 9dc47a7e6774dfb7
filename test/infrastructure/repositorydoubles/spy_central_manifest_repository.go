//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"io"
	"path/filepath"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
	"github.com/rios0rios0/cpvmigrate/internal/domain/repositories"
)

// SpyCentralManifestRepository implements repositories.CentralManifestRepository as a spy.
type SpyCentralManifestRepository struct {
	WriteErr   error
	WriteCalls []WriteCall

	RenderErr    error
	RenderOutput string
	RenderCalls  [][]entities.Dependency
}

// WriteCall records a single invocation of Write.
type WriteCall struct {
	Root string
	Deps []entities.Dependency
	Opts repositories.CentralManifestOptions
}

var _ repositories.CentralManifestRepository = (*SpyCentralManifestRepository)(nil)

func (s *SpyCentralManifestRepository) Write(
	root string,
	deps []entities.Dependency,
	opts repositories.CentralManifestOptions,
) (string, error) {
	s.WriteCalls = append(s.WriteCalls, WriteCall{Root: root, Deps: deps, Opts: opts})
	if s.WriteErr != nil {
		return "", s.WriteErr
	}
	return filepath.Join(root, opts.FileName), nil
}

func (s *SpyCentralManifestRepository) Render(
	w io.Writer,
	deps []entities.Dependency,
	_ repositories.CentralManifestOptions,
) error {
	s.RenderCalls = append(s.RenderCalls, deps)
	if s.RenderErr != nil {
		return s.RenderErr
	}
	_, err := io.WriteString(w, s.RenderOutput)
	return err
}
