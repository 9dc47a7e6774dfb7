//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"io"

	"github.com/rios0rios0/cpvmigrate/internal/domain/commands"
	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
)

// StubScanCommand is a stub implementation of commands.Scan.
type StubScanCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Output           string
	LastSettings     *entities.Settings
	LastOpts         entities.MigrateOptions
}

var _ commands.Scan = (*StubScanCommand)(nil)

func (s *StubScanCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts entities.MigrateOptions,
	out io.Writer,
) (*entities.Summary, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	_, err := io.WriteString(out, s.Output)
	return &entities.Summary{}, err
}
