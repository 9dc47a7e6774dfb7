//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/cpvmigrate/internal/domain/commands"
	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
)

// StubMigrateCommand is a stub implementation of commands.Migrate.
type StubMigrateCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Summary          *entities.Summary
	LastSettings     *entities.Settings
	LastOpts         entities.MigrateOptions
}

var _ commands.Migrate = (*StubMigrateCommand)(nil)

func (s *StubMigrateCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts entities.MigrateOptions,
) (*entities.Summary, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Summary, s.ExecuteErr
}
