package repositories

import (
	"go.uber.org/dig"

	clRepo "github.com/rios0rios0/cpvmigrate/internal/infrastructure/repositories/changelog"
	gitRepo "github.com/rios0rios0/cpvmigrate/internal/infrastructure/repositories/gitworktree"
	msbuildRepo "github.com/rios0rios0/cpvmigrate/internal/infrastructure/repositories/msbuild"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(msbuildRepo.NewManifestRepository); err != nil {
		return err
	}
	if err := container.Provide(msbuildRepo.NewCentralManifestRepository); err != nil {
		return err
	}
	if err := container.Provide(gitRepo.NewWorktreeRepository); err != nil {
		return err
	}
	if err := container.Provide(clRepo.NewChangelogRepository); err != nil {
		return err
	}

	return nil
}
