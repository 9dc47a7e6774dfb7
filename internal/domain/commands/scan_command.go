package commands

import (
	"context"
	"io"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
	"github.com/rios0rios0/cpvmigrate/internal/domain/repositories"
)

// Scan is the interface for the read-only scan command.
type Scan interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		opts entities.MigrateOptions,
		out io.Writer,
	) (*entities.Summary, error)
}

// ScanCommand reports the central manifest a migration would produce without
// modifying anything.
type ScanCommand struct {
	manifests repositories.ManifestRepository
	central   repositories.CentralManifestRepository
}

// NewScanCommand creates a new ScanCommand with the given repositories.
func NewScanCommand(
	manifests repositories.ManifestRepository,
	central repositories.CentralManifestRepository,
) *ScanCommand {
	return &ScanCommand{
		manifests: manifests,
		central:   central,
	}
}

// Execute collects every versioned declaration under opts.RootDir and renders
// the resulting central manifest to out.
func (it *ScanCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts entities.MigrateOptions,
	out io.Writer,
) (*entities.Summary, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	root, err := resolveRoot(opts.RootDir)
	if err != nil {
		return nil, err
	}

	files, err := findManifests(ctx, it.manifests, root, settings)
	if err != nil {
		return nil, err
	}

	summary := &entities.Summary{Files: files}
	set := entities.NewDependencySet()

	for _, file := range files {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		summary.TotalFiles++

		if _, collectErr := collectFile(it.manifests, file, set); collectErr != nil {
			return nil, collectErr
		}
	}

	summary.Dependencies = set.All()

	renderErr := it.central.Render(out, summary.Dependencies, repositories.CentralManifestOptions{
		FileName:                settings.OutputFile,
		ManageVersionsCentrally: settings.ManageVersionsCentrally,
	})
	if renderErr != nil {
		return nil, renderErr
	}

	logger.Infof(
		"Scan complete: %d project files visited, %d packages would be centralized",
		summary.TotalFiles, len(summary.Dependencies),
	)
	return summary, nil
}
