package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
	"github.com/rios0rios0/cpvmigrate/internal/domain/repositories"
)

// Migrate is the interface for the migrate command.
type Migrate interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		opts entities.MigrateOptions,
	) (*entities.Summary, error)
}

// MigrateCommand moves inline package versions into a central manifest:
// find project files -> collect versions -> strip them -> write the manifest.
type MigrateCommand struct {
	manifests repositories.ManifestRepository
	central   repositories.CentralManifestRepository
	worktree  repositories.WorktreeRepository
	changelog repositories.ChangelogRepository
}

// NewMigrateCommand creates a new MigrateCommand with the given repositories.
func NewMigrateCommand(
	manifests repositories.ManifestRepository,
	central repositories.CentralManifestRepository,
	worktree repositories.WorktreeRepository,
	changelog repositories.ChangelogRepository,
) *MigrateCommand {
	return &MigrateCommand{
		manifests: manifests,
		central:   central,
		worktree:  worktree,
		changelog: changelog,
	}
}

// Execute runs the migration over opts.RootDir. Any error aborts the run;
// files already rewritten stay rewritten.
func (it *MigrateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts entities.MigrateOptions,
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

	if !opts.DryRun {
		it.warnUncommitted(root, files)
	}

	summary := &entities.Summary{Files: files}
	set := entities.NewDependencySet()

	for _, file := range files {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		summary.TotalFiles++

		found, collectErr := collectFile(it.manifests, file, set)
		if collectErr != nil {
			return nil, collectErr
		}
		if len(found) == 0 {
			continue
		}

		if opts.DryRun {
			logger.Infof("   [DRY RUN] Would strip %d inline versions from %s", len(found), file)
			continue
		}

		changed, stripErr := it.manifests.StripVersions(file)
		if stripErr != nil {
			return nil, fmt.Errorf("failed to strip versions: %w", stripErr)
		}
		if changed {
			summary.MigratedFiles = append(summary.MigratedFiles, file)
		}
	}

	summary.Dependencies = set.All()

	if emitErr := it.emit(root, settings, opts, summary); emitErr != nil {
		return nil, emitErr
	}

	logSummary(summary)
	return summary, nil
}

// emit writes the central manifest and the changelog entry.
func (it *MigrateCommand) emit(
	root string,
	settings *entities.Settings,
	opts entities.MigrateOptions,
	summary *entities.Summary,
) error {
	if len(summary.Dependencies) == 0 {
		logger.Infof("No inline package versions found, %s left untouched", settings.OutputFile)
		return nil
	}

	if opts.DryRun {
		logger.Infof(
			"[DRY RUN] Would write %d packages to %s",
			len(summary.Dependencies), settings.OutputFile,
		)
		return nil
	}

	path, err := it.central.Write(root, summary.Dependencies, repositories.CentralManifestOptions{
		FileName:                settings.OutputFile,
		ManageVersionsCentrally: settings.ManageVersionsCentrally,
	})
	if err != nil {
		return err
	}
	summary.OutputPath = path
	logger.Infof("Wrote %d packages to %s", len(summary.Dependencies), path)

	if !settings.Changelog {
		return nil
	}

	entry := fmt.Sprintf(
		"- changed the NuGet package versions to be managed centrally in `%s`",
		settings.OutputFile,
	)
	updated, err := it.changelog.AddEntries(root, []string{entry})
	if err != nil {
		return fmt.Errorf("failed to update changelog: %w", err)
	}
	if updated {
		logger.Info("Added changelog entry")
	}
	return nil
}

// warnUncommitted flags project files that would lose uncommitted edits
// if the run had to be undone through version control.
func (it *MigrateCommand) warnUncommitted(root string, files []string) {
	dirty, err := it.worktree.UncommittedFiles(root, files)
	if err != nil {
		logger.Warnf("Failed to check the Git worktree: %v", err)
		return
	}
	for _, file := range dirty {
		logger.Warnf("%s has uncommitted changes", file)
	}
}

func logSummary(summary *entities.Summary) {
	logger.Infof(
		"Run complete: %d project files visited, %d rewritten, %d packages centralized",
		summary.TotalFiles, len(summary.MigratedFiles), len(summary.Dependencies),
	)
	for _, file := range summary.Files {
		logger.Infof("  %s", file)
	}
}
