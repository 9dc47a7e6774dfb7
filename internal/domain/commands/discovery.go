package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
	"github.com/rios0rios0/cpvmigrate/internal/domain/repositories"
)

// resolveRoot returns the absolute root directory or a PathError.
func resolveRoot(dir string) (string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", &entities.PathError{Path: dir, Err: err}
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", &entities.PathError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return "", &entities.PathError{Path: root, Err: errors.New("not a directory")}
	}

	return root, nil
}

// findManifests lists the project files under root using the settings.
func findManifests(
	ctx context.Context,
	manifests repositories.ManifestRepository,
	root string,
	settings *entities.Settings,
) ([]string, error) {
	files, err := manifests.Find(ctx, root, settings.ManifestPatterns, settings.ExcludeDirs)
	if err != nil {
		return nil, err
	}
	logger.Infof("Found %d project files under %s", len(files), root)
	return files, nil
}

// collectFile extracts the versioned declarations of one project file and
// merges them into the set, logging every package and version collision.
func collectFile(
	manifests repositories.ManifestRepository,
	file string,
	set *entities.DependencySet,
) ([]entities.Dependency, error) {
	logger.Infof("Processing %s...", file)

	found, err := manifests.Collect(file)
	if err != nil {
		return nil, fmt.Errorf("failed to collect packages: %w", err)
	}

	for _, dep := range found {
		logger.Infof("   Processing %s (%s)", dep.Name, dep.Version)

		previous, replaced := set.Add(dep)
		if !replaced {
			continue
		}
		change := entities.ClassifyVersionChange(previous.Version, dep.Version)
		if change == entities.VersionUnchanged {
			continue
		}
		logger.Warnf(
			"   %s: version %s from %s %s to %s",
			dep.Name, previous.Version, previous.FilePath, versionVerb(change), dep.Version,
		)
	}

	logger.Infof("   Found %d packages total.", len(found))
	return found, nil
}

func versionVerb(change entities.VersionChange) string {
	switch change {
	case entities.VersionUpgrade:
		return "upgraded"
	case entities.VersionDowngrade:
		return "downgraded"
	default:
		return "replaced"
	}
}
