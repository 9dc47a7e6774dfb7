package repositories

import (
	"context"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
)

// ManifestRepository abstracts access to the project files declaring packages.
type ManifestRepository interface {
	// Find returns every project file under root whose base name matches one
	// of the patterns, skipping directories named in excludes.
	Find(ctx context.Context, root string, patterns, excludes []string) ([]string, error)

	// Collect returns the versioned package declarations of a project file.
	// It never modifies the file.
	Collect(path string) ([]entities.Dependency, error)

	// StripVersions removes inline versions from the project file and reports
	// whether the file was rewritten.
	StripVersions(path string) (bool, error)
}
