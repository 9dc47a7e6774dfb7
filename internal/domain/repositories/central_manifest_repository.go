package repositories

import (
	"io"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
)

// CentralManifestOptions controls the shape of the emitted central manifest.
type CentralManifestOptions struct {
	FileName                string
	ManageVersionsCentrally bool
}

// CentralManifestRepository writes the file that pins every package version
// for the whole tree.
type CentralManifestRepository interface {
	// Write replaces <root>/<FileName> and returns its path.
	Write(root string, deps []entities.Dependency, opts CentralManifestOptions) (string, error)

	// Render writes the same document to w without touching the disk.
	Render(w io.Writer, deps []entities.Dependency, opts CentralManifestOptions) error
}
