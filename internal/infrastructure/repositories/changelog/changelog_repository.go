package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
	"github.com/rios0rios0/cpvmigrate/internal/domain/repositories"
)

const changelogFile = "CHANGELOG.md"

// ChangelogRepository implements repositories.ChangelogRepository for a
// Keep-a-Changelog file at the root of the tree.
type ChangelogRepository struct{}

// NewChangelogRepository creates a new changelog repository.
func NewChangelogRepository() repositories.ChangelogRepository {
	return &ChangelogRepository{}
}

// AddEntries inserts the entries into <root>/CHANGELOG.md. A missing file is
// not an error.
func (it *ChangelogRepository) AddEntries(root string, entries []string) (bool, error) {
	path := filepath.Join(root, changelogFile)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %q: %w", path, err)
	}

	content := string(data)
	updated := entities.InsertChangelogEntry(content, entries)
	if updated == content {
		return false, nil
	}

	if writeErr := os.WriteFile(path, []byte(updated), info.Mode().Perm()); writeErr != nil {
		return false, fmt.Errorf("failed to write %q: %w", path, writeErr)
	}
	return true, nil
}
