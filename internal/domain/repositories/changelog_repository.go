package repositories

// ChangelogRepository records the migration in the project's changelog.
type ChangelogRepository interface {
	// AddEntries inserts the entries under the unreleased section of the
	// changelog found in root and reports whether the file changed.
	AddEntries(root string, entries []string) (bool, error)
}
