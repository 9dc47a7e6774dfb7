package repositories

// WorktreeRepository inspects the version control state around the root.
type WorktreeRepository interface {
	// UncommittedFiles returns which of the given paths carry uncommitted
	// changes. Paths outside a repository are never reported.
	UncommittedFiles(root string, paths []string) ([]string, error)
}
