package entities

// MigrateOptions holds runtime options passed to the migration.
type MigrateOptions struct {
	RootDir string
	DryRun  bool
	Verbose bool
}
