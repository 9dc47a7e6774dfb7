package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/cpvmigrate/internal/domain/commands"
	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
)

// MigrateController handles the root command with a path argument.
type MigrateController struct {
	command commands.Migrate
}

// NewMigrateController creates a new MigrateController.
func NewMigrateController(command commands.Migrate) *MigrateController {
	return &MigrateController{command: command}
}

// GetBind returns the Cobra command metadata for the migrate controller.
func (it *MigrateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "cpvmigrate <path>",
		Short: "Migrate NuGet package versions to central package management",
		Long: `Scans a directory tree for *.csproj files, collects the package versions
declared inline on PackageReference items, removes them from the project files,
and writes a single Directory.packages.props at the root listing every package
with its version.

When the same package is declared with different versions, the project file
processed last (in lexical path order) wins.`,
	}
}

// Execute runs the migration over the directory given as the only argument.
func (it *MigrateController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	opts := readOptions(cmd, args)

	settings, err := loadSettings(cmd, opts.RootDir)
	if err != nil {
		return err
	}

	changelog, _ := cmd.Flags().GetBool("changelog")
	if changelog {
		settings.Changelog = true
	}

	_, err = it.command.Execute(ctx, settings, opts)
	return err
}

// AddFlags adds the migrate-specific flags to the given Cobra command.
func (it *MigrateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("changelog", false,
		"Add an entry to the Unreleased section of CHANGELOG.md when it exists")
}
