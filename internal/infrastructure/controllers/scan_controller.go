package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/cpvmigrate/internal/domain/commands"
	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
)

// ScanController handles the "scan" subcommand.
type ScanController struct {
	command commands.Scan
}

// NewScanController creates a new ScanController.
func NewScanController(command commands.Scan) *ScanController {
	return &ScanController{command: command}
}

// GetBind returns the Cobra command metadata for the scan controller.
func (it *ScanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "scan <path>",
		Short: "Print the central manifest a migration would produce",
		Long: `Collects the inline package versions exactly like a migration and prints
the resulting Directory.packages.props to standard output.
No file is modified.`,
	}
}

// Execute runs the read-only scan.
func (it *ScanController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	opts := readOptions(cmd, args)

	settings, err := loadSettings(cmd, opts.RootDir)
	if err != nil {
		return err
	}

	_, err = it.command.Execute(ctx, settings, opts, cmd.OutOrStdout())
	return err
}

