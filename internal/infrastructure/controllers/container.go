package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewMigrateController); err != nil {
		return err
	}
	if err := container.Provide(NewScanController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates the subcommand controllers for the AppInternal.
// The migrate controller is mounted on the root command instead.
func NewControllers(
	scanController *ScanController,
) *[]entities.Controller {
	return &[]entities.Controller{
		scanController,
	}
}
