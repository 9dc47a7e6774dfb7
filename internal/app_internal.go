package internal

import (
	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
	"github.com/rios0rios0/cpvmigrate/internal/infrastructure/controllers"
)

// AppInternal holds the controllers the CLI is assembled from.
type AppInternal struct {
	migrateController *controllers.MigrateController
	controllers       []entities.Controller
}

// NewAppInternal creates the application aggregate.
func NewAppInternal(
	migrateController *controllers.MigrateController,
	subcommands *[]entities.Controller,
) *AppInternal {
	return &AppInternal{
		migrateController: migrateController,
		controllers:       *subcommands,
	}
}

// GetMigrateController returns the controller mounted on the root command.
func (it *AppInternal) GetMigrateController() *controllers.MigrateController {
	return it.migrateController
}

// GetControllers returns the controllers mounted as subcommands.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
