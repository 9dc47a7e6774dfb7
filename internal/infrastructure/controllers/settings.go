package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
)

// loadSettings reads the file named by --config, falls back to the standard
// locations around root, and uses the defaults when neither exists.
func loadSettings(cmd *cobra.Command, root string) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")

	if configPath == "" {
		found, err := entities.FindConfigFile(root)
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return entities.NewDefaultSettings(), nil
		}
		configPath = found
	}

	logger.Infof("Using config file: %s", configPath)
	return entities.NewSettings(configPath)
}

// readOptions maps the persistent flags and the root argument to options.
func readOptions(cmd *cobra.Command, args []string) entities.MigrateOptions {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return entities.MigrateOptions{
		RootDir: args[0],
		DryRun:  dryRun,
		Verbose: verbose,
	}
}
