package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputFile      = "Directory.packages.props"
	DefaultManifestPattern = "*.csproj"
)

// Settings is the optional configuration file for cpvmigrate.
type Settings struct {
	ManifestPatterns        []string `yaml:"manifest_patterns"`
	ExcludeDirs             []string `yaml:"exclude_dirs"`
	OutputFile              string   `yaml:"output_file"`
	ManageVersionsCentrally bool     `yaml:"manage_versions_centrally"`
	Changelog               bool     `yaml:"changelog"`
}

// NewDefaultSettings returns the settings used when no file is present.
func NewDefaultSettings() *Settings {
	return &Settings{
		ManifestPatterns: []string{DefaultManifestPattern},
		ExcludeDirs:      []string{".git"},
		OutputFile:       DefaultOutputFile,
	}
}

// NewSettings reads and validates a configuration file. Keys left out of the
// file keep their default values.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := NewDefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if validateErr := validateSettings(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile(root string) (string, error) {
	locations := []string{
		root,
		filepath.Join(root, ".config"),
	}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".cpvmigrate.yaml",
		".cpvmigrate.yml",
		"cpvmigrate.yaml",
		"cpvmigrate.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// validateSettings checks for values the migration cannot work with.
func validateSettings(settings *Settings) error {
	if len(settings.ManifestPatterns) == 0 {
		return errors.New("manifest_patterns must have at least one entry")
	}

	for i, pattern := range settings.ManifestPatterns {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("manifest_patterns[%d] is empty", i)
		}
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("manifest_patterns[%d] %q is not a valid glob: %w", i, pattern, err)
		}
	}

	if strings.TrimSpace(settings.OutputFile) == "" {
		return errors.New("output_file is required")
	}
	if strings.ContainsAny(settings.OutputFile, `/\`) {
		return fmt.Errorf("output_file %q must be a file name, not a path", settings.OutputFile)
	}

	return nil
}
