//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/cpvmigrate/internal/domain/entities"
)

// SettingsBuilder helps create test settings starting from the defaults.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	settings entities.Settings
}

// NewSettingsBuilder creates a new settings builder holding the defaults.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		settings:    *entities.NewDefaultSettings(),
	}
}

// WithOutputFile sets the central manifest file name.
func (b *SettingsBuilder) WithOutputFile(name string) *SettingsBuilder {
	b.settings.OutputFile = name
	return b
}

// WithManageVersionsCentrally toggles the PropertyGroup in the output.
func (b *SettingsBuilder) WithManageVersionsCentrally(enabled bool) *SettingsBuilder {
	b.settings.ManageVersionsCentrally = enabled
	return b
}

// WithChangelog toggles the changelog entry.
func (b *SettingsBuilder) WithChangelog(enabled bool) *SettingsBuilder {
	b.settings.Changelog = enabled
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := b.settings
	settings.ManifestPatterns = append([]string(nil), b.settings.ManifestPatterns...)
	settings.ExcludeDirs = append([]string(nil), b.settings.ExcludeDirs...)
	return &settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.settings = *entities.NewDefaultSettings()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		settings:    *b.BuildSettings(),
	}
}
