package entities

// ValidateSettings exports validateSettings for testing.
var ValidateSettings = validateSettings //nolint:gochecknoglobals // test export
