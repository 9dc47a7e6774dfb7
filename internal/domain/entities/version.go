package entities

import (
	"strings"

	"golang.org/x/mod/semver"
)

// VersionChange describes how a later declaration of a package relates to the
// version already recorded for it.
type VersionChange string

const (
	VersionUnchanged VersionChange = "unchanged"
	VersionUpgrade   VersionChange = "upgrade"
	VersionDowngrade VersionChange = "downgrade"
	// VersionReplaced is used when either side is not comparable as semver
	// (four-part NuGet versions, floating ranges, MSBuild properties).
	VersionReplaced VersionChange = "replaced"
)

// ClassifyVersionChange compares the recorded version with the one replacing it.
func ClassifyVersionChange(previous, next string) VersionChange {
	if strings.TrimSpace(previous) == strings.TrimSpace(next) {
		return VersionUnchanged
	}

	prev := normalizeVersion(previous)
	nxt := normalizeVersion(next)
	if !semver.IsValid(prev) || !semver.IsValid(nxt) {
		return VersionReplaced
	}

	switch semver.Compare(nxt, prev) {
	case 1:
		return VersionUpgrade
	case -1:
		return VersionDowngrade
	default:
		return VersionUnchanged
	}
}

// normalizeVersion ensures the 'v' prefix semver expects.
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
