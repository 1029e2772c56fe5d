package fieldkit

import (
	_ "embed"
	"strings"

	"golang.org/x/mod/semver"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the library version string in SemVer format (without `v`).
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns the git tag form of Version (with leading `v`).
func VersionTag() string {
	return "v" + Version()
}

// VersionIsValid reports whether the embedded version is valid SemVer.
func VersionIsValid() bool {
	return semver.IsValid(VersionTag())
}
