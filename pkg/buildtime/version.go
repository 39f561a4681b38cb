// Package buildtime holds values fixed when paikit is built.
//
// VERSION and revision are overwritten by the release build.
package buildtime

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

//go:embed revision
var revision string

func init() {
	version = strings.TrimSpace(version)
	revision = strings.TrimSpace(revision)
}

// Version is a semantic version, like "v0.1.0".
func Version() string { return version }

// Revision is the git commit which paikit is built from.
func Revision() string { return revision }

// String is a line for humans, like "v0.1.0 (commit: 0123abc)".
func String() string {
	return version + " (commit: " + revision + ")"
}
