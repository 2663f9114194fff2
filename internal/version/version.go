// Package version exposes the agentforge release version, embedded at
// build time from the VERSION file.
package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var raw string

// Get returns the current version with surrounding whitespace trimmed.
func Get() string {
	return strings.TrimSpace(raw)
}
