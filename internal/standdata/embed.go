// Package standdata provides the embedded roster and stand profile and
// utilities for loading them.
package standdata

import "embed"

// dataFS embeds all YAML files from this directory at build time.
//
//go:embed *.yaml
var dataFS embed.FS
