package plume

import _ "embed"

// Version is the library version, taken verbatim from the VERSION file at
// the repository root. Callers should strings.TrimSpace it before printing.
//
//go:embed VERSION
var Version string
