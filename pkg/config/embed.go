package config

import _ "embed"

// builtinDefaults holds the default configuration.
//
//go:embed defaults.yml
var builtinDefaults []byte
