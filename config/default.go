package config

import _ "embed"

// DefaultConfigYAML is the embedded default configuration. Any key can be
// overridden by an external config file or a PAUSAL_* environment variable.
//
//go:embed default.yaml
var DefaultConfigYAML []byte
