// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml, and TASKAPI_* environment
// variables. Settings are validated with struct tags before use.
package config
