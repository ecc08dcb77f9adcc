// Package config loads and validates process configuration.
//
// Precedence, highest to lowest: CLI flags, BUCKETGATE_* environment
// variables, YAML config files, built-in defaults. Missing required
// values (bucket, region, verifier settings) fail at startup, never
// per request.
package config
