// Package config loads and saves the optional per-user TOML
// configuration (identity path and username overrides).
package config
