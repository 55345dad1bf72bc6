// Package config manages devsetup user settings stored at
// ~/.devsetup/config.yaml and overridable through DEVSETUP_* environment
// variables, and resolves the repository root and home directory the
// commands operate on.
package config
