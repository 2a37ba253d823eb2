// Package config loads and persists the auracoil configuration.
//
// The effective config merges four layers in order: built-in defaults, the
// JSON config file in the platform config directory, AURACOIL_* environment
// variables, and CLI flag overrides. The subprocess environment for the
// external reviewer is part of the config (Env), threaded explicitly rather
// than read from ambient process state.
package config
