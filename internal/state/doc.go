// Package state persists the auracoil checkpoint and findings for a
// repository under .auracoil/state.json.
//
// The file is loaded lazily (missing or corrupt means the empty default
// state) and mutated only by whole-object rewrites through an atomic
// temp-file-and-rename, never partial or append writes. Finding insertion
// is idempotent on ID and resolving an unknown ID is a no-op.
package state
