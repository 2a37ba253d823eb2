// Package gitctx gathers review evidence from git: repository metadata,
// file names changed since a checkpoint commit, and commit subjects. It
// shells out to the git binary and never mutates repository state.
package gitctx
