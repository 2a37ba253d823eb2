// Package cli implements the auracoil command tree.
//
// Commands set the shared exitCode rather than calling os.Exit so main
// stays a one-liner and deferred cleanup runs. Exit codes: 0 success,
// 1 scan issues found, 2 usage error, 3 reviewer unavailable, 4 runtime
// error.
package cli
