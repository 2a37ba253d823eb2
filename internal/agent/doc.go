// Package agent spawns the external reviewer binary and returns its
// response under a hard timeout.
//
// The reviewer is an opaque collaborator: auracoil passes a prompt on
// stdin, attached file paths as arguments, and an explicit environment,
// then reads the reply from an output file when one is produced or from
// captured stdout otherwise. A non-zero exit is a failed review with the
// process's own output as the error message; a timeout kills the process
// and discards any partial output.
package agent
