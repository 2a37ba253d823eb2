// Package repoindex builds a structural snapshot of a repository: languages
// by line count, ecosystem manifests with flattened dependency names,
// detected frameworks, conventional entry points, and tool configuration and
// documentation files.
//
// The snapshot is constructed fresh on every call and never persisted.
// Unreadable files and unparseable manifests are skipped silently; the only
// hard failure is being unable to walk the root directory at all.
package repoindex
