// Package bundle selects a bounded, deterministic subset of repository
// files for transmission to an external reviewer.
//
// Selection is greedy in strict priority order: manifests first, then
// documentation (README and friends ahead of the rest), prioritized tool
// configs, entry points, and finally representative samples from
// architectural directories. Every candidate passes an admission check
// against three monotonic budgets (file count, total bytes, estimated
// tokens at four bytes per token); a candidate that does not fit is
// skipped, never fatal, so a later smaller file may still be admitted.
//
// Each included file's content hash is recorded; Hash folds the sorted
// hashes into a fingerprint that is order-invariant but content-sensitive,
// which serves as the cross-invocation cache key.
package bundle
