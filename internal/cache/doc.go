// Package cache provides file-based caching of external reviewer responses
// with TTL-based expiration.
//
// Keys combine the model identifier with the bundle content fingerprint, so
// re-running a review against unchanged repository content reuses the prior
// response instead of spawning the external reviewer again. Entries are
// stored as JSON files named by the SHA-256 of their key.
package cache
