// Package review orchestrates a documentation review run end to end.
//
// A run reads the host document's owned region, gathers change evidence
// from git, builds a bounded file bundle over the repository index, drops
// any file the secret scan flags, and sends the assembled prompt to the
// external reviewer (or serves it from the response cache). The raw reply
// is persisted as an append-only artifact; the checkpoint state is updated
// once, at the end, only on success.
//
// Applying an artifact is a separate step: Apply parses the reviewer
// payload (tolerantly, falling back to raw text), renders it, and splices
// it into the document's marker-delimited region, importing suggestions
// as lifecycle-tracked findings.
package review
