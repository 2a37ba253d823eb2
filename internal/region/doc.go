// Package region performs scoped merges of auracoil-owned content into a
// shared Markdown document.
//
// A host document carries at most one pair of HTML-comment sentinel markers.
// The span strictly between them is owned by auracoil and replaced wholesale;
// content outside the markers is foreign and preserved byte-for-byte. There
// are no merge or diff semantics inside the region — upstream content comes
// from an opaque external reviewer and is not assumed to be parseable.
//
// Extract tolerates absent or out-of-order markers by reporting ok=false.
// Replace is strict: absent markers are a MissingRegionError and duplicated
// or reversed markers are a MalformedRegionError, so a damaged document is
// never silently rewritten.
package region
