// Package secrets classifies repository files as safe or unsafe for
// transmission to an external reviewer.
//
// Classification happens in two layers. IsDangerousFile flags filenames on a
// fixed denylist (env files, key and certificate material, credential-named
// files) without reading content. Scan additionally runs an ordered list of
// regex rules over readable file content, skipping example/template files,
// documentation, comment lines, and placeholder-shaped matches.
//
// Result snippets are masked before they are surfaced anywhere; the scanner
// never reproduces a usable secret in its own output.
package secrets
