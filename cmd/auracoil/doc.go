// Auracoil keeps project documentation honest. It indexes a repository,
// bundles a bounded set of evidence files, asks an external LLM CLI to
// review the docs against the code, and splices the result into a
// marker-delimited section of the host document.
//
// Usage:
//
//	auracoil init                # add the review section to README.md
//	auracoil review              # run a review and store the artifact
//	auracoil apply               # splice the latest review into the doc
//	auracoil apply --dry-run     # preview the change as a diff
//	auracoil scan                # check outbound files for secrets
//	auracoil index               # show the structural snapshot
//	auracoil status              # show the checkpoint and drift
//	auracoil findings list       # list open findings
//
// Nothing leaves the machine except the evidence bundle, and never a file
// the secret scan flags.
package main
