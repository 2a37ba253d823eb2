package review

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/auracoil/auracoil/internal/region"
	"github.com/auracoil/auracoil/internal/state"
)

// ApplyResult reports what applying an artifact did, or would do.
type ApplyResult struct {
	ArtifactPath  string
	Before        string
	After         string
	Changed       bool
	FindingsAdded int
	// Parsed is false when the artifact was not structured JSON and the
	// raw text was spliced in instead.
	Parsed bool
}

// Apply splices the latest (or named) review artifact into the host
// document's owned region and imports its suggestions as findings. Text
// outside the region is never touched. With dryRun set, nothing is
// written; the result carries the before and after document text for a
// preview.
func Apply(root string, docPath, artifactPath string, dryRun bool) (*ApplyResult, error) {
	if artifactPath == "" {
		var err error
		artifactPath, err = LatestArtifact(root)
		if err != nil {
			return nil, err
		}
	}
	raw, err := os.ReadFile(artifactPath)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	hostPath := filepath.Join(root, docPath)
	docBytes, err := os.ReadFile(hostPath)
	if err != nil {
		return nil, &NoDocumentError{Path: docPath}
	}
	before := string(docBytes)

	payload, parsed := ParsePayload(string(raw))
	content := RenderRegion(payload, string(raw))

	after, err := region.Replace(region.Ensure(before), content)
	if err != nil {
		return nil, fmt.Errorf("updating review section: %w", err)
	}

	res := &ApplyResult{
		ArtifactPath: artifactPath,
		Before:       before,
		After:        after,
		Changed:      after != before,
		Parsed:       parsed,
	}
	if dryRun {
		return res, nil
	}

	if err := os.WriteFile(hostPath, []byte(after), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", docPath, err)
	}
	added, err := ImportFindings(state.NewStore(root), payload)
	if err != nil {
		return nil, fmt.Errorf("importing findings: %w", err)
	}
	res.FindingsAdded = added
	return res, nil
}
