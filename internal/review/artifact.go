package review

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/auracoil/auracoil/internal/state"
)

// reviewsDir holds raw review artifacts under the tool-private directory.
const reviewsDir = "reviews"

// Suggestion is one reviewer-proposed documentation change.
type Suggestion struct {
	ID         string `json:"id"`
	Severity   string `json:"severity"`
	Section    string `json:"section"`
	Type       string `json:"type"`
	Suggestion string `json:"suggestion"`
	Evidence   string `json:"evidence,omitempty"`
}

// Payload is the structured reviewer response.
type Payload struct {
	Suggestions []Suggestion `json:"suggestions"`
	Summary     string       `json:"summary"`
}

// WriteArtifact persists the raw reviewer output under
// .auracoil/reviews/ and returns the file path. Artifacts are append-only;
// nothing ever rewrites a prior one.
func WriteArtifact(root, content string) (string, error) {
	dir := filepath.Join(root, state.Dir, reviewsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reviews directory: %w", err)
	}
	name := fmt.Sprintf("review-%s.txt", time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	return path, nil
}

// LatestArtifact returns the path of the most recent review artifact, or
// an error when none exist.
func LatestArtifact(root string) (string, error) {
	dir := filepath.Join(root, state.Dir, reviewsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("no review artifacts found; run `auracoil review` first")
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "review-") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no review artifacts found; run `auracoil review` first")
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

// ParsePayload decodes the reviewer output into a structured payload. Code
// fences around the JSON are stripped first. Output that is not the
// expected JSON shape yields ok=false; callers fall back to the raw text.
func ParsePayload(content string) (*Payload, bool) {
	text := strings.TrimSpace(content)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	if !strings.HasPrefix(text, "{") {
		return nil, false
	}
	var p Payload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, false
	}
	return &p, true
}

// suggestionID returns the suggestion's own ID, or a stable content hash
// when the reviewer omitted one.
func suggestionID(s Suggestion) string {
	if s.ID != "" {
		return s.ID
	}
	sum := sha256.Sum256([]byte(s.Section + "|" + s.Suggestion))
	return fmt.Sprintf("sug-%x", sum[:6])
}

// RenderRegion renders the region content for the host document from a
// parsed payload: summary first, then suggestions grouped as a list. When
// the payload could not be parsed, raw is used verbatim.
func RenderRegion(p *Payload, raw string) string {
	if p == nil {
		return strings.TrimSpace(raw)
	}
	var sb strings.Builder
	sb.WriteString("## Documentation Review\n\n")
	fmt.Fprintf(&sb, "_Reviewed %s._\n\n", time.Now().UTC().Format("2006-01-02"))
	if p.Summary != "" {
		sb.WriteString(p.Summary)
		sb.WriteString("\n\n")
	}
	if len(p.Suggestions) == 0 {
		sb.WriteString("No documentation issues found.\n")
		return strings.TrimSpace(sb.String())
	}
	for _, s := range p.Suggestions {
		fmt.Fprintf(&sb, "- **[%s]** %s", severityLabel(s.Severity), s.Suggestion)
		if s.Section != "" {
			fmt.Fprintf(&sb, " _(section: %s)_", s.Section)
		}
		sb.WriteString("\n")
		if s.Evidence != "" {
			fmt.Fprintf(&sb, "  - evidence: %s\n", s.Evidence)
		}
	}
	return strings.TrimSpace(sb.String())
}

func severityLabel(sev string) string {
	switch strings.ToLower(sev) {
	case string(state.SeverityHigh), string(state.SeverityMedium), string(state.SeverityLow):
		return strings.ToLower(sev)
	default:
		return string(state.SeverityMedium)
	}
}

// ImportFindings records each suggestion as an open finding in a single
// state rewrite. Insertion is idempotent on ID, so re-applying the same
// artifact adds nothing. Returns the number of findings actually added.
func ImportFindings(store *state.Store, p *Payload) (int, error) {
	if p == nil || len(p.Suggestions) == 0 {
		return 0, nil
	}
	added := 0
	err := store.Update(func(st *state.State) {
		existing := make(map[string]bool, len(st.Findings))
		for _, f := range st.Findings {
			existing[f.ID] = true
		}
		now := time.Now().UTC()
		for _, s := range p.Suggestions {
			id := suggestionID(s)
			if existing[id] {
				continue
			}
			existing[id] = true
			st.Findings = append(st.Findings, state.Finding{
				ID:           id,
				Severity:     state.Severity(severityLabel(s.Severity)),
				Section:      s.Section,
				Suggestion:   s.Suggestion,
				Evidence:     s.Evidence,
				Status:       state.StatusOpen,
				IntroducedAt: now,
			})
			added++
		}
	})
	return added, err
}
