package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/auracoil/auracoil/internal/repoindex"
	"github.com/auracoil/auracoil/internal/secrets"
	"github.com/auracoil/auracoil/internal/state"
)

// WriteJSON writes any value as indented JSON, the machine-readable form
// shared by every command's --format=json mode.
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// WriteScanText renders a scan result for humans. Snippets arrive already
// masked by the scanner; nothing here re-touches them.
func WriteScanText(w io.Writer, result secrets.ScanResult, color bool) error {
	ew := &errWriter{w: w}
	if result.Safe {
		ew.println("No secrets detected. Safe to transmit.")
		return ew.err
	}
	ew.printf("Found %d potential secret(s):\n\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Line == 0 {
			ew.printf("  %s %s  sensitive file, excluded by name\n",
				SeverityLabel(state.SeverityHigh, color), issue.File)
			continue
		}
		ew.printf("  %s %s:%d  %s\n",
			SeverityLabel(state.SeverityHigh, color), issue.File, issue.Line, issue.Type)
		if issue.Snippet != "" {
			ew.printf("      %s\n", issue.Snippet)
		}
	}
	ew.println("\nFlagged files are withheld from the reviewer.")
	return ew.err
}

// WriteIndexText renders a repository index summary.
func WriteIndexText(w io.Writer, idx *repoindex.Index) error {
	ew := &errWriter{w: w}
	ew.printf("Files: %d  Lines: %d\n", idx.Stats.TotalFiles, idx.Stats.TotalLines)

	if len(idx.Languages) > 0 {
		ew.println("\nLanguages:")
		t := NewTable(w, "LANGUAGE", "FILES", "LINES")
		for _, l := range idx.Languages {
			t.AddRow(l.Name, fmt.Sprintf("%d", l.FileCount), fmt.Sprintf("%d", l.LineCount))
		}
		t.Render()
	}
	if len(idx.Frameworks) > 0 {
		ew.printf("\nFrameworks: %s\n", strings.Join(idx.Frameworks, ", "))
	}
	if len(idx.Manifests) > 0 {
		ew.println("\nManifests:")
		for _, m := range idx.Manifests {
			ew.printf("  %s (%s", m.Path, m.Type)
			if m.Name != "" {
				ew.printf(", %s", m.Name)
			}
			ew.printf(", %d deps)\n", len(m.Dependencies))
		}
	}
	if len(idx.Entrypoints) > 0 {
		ew.printf("\nEntrypoints: %s\n", strings.Join(idx.Entrypoints, ", "))
	}
	if len(idx.Docs) > 0 {
		ew.printf("Docs: %s\n", strings.Join(idx.Docs, ", "))
	}
	return ew.err
}

// WriteFindingsTable renders lifecycle-tracked findings as a table.
func WriteFindingsTable(w io.Writer, findings []state.Finding, color bool) error {
	if len(findings) == 0 {
		_, err := fmt.Fprintln(w, "No findings.")
		return err
	}
	t := NewTable(w, "ID", "SEV", "STATUS", "SECTION", "SUGGESTION")
	for _, f := range findings {
		t.AddRow(
			f.ID,
			SeverityLabel(f.Severity, color),
			f.Status,
			Truncate(f.Section, 20),
			Truncate(f.Suggestion, 50),
		)
	}
	t.Render()
	return nil
}

// WriteStateSummary renders the checkpoint portion of persisted state.
func WriteStateSummary(w io.Writer, st state.State) error {
	ew := &errWriter{w: w}
	if st.LastReviewedCommit == "" && st.LastReviewedAt == nil {
		ew.println("No reviews recorded yet.")
		return ew.err
	}
	if st.LastReviewedCommit != "" {
		ew.printf("Last reviewed commit: %s\n", st.LastReviewedCommit)
	}
	if st.LastReviewedAt != nil {
		ew.printf("Last reviewed at:     %s\n", st.LastReviewedAt.Format("2006-01-02 15:04 MST"))
	}
	if st.ContentHash != "" {
		ew.printf("Bundle hash:          %s\n", Truncate(st.ContentHash, 16))
	}
	open := len(st.OpenFindings())
	ew.printf("Findings:             %d open / %d total\n", open, len(st.Findings))
	return ew.err
}
