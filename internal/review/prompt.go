package review

import (
	"fmt"
	"strings"
)

// BuildPrompt assembles the reviewer prompt: role and response contract,
// the current owned region, change evidence, and the attached file list.
func BuildPrompt(regionText string, ev Evidence, files []string) string {
	var sb strings.Builder

	sb.WriteString("You are a documentation reviewer. Read the attached project files and\n")
	sb.WriteString("the current review section below, then report where the documentation\n")
	sb.WriteString("has drifted from the code: wrong framework or dependency names, stale\n")
	sb.WriteString("setup steps, missing entrypoints, broken promises.\n\n")

	sb.WriteString("Respond with a single JSON object:\n")
	sb.WriteString("{\n")
	sb.WriteString(`  "suggestions": [` + "\n")
	sb.WriteString(`    {"id": "", "severity": "low|medium|high", "section": "", "type": "", "suggestion": "", "evidence": ""}` + "\n")
	sb.WriteString("  ],\n")
	sb.WriteString(`  "summary": ""` + "\n")
	sb.WriteString("}\n")
	sb.WriteString("An empty suggestions array means the documentation is accurate.\n\n")

	sb.WriteString("=== CURRENT REVIEW SECTION BEGIN ===\n")
	sb.WriteString(regionText)
	sb.WriteString("\n=== CURRENT REVIEW SECTION END ===\n\n")

	writeEvidence(&sb, ev)

	sb.WriteString("=== ATTACHED FILES BEGIN ===\n")
	for _, f := range files {
		sb.WriteString(f)
		sb.WriteString("\n")
	}
	sb.WriteString("=== ATTACHED FILES END ===\n")

	return sb.String()
}

func writeEvidence(sb *strings.Builder, ev Evidence) {
	sb.WriteString("=== CHANGE EVIDENCE BEGIN ===\n")
	switch {
	case ev.Bootstrap && len(ev.Commits) == 0:
		sb.WriteString("No change history available; review the repository as-is.\n")
	case ev.Bootstrap:
		sb.WriteString("First review of this repository. Recent commits, newest first:\n")
		for _, c := range ev.Commits {
			fmt.Fprintf(sb, "  %s %s\n", shortSHA(c.SHA), c.Subject)
		}
	default:
		fmt.Fprintf(sb, "Changes since last review (commit %s):\n", shortSHA(ev.SinceCommit))
		if len(ev.ChangedFiles) > 0 {
			sb.WriteString("Files changed:\n")
			for _, f := range ev.ChangedFiles {
				sb.WriteString("  " + f + "\n")
			}
		}
		if len(ev.Commits) > 0 {
			sb.WriteString("Commits, oldest first:\n")
			for _, c := range ev.Commits {
				fmt.Fprintf(sb, "  %s %s\n", shortSHA(c.SHA), c.Subject)
			}
		}
		if len(ev.ChangedFiles) == 0 && len(ev.Commits) == 0 {
			sb.WriteString("No changes since the last review.\n")
		}
	}
	sb.WriteString("=== CHANGE EVIDENCE END ===\n\n")
}

func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}
