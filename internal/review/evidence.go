package review

import (
	"github.com/auracoil/auracoil/internal/gitctx"
)

// Evidence is the change summary attached to the prompt so the reviewer
// can reason about what moved since the last checkpoint.
type Evidence struct {
	SinceCommit  string
	ChangedFiles []string
	Commits      []gitctx.CommitInfo
	// Bootstrap is true when no prior checkpoint existed and the evidence
	// falls back to the most recent commits instead of a diff.
	Bootstrap bool
}

// gatherEvidence collects change evidence relative to the last reviewed
// commit. With no checkpoint it bootstraps from the last recentCount
// commits. Git errors (not a repository, unknown checkpoint after a
// force-push) degrade to empty evidence rather than failing the review.
func gatherEvidence(root, sinceCommit string, recentCount int) Evidence {
	if sinceCommit == "" {
		commits, err := gitctx.RecentCommits(root, recentCount)
		if err != nil {
			return Evidence{Bootstrap: true}
		}
		return Evidence{Commits: commits, Bootstrap: true}
	}

	ev := Evidence{SinceCommit: sinceCommit}
	files, err := gitctx.ChangedFiles(root, sinceCommit)
	if err != nil {
		// Checkpoint no longer resolvable; start over from recent history.
		commits, rerr := gitctx.RecentCommits(root, recentCount)
		if rerr != nil {
			return Evidence{Bootstrap: true}
		}
		return Evidence{Commits: commits, Bootstrap: true}
	}
	ev.ChangedFiles = files
	if commits, err := gitctx.CommitsBetween(root, sinceCommit); err == nil {
		ev.Commits = commits
	}
	return ev
}
