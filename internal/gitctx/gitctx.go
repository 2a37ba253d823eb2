package gitctx

import (
	"fmt"
	"os/exec"
	"strings"
)

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
}

// CommitInfo holds a commit SHA and its subject line.
type CommitInfo struct {
	SHA     string
	Subject string
}

// GetRepoMeta collects repository metadata from git.
func GetRepoMeta(dir string) (RepoMeta, error) {
	root, err := gitOutput(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, fmt.Errorf("not a git repository: %w", err)
	}
	head, err := gitOutput(dir, "rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, err := gitOutput(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
	}, nil
}

// Head returns the current HEAD commit SHA, or "" in a repo with no commits.
func Head(dir string) string {
	out, err := gitOutput(dir, "rev-parse", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ChangedFiles returns the names of files changed between the given commit
// and HEAD.
func ChangedFiles(dir, since string) ([]string, error) {
	out, err := gitOutput(dir, "diff", "--name-only", since+"..HEAD")
	if err != nil {
		return nil, fmt.Errorf("git diff --name-only %s..HEAD: %w", since, err)
	}
	return splitLines(out), nil
}

// CommitsBetween returns the commits after since up to HEAD, oldest first.
func CommitsBetween(dir, since string) ([]CommitInfo, error) {
	out, err := gitOutput(dir, "rev-list", "--reverse", "--format=%s", since+"..HEAD")
	if err != nil {
		return nil, fmt.Errorf("git rev-list %s..HEAD: %w", since, err)
	}
	return parseCommitList(out), nil
}

// RecentCommits returns the most recent n commits, newest first. Used to
// bootstrap evidence when no prior checkpoint exists.
func RecentCommits(dir string, n int) ([]CommitInfo, error) {
	out, err := gitOutput(dir, "rev-list", fmt.Sprintf("--max-count=%d", n), "--format=%s", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("git rev-list HEAD: %w", err)
	}
	return parseCommitList(out), nil
}

// parseCommitList parses `git rev-list --format=%s` output:
// "commit <sha>\n<subject>\n" per commit.
func parseCommitList(out string) []CommitInfo {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil
	}
	lines := strings.Split(out, "\n")
	var commits []CommitInfo
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "commit ") {
			continue
		}
		sha := strings.TrimPrefix(line, "commit ")
		var subject string
		if i+1 < len(lines) {
			subject = strings.TrimSpace(lines[i+1])
			i++
		}
		commits = append(commits, CommitInfo{SHA: sha, Subject: subject})
	}
	return commits
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func gitOutput(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
