package gitctx

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initRepo creates a git repo with two commits and returns (dir, firstSHA).
func initRepo(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init", "-q")
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", "a.txt")
	run("commit", "-q", "-m", "first commit")
	first := Head(dir)

	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("two\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", "b.txt")
	run("commit", "-q", "-m", "second commit")
	return dir, first
}

func TestGetRepoMeta(t *testing.T) {
	dir, _ := initRepo(t)
	meta, err := GetRepoMeta(dir)
	if err != nil {
		t.Fatalf("GetRepoMeta error: %v", err)
	}
	if meta.Head == "" {
		t.Error("Head is empty")
	}
	if meta.Root == "" {
		t.Error("Root is empty")
	}
}

func TestGetRepoMeta_NotARepo(t *testing.T) {
	if _, err := GetRepoMeta(t.TempDir()); err == nil {
		t.Error("want error outside a git repository")
	}
}

func TestChangedFiles(t *testing.T) {
	dir, first := initRepo(t)
	files, err := ChangedFiles(dir, first)
	if err != nil {
		t.Fatalf("ChangedFiles error: %v", err)
	}
	if len(files) != 1 || files[0] != "b.txt" {
		t.Errorf("ChangedFiles = %v, want [b.txt]", files)
	}
}

func TestCommitsBetween(t *testing.T) {
	dir, first := initRepo(t)
	commits, err := CommitsBetween(dir, first)
	if err != nil {
		t.Fatalf("CommitsBetween error: %v", err)
	}
	if len(commits) != 1 || commits[0].Subject != "second commit" {
		t.Errorf("CommitsBetween = %+v", commits)
	}
}

func TestRecentCommits(t *testing.T) {
	dir, _ := initRepo(t)
	commits, err := RecentCommits(dir, 5)
	if err != nil {
		t.Fatalf("RecentCommits error: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("got %d commits, want 2", len(commits))
	}
	if commits[0].Subject != "second commit" {
		t.Errorf("newest first expected, got %+v", commits)
	}
}

func TestHead_EmptyRepoIsEmpty(t *testing.T) {
	dir := t.TempDir()
	cmd := exec.Command("git", "-C", dir, "init", "-q")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init: %v\n%s", err, out)
	}
	if head := Head(dir); head != "" {
		t.Errorf("Head = %q, want empty in a repo with no commits", head)
	}
}
