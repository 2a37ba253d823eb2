package review

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/auracoil/auracoil/internal/agent"
	"github.com/auracoil/auracoil/internal/bundle"
	"github.com/auracoil/auracoil/internal/cache"
	"github.com/auracoil/auracoil/internal/config"
	"github.com/auracoil/auracoil/internal/repoindex"
	"github.com/auracoil/auracoil/internal/state"
)

// fakeRunner satisfies agent.Runner without spawning anything.
type fakeRunner struct {
	result  agent.Result
	err     error
	invoked int
	lastInv agent.Invocation
}

func (f *fakeRunner) Preflight(ctx context.Context) error { return nil }
func (f *fakeRunner) Name() string                        { return "fake" }

func (f *fakeRunner) Invoke(ctx context.Context, inv agent.Invocation) (agent.Result, error) {
	f.invoked++
	f.lastInv = inv
	return f.result, f.err
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Cache.Enabled = false
	cfg.Cache.Dir = t.TempDir()
	return cfg
}

func writeRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

const okPayload = `{"suggestions": [], "summary": "Docs look accurate."}`

func TestRun_MissingDocument(t *testing.T) {
	root := writeRepo(t, map[string]string{"main.go": "package main\n"})
	runner := &fakeRunner{result: agent.Result{Success: true, Output: okPayload}}

	_, err := Run(context.Background(), root, testConfig(t), runner, Options{SkipPreflight: true})
	var nde *NoDocumentError
	if !errors.As(err, &nde) {
		t.Fatalf("err = %v, want NoDocumentError", err)
	}
	if runner.invoked != 0 {
		t.Error("reviewer invoked despite missing document")
	}
	if _, statErr := os.Stat(state.NewStore(root).Path()); !os.IsNotExist(statErr) {
		t.Error("state written despite failed run")
	}
}

func TestRun_WritesArtifactAndState(t *testing.T) {
	root := writeRepo(t, map[string]string{
		"README.md": "# Demo\n\nHello.\n",
		"main.go":   "package main\n\nfunc main() {}\n",
	})
	runner := &fakeRunner{result: agent.Result{Success: true, Output: okPayload}}

	out, err := Run(context.Background(), root, testConfig(t), runner, Options{SkipPreflight: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if runner.invoked != 1 {
		t.Errorf("invoked = %d", runner.invoked)
	}
	data, err := os.ReadFile(out.ArtifactPath)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if string(data) != okPayload {
		t.Errorf("artifact = %q", data)
	}
	st := state.NewStore(root).Load()
	if st.ContentHash == "" || st.ContentHash != out.BundleHash {
		t.Errorf("ContentHash = %q, want bundle hash %q", st.ContentHash, out.BundleHash)
	}
	if st.LastReviewedAt == nil {
		t.Error("LastReviewedAt not set")
	}
	if !strings.Contains(runner.lastInv.Prompt, "CURRENT REVIEW SECTION") {
		t.Error("prompt missing region section")
	}
}

func TestRun_ExcludesFlaggedFiles(t *testing.T) {
	root := writeRepo(t, map[string]string{
		"README.md": "# Demo\n",
		"main.go":   "package main\n\nvar apiKey = \"sk-live-abcdef1234567890abcdef\"\n",
	})
	runner := &fakeRunner{result: agent.Result{Success: true, Output: okPayload}}

	out, err := Run(context.Background(), root, testConfig(t), runner, Options{SkipPreflight: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	found := false
	for _, f := range out.FilesExcluded {
		if f == "main.go" {
			found = true
		}
	}
	if !found {
		t.Fatalf("main.go not excluded: sent=%v excluded=%v", out.FilesSent, out.FilesExcluded)
	}
	for _, f := range runner.lastInv.AttachFiles {
		if f == "main.go" {
			t.Error("flagged file attached to reviewer invocation")
		}
	}
}

func TestRun_ThreadsOutputFile(t *testing.T) {
	root := writeRepo(t, map[string]string{"README.md": "# Demo\n"})
	cfg := testConfig(t)
	cfg.OutputFile = "response.txt"
	runner := &fakeRunner{result: agent.Result{Success: true, Output: okPayload}}

	if _, err := Run(context.Background(), root, cfg, runner, Options{SkipPreflight: true}); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want := filepath.Join(root, "response.txt")
	if runner.lastInv.OutputFile != want {
		t.Errorf("OutputFile = %q, want %q", runner.lastInv.OutputFile, want)
	}
}

func TestRun_ReviewerFailureLeavesStateUntouched(t *testing.T) {
	root := writeRepo(t, map[string]string{"README.md": "# Demo\n"})
	runner := &fakeRunner{result: agent.Result{Success: false, ErrorMessage: "session expired"}}

	_, err := Run(context.Background(), root, testConfig(t), runner, Options{SkipPreflight: true})
	if err == nil || !strings.Contains(err.Error(), "session expired") {
		t.Fatalf("err = %v, want reviewer failure surfaced", err)
	}
	if _, statErr := os.Stat(state.NewStore(root).Path()); !os.IsNotExist(statErr) {
		t.Error("state written despite failed run")
	}
}

func TestRun_CacheHitSkipsInvocation(t *testing.T) {
	root := writeRepo(t, map[string]string{
		"README.md": "# Demo\n",
		"main.go":   "package main\n",
	})
	cfg := testConfig(t)
	cfg.Cache.Enabled = true
	runner := &fakeRunner{result: agent.Result{Success: true, Output: okPayload}}

	first, err := Run(context.Background(), root, cfg, runner, Options{SkipPreflight: true})
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if first.CacheHit {
		t.Error("first run reported a cache hit")
	}
	second, err := Run(context.Background(), root, cfg, runner, Options{SkipPreflight: true})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run missed the cache")
	}
	if runner.invoked != 1 {
		t.Errorf("invoked = %d, want 1", runner.invoked)
	}
}

func TestRun_CacheWriteFailureIsSoft(t *testing.T) {
	root := writeRepo(t, map[string]string{
		"README.md": "# Demo\n",
		"main.go":   "package main\n",
	})
	cfg := testConfig(t)
	cfg.Cache.Enabled = true

	// Block the entry path with a directory so the cache write fails.
	idx, err := repoindex.Build(root)
	if err != nil {
		t.Fatal(err)
	}
	b := bundle.Build(root, idx, bundle.Config{
		MaxFiles:     cfg.Bundle.MaxFiles,
		MaxTotalSize: cfg.Bundle.MaxTotalSize,
		MaxTokens:    cfg.Bundle.MaxTokens,
	})
	entry := filepath.Join(cfg.Cache.Dir, cache.HashKey(cache.BuildKey(cfg.Model, b.Hash()))+".json")
	if err := os.MkdirAll(entry, 0o755); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{result: agent.Result{Success: true, Output: okPayload}}
	out, err := Run(context.Background(), root, cfg, runner, Options{SkipPreflight: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if _, err := os.Stat(out.ArtifactPath); err != nil {
		t.Errorf("artifact not written: %v", err)
	}
	if state.NewStore(root).Load().ContentHash == "" {
		t.Error("state not written after cache write failure")
	}
}

func TestGatherEvidence_NoRepo(t *testing.T) {
	ev := gatherEvidence(t.TempDir(), "", 5)
	if !ev.Bootstrap {
		t.Error("want bootstrap evidence outside a git repository")
	}
	if len(ev.Commits) != 0 || len(ev.ChangedFiles) != 0 {
		t.Errorf("want empty evidence, got %+v", ev)
	}
}

func TestParsePayload(t *testing.T) {
	raw := `{"suggestions":[{"id":"s1","severity":"high","section":"Setup","suggestion":"fix"}],"summary":"one issue"}`

	p, ok := ParsePayload(raw)
	if !ok || len(p.Suggestions) != 1 || p.Summary != "one issue" {
		t.Fatalf("ParsePayload = %+v, %v", p, ok)
	}

	fenced := "```json\n" + raw + "\n```"
	p, ok = ParsePayload(fenced)
	if !ok || len(p.Suggestions) != 1 {
		t.Fatalf("fenced ParsePayload = %+v, %v", p, ok)
	}

	if _, ok := ParsePayload("I could not produce JSON, sorry."); ok {
		t.Error("prose accepted as payload")
	}
}

func TestRenderRegion(t *testing.T) {
	p := &Payload{
		Summary: "One stale claim.",
		Suggestions: []Suggestion{
			{Severity: "high", Section: "Stack", Suggestion: "Says Vue, code uses React"},
		},
	}
	got := RenderRegion(p, "")
	for _, want := range []string{"One stale claim.", "Says Vue, code uses React", "[high]", "Stack"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered region missing %q:\n%s", want, got)
		}
	}

	if got := RenderRegion(nil, "  raw reviewer text\n"); got != "raw reviewer text" {
		t.Errorf("raw fallback = %q", got)
	}

	empty := RenderRegion(&Payload{}, "")
	if !strings.Contains(empty, "No documentation issues found") {
		t.Errorf("empty payload rendering = %q", empty)
	}
}

func TestSuggestionID_StableWhenOmitted(t *testing.T) {
	s := Suggestion{Section: "Setup", Suggestion: "fix the install step"}
	if suggestionID(s) != suggestionID(s) {
		t.Error("generated ID not stable")
	}
	if suggestionID(Suggestion{ID: "given"}) != "given" {
		t.Error("explicit ID not preserved")
	}
}
