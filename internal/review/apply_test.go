package review

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/auracoil/auracoil/internal/region"
	"github.com/auracoil/auracoil/internal/state"
)

func writeArtifactFile(t *testing.T, root, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, state.Dir, reviewsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApply_SplicesIntoDocument(t *testing.T) {
	root := writeRepo(t, map[string]string{
		"README.md": "# Demo\n\nIntro text.\n",
	})
	payload := `{"suggestions":[{"id":"s1","severity":"high","section":"Stack","suggestion":"Says Vue, code uses React"}],"summary":"One stale claim."}`
	writeArtifactFile(t, root, "review-20260101-000000.txt", payload)

	res, err := Apply(root, "README.md", "", false)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if !res.Changed || !res.Parsed {
		t.Errorf("Changed=%v Parsed=%v", res.Changed, res.Parsed)
	}

	doc, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	got := string(doc)
	if !strings.HasPrefix(got, "# Demo\n\nIntro text.") {
		t.Errorf("text outside region altered:\n%s", got)
	}
	inner, ok := region.Extract(got)
	if !ok {
		t.Fatal("no owned region after apply")
	}
	if !strings.Contains(inner, "Says Vue, code uses React") {
		t.Errorf("region missing suggestion:\n%s", inner)
	}

	st := state.NewStore(root).Load()
	if len(st.Findings) != 1 || st.Findings[0].ID != "s1" {
		t.Fatalf("findings = %+v", st.Findings)
	}
	if st.Findings[0].Status != state.StatusOpen {
		t.Errorf("Status = %q", st.Findings[0].Status)
	}
	if res.FindingsAdded != 1 {
		t.Errorf("FindingsAdded = %d", res.FindingsAdded)
	}
}

func TestApply_Reapply_IsIdempotent(t *testing.T) {
	root := writeRepo(t, map[string]string{"README.md": "# Demo\n"})
	payload := `{"suggestions":[{"id":"s1","severity":"low","section":"Intro","suggestion":"tighten intro"}],"summary":""}`
	writeArtifactFile(t, root, "review-20260101-000000.txt", payload)

	if _, err := Apply(root, "README.md", "", false); err != nil {
		t.Fatal(err)
	}
	res, err := Apply(root, "README.md", "", false)
	if err != nil {
		t.Fatal(err)
	}
	if res.FindingsAdded != 0 {
		t.Errorf("re-apply added %d findings", res.FindingsAdded)
	}
	st := state.NewStore(root).Load()
	if len(st.Findings) != 1 {
		t.Errorf("findings duplicated: %+v", st.Findings)
	}
}

func TestApply_DryRunWritesNothing(t *testing.T) {
	const original = "# Demo\n"
	root := writeRepo(t, map[string]string{"README.md": original})
	writeArtifactFile(t, root, "review-20260101-000000.txt", okPayload)

	res, err := Apply(root, "README.md", "", true)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if !res.Changed {
		t.Error("dry run reported no change")
	}
	doc, _ := os.ReadFile(filepath.Join(root, "README.md"))
	if string(doc) != original {
		t.Errorf("dry run modified the document:\n%s", doc)
	}
	if len(state.NewStore(root).Load().Findings) != 0 {
		t.Error("dry run imported findings")
	}
}

func TestApply_RawTextFallback(t *testing.T) {
	root := writeRepo(t, map[string]string{"README.md": "# Demo\n"})
	writeArtifactFile(t, root, "review-20260101-000000.txt", "The docs mention a Makefile that no longer exists.")

	res, err := Apply(root, "README.md", "", false)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if res.Parsed {
		t.Error("prose artifact reported as parsed")
	}
	doc, _ := os.ReadFile(filepath.Join(root, "README.md"))
	inner, ok := region.Extract(string(doc))
	if !ok || !strings.Contains(inner, "Makefile that no longer exists") {
		t.Errorf("raw text not spliced: %q", inner)
	}
}

func TestApply_NoArtifacts(t *testing.T) {
	root := writeRepo(t, map[string]string{"README.md": "# Demo\n"})
	if _, err := Apply(root, "README.md", "", false); err == nil {
		t.Error("want error with no artifacts")
	}
}

func TestLatestArtifact_PicksNewest(t *testing.T) {
	root := t.TempDir()
	writeArtifactFile(t, root, "review-20260101-000000.txt", "old")
	want := writeArtifactFile(t, root, "review-20260102-120000.txt", "new")

	got, err := LatestArtifact(root)
	if err != nil {
		t.Fatalf("LatestArtifact error: %v", err)
	}
	if got != want {
		t.Errorf("LatestArtifact = %q, want %q", got, want)
	}
}
