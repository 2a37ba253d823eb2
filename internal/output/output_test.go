package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/auracoil/auracoil/internal/secrets"
	"github.com/auracoil/auracoil/internal/state"
)

func TestWrapText(t *testing.T) {
	lines := wrapText("the quick brown fox jumps over the lazy dog", 15)
	if len(lines) < 3 {
		t.Fatalf("lines = %v", lines)
	}
	for _, l := range lines {
		if len(l) > 15 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty input should wrap to nil")
	}
}

func TestTable_Alignment(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "NAME", "COUNT")
	tbl.AddRow("short", "1")
	tbl.AddRow("a-much-longer-name", "42")
	tbl.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d:\n%s", len(lines), buf.String())
	}
	// COUNT column starts at the same offset in every line
	offset := strings.Index(lines[0], "COUNT")
	if offset < 0 {
		t.Fatal("header missing COUNT")
	}
	if lines[2][offset:offset+1] != "1" || lines[3][offset:offset+2] != "42" {
		t.Errorf("columns misaligned:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 8); got != "hello..." {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("héllo wörld", 8); got != "héllo..." {
		t.Errorf("utf8 Truncate = %q", got)
	}
}

func TestRenderDiff_Plain(t *testing.T) {
	got := RenderDiff("docs mention Vue", "docs mention React", false)
	if !strings.Contains(got, "{+") || !strings.Contains(got, "[-") {
		t.Errorf("plain diff missing markers: %q", got)
	}
	if got := RenderDiff("same", "same", false); got != "same" {
		t.Errorf("no-op diff = %q", got)
	}
}

func TestWriteScanText(t *testing.T) {
	var buf bytes.Buffer
	result := secrets.ScanResult{
		Safe: false,
		Issues: []secrets.Issue{
			{File: "id_rsa", Line: 0, Type: secrets.TypeSensitiveFile},
			{File: "config.go", Line: 12, Type: secrets.TypeAPIKey, Snippet: `api_key = [REDACTED]`},
		},
	}
	if err := WriteScanText(&buf, result, false); err != nil {
		t.Fatalf("WriteScanText error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"id_rsa", "excluded by name", "config.go:12", "[REDACTED]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := WriteScanText(&buf, secrets.ScanResult{Safe: true}, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Safe to transmit") {
		t.Errorf("safe output = %q", buf.String())
	}
}

func TestWriteFindingsTable(t *testing.T) {
	var buf bytes.Buffer
	findings := []state.Finding{
		{ID: "s1", Severity: state.SeverityHigh, Status: state.StatusOpen, Section: "Setup", Suggestion: "fix install step"},
	}
	if err := WriteFindingsTable(&buf, findings, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "s1") || !strings.Contains(out, "[!!]") || !strings.Contains(out, "open") {
		t.Errorf("table output:\n%s", out)
	}

	buf.Reset()
	if err := WriteFindingsTable(&buf, nil, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No findings") {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestWriteStateSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStateSummary(&buf, state.State{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No reviews recorded") {
		t.Errorf("empty state output = %q", buf.String())
	}

	buf.Reset()
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	st := state.State{
		LastReviewedCommit: "abc123",
		LastReviewedAt:     &at,
		Findings: []state.Finding{
			{ID: "a", Status: state.StatusOpen},
			{ID: "b", Status: state.StatusResolved},
		},
	}
	if err := WriteStateSummary(&buf, st); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "abc123") || !strings.Contains(out, "1 open / 2 total") {
		t.Errorf("summary output:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]int{"n": 1}); err != nil {
		t.Fatal(err)
	}
	var parsed map[string]int
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if parsed["n"] != 1 {
		t.Errorf("parsed = %v", parsed)
	}
}
