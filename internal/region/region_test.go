package region

import (
	"errors"
	"strings"
	"testing"
)

const sampleDoc = `# My Project

Some intro text.

<!-- auracoil:begin -->
Old review content.
<!-- auracoil:end -->

## License

MIT
`

func TestExtract(t *testing.T) {
	got, ok := Extract(sampleDoc)
	if !ok {
		t.Fatal("Extract ok = false, want true")
	}
	if got != "Old review content." {
		t.Errorf("Extract = %q, want %q", got, "Old review content.")
	}
}

func TestExtract_MissingMarkers(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no markers", "# Plain doc\n"},
		{"begin only", "# Doc\n" + BeginMarker + "\ncontent\n"},
		{"end only", "# Doc\n" + EndMarker + "\n"},
		{"end before begin", EndMarker + "\nmiddle\n" + BeginMarker + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := Extract(tt.doc); ok {
				t.Errorf("Extract = (%q, true), want ok=false", got)
			}
		})
	}
}

func TestReplace_RoundTrip(t *testing.T) {
	body, ok := Extract(sampleDoc)
	if !ok {
		t.Fatal("Extract failed on sample doc")
	}
	got, err := Replace(sampleDoc, body)
	if err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	if got != sampleDoc {
		t.Errorf("round trip changed document:\ngot:\n%s\nwant:\n%s", got, sampleDoc)
	}
}

func TestReplace_PreservesOutsideText(t *testing.T) {
	got, err := Replace(sampleDoc, "New review content.")
	if err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	if !strings.Contains(got, "New review content.") {
		t.Error("new content not present")
	}
	if strings.Contains(got, "Old review content.") {
		t.Error("old region content survived replacement")
	}
	if !strings.HasPrefix(got, "# My Project\n\nSome intro text.\n\n") {
		t.Error("text before the region was modified")
	}
	if !strings.HasSuffix(got, "## License\n\nMIT\n") {
		t.Error("text after the region was modified")
	}
}

func TestReplace_MissingRegion(t *testing.T) {
	_, err := Replace("# No markers here\n", "content")
	if err == nil {
		t.Fatal("Replace on markerless doc: want error, got nil")
	}
	var missing *MissingRegionError
	if !errors.As(err, &missing) {
		t.Errorf("error = %v, want *MissingRegionError", err)
	}
}

func TestReplace_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"duplicate begin", BeginMarker + "\n" + BeginMarker + "\n" + EndMarker},
		{"duplicate end", BeginMarker + "\n" + EndMarker + "\n" + EndMarker},
		{"reversed", EndMarker + "\n" + BeginMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Replace(tt.doc, "x")
			var malformed *MalformedRegionError
			if !errors.As(err, &malformed) {
				t.Errorf("error = %v, want *MalformedRegionError", err)
			}
		})
	}
}

func TestEnsure_AppendsRegion(t *testing.T) {
	doc := "# Fresh Doc\n\nBody text.\n\n\n"
	got := Ensure(doc)
	if strings.Count(got, BeginMarker) != 1 || strings.Count(got, EndMarker) != 1 {
		t.Fatalf("Ensure did not append exactly one marker pair:\n%s", got)
	}
	if !strings.Contains(got, "# Fresh Doc\n\nBody text.\n\n"+BeginMarker) {
		t.Errorf("region not separated by a blank line:\n%s", got)
	}
	if _, ok := Extract(got); !ok {
		t.Error("Extract failed on ensured document")
	}
}

func TestEnsure_Idempotent(t *testing.T) {
	once := Ensure("# Doc\n")
	twice := Ensure(once)
	if twice != once {
		t.Error("Ensure is not idempotent")
	}
	if strings.Count(twice, BeginMarker) != 1 {
		t.Errorf("begin marker count = %d, want 1", strings.Count(twice, BeginMarker))
	}
}

func TestEnsure_BeginOnlyUnchanged(t *testing.T) {
	doc := "# Doc\n\n" + BeginMarker + "\ndangling\n"
	if got := Ensure(doc); got != doc {
		t.Errorf("Ensure modified a doc that already has a begin marker:\n%s", got)
	}
}

func TestEnsure_EmptyDoc(t *testing.T) {
	got := Ensure("")
	if _, ok := Extract(got); !ok {
		t.Errorf("Extract failed on ensured empty doc:\n%s", got)
	}
	if strings.HasPrefix(got, "\n") {
		t.Error("ensured empty doc starts with a blank line")
	}
}
