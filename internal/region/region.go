package region

import (
	"fmt"
	"strings"
)

// Sentinel markers delimiting the auracoil-owned region of a host document.
// Everything strictly between them belongs to auracoil; everything outside
// belongs to other writers and is never touched.
const (
	BeginMarker = "<!-- auracoil:begin -->"
	EndMarker   = "<!-- auracoil:end -->"
)

// DefaultBody is the placeholder content written into a freshly created region.
const DefaultBody = "_No review yet. Run `auracoil review` to populate this section._"

// MissingRegionError indicates a marker required for region replacement was
// not found in the document.
type MissingRegionError struct {
	Marker string
}

func (e *MissingRegionError) Error() string {
	return fmt.Sprintf("region marker %q not found in document", e.Marker)
}

// MalformedRegionError indicates the markers are present but unusable:
// a marker appears more than once, or END precedes BEGIN.
type MalformedRegionError struct {
	Reason string
}

func (e *MalformedRegionError) Error() string {
	return fmt.Sprintf("malformed region markers: %s", e.Reason)
}

// Extract returns the trimmed content strictly between the first BeginMarker
// and the first EndMarker. ok is false when either marker is absent, or when
// the first EndMarker precedes the first BeginMarker.
func Extract(doc string) (content string, ok bool) {
	begin := strings.Index(doc, BeginMarker)
	end := strings.Index(doc, EndMarker)
	if begin < 0 || end < 0 {
		return "", false
	}
	start := begin + len(BeginMarker)
	if end < start {
		return "", false
	}
	return strings.TrimSpace(doc[start:end]), true
}

// Replace substitutes the content strictly between the markers with the
// trimmed newContent, preserving the markers and all surrounding text
// byte-for-byte. It fails with *MissingRegionError when a marker is absent
// and *MalformedRegionError when markers are duplicated or out of order;
// it never creates the region (see Ensure).
func Replace(doc, newContent string) (string, error) {
	if err := Validate(doc); err != nil {
		return "", err
	}
	begin := strings.Index(doc, BeginMarker)
	end := strings.Index(doc, EndMarker)
	start := begin + len(BeginMarker)

	var b strings.Builder
	b.WriteString(doc[:start])
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(newContent))
	b.WriteString("\n")
	b.WriteString(doc[end:])
	return b.String(), nil
}

// Validate checks that both markers are present, each appears exactly once,
// and BEGIN precedes END.
func Validate(doc string) error {
	begin := strings.Index(doc, BeginMarker)
	if begin < 0 {
		return &MissingRegionError{Marker: BeginMarker}
	}
	end := strings.Index(doc, EndMarker)
	if end < 0 {
		return &MissingRegionError{Marker: EndMarker}
	}
	if strings.Count(doc, BeginMarker) > 1 {
		return &MalformedRegionError{Reason: "begin marker appears more than once"}
	}
	if strings.Count(doc, EndMarker) > 1 {
		return &MalformedRegionError{Reason: "end marker appears more than once"}
	}
	if end < begin+len(BeginMarker) {
		return &MalformedRegionError{Reason: "end marker precedes begin marker"}
	}
	return nil
}

// Ensure returns doc with a region block appended if no BeginMarker exists.
// When BeginMarker is already present the document is returned unchanged,
// even if EndMarker is missing; repairing a half-present region would mean
// guessing where the owned content ends, so that case is left to the user.
func Ensure(doc string) string {
	if strings.Contains(doc, BeginMarker) {
		return doc
	}
	block := BeginMarker + "\n" + DefaultBody + "\n" + EndMarker + "\n"
	trimmed := strings.TrimRight(doc, " \t\n")
	if trimmed == "" {
		return block
	}
	return trimmed + "\n\n" + block
}
