package output

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RenderDiff returns a preview of the change from before to after. With
// color enabled, insertions and deletions get ANSI highlighting; otherwise
// they are bracketed as {+added+} and [-removed-].
func RenderDiff(before, after string, color bool) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if color {
		return dmp.DiffPrettyText(diffs)
	}
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+")
			sb.WriteString(d.Text)
			sb.WriteString("+}")
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-")
			sb.WriteString(d.Text)
			sb.WriteString("-]")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}
