package hashline

import (
	"fmt"
	"strings"
)

// RenderMismatches formats the stale-anchor report: a count with a
// re-read instruction, each mismatching line in LINE:HASH|content form
// with the hash the caller expected, and a remap table a caller can apply
// mechanically to correct its anchors.
func RenderMismatches(lines []string, mismatches []Mismatch) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d line(s) have changed since last read. Re-read the file and use updated LINE:HASH refs.\n\n", len(mismatches))

	for _, mm := range mismatches {
		var content string
		if mm.Line >= 1 && mm.Line <= len(lines) {
			content = lines[mm.Line-1]
		}
		fmt.Fprintf(&b, ">>> %d:%s|%s\n    expected %s\n\n", mm.Line, mm.Actual, content, mm.Expected)
	}

	b.WriteString("Quick fix: replace stale refs:\n")
	for _, mm := range mismatches {
		fmt.Fprintf(&b, "  %d:%s -> %d:%s\n", mm.Line, mm.Expected, mm.Line, mm.Actual)
	}
	return b.String()
}

// RenderPreview renders a minimal -/+ change preview between two line
// sequences. Positionally equal lines are skipped; this is not a real
// diff, just enough to eyeball an edit before it is written.
func RenderPreview(oldLines, newLines []string) string {
	var b strings.Builder
	max := len(oldLines)
	if len(newLines) > max {
		max = len(newLines)
	}
	for i := 0; i < max; i++ {
		switch {
		case i < len(oldLines) && i < len(newLines):
			if oldLines[i] != newLines[i] {
				fmt.Fprintf(&b, "-%s\n", oldLines[i])
				fmt.Fprintf(&b, "+%s\n", newLines[i])
			}
		case i < len(oldLines):
			fmt.Fprintf(&b, "-%s\n", oldLines[i])
		default:
			fmt.Fprintf(&b, "+%s\n", newLines[i])
		}
	}
	return b.String()
}
