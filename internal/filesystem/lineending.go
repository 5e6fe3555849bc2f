package filesystem

import "strings"

// LineEnding is the line-terminator convention of a file on disk.
type LineEnding string

const (
	LF   LineEnding = "\n"
	CRLF LineEnding = "\r\n"
)

// Document carries a file's text in normalized (LF, no trailing
// terminator) form along with what is needed to write it back exactly as
// it arrived: its original ending convention and whether it ended with a
// final newline. The edit engine only ever sees the normalized lines.
type Document struct {
	Lines        []string
	Ending       LineEnding
	FinalNewline bool
}

// ParseDocument normalizes raw text into a Document.
func ParseDocument(raw string) *Document {
	return &Document{
		Lines:        SplitLines(NormalizeNewlines(raw)),
		Ending:       DetectLineEnding(raw),
		FinalNewline: strings.HasSuffix(raw, "\n"),
	}
}

// Render joins lines back into on-disk form, restoring the original
// terminator convention and trailing newline.
func (d *Document) Render(lines []string) string {
	out := strings.Join(lines, "\n")
	if d.FinalNewline {
		out += "\n"
	}
	return RestoreLineEndings(out, d.Ending)
}

// DetectLineEnding reports CRLF when any CRLF sequence is present,
// otherwise LF.
func DetectLineEnding(s string) LineEnding {
	if strings.Contains(s, "\r\n") {
		return CRLF
	}
	return LF
}

// NormalizeNewlines converts CRLF sequences to LF.
func NormalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// RestoreLineEndings converts LF back to the given convention.
func RestoreLineEndings(s string, ending LineEnding) string {
	if ending == LF {
		return s
	}
	return strings.ReplaceAll(s, "\n", string(ending))
}

// SplitLines splits normalized text on LF. A single trailing empty segment
// produced by a final newline is dropped so the terminator is not
// addressable as an extra empty line.
func SplitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if strings.HasSuffix(s, "\n") && len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
