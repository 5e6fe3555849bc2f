package hashline

import (
	"strconv"
	"strings"
)

// LineRef is a parsed LINE:HASH anchor. Line is 1-based everywhere in the
// public contract; resolution may rewrite Line when the hash is found at a
// unique new location.
type LineRef struct {
	Line int
	Hash string
}

// ParseAnchor parses a "line:hash" token into a LineRef. The hash portion
// is trimmed and lower-cased so anchor input is case-insensitive.
func ParseAnchor(token string) (LineRef, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return LineRef{}, &AnchorParseError{Token: token, Reason: "expected exactly one ':'"}
	}
	line, err := strconv.Atoi(parts[0])
	if err != nil || line < 0 {
		return LineRef{}, &AnchorParseError{Token: token, Reason: "invalid line number"}
	}
	if line == 0 {
		return LineRef{}, &AnchorParseError{Token: token, Reason: "anchors are 1-indexed (line must be >= 1)"}
	}
	hash := strings.ToLower(strings.TrimSpace(parts[1]))
	if hash == "" {
		return LineRef{}, &AnchorParseError{Token: token, Reason: "empty hash"}
	}
	return LineRef{Line: line, Hash: hash}, nil
}
