package hashline

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/OneOfOne/xxhash"
)

// Fingerprint computes the short content hash used in LINE:HASH anchors.
// All whitespace (including carriage returns) is stripped before hashing,
// so re-indenting a line does not invalidate anchors pointing at it. The
// result is the low 16 bits of xxHash32 (seed 0), rendered as 4 lowercase
// hex digits.
func Fingerprint(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	h := xxhash.Checksum32S([]byte(b.String()), 0)
	return fmt.Sprintf("%04x", h&0xffff)
}
