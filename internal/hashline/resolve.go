package hashline

// resolveRef validates ref against the current lines, relocating it when
// its hash is found at exactly one other line. It returns a corrected copy
// rather than mutating ref, so resolution carries no order-dependent state
// across a batch. A nil *Mismatch means the reference resolved.
//
// A line number beyond the current file is structural and fails
// immediately with OutOfRangeError; it is never treated as a mismatch.
func resolveRef(ref LineRef, lines []string, ix *Index) (LineRef, *Mismatch, error) {
	if ref.Line < 1 || ref.Line > len(lines) {
		return LineRef{}, nil, &OutOfRangeError{Line: ref.Line, Total: len(lines)}
	}

	actual := Fingerprint(lines[ref.Line-1])
	if actual == ref.Hash {
		return ref, nil, nil
	}

	if line, ok := ix.Unique(ref.Hash); ok {
		return LineRef{Line: line, Hash: ref.Hash}, nil, nil
	}

	return ref, &Mismatch{Line: ref.Line, Expected: ref.Hash, Actual: actual}, nil
}
