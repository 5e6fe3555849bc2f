package hashline

// Index maps line fingerprints to their occurrences in a snapshot of the
// file. It is rebuilt once per edit batch from the pre-edit lines; a hash
// is eligible as a relocation target only when it occurs exactly once.
type Index struct {
	counts map[string]int
	first  map[string]int
}

// BuildIndex fingerprints every line and records per-hash occurrence
// counts and first-occurrence line numbers (1-based).
func BuildIndex(lines []string) *Index {
	ix := &Index{
		counts: make(map[string]int, len(lines)),
		first:  make(map[string]int, len(lines)),
	}
	for i, line := range lines {
		h := Fingerprint(line)
		ix.counts[h]++
		if _, ok := ix.first[h]; !ok {
			ix.first[h] = i + 1
		}
	}
	return ix
}

// Unique returns the line number of the given hash if it occurs exactly
// once in the indexed snapshot.
func (ix *Index) Unique(hash string) (int, bool) {
	if ix.counts[hash] != 1 {
		return 0, false
	}
	return ix.first[hash], true
}
