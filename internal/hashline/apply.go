package hashline

import (
	"slices"
	"sort"
	"strings"
)

// kinds of planned operations, in the internal form Apply works with once
// anchors are parsed.
const (
	planSetLine = iota
	planReplaceLines
	planInsertAfter
	planReplaceText
)

type plannedOp struct {
	kind  int
	ref   LineRef // planSetLine, planInsertAfter
	start LineRef // planReplaceLines
	end   LineRef
	text  string // replacement / inserted text
	old   string // planReplaceText
	all   bool
}

// sortKey orders operations for application: descending by target line so
// a splice never shifts a not-yet-applied anchor above it, with same-line
// InsertAfter applied before the replace that still expects that line, and
// ReplaceText operations last of all (they are content-addressed and run
// on the fully-mutated joined text).
func (p *plannedOp) sortKey() (int, int) {
	switch p.kind {
	case planSetLine:
		return p.ref.Line, 0
	case planReplaceLines:
		return p.end.Line, 0
	case planInsertAfter:
		return p.ref.Line, 1
	default:
		return 0, 9
	}
}

// Apply validates and applies a batch of operations to lines, returning
// the new line sequence. The batch is atomic: either every anchor resolves
// and all operations apply, or an error is returned and the input is
// untouched. An empty batch is a valid no-op.
func Apply(lines []string, ops []Operation) ([]string, error) {
	if len(ops) == 0 {
		return lines, nil
	}

	plan, err := planBatch(ops)
	if err != nil {
		return nil, err
	}

	ix := BuildIndex(lines)
	var mismatches []Mismatch
	for i := range plan {
		if err := resolvePlanned(&plan[i], lines, ix, &mismatches); err != nil {
			return nil, err
		}
	}
	if len(mismatches) > 0 {
		return nil, &StaleAnchorsError{
			Mismatches: mismatches,
			Report:     RenderMismatches(lines, mismatches),
		}
	}

	sort.SliceStable(plan, func(i, j int) bool {
		il, ip := plan[i].sortKey()
		jl, jp := plan[j].sortKey()
		if il != jl {
			return il > jl
		}
		return ip > jp
	})

	out := slices.Clone(lines)
	for i := range plan {
		out, err = applyPlanned(out, &plan[i])
		if err != nil {
			return nil, err
		}
	}

	if slices.Equal(lines, out) {
		return nil, ErrNoEffectiveChange
	}
	return out, nil
}

// planBatch parses every anchor token and runs the parse-time validations
// (empty insert text, empty old text) before anything else happens.
func planBatch(ops []Operation) ([]plannedOp, error) {
	plan := make([]plannedOp, 0, len(ops))
	for _, op := range ops {
		switch o := op.(type) {
		case SetLine:
			ref, err := ParseAnchor(o.Anchor)
			if err != nil {
				return nil, err
			}
			plan = append(plan, plannedOp{kind: planSetLine, ref: ref, text: o.NewText})
		case ReplaceLines:
			start, err := ParseAnchor(o.StartAnchor)
			if err != nil {
				return nil, err
			}
			end, err := ParseAnchor(o.EndAnchor)
			if err != nil {
				return nil, err
			}
			plan = append(plan, plannedOp{kind: planReplaceLines, start: start, end: end, text: o.NewText})
		case InsertAfter:
			ref, err := ParseAnchor(o.Anchor)
			if err != nil {
				return nil, err
			}
			if o.Text == "" {
				return nil, ErrEmptyInsertText
			}
			plan = append(plan, plannedOp{kind: planInsertAfter, ref: ref, text: o.Text})
		case ReplaceText:
			if o.OldText == "" {
				return nil, ErrEmptyOldText
			}
			plan = append(plan, plannedOp{kind: planReplaceText, old: o.OldText, text: o.NewText, all: o.All})
		}
	}
	return plan, nil
}

// resolvePlanned resolves the anchors of one planned operation against the
// pre-edit lines, accumulating mismatches instead of failing one at a time
// so the caller sees every stale anchor in a single report.
func resolvePlanned(p *plannedOp, lines []string, ix *Index, mismatches *[]Mismatch) error {
	switch p.kind {
	case planSetLine, planInsertAfter:
		ref, mm, err := resolveRef(p.ref, lines, ix)
		if err != nil {
			return err
		}
		if mm != nil {
			*mismatches = append(*mismatches, *mm)
			return nil
		}
		p.ref = ref
	case planReplaceLines:
		start, mm, err := resolveRef(p.start, lines, ix)
		if err != nil {
			return err
		}
		if mm != nil {
			*mismatches = append(*mismatches, *mm)
		} else {
			p.start = start
		}
		end, mm, err := resolveRef(p.end, lines, ix)
		if err != nil {
			return err
		}
		if mm != nil {
			*mismatches = append(*mismatches, *mm)
		} else {
			p.end = end
		}
		if p.start.Line > p.end.Line {
			return ErrInvalidRange
		}
	}
	return nil
}

func applyPlanned(lines []string, p *plannedOp) ([]string, error) {
	switch p.kind {
	case planSetLine:
		at := p.ref.Line - 1
		// Re-checked defensively; resolution already bounds-checked.
		if at < 0 || at >= len(lines) {
			return nil, &OutOfRangeError{Line: p.ref.Line, Total: len(lines)}
		}
		return splice(lines, at, at+1, splitReplacement(p.text)), nil

	case planReplaceLines:
		s, e := p.start.Line-1, p.end.Line-1
		if s < 0 || s >= len(lines) || e >= len(lines) {
			return nil, &OutOfRangeError{Line: p.end.Line, Total: len(lines)}
		}
		if s > e {
			return nil, ErrInvalidRange
		}
		return splice(lines, s, e+1, splitReplacement(p.text)), nil

	case planInsertAfter:
		if p.ref.Line > len(lines) {
			return nil, &OutOfRangeError{Line: p.ref.Line, Total: len(lines)}
		}
		// 1-based "after line N" is 0-based insertion index N.
		return splice(lines, p.ref.Line, p.ref.Line, splitReplacement(p.text)), nil

	default: // planReplaceText
		joined := strings.Join(lines, "\n")
		if p.all {
			return strings.Split(strings.ReplaceAll(joined, p.old, p.text), "\n"), nil
		}
		pos := strings.Index(joined, p.old)
		if pos < 0 {
			return nil, ErrSubstringNotFound
		}
		replaced := joined[:pos] + p.text + joined[pos+len(p.old):]
		return strings.Split(replaced, "\n"), nil
	}
}

// splice replaces lines[start:end] with repl, always returning a fresh
// slice so a failed batch never leaves partial mutations behind.
func splice(lines []string, start, end int, repl []string) []string {
	out := make([]string, 0, len(lines)-(end-start)+len(repl))
	out = append(out, lines[:start]...)
	out = append(out, repl...)
	out = append(out, lines[end:]...)
	return out
}

// splitReplacement splits replacement text on newlines; empty text means
// the target lines are removed rather than replaced with one empty line.
func splitReplacement(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
