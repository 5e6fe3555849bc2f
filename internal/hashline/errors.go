package hashline

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEffectiveChange is returned when a non-empty batch produces
	// output identical to the input. Silent no-ops are rejected so a
	// caller never mistakes "nothing happened" for a successful edit.
	ErrNoEffectiveChange = errors.New("no changes made (edits produced identical content)")

	// ErrEmptyInsertText rejects insert_after operations with no text.
	ErrEmptyInsertText = errors.New("insert_after.text must be non-empty")

	// ErrEmptyOldText rejects replace operations with no search text.
	ErrEmptyOldText = errors.New("replace.old_text must be non-empty")

	// ErrSubstringNotFound is returned when replace.old_text does not
	// occur anywhere in the file.
	ErrSubstringNotFound = errors.New("replace.old_text not found")

	// ErrInvalidRange is returned when a replace_lines start anchor
	// resolves to a line after its end anchor.
	ErrInvalidRange = errors.New("replace_lines.start_anchor line must be <= end_anchor line")
)

// AnchorParseError reports a malformed LINE:HASH token.
type AnchorParseError struct {
	Token  string
	Reason string
}

func (e *AnchorParseError) Error() string {
	return fmt.Sprintf("invalid anchor %q: %s", e.Token, e.Reason)
}

// OutOfRangeError reports an anchor or range bound beyond the current
// file. This is structural, never recoverable by relocation.
type OutOfRangeError struct {
	Line  int
	Total int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("line %d does not exist (file has %d lines)", e.Line, e.Total)
}

// Mismatch records one anchor whose fingerprint no longer matches its line
// and could not be relocated to a unique new location.
type Mismatch struct {
	Line     int
	Expected string
	Actual   string
}

// StaleAnchorsError carries every mismatch found while resolving a batch.
// The structured list lets a caller correct its anchors programmatically;
// Report is the human-readable rendering of the same data.
type StaleAnchorsError struct {
	Mismatches []Mismatch
	Report     string
}

func (e *StaleAnchorsError) Error() string { return e.Report }
