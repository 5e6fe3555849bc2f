package hashline

// Operation is one edit in a batch. The first three kinds are addressed by
// LINE:HASH anchors; ReplaceText is addressed by content and never touches
// anchors.
type Operation interface {
	isOperation()
}

// SetLine replaces the single line at Anchor with NewText. NewText may
// contain newlines (the line is replaced by several) or be empty (the line
// is deleted).
type SetLine struct {
	Anchor  string
	NewText string
}

// ReplaceLines replaces the inclusive span [StartAnchor, EndAnchor] with
// NewText's lines.
type ReplaceLines struct {
	StartAnchor string
	EndAnchor   string
	NewText     string
}

// InsertAfter inserts Text's lines immediately after the anchored line.
type InsertAfter struct {
	Anchor string
	Text   string
}

// ReplaceText replaces the first occurrence of OldText in the joined file
// text, or every non-overlapping occurrence when All is set.
type ReplaceText struct {
	OldText string
	NewText string
	All     bool
}

func (SetLine) isOperation()      {}
func (ReplaceLines) isOperation() {}
func (InsertAfter) isOperation()  {}
func (ReplaceText) isOperation()  {}
