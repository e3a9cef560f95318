package cnl

import "fmt"

// ParseError reports a malformed line. The surrounding document is still
// parsed; callers collect these and keep going.
type ParseError struct {
	// Line is the 1-based line number in the submitted text.
	Line int

	// Text is the offending line as written.
	Text string

	// Reason describes what was wrong.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// DuplicateMorphError reports two morphs of the same node sharing a name.
// The later block is rejected; the earlier one stands.
type DuplicateMorphError struct {
	Line  int
	Node  string
	Morph string
}

func (e *DuplicateMorphError) Error() string {
	return fmt.Sprintf("line %d: duplicate morph %q on node %q", e.Line, e.Morph, e.Node)
}
