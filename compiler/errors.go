package compiler

import "fmt"

// ConflictingDeclarationError warns that two blocks in one submission
// resolve to the same identity. The later block wins.
type ConflictingDeclarationError struct {
	Line     int
	EntityID string
}

func (e *ConflictingDeclarationError) Error() string {
	return fmt.Sprintf("line %d: %q declared more than once; the later declaration wins", e.Line, e.EntityID)
}

// UnknownMorphError reports a state reference naming a morph its node
// never declares.
type UnknownMorphError struct {
	Line  int
	Node  string
	Morph string
}

func (e *UnknownMorphError) Error() string {
	return fmt.Sprintf("line %d: node %q has no morph %q", e.Line, e.Node, e.Morph)
}
