package apply

import (
	"fmt"

	"github.com/c360studio/cnlgraph/schema"
)

// SchemaViolationError reports a vocabulary term the graph's schema
// does not accept.
type SchemaViolationError struct {
	Kind     schema.Kind
	Name     string
	EntityID string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema rejects %s %q on entity %q", e.Kind, e.Name, e.EntityID)
}

// ReferenceError reports an operation whose target is absent from the
// working snapshot at the time the operation runs.
type ReferenceError struct {
	EntityID string
	Target   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("entity %q references missing %q", e.EntityID, e.Target)
}

// MissingEntityError reports an update or delete aimed at an entity
// the snapshot does not hold.
type MissingEntityError struct {
	EntityID string
}

func (e *MissingEntityError) Error() string {
	return fmt.Sprintf("entity %q does not exist", e.EntityID)
}
