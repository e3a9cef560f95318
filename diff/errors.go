package diff

import "fmt"

// UnresolvedReferenceError reports an operation that targets an id which
// will not exist once all operations are applied. The operation is
// dropped; the rest of the submission proceeds.
type UnresolvedReferenceError struct {
	EntityID string
	Target   string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("entity %q references %q, which will not exist after apply", e.EntityID, e.Target)
}
