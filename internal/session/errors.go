package session

import "fmt"

// ValidationError is a user-facing rejection of an input mutation. The store
// is guaranteed untouched when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrUnknownCollection indicates an operation referenced a collection name
// outside the five known ones.
type ErrUnknownCollection struct {
	Name string
}

func (e *ErrUnknownCollection) Error() string {
	return fmt.Sprintf("unknown collection: %s", e.Name)
}

// ErrIndexOutOfRange indicates an edit or remove with an index outside the
// collection. This is a caller contract violation, not a recoverable user
// input error; state is never mutated.
type ErrIndexOutOfRange struct {
	Collection string
	Index      int
	Length     int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range for collection %s (length %d)", e.Index, e.Collection, e.Length)
}
