package entity

import "errors"

// Collection errors. All are caller contract violations raised before any
// structural change is applied; the collection is never left half-mutated.
var (
	ErrNilComponent      = errors.New("component is nil")
	ErrDuplicateType     = errors.New("component type already attached")
	ErrDuplicateInstance = errors.New("component instance already attached")
	ErrIndexOutOfRange   = errors.New("component index out of range")
)
