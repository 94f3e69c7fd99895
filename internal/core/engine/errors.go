package engine

import "errors"

// Engine-specific errors
var (
	ErrInvalidConfig  = errors.New("invalid engine configuration")
	ErrEntityNotFound = errors.New("entity not found")
	ErrAlreadyManaged = errors.New("entity is already managed")
	ErrNotAProcessor  = errors.New("registered processor type does not implement Processor")
)
