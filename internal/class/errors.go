package class

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a class name is not registered.
	ErrNotFound = errors.New("class not found")
	// ErrInvalidName is returned for names that are not dot-qualified identifiers.
	ErrInvalidName = errors.New("invalid class name")
	// ErrCycle is returned when a class inherits or mixes in itself.
	ErrCycle = errors.New("inheritance cycle")
	// ErrFrozen is returned by Define once the registry has been frozen.
	ErrFrozen = errors.New("registry is frozen")
)

// DuplicateDefinitionError is returned when a name is defined twice.
type DuplicateDefinitionError struct {
	Name string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("class %q is already defined", e.Name)
}

// ResolveError wraps a failure to build a class's method table.
type ResolveError struct {
	Class string
	Err   error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve class %q: %v", e.Class, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}
