package types

import "errors"

// Entity construction and field access errors.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrReadOnlyField    = errors.New("field is read-only")
)

// Registry errors.
var (
	ErrUnknownKind = errors.New("unknown entity kind")
	ErrNotFound    = errors.New("entity not found")
)
