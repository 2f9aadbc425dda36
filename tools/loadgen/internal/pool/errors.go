package pool

import "errors"

var (
	// ErrPoolClosed is returned by every operation after Close.
	ErrPoolClosed = errors.New("parameter pool is closed")

	// ErrValueNotFound signals a lookup for a value the pool never held.
	ErrValueNotFound = errors.New("value not found in pool")

	// ErrInvalidSemanticType signals an empty or malformed semantic type.
	ErrInvalidSemanticType = errors.New("invalid semantic type")
)
