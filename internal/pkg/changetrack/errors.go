package changetrack

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below wrap these so callers can classify
// failures with errors.Is.
var (
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrKeyNotFound      = errors.New("key not found")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrValidationFailed = errors.New("validation failed")
)

// IndexError reports a positional access outside the valid range.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0:%d]", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// KeyError reports a missing or duplicate Map key.
// Err is either ErrKeyNotFound or ErrDuplicateKey.
type KeyError struct {
	Key any
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%v: %v", e.Err, e.Key)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when a ValidationPredicate rejects an item.
type ValidationError struct {
	Item   any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("validation failed for %v", e.Item)
	}
	return fmt.Sprintf("validation failed for %v: %s", e.Item, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
