package boundcache

import (
	"errors"
	"fmt"
)

// Error types for cache operations. KeyNotFound and CacheEmpty are expected
// outcomes in normal operation; callers should compare with errors.Is.
var (
	// ErrKeyNotFound indicates Get or Delete on a key that is not cached
	ErrKeyNotFound = errors.New("key not found")

	// ErrCacheEmpty indicates PopVictim on a cache with no entries
	ErrCacheEmpty = errors.New("cache is empty")

	// ErrValueTooLarge indicates a single value whose size exceeds the capacity
	ErrValueTooLarge = errors.New("value too large")

	// ErrInvariantViolation indicates the entry map and the policy disagree.
	// It is a bug in the cache or in a custom Policy and must not be ignored.
	ErrInvariantViolation = errors.New("cache invariant violated")
)

// InvariantError describes an inconsistency between the entry map and the policy
type InvariantError struct {
	Op     string // "get", "set", "delete", "pop"
	Key    any
	Reason string
}

// Error implements the error interface
func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s %v: %s: %v", e.Op, e.Key, e.Reason, ErrInvariantViolation)
}

// Unwrap returns ErrInvariantViolation
func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}
