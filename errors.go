package injector

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProviderNotFound matches every lookup that produced no value.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrCircularDependency matches a dependency cycle detected during resolution.
	ErrCircularDependency = errors.New("circular dependency detected")
)

// ProviderNotFoundError represents a key with no matching provider in the
// container or, when consulted, its ancestors.
type ProviderNotFoundError struct {
	Key string
}

func (e *ProviderNotFoundError) Error() string {
	return fmt.Sprintf("no provider found for key: %s", e.Key)
}

func (e *ProviderNotFoundError) Is(target error) bool {
	return target == ErrProviderNotFound
}

// EmptyProviderError represents a matching provider that produced no value:
// no strategy was set or every strategy returned nil.
type EmptyProviderError struct {
	Key string
}

func (e *EmptyProviderError) Error() string {
	return fmt.Sprintf("provider for key %s produced no value", e.Key)
}

func (e *EmptyProviderError) Is(target error) bool {
	return target == ErrProviderNotFound
}

// CircularDependencyError represents a provider that depends on itself,
// directly or through other providers. Chain lists the keys from the first
// occurrence back to the repeated one.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Chain, " -> "))
}

func (e *CircularDependencyError) Is(target error) bool {
	return target == ErrCircularDependency
}

// DependencyError represents a failure to resolve one of a provider's dependencies.
type DependencyError struct {
	Key        string
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("resolving dependency %s of %s: %v", e.Dependency, e.Key, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// TypeMismatchError represents a type assertion failure in the generic helpers.
type TypeMismatchError struct {
	Key      string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch for key %s: expected %s, got %s", e.Key, e.Expected, e.Got)
}

// NilKeyError represents a provider entry without a key. Index is the position
// of the entry in the list it was registered with.
type NilKeyError struct {
	Index int
}

func (e *NilKeyError) Error() string {
	return fmt.Sprintf("provider at index %d has no key", e.Index)
}

// isMiss reports whether err means "nothing resolved here" for the container
// that produced it. Wrapped misses from dependencies do not count.
func isMiss(err error) bool {
	switch err.(type) {
	case *ProviderNotFoundError, *EmptyProviderError:
		return true
	}
	return false
}
