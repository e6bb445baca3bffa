package injector

import (
	"fmt"
	"reflect"
)

// Resolve returns the cached value for key typed as T.
// Returns TypeMismatchError if the value is not a T.
//
//	repo, err := injector.Resolve[*Repo](c, RepoClass)
func Resolve[T any](c *Container, key Key) (T, error) {
	var zero T
	v, err := c.Get(key)
	if err != nil {
		return zero, err
	}
	return typed[T](key, v)
}

// ResolveToken is Resolve for a marker key; T is taken from the token.
func ResolveToken[T any](c *Container, token *Token[T]) (T, error) {
	return Resolve[T](c, token)
}

// Fresh returns a newly built value for key typed as T, asking ancestors when c
// has no provider for it. The cache is neither read nor written.
func Fresh[T any](c *Container, key Key) (T, error) {
	var zero T
	v, err := c.InstanceOf(key, true)
	if err != nil {
		return zero, err
	}
	return typed[T](key, v)
}

// MustResolve is like Resolve but panics on error.
// Useful in composition roots where a missing provider is a programming error.
func MustResolve[T any](c *Container, key Key) T {
	v, err := Resolve[T](c, key)
	if err != nil {
		panic(err)
	}
	return v
}

func typed[T any](key Key, v any) (T, error) {
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, &TypeMismatchError{
			Key:      keyString(key),
			Expected: reflect.TypeOf((*T)(nil)).Elem().String(),
			Got:      fmt.Sprintf("%T", v),
		}
	}
	return out, nil
}
