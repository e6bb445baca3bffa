package injector

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Name is a plain string key. Two names are the same key when their strings are equal.
type Name string

func (n Name) String() string { return string(n) }

func (Name) isKey() {}

// Token is an opaque marker key. Tokens compare by identity, so two tokens
// created with the same name are still different keys.
//
//	var DSN = injector.NewToken[string]("dsn")
//	c, _ := injector.New(injector.Provider{Provide: DSN, UseValue: "postgres://"})
//	dsn, _ := injector.ResolveToken(c, DSN)
type Token[T any] struct {
	name string
	id   uuid.UUID
	typ  reflect.Type
}

// NewToken creates a new marker key for values of type T.
func NewToken[T any](name string) *Token[T] {
	return &Token[T]{
		name: name,
		id:   uuid.New(),
		typ:  reflect.TypeOf((*T)(nil)).Elem(),
	}
}

// Name returns the name the token was created with.
func (t *Token[T]) Name() string { return t.name }

// ID returns the unique identifier of the token.
func (t *Token[T]) ID() uuid.UUID { return t.id }

// Type returns the type of values bound to the token.
func (t *Token[T]) Type() reflect.Type { return t.typ }

func (t *Token[T]) String() string {
	return fmt.Sprintf("Token[%s](%s#%s)", t.typ, t.name, t.id.String()[:8])
}

func (*Token[T]) isKey() {}

// Class is a constructable type. It can be registered on its own, in which case it
// is both the key and the class strategy of its provider, or referenced from a
// Provider through UseClass. Classes compare by identity.
type Class struct {
	name      string
	construct func(args ...any) any
	deps      []Key
}

// NewClass declares a constructable type. deps lists the keys whose resolved values
// are passed positionally to construct.
//
//	var Repo = injector.NewClass("Repo", func(args ...any) any {
//	    return &Repo{DB: args[0].(*sql.DB)}
//	}, DBToken)
func NewClass(name string, construct func(args ...any) any, deps ...Key) *Class {
	return &Class{
		name:      name,
		construct: construct,
		deps:      append([]Key(nil), deps...),
	}
}

// Name returns the declared class name.
func (c *Class) Name() string { return c.name }

// Deps returns a copy of the declared dependency keys. It is empty when the class
// declares none.
func (c *Class) Deps() []Key {
	return append([]Key(nil), c.deps...)
}

// New instantiates the class with already resolved arguments.
// A class without a constructor produces nil.
func (c *Class) New(args ...any) any {
	if c == nil || c.construct == nil {
		return nil
	}
	return c.construct(args...)
}

func (c *Class) String() string {
	return "Class(" + c.name + ")"
}

func (*Class) isKey() {}

func (c *Class) provider() Provider {
	return Provider{
		Provide:  c,
		UseClass: c,
		Deps:     c.Deps(),
	}
}

// keyString renders a possibly nil key.
func keyString(k Key) string {
	if isNil(k) {
		return "<nil>"
	}
	return k.String()
}
