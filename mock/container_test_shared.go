package mock

import (
	"sync/atomic"

	"github.com/centraunit/injector"
)

// Keys
var (
	DSN       = injector.NewToken[string]("dsn")
	RequestID = injector.NewToken[string]("request-id")
)

// Core types
type Database interface {
	Connect() error
	DSN() string
}

type Cache interface {
	Get(key string) interface{}
}

// Mock implementations
type MockDB struct {
	dsn         string
	isConnected bool
}

func (m *MockDB) Connect() error {
	m.isConnected = true
	return nil
}

func (m *MockDB) DSN() string {
	return m.dsn
}

func (m *MockDB) IsConnected() bool {
	return m.isConnected
}

// DBClass builds a connected *MockDB from the DSN token. A missing DSN
// leaves it empty.
var DBClass = injector.NewClass("MockDB", func(args ...any) any {
	dsn, _ := args[0].(string)
	db := &MockDB{dsn: dsn}
	_ = db.Connect()
	return db
}, DSN)

type MockCache struct {
	DB Database
}

func (m *MockCache) Get(key string) interface{} {
	return nil
}

// CacheClass depends on DBClass. DB is nil when no database is provided.
var CacheClass = injector.NewClass("MockCache", func(args ...any) any {
	db, _ := args[0].(Database)
	return &MockCache{DB: db}
}, DBClass)

// Deep dependency chain: DeepClass1 -> DeepClass2 -> DeepClass3
type DeepImpl3 struct {
	Value string
}

type DeepImpl2 struct {
	Svc3 *DeepImpl3
}

type DeepImpl1 struct {
	Svc2 *DeepImpl2
}

var DeepClass3 = injector.NewClass("DeepImpl3", func(args ...any) any {
	return &DeepImpl3{Value: "deep"}
})

var DeepClass2 = injector.NewClass("DeepImpl2", func(args ...any) any {
	return &DeepImpl2{Svc3: args[0].(*DeepImpl3)}
}, DeepClass3)

var DeepClass1 = injector.NewClass("DeepImpl1", func(args ...any) any {
	return &DeepImpl1{Svc2: args[0].(*DeepImpl2)}
}, DeepClass2)

// Circular dependency test keys. The providers are registered by the tests.
var (
	CircularA = injector.Name("circular-a")
	CircularB = injector.Name("circular-b")
)

// NilClass constructs nothing.
var NilClass = injector.NewClass("Nil", func(args ...any) any {
	var db *MockDB
	return db
})

// Counter counts constructions so tests can tell cached values from fresh ones.
type Counter struct {
	n atomic.Int64
}

// Class returns a class that records every construction on c.
func (c *Counter) Class(name string) *injector.Class {
	return injector.NewClass(name, func(args ...any) any {
		return &Instance{Seq: c.n.Add(1), Args: args}
	})
}

// Factory returns a factory that records every call on c.
func (c *Counter) Factory() func(deps []any) any {
	return func(deps []any) any {
		return &Instance{Seq: c.n.Add(1), Args: deps}
	}
}

// Count returns the number of constructions so far.
func (c *Counter) Count() int64 {
	return c.n.Load()
}

// Instance is the value produced by Counter classes and factories.
type Instance struct {
	Seq  int64
	Args []any
}
