package injector

// Package injector provides interfaces for keys and provider entries.

// Key identifies a provider inside a container.
// It is implemented only by Name, *Token and *Class.
type Key interface {
	// String returns a human readable form of the key, used in errors and logs.
	String() string

	isKey()
}

// Entry is anything the container factory accepts: a full Provider or a bare *Class.
type Entry interface {
	provider() Provider
}

// Strategy names the way a provider produced its value.
type Strategy string

// Available construction strategies, in the order they are tried.
const (
	// StrategyValue returns the precomputed UseValue
	StrategyValue Strategy = "value"
	// StrategyClass instantiates UseClass with the resolved dependencies
	StrategyClass Strategy = "class"
	// StrategyFactory calls UseFactory with the resolved dependencies as one slice
	StrategyFactory Strategy = "factory"
	// StrategyKeyClass instantiates the key itself when it is a *Class
	StrategyKeyClass Strategy = "key-class"
)
