package injector

import "log/slog"

// Option configures a container during construction.
type Option func(*Container)

// WithParent sets the container lookups are delegated to on a local miss.
// The parent must already exist; the child does not own it.
func WithParent(parent *Container) Option {
	return func(c *Container) {
		c.parent = parent
	}
}

// WithLogger sets the logger used for debug records about resolution and
// registration. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}
