// Package injector provides a hierarchical dependency injection container.
//
// A container is built from a list of providers. Each provider binds a key to a
// recipe: a precomputed value, a class to instantiate or a factory to call, plus
// the keys of the dependencies handed to the class or factory.
//
// # Quick Start
//
//	var Config = injector.NewToken[*Config]("config")
//	var Repo = injector.NewClass("Repo", func(args ...any) any {
//	    return &Repository{Config: args[0].(*Config)}
//	}, Config)
//
//	c, err := injector.New(
//	    injector.Provider{Provide: Config, UseValue: cfg},
//	    Repo,
//	)
//	repo, err := injector.Resolve[*Repository](c, Repo)
//
// # Keys
//
// A key is a [Name] (compared by value), a [*Token] or a [*Class] (both compared
// by identity). When several providers share a key, the last registered one wins.
//
// # Lookups
//
// [Container.Get] caches the first value it resolves. [Container.InstanceOf]
// builds a new value on every call. Both fall back to the parent container, set
// with [Container.Child] or [WithParent], when the container has no provider.
//
// # Overrides
//
// [Container.AddProviders] registers providers at runtime and returns an
// [UndoFunc] that restores the previous provider list:
//
//	undo, _ := c.AddProviders([]injector.Provider{{Provide: Config, UseValue: testCfg}}, true)
//	defer undo()
package injector
