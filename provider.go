package injector

import "reflect"

// Provider binds a key to a recipe for its value.
//
// Only one of UseValue, UseClass and UseFactory is normally set. When several are,
// they are tried in that order and the first one producing a non-nil value wins;
// when none is set and Provide is a *Class, the key itself is instantiated.
type Provider struct {
	// Provide is the key the provider answers for. It is required.
	Provide Key

	// UseValue is returned as is.
	UseValue any

	// UseClass is instantiated with the resolved Deps.
	UseClass *Class

	// UseFactory is called with the resolved Deps passed as a single slice.
	UseFactory func(deps []any) any

	// Deps are resolved in order and handed to the class or factory.
	Deps []Key
}

func (p Provider) provider() Provider { return p }

// normalize turns factory entries into owned provider records. Inputs are not
// modified; dependency slices are copied.
func normalize(entries []Entry) ([]*Provider, error) {
	out := make([]*Provider, 0, len(entries))
	for i, e := range entries {
		if isNil(e) {
			return nil, &NilKeyError{Index: i}
		}
		p := e.provider()
		if isNil(p.Provide) {
			return nil, &NilKeyError{Index: i}
		}
		p.Deps = append([]Key(nil), p.Deps...)
		out = append(out, &p)
	}
	return out, nil
}

func normalizeProviders(providers []Provider) ([]*Provider, error) {
	entries := make([]Entry, len(providers))
	for i, p := range providers {
		entries[i] = p
	}
	return normalize(entries)
}

// invoke runs the strategy policy for p. args are the resolved dependencies.
func invoke(key Key, p *Provider, args []any) (any, Strategy, bool) {
	if !isNil(p.UseValue) {
		return p.UseValue, StrategyValue, true
	}
	if p.UseClass != nil {
		if v := p.UseClass.New(args...); !isNil(v) {
			return v, StrategyClass, true
		}
	}
	if p.UseFactory != nil {
		if v := p.UseFactory(args); !isNil(v) {
			return v, StrategyFactory, true
		}
	}
	if cls, ok := key.(*Class); ok && cls != nil {
		if v := cls.New(args...); !isNil(v) {
			return v, StrategyKeyClass, true
		}
	}
	return nil, "", false
}

// isNil reports whether v is nil or a typed nil of a nillable kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
