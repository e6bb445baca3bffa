package injector

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"
)

// DependencyTree renders the providers that resolving key would use as an ASCII
// tree. Each node shows the key, the first strategy its provider declares and, for
// providers found in an ancestor, how many levels up it lives. Missing and cyclic
// dependencies are marked in the tree instead of failing.
//
// Returns ProviderNotFoundError if no container in the chain has a provider for key.
func (c *Container) DependencyTree(key Key) (string, error) {
	if isNil(key) {
		return "", &ProviderNotFoundError{Key: keyString(key)}
	}
	owner, p, depth := c.find(key, 0)
	if p == nil {
		return "", &ProviderNotFoundError{Key: key.String()}
	}

	root := tree.NewTree(tree.NodeString(nodeLabel(key, p, depth)))
	c.grow(root, owner, p, depth, map[*Provider]bool{p: true})
	return root.String(), nil
}

func (c *Container) grow(node *tree.Tree, owner *Container, p *Provider, depth int, seen map[*Provider]bool) {
	for _, dep := range p.Deps {
		if isNil(dep) {
			node.AddChild(tree.NodeString(keyString(dep) + " (missing)"))
			continue
		}
		depOwner, depProvider, depDepth := owner.find(dep, depth)
		switch {
		case depProvider == nil:
			node.AddChild(tree.NodeString(dep.String() + " (missing)"))
		case seen[depProvider]:
			node.AddChild(tree.NodeString(dep.String() + " (cycle)"))
		default:
			child := node.AddChild(tree.NodeString(nodeLabel(dep, depProvider, depDepth)))
			seen[depProvider] = true
			c.grow(child, depOwner, depProvider, depDepth, seen)
			delete(seen, depProvider)
		}
	}
}

// find walks from c up the parent chain and returns the first container with a
// provider for key, the provider and the container's distance from the receiver
// of the original call.
func (c *Container) find(key Key, depth int) (*Container, *Provider, int) {
	for cur := c; cur != nil; cur = cur.parent {
		if p := cur.lookup(key); p != nil {
			return cur, p, depth
		}
		depth++
	}
	return nil, nil, depth
}

func nodeLabel(key Key, p *Provider, depth int) string {
	label := fmt.Sprintf("%s [%s]", key, declaredStrategy(key, p))
	if depth > 0 {
		label += fmt.Sprintf(" (parent+%d)", depth)
	}
	return label
}

func declaredStrategy(key Key, p *Provider) string {
	switch {
	case !isNil(p.UseValue):
		return string(StrategyValue)
	case p.UseClass != nil:
		return string(StrategyClass)
	case p.UseFactory != nil:
		return string(StrategyFactory)
	}
	if _, ok := key.(*Class); ok {
		return string(StrategyKeyClass)
	}
	return "empty"
}
