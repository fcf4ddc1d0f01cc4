// Package delegates composes content-authored behavior objects into a
// prioritized chain that ends in a mandatory default.
//
// A delegate opts into an extension point by implementing the matching
// handler interface. Dispatch is explicit: callers pick Broadcast,
// FirstMatch or Fold for each extension point, and handlers report through
// their return values whether the next lower priority handler should run.
package delegates

import (
	"reflect"
	"sync"

	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
)

// Delegate is a behavior object that can be placed in a Chain.
// Key must be unique within a chain.
type Delegate interface {
	Key() string
}

// Propagation tells the chain whether the parent handler still runs
type Propagation int

const (
	// Continue passes control to the next lower priority implementer
	Continue Propagation = iota
	// Stop ends dispatch after the current handler
	Stop
)

func (p Propagation) String() string {
	if p == Stop {
		return "stop"
	}
	return "continue"
}

// Capability names a handler interface a chain's default must implement
type Capability struct {
	name    string
	handler reflect.Type
}

// Requires declares H as a capability
func Requires[H any]() Capability {
	t := reflect.TypeFor[H]()
	return Capability{name: t.String(), handler: t}
}

// Name returns the handler interface name
func (c Capability) Name() string {
	return c.name
}

func (c Capability) implementedBy(d Delegate) bool {
	return reflect.TypeOf(d).Implements(c.handler)
}

type node struct {
	delegate Delegate
	parent   *node
}

// Chain is an immutable prioritized list of delegates. Each node's parent
// is the next lower priority node and the default is the parentless tail.
type Chain struct {
	head *node
	size int

	mu    sync.Mutex
	index map[reflect.Type][]Delegate
}

// New builds a chain from delegates ordered highest priority first, ending
// in def. Construction fails when a delegate is nil, two delegates share a
// key, the parent walk does not terminate at def, or def does not
// implement one of the required capabilities.
func New(def Delegate, delegates []Delegate, required ...Capability) (*Chain, error) {
	if def == nil {
		return nil, battleErr.Configurationf("default delegate is required")
	}
	for _, capability := range required {
		if !capability.implementedBy(def) {
			return nil, battleErr.Configurationf("default delegate %q does not implement %s", def.Key(), capability.Name()).
				WithMeta("capability", capability.Name())
		}
	}

	seen := map[string]bool{def.Key(): true}
	for i, d := range delegates {
		if d == nil {
			return nil, battleErr.Configurationf("delegate at position %d is nil", i)
		}
		if seen[d.Key()] {
			return nil, battleErr.Configurationf("delegate key %q appears more than once", d.Key()).
				WithMeta("key", d.Key())
		}
		seen[d.Key()] = true
	}

	tail := &node{delegate: def}
	head := tail
	for i := len(delegates) - 1; i >= 0; i-- {
		head = &node{delegate: delegates[i], parent: head}
	}

	c := &Chain{head: head, size: len(delegates) + 1}
	if err := c.verify(tail); err != nil {
		return nil, err
	}
	return c, nil
}

// verify walks parent pointers and fails instead of looping forever
func (c *Chain) verify(tail *node) error {
	visited := make(map[*node]bool, c.size)
	n := c.head
	for steps := 0; ; steps++ {
		if n == nil {
			return battleErr.Configurationf("chain ended before reaching the default delegate")
		}
		if visited[n] || steps >= c.size {
			return battleErr.Configurationf("cycle detected at delegate %q", n.delegate.Key())
		}
		visited[n] = true
		if n.parent == nil {
			if n != tail {
				return battleErr.Configurationf("delegate %q has no parent but is not the default", n.delegate.Key())
			}
			return nil
		}
		n = n.parent
	}
}

// Len returns the number of delegates including the default
func (c *Chain) Len() int {
	return c.size
}

// Delegates returns every delegate in priority order, default last
func (c *Chain) Delegates() []Delegate {
	out := make([]Delegate, 0, c.size)
	for n := c.head; n != nil; n = n.parent {
		out = append(out, n.delegate)
	}
	return out
}

// Default returns the tail delegate
func (c *Chain) Default() Delegate {
	n := c.head
	for n.parent != nil {
		n = n.parent
	}
	return n.delegate
}

// implementers returns delegates implementing the handler type, building
// and caching the index on first use
func (c *Chain) implementers(handler reflect.Type) []Delegate {
	c.mu.Lock()
	defer c.mu.Unlock()

	if found, ok := c.index[handler]; ok {
		return found
	}
	if c.index == nil {
		c.index = make(map[reflect.Type][]Delegate)
	}

	var found []Delegate
	for n := c.head; n != nil; n = n.parent {
		if reflect.TypeOf(n.delegate).Implements(handler) {
			found = append(found, n.delegate)
		}
	}
	c.index[handler] = found
	return found
}

// Implementers returns every delegate implementing H in priority order
func Implementers[H any](c *Chain) []H {
	found := c.implementers(reflect.TypeFor[H]())
	out := make([]H, 0, len(found))
	for _, d := range found {
		out = append(out, d.(H))
	}
	return out
}

// Broadcast runs every implementer of H in priority order and concatenates
// their results. A handler returning Stop keeps its own results but no
// lower priority handler runs.
func Broadcast[H any, R any](c *Chain, invoke func(h H) ([]R, Propagation)) []R {
	var out []R
	for _, h := range Implementers[H](c) {
		results, next := invoke(h)
		out = append(out, results...)
		if next == Stop {
			break
		}
	}
	return out
}

// FirstMatch runs implementers of H until one answers. Reaching the end of
// the chain without an answer means the default is broken and panics.
func FirstMatch[H any, R any](c *Chain, invoke func(h H) (R, bool)) R {
	for _, h := range Implementers[H](c) {
		if result, ok := invoke(h); ok {
			return result
		}
	}
	panic("delegates: no handler answered " + reflect.TypeFor[H]().String())
}

// Fold threads acc through every implementer of H in priority order.
// A handler returning Stop makes its value the final result.
func Fold[H any, A any](c *Chain, acc A, invoke func(h H, acc A) (A, Propagation)) A {
	for _, h := range Implementers[H](c) {
		var next Propagation
		acc, next = invoke(h, acc)
		if next == Stop {
			break
		}
	}
	return acc
}

// FoldChains folds acc through each chain in turn, so a skill's handlers
// run before the handlers of the creature using it
func FoldChains[H any, A any](acc A, invoke func(h H, acc A) (A, Propagation), chains ...*Chain) A {
	for _, c := range chains {
		if c == nil {
			continue
		}
		acc = Fold[H](c, acc, invoke)
	}
	return acc
}
