package stats

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ID identifies a single tunable numeric property. IDs are registered once
// at package init and shared by every entity.
type ID int

// Kind describes how a stat's modifiers fold into a value
type Kind int

const (
	KindInt Kind = iota
	KindBasisPoints
	KindDuration
	KindFlag
	KindTagged
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBasisPoints:
		return "basis_points"
	case KindDuration:
		return "duration"
	case KindFlag:
		return "flag"
	case KindTagged:
		return "tagged"
	default:
		return "unknown"
	}
}

// Definition is the registry entry for a stat
type Definition struct {
	ID   ID
	Name string
	Kind Kind

	// Base is the value the fold starts from before any modifier.
	// Flags use 0/1; tagged stats always start from an empty bag.
	Base int
}

var (
	registryMu sync.RWMutex
	registry   = map[ID]Definition{}
	byName     = map[string]ID{}
)

// Register adds a definition to the registry. Registering the same ID or
// name twice is a programmer error and panics.
func Register(def Definition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.ID]; exists {
		panic(fmt.Sprintf("stats: id %d registered twice", def.ID))
	}
	key := strings.ToLower(def.Name)
	if _, exists := byName[key]; exists {
		panic(fmt.Sprintf("stats: name %q registered twice", def.Name))
	}
	registry[def.ID] = def
	byName[key] = def.ID
}

// Lookup returns the definition for id. Reading an unregistered stat is a
// programmer error and panics.
func Lookup(id ID) Definition {
	registryMu.RLock()
	def, ok := registry[id]
	registryMu.RUnlock()

	if !ok {
		panic(fmt.Sprintf("stats: unregistered stat id %d", id))
	}
	return def
}

// Registered reports whether id has a definition
func Registered(id ID) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, ok := registry[id]
	return ok
}

// LookupName finds a definition by its case-insensitive name
func LookupName(name string) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	id, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Definition{}, false
	}
	return registry[id], true
}

// Definitions lists every registered stat ordered by ID
func Definitions() []Definition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	defs := make([]Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

func (id ID) String() string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if def, ok := registry[id]; ok {
		return def.Name
	}
	return fmt.Sprintf("Stat(%d)", int(id))
}
