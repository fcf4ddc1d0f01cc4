package stats

import (
	"time"
)

// Clock provides the current instant used to expire Timed modifiers
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now implements Clock
func (SystemClock) Now() time.Time { return time.Now() }

// Table maps stat IDs to ordered modifier lists for a single owner.
// It is mutated only through InsertModifier and read through Stat.Get,
// which always folds the full list of currently valid modifiers.
//
// A table may have a parent. Reads see the parent's modifiers first and
// then the table's own, which is how a skill instance layers its
// overrides on top of the creature using it.
type Table struct {
	clock     Clock
	parent    *Table
	modifiers map[ID][]Modifier
}

// NewTable creates an empty table
func NewTable(clock Clock) *Table {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Table{
		clock:     clock,
		modifiers: make(map[ID][]Modifier),
	}
}

// NewChildTable creates an empty table layered on top of parent
func NewChildTable(parent *Table) *Table {
	t := NewTable(parent.clock)
	t.parent = parent
	return t
}

// Parent returns the table this one is layered on, if any
func (t *Table) Parent() *Table {
	return t.parent
}

// InsertModifier appends m to the stat's list. The stat must be registered.
func (t *Table) InsertModifier(id ID, m Modifier) {
	Lookup(id)
	t.modifiers[id] = append(t.modifiers[id], m)
}

// InsertAll appends every modifier in order
func (t *Table) InsertAll(id ID, mods []Modifier) {
	for _, m := range mods {
		t.InsertModifier(id, m)
	}
}

// Modifiers returns the currently valid modifiers for id, parent first,
// in insertion order. Invalid modifiers are purged as a side effect, so an
// expired modifier never contributes again.
func (t *Table) Modifiers(id ID) []Modifier {
	Lookup(id)

	var out []Modifier
	if t.parent != nil {
		out = t.parent.Modifiers(id)
	}
	return append(out, t.purge(id)...)
}

// OwnModifiers returns valid modifiers inserted directly on this table
func (t *Table) OwnModifiers(id ID) []Modifier {
	Lookup(id)
	own := t.purge(id)
	out := make([]Modifier, len(own))
	copy(out, own)
	return out
}

func (t *Table) purge(id ID) []Modifier {
	mods := t.modifiers[id]
	if len(mods) == 0 {
		return nil
	}

	now := t.clock.Now()
	valid := make([]Modifier, 0, len(mods))
	for _, m := range mods {
		if m.Lifetime.Valid(now) {
			valid = append(valid, m)
		}
	}
	if len(valid) != len(mods) {
		if len(valid) == 0 {
			delete(t.modifiers, id)
		} else {
			t.modifiers[id] = valid
		}
	}
	return valid
}

// Value folds id into a plain integer. Flags read 0/1, durations read
// milliseconds and tagged stats read the sum across damage types.
func (t *Table) Value(id ID) int {
	def := Lookup(id)
	mods := t.Modifiers(id)

	switch def.Kind {
	case KindFlag:
		if foldFlag(def, mods) {
			return 1
		}
		return 0
	case KindTagged:
		return foldTagged(mods).Total()
	default:
		return foldNumeric(def.Base, mods)
	}
}

// IDs lists the stats with at least one own modifier
func (t *Table) IDs() []ID {
	ids := make([]ID, 0, len(t.modifiers))
	for id := range t.modifiers {
		ids = append(ids, id)
	}
	return ids
}

// Clone copies the table's own modifiers into a new table sharing the
// same clock and parent
func (t *Table) Clone() *Table {
	c := NewTable(t.clock)
	c.parent = t.parent
	for id, mods := range t.modifiers {
		c.modifiers[id] = append([]Modifier(nil), mods...)
	}
	return c
}
