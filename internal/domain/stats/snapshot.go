package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/damage"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
)

// ModifierRecord is the serialized form of a Modifier
type ModifierRecord struct {
	Stat       string     `json:"stat"`
	Op         string     `json:"op"`
	Value      int        `json:"value"`
	DamageType string     `json:"damage_type,omitempty"`
	Lifetime   string     `json:"lifetime"`
	OwnerID    string     `json:"owner_id,omitempty"`
	Expiry     *time.Time `json:"expiry,omitempty"`
}

// Snapshot is an immutable copy of a table's own valid modifiers.
// Readers outside the simulation only ever see snapshots.
type Snapshot struct {
	OwnerID   shared.EntityID  `json:"owner_id"`
	TakenAt   time.Time        `json:"taken_at"`
	Modifiers []ModifierRecord `json:"modifiers"`
}

const (
	lifetimePermanent = "permanent"
	lifetimeWhileLive = "while_owner_alive"
	lifetimeTimed     = "timed"
)

// Snapshot captures the table's own modifiers ordered by stat ID, keeping
// insertion order within a stat
func (t *Table) Snapshot(owner shared.EntityID) Snapshot {
	ids := t.IDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	snap := Snapshot{
		OwnerID: owner,
		TakenAt: t.clock.Now(),
	}
	for _, id := range ids {
		def := Lookup(id)
		for _, m := range t.purge(id) {
			rec := ModifierRecord{
				Stat:       def.Name,
				Op:         m.Op.String(),
				Value:      m.Value,
				DamageType: string(m.DamageType),
			}
			switch m.Lifetime.Kind {
			case LifetimePermanent:
				rec.Lifetime = lifetimePermanent
			case LifetimeWhileOwnerAlive:
				rec.Lifetime = lifetimeWhileLive
				rec.OwnerID = string(m.Lifetime.Owner.ID())
			case LifetimeTimed:
				rec.Lifetime = lifetimeTimed
				expiry := m.Lifetime.Expiry
				rec.Expiry = &expiry
			}
			snap.Modifiers = append(snap.Modifiers, rec)
		}
	}
	return snap
}

// OwnerResolver maps a persisted owner ID back to a live Owner
type OwnerResolver func(id shared.EntityID) (Owner, bool)

// Restore rebuilds a table from a snapshot. WhileOwnerAlive modifiers whose
// owner cannot be resolved are dropped, matching what a read would do.
func Restore(snap Snapshot, clock Clock, resolve OwnerResolver) (*Table, error) {
	t := NewTable(clock)

	for i, rec := range snap.Modifiers {
		def, ok := LookupName(rec.Stat)
		if !ok {
			return nil, fmt.Errorf("modifier %d: unknown stat %q", i, rec.Stat)
		}
		op, err := ParseOp(rec.Op)
		if err != nil {
			return nil, fmt.Errorf("modifier %d: %w", i, err)
		}
		m := Modifier{Op: op, Value: rec.Value}
		if rec.DamageType != "" {
			dt, err := damage.ParseType(rec.DamageType)
			if err != nil {
				return nil, fmt.Errorf("modifier %d: %w", i, err)
			}
			m.DamageType = dt
		}

		switch rec.Lifetime {
		case lifetimePermanent, "":
			m.Lifetime = Permanent()
		case lifetimeWhileLive:
			if resolve == nil {
				continue
			}
			owner, found := resolve(shared.EntityID(rec.OwnerID))
			if !found {
				continue
			}
			m.Lifetime = WhileAlive(owner)
		case lifetimeTimed:
			if rec.Expiry == nil {
				return nil, fmt.Errorf("modifier %d: timed lifetime without expiry", i)
			}
			m.Lifetime = Until(*rec.Expiry)
		default:
			return nil, fmt.Errorf("modifier %d: unknown lifetime %q", i, rec.Lifetime)
		}

		t.InsertModifier(def.ID, m)
	}
	return t, nil
}
