package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/damage"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
)

// Op is the operation a modifier performs during the fold
type Op int

const (
	// OpAdd contributes a flat amount
	OpAdd Op = iota
	// OpIncrease contributes basis points to the shared multiplier
	OpIncrease
	// OpSetTrue forces a flag on
	OpSetTrue
	// OpSetFalse forces a flag off
	OpSetFalse
	// OpOverwrite replaces the folded value outright
	OpOverwrite
)

var opNames = map[Op]string{
	OpAdd:       "add",
	OpIncrease:  "increase",
	OpSetTrue:   "set_true",
	OpSetFalse:  "set_false",
	OpOverwrite: "overwrite",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "unknown"
}

// ParseOp converts a content string into an Op
func ParseOp(s string) (Op, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for op, name := range opNames {
		if name == needle {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown modifier operation %q", s)
}

// Owner is anything whose death invalidates WhileOwnerAlive modifiers
type Owner interface {
	ID() shared.EntityID
	IsAlive() bool
}

// LifetimeKind selects how a modifier expires
type LifetimeKind int

const (
	LifetimePermanent LifetimeKind = iota
	LifetimeWhileOwnerAlive
	LifetimeTimed
)

// Lifetime constrains how long a modifier contributes to its stat
type Lifetime struct {
	Kind   LifetimeKind
	Owner  Owner
	Expiry time.Time
}

// Permanent never expires
func Permanent() Lifetime {
	return Lifetime{Kind: LifetimePermanent}
}

// WhileAlive lasts until owner dies
func WhileAlive(owner Owner) Lifetime {
	return Lifetime{Kind: LifetimeWhileOwnerAlive, Owner: owner}
}

// Until lasts while now is before expiry
func Until(expiry time.Time) Lifetime {
	return Lifetime{Kind: LifetimeTimed, Expiry: expiry}
}

// Valid reports whether the lifetime still holds at now
func (l Lifetime) Valid(now time.Time) bool {
	switch l.Kind {
	case LifetimePermanent:
		return true
	case LifetimeWhileOwnerAlive:
		return l.Owner != nil && l.Owner.IsAlive()
	case LifetimeTimed:
		return now.Before(l.Expiry)
	default:
		return false
	}
}

// Modifier is one entry in a stat's ordered modifier list
type Modifier struct {
	Op    Op
	Value int

	// DamageType scopes the modifier on tagged stats. Empty means every type.
	DamageType damage.Type

	Lifetime Lifetime
}

// Add builds a permanent flat modifier
func Add(value int) Modifier {
	return Modifier{Op: OpAdd, Value: value, Lifetime: Permanent()}
}

// Increase builds a permanent basis-point multiplier modifier
func Increase(basisPoints int) Modifier {
	return Modifier{Op: OpIncrease, Value: basisPoints, Lifetime: Permanent()}
}

// Overwrite builds a permanent replacement modifier
func Overwrite(value int) Modifier {
	return Modifier{Op: OpOverwrite, Value: value, Lifetime: Permanent()}
}

// SetFlag builds a permanent SetTrue or SetFalse modifier
func SetFlag(on bool) Modifier {
	if on {
		return Modifier{Op: OpSetTrue, Lifetime: Permanent()}
	}
	return Modifier{Op: OpSetFalse, Lifetime: Permanent()}
}

// For scopes the modifier to a damage type
func (m Modifier) For(t damage.Type) Modifier {
	m.DamageType = t
	return m
}

// WithLifetime replaces the modifier's lifetime
func (m Modifier) WithLifetime(l Lifetime) Modifier {
	m.Lifetime = l
	return m
}
