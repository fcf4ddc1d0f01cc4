package effects

import (
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/damage"
	domainEffects "github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
)

// Builder helps create statuses
type Builder struct {
	status domainEffects.Status
}

// NewBuilder creates a new status builder. Statuses replace an active status
// of the same name unless told otherwise.
func NewBuilder(name string) *Builder {
	return &Builder{
		status: domainEffects.Status{
			Name:     name,
			Stacking: domainEffects.StackingReplace,
		},
	}
}

// WithSource sets the creature that applied the status
func (b *Builder) WithSource(source shared.EntityID) *Builder {
	b.status.Source = source
	return b
}

// WithDuration sets how long the status lasts; zero lasts until removed
func (b *Builder) WithDuration(d time.Duration) *Builder {
	b.status.Duration = d
	return b
}

// WithStackingRule sets how this status stacks
func (b *Builder) WithStackingRule(rule domainEffects.StackingRule) *Builder {
	b.status.Stacking = rule
	return b
}

// AddChange adds a stat modifier held while the status is active
func (b *Builder) AddChange(stat stats.ID, m stats.Modifier) *Builder {
	b.status.Changes = append(b.status.Changes, domainEffects.StatChange{
		Stat:     stat,
		Modifier: m,
	})
	return b
}

// Build returns the constructed status
func (b *Builder) Build() domainEffects.Status {
	out := b.status
	out.Changes = append([]domainEffects.StatChange(nil), b.status.Changes...)
	return out
}

// Common statuses

// BuildEnraged raises melee and projectile damage by bonus basis points
func BuildEnraged(source shared.EntityID, bonus int, d time.Duration) domainEffects.Status {
	return NewBuilder("Enraged").
		WithSource(source).
		WithDuration(d).
		WithStackingRule(domainEffects.StackingRefresh).
		AddChange(stats.IDMeleeDamageMultiplier, stats.Increase(bonus)).
		AddChange(stats.IDProjectileDamageMultiplier, stats.Increase(bonus)).
		Build()
}

// BuildHardened grants flat physical damage reduction
func BuildHardened(source shared.EntityID, amount int, d time.Duration) domainEffects.Status {
	return NewBuilder("Hardened").
		WithSource(source).
		WithDuration(d).
		AddChange(stats.IDDamageReduction, stats.Add(amount).For(damage.TypePhysical)).
		Build()
}

// BuildBlinded lowers accuracy; each application stacks
func BuildBlinded(source shared.EntityID, penalty int, d time.Duration) domainEffects.Status {
	return NewBuilder("Blinded").
		WithSource(source).
		WithDuration(d).
		WithStackingRule(domainEffects.StackingStack).
		AddChange(stats.IDAccuracy, stats.Add(-penalty)).
		Build()
}

// BuildHasted shortens skill cooldowns by the given basis points
func BuildHasted(source shared.EntityID, reduction int, d time.Duration) domainEffects.Status {
	return NewBuilder("Hasted").
		WithSource(source).
		WithDuration(d).
		WithStackingRule(domainEffects.StackingIgnore).
		AddChange(stats.IDCooldown, stats.Increase(-reduction)).
		Build()
}
