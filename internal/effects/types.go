package effects

import (
	"time"

	domainEffects "github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
)

// StatusEffect is one active instance of a status on a creature
type StatusEffect struct {
	ID        string
	Name      string
	Source    shared.EntityID
	Stacking  domainEffects.StackingRule
	Changes   []domainEffects.StatChange
	CreatedAt time.Time
	ExpiresAt *time.Time // nil means it lasts until removed
	Refreshed int
	removed   bool
}

// IsExpired checks if the effect has run out at now
func (e *StatusEffect) IsExpired(now time.Time) bool {
	if e.removed {
		return true
	}
	if e.ExpiresAt == nil {
		return false
	}
	return !now.Before(*e.ExpiresAt)
}

// statusOwner lets stat modifiers live exactly as long as the status instance
type statusOwner struct {
	manager *Manager
	id      string
}

func (o *statusOwner) ID() shared.EntityID { return shared.EntityID(o.id) }

func (o *statusOwner) IsAlive() bool {
	return o.manager.isActive(o.id)
}
