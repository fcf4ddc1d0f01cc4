package effects

import (
	"log"
	"sort"
	"sync"
	"time"

	domainEffects "github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
	"github.com/KirkDiggler/creature-battler/internal/uuid"
)

// Manager manages status effects for one creature. Stat changes are inserted
// into the creature's table with a lifetime bound to the status instance, so
// removing or expiring the status takes them out of every later read.
type Manager struct {
	table       *stats.Table
	clock       stats.Clock
	idGenerator uuid.Generator

	effects map[string]*StatusEffect
	mu      sync.RWMutex
}

// ManagerConfig holds the dependencies of a Manager
type ManagerConfig struct {
	Table       *stats.Table
	Clock       stats.Clock
	IDGenerator uuid.Generator
}

// NewManager creates a new effect manager
func NewManager(cfg *ManagerConfig) *Manager {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if cfg.Table == nil {
		panic("stat table is required")
	}
	if cfg.Clock == nil {
		panic("clock is required")
	}
	idGenerator := cfg.IDGenerator
	if idGenerator == nil {
		idGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return &Manager{
		table:       cfg.Table,
		clock:       cfg.Clock,
		idGenerator: idGenerator,
		effects:     make(map[string]*StatusEffect),
	}
}

// AddEffect applies status honouring its stacking rule against any active
// status with the same name. It returns the instance now carrying the status.
func (m *Manager) AddEffect(status domainEffects.Status) (*StatusEffect, error) {
	if status.Name == "" {
		return nil, battleErr.InvalidArgumentf("status must have a name")
	}
	for i, change := range status.Changes {
		if !stats.Registered(change.Stat) {
			return nil, battleErr.InvalidArgumentf("status %s change %d targets unknown stat %d", status.Name, i, change.Stat)
		}
	}

	now := m.clock.Now()

	m.mu.Lock()
	existing := m.findActive(status.Name, now)
	if existing != nil {
		switch status.Stacking {
		case domainEffects.StackingIgnore:
			m.mu.Unlock()
			return existing, nil
		case domainEffects.StackingRefresh:
			existing.ExpiresAt = expiry(now, status.Duration)
			existing.Refreshed++
			m.mu.Unlock()
			return existing, nil
		case domainEffects.StackingStack:
			// Keep the existing instance alongside the new one
		default:
			existing.removed = true
			delete(m.effects, existing.ID)
		}
	}

	effect := &StatusEffect{
		ID:        m.idGenerator.New(),
		Name:      status.Name,
		Source:    status.Source,
		Stacking:  status.Stacking,
		Changes:   status.Changes,
		CreatedAt: now,
		ExpiresAt: expiry(now, status.Duration),
	}
	m.effects[effect.ID] = effect
	m.mu.Unlock()

	owner := &statusOwner{manager: m, id: effect.ID}
	for _, change := range effect.Changes {
		m.table.InsertModifier(change.Stat, change.Modifier.WithLifetime(stats.WhileAlive(owner)))
	}

	return effect, nil
}

func expiry(now time.Time, d time.Duration) *time.Time {
	if d <= 0 {
		return nil
	}
	t := now.Add(d)
	return &t
}

// findActive returns the oldest active instance of name; caller holds the lock
func (m *Manager) findActive(name string, now time.Time) *StatusEffect {
	var found *StatusEffect
	for _, effect := range m.effects {
		if effect.Name != name || effect.IsExpired(now) {
			continue
		}
		if found == nil || older(effect, found) {
			found = effect
		}
	}
	return found
}

func older(a, b *StatusEffect) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID < b.ID
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func (m *Manager) isActive(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	effect, ok := m.effects[id]
	return ok && !effect.IsExpired(m.clock.Now())
}

// RemoveEffect removes a status effect by ID
func (m *Manager) RemoveEffect(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	effect, ok := m.effects[id]
	if !ok {
		return false
	}
	effect.removed = true
	delete(m.effects, id)
	return true
}

// RemoveEffectsBySource removes all effects applied by source
func (m *Manager) RemoveEffectsBySource(source shared.EntityID) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, effect := range m.effects {
		if effect.Source == source {
			effect.removed = true
			delete(m.effects, id)
			removed++
		}
	}
	return removed
}

// HasEffect reports whether a status with name is active
func (m *Manager) HasEffect(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.findActive(name, m.clock.Now()) != nil
}

// GetActiveEffects returns all active, non-expired effects oldest first
func (m *Manager) GetActiveEffects() []*StatusEffect {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.clock.Now()
	active := []*StatusEffect{}
	for _, effect := range m.effects {
		if !effect.IsExpired(now) {
			active = append(active, effect)
		}
	}
	sortByAge(active)
	return active
}

// ProcessExpired drops effects whose time is up and returns them oldest first
func (m *Manager) ProcessExpired() []*StatusEffect {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	expired := []*StatusEffect{}
	for id, effect := range m.effects {
		if effect.IsExpired(now) {
			expired = append(expired, effect)
			delete(m.effects, id)
		}
	}
	sortByAge(expired)

	for _, effect := range expired {
		log.Printf("Effects: %s expired", effect.Name)
	}
	return expired
}

// Clear removes every effect, e.g. when the creature leaves play
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, effect := range m.effects {
		effect.removed = true
		delete(m.effects, id)
	}
}

// Owner resolves a status instance ID for stat snapshot restores
func (m *Manager) Owner(id shared.EntityID) (stats.Owner, bool) {
	if !m.isActive(string(id)) {
		return nil, false
	}
	return &statusOwner{manager: m, id: string(id)}, true
}

func sortByAge(list []*StatusEffect) {
	sort.Slice(list, func(i, j int) bool { return older(list[i], list[j]) })
}
