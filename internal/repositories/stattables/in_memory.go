package stattables

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
)

// InMemoryRepository keeps records in a map. TTLs are not applied.
type InMemoryRepository struct {
	mu      sync.RWMutex
	battles map[string]map[shared.EntityID]*Record
	clock   TimeProvider
}

// NewInMemoryRepository creates an empty in-memory store
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		battles: make(map[string]map[shared.EntityID]*Record),
		clock:   systemTime{},
	}
}

// Save stores a copy of record
func (r *InMemoryRepository) Save(_ context.Context, record *Record) error {
	if err := validate(record); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *record
	if stored.SavedAt.IsZero() {
		stored.SavedAt = r.clock.Now()
	}
	battle, ok := r.battles[record.BattleID]
	if !ok {
		battle = make(map[shared.EntityID]*Record)
		r.battles[record.BattleID] = battle
	}
	battle[record.EntityID] = &stored
	return nil
}

// Get retrieves a copy of one record
func (r *InMemoryRepository) Get(_ context.Context, battleID string, entityID shared.EntityID) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.battles[battleID][entityID]
	if !ok {
		return nil, notFound(battleID, entityID)
	}
	out := *record
	return &out, nil
}

// ListByBattle returns copies ordered by entity ID
func (r *InMemoryRepository) ListByBattle(_ context.Context, battleID string) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Record, 0, len(r.battles[battleID]))
	for _, record := range r.battles[battleID] {
		c := *record
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID < out[j].EntityID })
	return out, nil
}

// DeleteBattle removes a battle's records
func (r *InMemoryRepository) DeleteBattle(_ context.Context, battleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.battles, battleID)
	return nil
}
