package combat

//go:generate mockgen -destination=mock/mock_services.go -package=mockcombat -source=services.go

import (
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
	"github.com/KirkDiggler/creature-battler/internal/random"
)

// CollisionQuery finds entities overlapping a shape centered at origin,
// skipping members of excludeTeam
type CollisionQuery interface {
	Query(origin shared.Point, shape Shape, excludeTeam shared.TeamID) []shared.EntityID
}

// Roster looks up creatures taking part in a battle
type Roster interface {
	Creature(id shared.EntityID) (*Creature, bool)
	Opponents(team shared.TeamID) []*Creature
}

// StatProvider gives code outside the simulation read-only stat access
type StatProvider interface {
	Get(entity shared.EntityID, stat stats.ID) (int, error)
}

// Services is the bundle of external capabilities a resolution may touch.
// Every draw in one resolution comes from Random.
type Services struct {
	Collision CollisionQuery
	Random    random.Source
	Roster    Roster
	Clock     stats.Clock
}

// RosterStats adapts a Roster into a StatProvider
type RosterStats struct {
	Roster Roster
}

// Get implements StatProvider
func (p RosterStats) Get(entity shared.EntityID, stat stats.ID) (int, error) {
	c, ok := p.Roster.Creature(entity)
	if !ok {
		return 0, battleErr.NotFoundf("creature %s not found", entity).
			WithMeta("entity", string(entity))
	}
	return c.Stats.Value(stat), nil
}
