package sim

import (
	"github.com/KirkDiggler/creature-battler/internal/repositories/stattables"
)

// Records captures every creature's stat table, alive or not, in spawn order
func (b *Battle) Records(battleID string) []*stattables.Record {
	out := make([]*stattables.Record, 0, len(b.world.creatures))
	for _, c := range b.world.creatures {
		out = append(out, &stattables.Record{
			BattleID: battleID,
			EntityID: c.ID(),
			Template: c.Template,
			Team:     c.Team,
			Health:   c.Health,
			Snapshot: c.Stats.Snapshot(c.ID()),
		})
	}
	return out
}
