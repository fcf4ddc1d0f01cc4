package content

import (
	"sort"

	"github.com/KirkDiggler/creature-battler/internal/domain/combat"
	"github.com/KirkDiggler/creature-battler/internal/domain/delegates"
	"github.com/KirkDiggler/creature-battler/internal/domain/rules"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
	"github.com/KirkDiggler/creature-battler/internal/random"
)

// CreatureTemplate is a content-authored creature
type CreatureTemplate struct {
	Key       string
	Name      string
	Modifiers map[stats.ID][]stats.Modifier
	Skills    []string

	// Chain is built once at load and shared by every spawned instance
	Chain *delegates.Chain
}

// Pack is a validated set of creatures, skills and rules
type Pack struct {
	Creatures map[string]*CreatureTemplate
	Skills    map[string]*combat.SkillDefinition

	skillChains map[string]*delegates.Chain
	rules       []*rules.Rule
}

func newPack() *Pack {
	return &Pack{
		Creatures:   make(map[string]*CreatureTemplate),
		Skills:      make(map[string]*combat.SkillDefinition),
		skillChains: make(map[string]*delegates.Chain),
	}
}

// Creature looks up a template
func (p *Pack) Creature(key string) (*CreatureTemplate, bool) {
	t, ok := p.Creatures[key]
	return t, ok
}

// CreatureKeys lists template keys in sorted order
func (p *Pack) CreatureKeys() []string {
	keys := make([]string, 0, len(p.Creatures))
	for k := range p.Creatures {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RuleIDs lists rule IDs in table order
func (p *Pack) RuleIDs() []string {
	ids := make([]string, len(p.rules))
	for i, r := range p.rules {
		ids[i] = r.ID
	}
	return ids
}

// RuleTable builds a fresh rules table for one battle. Rules are copied so
// one-time rules fire once per battle, not once per pack. src backs
// rng.roll in the table's expressions and may be nil.
func (p *Pack) RuleTable(sink rules.EffectSink, src random.Source) (*rules.Table, error) {
	table := rules.NewTable(&rules.TableConfig{Sink: sink, Random: src})
	for _, proto := range p.rules {
		rule := *proto
		if err := table.Add(&rule); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// Merge adds other's content. Duplicate keys are rejected.
func (p *Pack) Merge(other *Pack) error {
	for key := range other.Creatures {
		if _, exists := p.Creatures[key]; exists {
			return battleErr.AlreadyExistsf("creature %s defined twice", key)
		}
	}
	for key := range other.Skills {
		if _, exists := p.Skills[key]; exists {
			return battleErr.AlreadyExistsf("skill %s defined twice", key)
		}
	}
	seen := make(map[string]bool, len(p.rules))
	for _, r := range p.rules {
		seen[r.ID] = true
	}
	for _, r := range other.rules {
		if seen[r.ID] {
			return battleErr.AlreadyExistsf("rule %s defined twice", r.ID)
		}
	}

	for key, t := range other.Creatures {
		p.Creatures[key] = t
	}
	for key, s := range other.Skills {
		p.Skills[key] = s
		p.skillChains[key] = other.skillChains[key]
	}
	p.rules = append(p.rules, other.rules...)
	return nil
}

// SpawnConfig places a new creature
type SpawnConfig struct {
	ID       shared.EntityID
	Team     shared.TeamID
	Position shared.Point
	Owner    shared.EntityID
	Clock    stats.Clock
}

// Spawn builds a creature from a template with its skills attached
func (p *Pack) Spawn(template string, cfg *SpawnConfig) (*combat.Creature, error) {
	if cfg == nil {
		return nil, battleErr.InvalidArgumentf("spawn config is required")
	}
	if cfg.ID == "" {
		return nil, battleErr.InvalidArgumentf("creature id is required")
	}
	t, ok := p.Creatures[template]
	if !ok {
		return nil, battleErr.NotFoundf("creature template %s not found", template)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = stats.SystemClock{}
	}

	table := stats.NewTable(clock)
	for _, id := range sortedIDs(t.Modifiers) {
		table.InsertAll(id, t.Modifiers[id])
	}

	creature := combat.NewCreature(&combat.CreatureConfig{
		ID:       cfg.ID,
		Name:     t.Name,
		Template: t.Key,
		Team:     cfg.Team,
		Position: cfg.Position,
		Stats:    table,
		Chain:    t.Chain,
		Owner:    cfg.Owner,
	})
	for _, key := range t.Skills {
		creature.AddSkill(p.Skills[key], p.skillChains[key])
	}
	return creature, nil
}

func sortedIDs(m map[stats.ID][]stats.Modifier) []stats.ID {
	ids := make([]stats.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
