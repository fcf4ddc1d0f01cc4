package content

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/combat"
	"github.com/KirkDiggler/creature-battler/internal/domain/damage"
	"github.com/KirkDiggler/creature-battler/internal/domain/delegates"
	domainEffects "github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
	statuses "github.com/KirkDiggler/creature-battler/internal/effects"
)

// Params are a behaviour's content-authored settings
type Params map[string]string

// String returns the raw value or def when unset
func (p Params) String(key, def string) string {
	if v, ok := p[key]; ok && v != "" {
		return v
	}
	return def
}

// Int reads an integer parameter
func (p Params) Int(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("param %s: invalid integer %q", key, v)
	}
	return n, nil
}

// Duration reads a Go duration parameter such as "1.5s"
func (p Params) Duration(key string, def time.Duration) (time.Duration, error) {
	v, ok := p[key]
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("param %s: invalid duration %q", key, v)
	}
	return d, nil
}

// BasisPoints reads "25%" or a raw basis-point integer
func (p Params) BasisPoints(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok || v == "" {
		return def, nil
	}
	bp, err := stats.ParseBasisPoints(v)
	if err != nil {
		return 0, fmt.Errorf("param %s: %w", key, err)
	}
	return int(bp), nil
}

// BehaviourFactory builds a delegate from its parameters
type BehaviourFactory func(params Params) (delegates.Delegate, error)

// Behaviours maps content names to delegate factories
type Behaviours struct {
	factories map[string]BehaviourFactory
}

// NewBehaviours creates an empty library
func NewBehaviours() *Behaviours {
	return &Behaviours{factories: make(map[string]BehaviourFactory)}
}

// DefaultBehaviours returns the stock library
func DefaultBehaviours() *Behaviours {
	b := NewBehaviours()
	b.Register(BehaviourSummonOnDeath, newSummonOnDeath)
	b.Register(BehaviourEnrageOnKill, newEnrageOnKill)
	b.Register(BehaviourHardenOnActivate, newHardenOnActivate)
	b.Register(BehaviourHasteOnActivate, newHasteOnActivate)
	b.Register(BehaviourExecute, newExecute)
	b.Register(BehaviourFocusWeakest, func(Params) (delegates.Delegate, error) { return FocusWeakest{}, nil })
	b.Register(BehaviourBlindingStrike, newBlindingStrike)
	return b
}

// Register adds a factory. Registering a name twice panics.
func (b *Behaviours) Register(name string, factory BehaviourFactory) {
	if _, exists := b.factories[name]; exists {
		panic(fmt.Sprintf("behaviour %q registered twice", name))
	}
	b.factories[name] = factory
}

// Build creates the named delegate
func (b *Behaviours) Build(name string, params Params) (delegates.Delegate, error) {
	factory, ok := b.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown behaviour %q", name)
	}
	d, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("behaviour %s: %w", name, err)
	}
	return d, nil
}

// Names lists registered behaviours in sorted order
func (b *Behaviours) Names() []string {
	names := make([]string, 0, len(b.factories))
	for name := range b.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stock behaviour names
const (
	BehaviourSummonOnDeath    = "summon_on_death"
	BehaviourEnrageOnKill     = "enrage_on_kill"
	BehaviourHardenOnActivate = "harden_on_activate"
	BehaviourHasteOnActivate  = "haste_on_activate"
	BehaviourExecute          = "execute"
	BehaviourFocusWeakest     = "focus_weakest"
	BehaviourBlindingStrike   = "blinding_strike"
)

// SummonOnDeath spawns Count creatures of Template where the owner died
type SummonOnDeath struct {
	Template string
	Count    int
}

func newSummonOnDeath(p Params) (delegates.Delegate, error) {
	template := p.String("template", "")
	if template == "" {
		return nil, fmt.Errorf("template is required")
	}
	count, err := p.Int("count", 1)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	return SummonOnDeath{Template: template, Count: count}, nil
}

func (SummonOnDeath) Key() string { return BehaviourSummonOnDeath }

func (b SummonOnDeath) OnDeath(ctx combat.CreatureContext, _ *combat.Creature) ([]domainEffects.Effect, delegates.Propagation) {
	out := make([]domainEffects.Effect, 0, b.Count)
	at := ctx.Creature.Position
	for i := 0; i < b.Count; i++ {
		out = append(out, domainEffects.CreateCreature{
			Template: b.Template,
			Team:     ctx.Creature.Team,
			At:       shared.Point{X: at.X + float64(i), Y: at.Y},
			Owner:    ctx.Creature.ID(),
		})
	}
	return out, delegates.Continue
}

// EnrageOnKill boosts the killer's damage after every kill
type EnrageOnKill struct {
	Bonus    int
	Duration time.Duration
}

func newEnrageOnKill(p Params) (delegates.Delegate, error) {
	bonus, err := p.BasisPoints("bonus", 2500)
	if err != nil {
		return nil, err
	}
	d, err := p.Duration("duration", 5*time.Second)
	if err != nil {
		return nil, err
	}
	return EnrageOnKill{Bonus: bonus, Duration: d}, nil
}

func (EnrageOnKill) Key() string { return BehaviourEnrageOnKill }

func (b EnrageOnKill) OnKilledEnemy(ctx combat.CreatureContext, _ *combat.Creature) ([]domainEffects.Effect, delegates.Propagation) {
	self := ctx.Creature.ID()
	return []domainEffects.Effect{
		domainEffects.SpawnStatusEffect{
			Target: self,
			Status: statuses.BuildEnraged(self, b.Bonus, b.Duration),
		},
	}, delegates.Continue
}

// HardenOnActivate grants physical damage reduction on entering play
type HardenOnActivate struct {
	Amount   int
	Duration time.Duration
}

func newHardenOnActivate(p Params) (delegates.Delegate, error) {
	amount, err := p.Int("amount", 5)
	if err != nil {
		return nil, err
	}
	d, err := p.Duration("duration", 0)
	if err != nil {
		return nil, err
	}
	return HardenOnActivate{Amount: amount, Duration: d}, nil
}

func (HardenOnActivate) Key() string { return BehaviourHardenOnActivate }

func (b HardenOnActivate) OnActivate(ctx combat.CreatureContext) ([]domainEffects.Effect, delegates.Propagation) {
	self := ctx.Creature.ID()
	return []domainEffects.Effect{
		domainEffects.SpawnStatusEffect{
			Target: self,
			Status: statuses.BuildHardened(self, b.Amount, b.Duration),
		},
	}, delegates.Continue
}

// HasteOnActivate shortens every skill cooldown for a while after entering play
type HasteOnActivate struct {
	Reduction int
	Duration  time.Duration
}

func newHasteOnActivate(p Params) (delegates.Delegate, error) {
	reduction, err := p.BasisPoints("reduction", 2000)
	if err != nil {
		return nil, err
	}
	if reduction >= stats.BasisPointsScale {
		return nil, fmt.Errorf("reduction must be below 100%%, got %d", reduction)
	}
	d, err := p.Duration("duration", 5*time.Second)
	if err != nil {
		return nil, err
	}
	return HasteOnActivate{Reduction: reduction, Duration: d}, nil
}

func (HasteOnActivate) Key() string { return BehaviourHasteOnActivate }

func (b HasteOnActivate) OnActivate(ctx combat.CreatureContext) ([]domainEffects.Effect, delegates.Propagation) {
	self := ctx.Creature.ID()
	return []domainEffects.Effect{
		domainEffects.SpawnStatusEffect{
			Target: self,
			Status: statuses.BuildHasted(self, b.Reduction, b.Duration),
		},
	}, delegates.Continue
}

// Execute multiplies damage against targets at or below Threshold health
type Execute struct {
	Threshold int
	Bonus     int
}

func newExecute(p Params) (delegates.Delegate, error) {
	threshold, err := p.BasisPoints("threshold", 3000)
	if err != nil {
		return nil, err
	}
	bonus, err := p.BasisPoints("bonus", 5000)
	if err != nil {
		return nil, err
	}
	return Execute{Threshold: threshold, Bonus: bonus}, nil
}

func (Execute) Key() string { return BehaviourExecute }

func (b Execute) TransformDamage(ctx combat.TargetContext, bag damage.Bag) (damage.Bag, delegates.Propagation) {
	target := ctx.Target
	if target.Health*stats.BasisPointsScale > b.Threshold*target.MaxHealth() {
		return bag, delegates.Continue
	}
	return bag.Multiply(float64(stats.BasisPointsScale+b.Bonus) / stats.BasisPointsScale), delegates.Continue
}

// FocusWeakest narrows targets to the one with the least health
type FocusWeakest struct{}

func (FocusWeakest) Key() string { return BehaviourFocusWeakest }

func (FocusWeakest) FilterTargets(_ combat.SkillContext, targets []*combat.Creature) ([]*combat.Creature, bool) {
	if len(targets) == 0 {
		return targets, true
	}
	weakest := targets[0]
	for _, t := range targets[1:] {
		if t.Health < weakest.Health {
			weakest = t
		}
	}
	return []*combat.Creature{weakest}, true
}

// BlindingStrike lowers the accuracy of everything the skill hits
type BlindingStrike struct {
	Penalty  int
	Duration time.Duration
}

func newBlindingStrike(p Params) (delegates.Delegate, error) {
	penalty, err := p.Int("penalty", 20)
	if err != nil {
		return nil, err
	}
	d, err := p.Duration("duration", 2*time.Second)
	if err != nil {
		return nil, err
	}
	return BlindingStrike{Penalty: penalty, Duration: d}, nil
}

func (BlindingStrike) Key() string { return BehaviourBlindingStrike }

func (b BlindingStrike) OnHit(ctx combat.TargetContext, _ int) ([]domainEffects.Effect, delegates.Propagation) {
	return []domainEffects.Effect{
		domainEffects.SpawnStatusEffect{
			Target: ctx.Target.ID(),
			Status: statuses.BuildBlinded(ctx.Creature.ID(), b.Penalty, b.Duration),
		},
	}, delegates.Continue
}
