package combat

import (
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/damage"
	"github.com/KirkDiggler/creature-battler/internal/domain/delegates"
	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
)

// Creature chain extension points

// OnActivateHandler runs when a creature enters play (broadcast)
type OnActivateHandler interface {
	OnActivate(ctx CreatureContext) ([]effects.Effect, delegates.Propagation)
}

// OnDeathHandler runs on the dying creature's chain (broadcast)
type OnDeathHandler interface {
	OnDeath(ctx CreatureContext, killer *Creature) ([]effects.Effect, delegates.Propagation)
}

// OnKilledEnemyHandler runs on the killer's chain (broadcast)
type OnKilledEnemyHandler interface {
	OnKilledEnemy(ctx CreatureContext, victim *Creature) ([]effects.Effect, delegates.Propagation)
}

// ChooseSkillHandler picks the next skill (first-match). A nil skill with
// ok true means "use nothing this tick".
type ChooseSkillHandler interface {
	ChooseSkill(ctx CreatureContext) (skill *SkillInstance, ok bool)
}

// TransformDamageHandler reshapes rolled damage (fold). It is implemented
// on both chains; the skill chain runs first.
type TransformDamageHandler interface {
	TransformDamage(ctx TargetContext, bag damage.Bag) (damage.Bag, delegates.Propagation)
}

// Skill chain extension points

// OnUseHandler launches a skill (broadcast)
type OnUseHandler interface {
	OnUse(ctx SkillContext) ([]effects.Effect, delegates.Propagation)
}

// GetColliderHandler returns the targeting volume (first-match)
type GetColliderHandler interface {
	GetCollider(ctx SkillContext) (Shape, bool)
}

// FindTargetsHandler collects candidate targets (first-match)
type FindTargetsHandler interface {
	FindTargets(ctx SkillContext) ([]*Creature, bool)
}

// FilterTargetsHandler narrows candidate targets (first-match)
type FilterTargetsHandler interface {
	FilterTargets(ctx SkillContext, targets []*Creature) ([]*Creature, bool)
}

// HitRoll is the outcome of RollForHit. Miss names the event to play.
type HitRoll struct {
	Hit  bool
	Miss effects.EventKind
}

// RollForHitHandler (first-match)
type RollForHitHandler interface {
	RollForHit(ctx TargetContext) (HitRoll, bool)
}

// RollForCritHandler (first-match)
type RollForCritHandler interface {
	RollForCrit(ctx TargetContext) (crit bool, ok bool)
}

// RollForBaseDamageHandler (first-match)
type RollForBaseDamageHandler interface {
	RollForBaseDamage(ctx TargetContext) (damage.Bag, bool)
}

// ApplyDamageReductionHandler (first-match)
type ApplyDamageReductionHandler interface {
	ApplyDamageReduction(ctx TargetContext, bag damage.Bag) (damage.Bag, bool)
}

// ApplyDamageResistanceHandler (first-match)
type ApplyDamageResistanceHandler interface {
	ApplyDamageResistance(ctx TargetContext, bag damage.Bag) (damage.Bag, bool)
}

// ComputeFinalDamageHandler (first-match)
type ComputeFinalDamageHandler interface {
	ComputeFinalDamage(ctx TargetContext, bag damage.Bag) (int, bool)
}

// OnHitHandler runs after damage lands (broadcast)
type OnHitHandler interface {
	OnHit(ctx TargetContext, finalDamage int) ([]effects.Effect, delegates.Propagation)
}

// ComputeHealthDrainHandler returns the amount healed on the caster (first-match)
type ComputeHealthDrainHandler interface {
	ComputeHealthDrain(ctx TargetContext, finalDamage int) (int, bool)
}

// StunRoll is the outcome of RollForStun
type StunRoll struct {
	Stunned  bool
	Duration time.Duration
}

// RollForStunHandler (first-match)
type RollForStunHandler interface {
	RollForStun(ctx TargetContext, finalDamage int) (StunRoll, bool)
}

// CreatureCapabilities lists what the creature chain default must implement
func CreatureCapabilities() []delegates.Capability {
	return []delegates.Capability{
		delegates.Requires[OnActivateHandler](),
		delegates.Requires[OnDeathHandler](),
		delegates.Requires[OnKilledEnemyHandler](),
		delegates.Requires[ChooseSkillHandler](),
		delegates.Requires[TransformDamageHandler](),
	}
}

// SkillCapabilities lists what the skill chain default must implement
func SkillCapabilities() []delegates.Capability {
	return []delegates.Capability{
		delegates.Requires[OnUseHandler](),
		delegates.Requires[GetColliderHandler](),
		delegates.Requires[FindTargetsHandler](),
		delegates.Requires[FilterTargetsHandler](),
		delegates.Requires[RollForHitHandler](),
		delegates.Requires[RollForCritHandler](),
		delegates.Requires[RollForBaseDamageHandler](),
		delegates.Requires[TransformDamageHandler](),
		delegates.Requires[ApplyDamageReductionHandler](),
		delegates.Requires[ApplyDamageResistanceHandler](),
		delegates.Requires[ComputeFinalDamageHandler](),
		delegates.Requires[OnHitHandler](),
		delegates.Requires[ComputeHealthDrainHandler](),
		delegates.Requires[RollForStunHandler](),
	}
}

// NewCreatureChain builds a creature chain ending in DefaultCreatureDelegate
func NewCreatureChain(list ...delegates.Delegate) (*delegates.Chain, error) {
	return delegates.New(DefaultCreatureDelegate{}, list, CreatureCapabilities()...)
}

// NewSkillChain builds a skill chain ending in DefaultSkillDelegate
func NewSkillChain(list ...delegates.Delegate) (*delegates.Chain, error) {
	return delegates.New(DefaultSkillDelegate{}, list, SkillCapabilities()...)
}
