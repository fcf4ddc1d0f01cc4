package combat

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/damage"
	"github.com/KirkDiggler/creature-battler/internal/domain/delegates"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
)

// Category decides how a skill launches and which damage multiplier applies
type Category string

const (
	CategoryMelee      Category = "melee"
	CategoryProjectile Category = "projectile"
	CategoryArea       Category = "area"
)

// ParseCategory converts a content string into a Category
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryMelee, CategoryProjectile, CategoryArea:
		return c, nil
	default:
		return "", fmt.Errorf("unknown skill category %q", s)
	}
}

// Shape is a circular collision volume
type Shape struct {
	Radius int
}

// SkillDefinition is the content-authored description of a skill
type SkillDefinition struct {
	Key      string
	Name     string
	Category Category
	Damage   damage.Ranges

	// Modifiers are inserted into every instance's stat table
	Modifiers map[stats.ID][]stats.Modifier

	// Delegates override pipeline stages, highest priority first
	Delegates []delegates.Delegate
}

// SkillInstance is a skill owned by one creature. Its stat table is layered
// over the creature's so creature-wide bonuses apply to every skill.
type SkillInstance struct {
	Definition *SkillDefinition
	Stats      *stats.Table
	Chain      *delegates.Chain

	lastUsed time.Time
	used     bool
}

// Key returns the definition key
func (s *SkillInstance) Key() string {
	return s.Definition.Key
}

// Category returns the definition category
func (s *SkillInstance) Category() Category {
	return s.Definition.Category
}

// MarkUsed records now as the last use for cooldown tracking
func (s *SkillInstance) MarkUsed(now time.Time) {
	s.lastUsed = now
	s.used = true
}

// LastUsed returns the last use and whether the skill was ever used
func (s *SkillInstance) LastUsed() (time.Time, bool) {
	return s.lastUsed, s.used
}

// Ready reports whether the cooldown has elapsed at now
func (s *SkillInstance) Ready(now time.Time) bool {
	if !s.used {
		return true
	}
	return now.Sub(s.lastUsed) >= stats.Cooldown.Get(s.Stats)
}

// Creature is a simulation unit with its own stat table and delegate chain
type Creature struct {
	id       shared.EntityID
	Name     string
	Template string
	Team     shared.TeamID
	Position shared.Point
	Health   int
	Stats    *stats.Table
	Chain    *delegates.Chain
	Skills   []*SkillInstance

	// Owner is set for summoned creatures
	Owner shared.EntityID

	stunnedUntil time.Time
	removed      bool
}

// CreatureConfig holds what NewCreature needs
type CreatureConfig struct {
	ID       shared.EntityID
	Name     string
	Template string
	Team     shared.TeamID
	Position shared.Point
	Stats    *stats.Table
	Chain    *delegates.Chain
	Owner    shared.EntityID
}

// NewCreature creates a creature at full health
func NewCreature(cfg *CreatureConfig) *Creature {
	if cfg.ID == "" {
		panic("creature id is required")
	}
	if cfg.Stats == nil {
		panic("stat table is required")
	}
	if cfg.Chain == nil {
		panic("delegate chain is required")
	}

	c := &Creature{
		id:       cfg.ID,
		Name:     cfg.Name,
		Template: cfg.Template,
		Team:     cfg.Team,
		Position: cfg.Position,
		Stats:    cfg.Stats,
		Chain:    cfg.Chain,
		Owner:    cfg.Owner,
	}
	c.Health = c.MaxHealth()
	return c
}

// ID implements stats.Owner
func (c *Creature) ID() shared.EntityID {
	return c.id
}

// IsAlive implements stats.Owner
func (c *Creature) IsAlive() bool {
	return !c.removed && c.Health > 0
}

// Remove takes the creature out of play regardless of health
func (c *Creature) Remove() {
	c.removed = true
}

// MaxHealth reads the MaxHealth stat
func (c *Creature) MaxHealth() int {
	return stats.MaxHealth.Get(c.Stats)
}

// TakeDamage lowers health, never below zero, and returns the amount lost
func (c *Creature) TakeDamage(amount int) int {
	if amount <= 0 || !c.IsAlive() {
		return 0
	}
	lost := min(amount, c.Health)
	c.Health -= lost
	return lost
}

// Heal raises health up to MaxHealth and returns the amount restored
func (c *Creature) Heal(amount int) int {
	if amount <= 0 || !c.IsAlive() {
		return 0
	}
	restored := min(amount, c.MaxHealth()-c.Health)
	if restored < 0 {
		return 0
	}
	c.Health += restored
	return restored
}

// Stun extends the stun to at least now+duration
func (c *Creature) Stun(now time.Time, duration time.Duration) {
	until := now.Add(duration)
	if until.After(c.stunnedUntil) {
		c.stunnedUntil = until
	}
}

// IsStunned reports whether the creature is stunned at now
func (c *Creature) IsStunned(now time.Time) bool {
	return now.Before(c.stunnedUntil)
}

// AddSkill creates a skill instance layered on the creature's stat table
func (c *Creature) AddSkill(def *SkillDefinition, chain *delegates.Chain) *SkillInstance {
	table := stats.NewChildTable(c.Stats)
	for id, mods := range def.Modifiers {
		table.InsertAll(id, mods)
	}
	skill := &SkillInstance{
		Definition: def,
		Stats:      table,
		Chain:      chain,
	}
	c.Skills = append(c.Skills, skill)
	return skill
}

// Skill finds a skill instance by key
func (c *Creature) Skill(key string) (*SkillInstance, bool) {
	for _, s := range c.Skills {
		if s.Key() == key {
			return s, true
		}
	}
	return nil, false
}

// Projectile is an in-flight shot that has reached its impact point
type Projectile struct {
	Skill      string
	Origin     shared.Point
	Position   shared.Point
	ChainsLeft int

	// Exclude lists creatures an earlier link of the chain already hit
	Exclude []shared.EntityID
}

func (p *Projectile) excludes(id shared.EntityID) bool {
	if p == nil {
		return false
	}
	for _, e := range p.Exclude {
		if e == id {
			return true
		}
	}
	return false
}
