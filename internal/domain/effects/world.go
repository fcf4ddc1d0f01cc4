package effects

//go:generate mockgen -destination=mock/mock_world.go -package=mockeffects -source=world.go

import (
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
)

// TimerToken identifies a scheduled delayed effect so it can be cancelled
type TimerToken string

// WorldMutator is everything effects are allowed to change. Rendering,
// physics and audio are reached only through this interface.
type WorldMutator interface {
	ApplyDamage(source, target shared.EntityID, amount int) error
	Heal(target shared.EntityID, amount int) error
	Stun(target shared.EntityID, duration time.Duration) error
	Knockback(target shared.EntityID, from shared.Point, distance int) error
	FireProjectile(projectile FireProjectile) error
	SpawnCreature(template string, team shared.TeamID, at shared.Point, owner shared.EntityID) (shared.EntityID, error)
	ScheduleDelayed(effect Effect, delay time.Duration) (TimerToken, error)
	CancelScheduled(token TimerToken) bool
	PlayEvent(kind EventKind, at shared.Point) error
	PlayVfx(kind VfxKind, at shared.Point) error
	SetStatModifier(target shared.EntityID, stat stats.ID, modifier stats.Modifier) error
	ShowDamageText(target shared.EntityID, amount int, crit bool) error
	AddStatus(target shared.EntityID, status Status) error
}
