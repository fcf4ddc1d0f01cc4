package events

// Event type constants
const (
	EventTypeBattleStarted   EventType = "battle_started"
	EventTypeCreatureSpawned EventType = "creature_spawned"
	EventTypeSkillUsed       EventType = "skill_used"
	EventTypeProjectileHit   EventType = "projectile_hit"
	EventTypeDamageDealt     EventType = "damage_dealt"
	EventTypeHealed          EventType = "healed"
	EventTypeStunned         EventType = "stunned"
	EventTypeStatusApplied   EventType = "status_applied"
	EventTypeStatusExpired   EventType = "status_expired"
	EventTypeCombatFeedback  EventType = "combat_feedback"
	EventTypeCreatureDied    EventType = "creature_died"
	EventTypeBattleEnded     EventType = "battle_ended"
)

// AllEventTypes lists every type in publication order of a typical battle
func AllEventTypes() []EventType {
	return []EventType{
		EventTypeBattleStarted,
		EventTypeCreatureSpawned,
		EventTypeSkillUsed,
		EventTypeProjectileHit,
		EventTypeDamageDealt,
		EventTypeHealed,
		EventTypeStunned,
		EventTypeStatusApplied,
		EventTypeStatusExpired,
		EventTypeCombatFeedback,
		EventTypeCreatureDied,
		EventTypeBattleEnded,
	}
}

// Priority levels for listener order, lowest runs first
const (
	PriorityStatistics = 100 // Tallies that must see every event
	PriorityLogging    = 500 // Combat log output
)
