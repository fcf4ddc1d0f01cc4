package events

import (
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
)

// EventType represents the type of battle event
type EventType string

// Event is the base interface for everything published on the bus
type Event interface {
	GetType() EventType
	GetTick() int
	GetActor() shared.EntityID
	GetTarget() shared.EntityID
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type      EventType
	Tick      int
	Actor     shared.EntityID
	Target    shared.EntityID
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType         { return e.Type }
func (e *BaseEvent) GetTick() int               { return e.Tick }
func (e *BaseEvent) GetActor() shared.EntityID  { return e.Actor }
func (e *BaseEvent) GetTarget() shared.EntityID { return e.Target }
func (e *BaseEvent) IsCancelled() bool          { return e.Cancelled }
func (e *BaseEvent) Cancel()                    { e.Cancelled = true }
