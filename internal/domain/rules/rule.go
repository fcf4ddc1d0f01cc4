// Package rules is a condition/action table evaluated on named battle
// events. Rules bound to an event run in table order; a rule fires when
// all of its conditions hold.
package rules

import (
	"context"
	"fmt"
)

// Event names a dispatch point
type Event string

const (
	EventBattleStarted   Event = "battle_started"
	EventCreatureSpawned Event = "creature_spawned"
	EventCreatureDied    Event = "creature_died"
	EventTick            Event = "tick"
	EventBattleEnded     Event = "battle_ended"
)

// ParseEvent converts a content string into an Event
func ParseEvent(s string) (Event, error) {
	switch e := Event(s); e {
	case EventBattleStarted, EventCreatureSpawned, EventCreatureDied, EventTick, EventBattleEnded:
		return e, nil
	default:
		return "", fmt.Errorf("unknown rule event %q", s)
	}
}

// Scope is what conditions read and actions may change during one dispatch
type Scope struct {
	Event Event
	Facts map[string]any
	table *Table
}

// Variable reads a table variable
func (s *Scope) Variable(name string) (any, bool) {
	return s.table.Variable(name)
}

// SetVariable writes a table variable
func (s *Scope) SetVariable(name string, value any) {
	s.table.SetVariable(name, value)
}

func (s *Scope) activation() map[string]any {
	facts := s.Facts
	if facts == nil {
		facts = map[string]any{}
	}
	return map[string]any{
		"event": string(s.Event),
		"vars":  s.table.Variables(),
		"facts": facts,
		"rng":   dice{src: s.table.random},
	}
}

// Condition is a pure predicate over a scope
type Condition interface {
	Holds(scope *Scope) (bool, error)
}

// Action is run when its rule fires
type Action interface {
	Run(ctx context.Context, scope *Scope) error
}

// Rule binds conditions and actions to an event
type Rule struct {
	ID         string
	Event      Event
	Conditions []Condition
	Actions    []Action
	OneTime    bool
	Disabled   bool
}
