package rules

import (
	"context"
	"log"
	"maps"

	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
	"github.com/KirkDiggler/creature-battler/internal/random"
)

// TableConfig holds a table's collaborators
type TableConfig struct {
	// Sink receives ApplyEffects output. Optional.
	Sink EffectSink

	// Random backs rng.roll in expressions. Without one, rolls return
	// their lower bound.
	Random random.Source
}

// Table is an ordered rule list plus the variables its rules share
type Table struct {
	rules []*Rule
	byID  map[string]*Rule
	vars  map[string]any
	sink  EffectSink

	random random.Source
}

// NewTable creates an empty table
func NewTable(cfg *TableConfig) *Table {
	t := &Table{
		byID: make(map[string]*Rule),
		vars: make(map[string]any),
	}
	if cfg != nil {
		t.sink = cfg.Sink
		t.random = cfg.Random
	}
	return t
}

// Add appends a rule. IDs must be unique.
func (t *Table) Add(rule *Rule) error {
	if rule == nil || rule.ID == "" {
		return battleErr.InvalidArgumentf("rule id is required")
	}
	if _, exists := t.byID[rule.ID]; exists {
		return battleErr.AlreadyExistsf("rule %s already exists", rule.ID)
	}
	t.rules = append(t.rules, rule)
	t.byID[rule.ID] = rule
	return nil
}

// Rule looks up a rule by ID
func (t *Table) Rule(id string) (*Rule, bool) {
	r, ok := t.byID[id]
	return r, ok
}

// Rules returns rules in table order
func (t *Table) Rules() []*Rule {
	out := make([]*Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Disable turns a rule off
func (t *Table) Disable(id string) error {
	r, ok := t.byID[id]
	if !ok {
		return battleErr.NotFoundf("rule %s not found", id)
	}
	r.Disabled = true
	return nil
}

// Variable reads a shared variable
func (t *Table) Variable(name string) (any, bool) {
	v, ok := t.vars[name]
	return v, ok
}

// SetVariable writes a shared variable
func (t *Table) SetVariable(name string, value any) {
	t.vars[name] = value
}

// Variables returns a copy of every shared variable
func (t *Table) Variables() map[string]any {
	return maps.Clone(t.vars)
}

// DispatchResult lists the rules that fired, in order
type DispatchResult struct {
	Fired []string
}

// Dispatch evaluates every enabled rule bound to event in table order.
// Conditions short-circuit on the first false one. OneTime rules disable
// themselves after firing. Rules disabled by an earlier rule in the same
// pass are skipped.
func (t *Table) Dispatch(ctx context.Context, event Event, facts map[string]any) (*DispatchResult, error) {
	result := &DispatchResult{}
	scope := &Scope{Event: event, Facts: facts, table: t}

	for _, rule := range t.rules {
		if rule.Event != event || rule.Disabled {
			continue
		}

		held, err := t.conditionsHold(rule, scope)
		if err != nil {
			return result, err
		}
		if !held {
			continue
		}

		for i, action := range rule.Actions {
			if err := action.Run(ctx, scope); err != nil {
				return result, battleErr.Wrapf(err, "rule %s action %d failed", rule.ID, i).
					WithMeta("rule", rule.ID)
			}
		}
		if rule.OneTime {
			rule.Disabled = true
		}
		result.Fired = append(result.Fired, rule.ID)
	}

	if len(result.Fired) > 0 {
		log.Printf("Rules: %s fired %v", event, result.Fired)
	}
	return result, nil
}

func (t *Table) conditionsHold(rule *Rule, scope *Scope) (bool, error) {
	for i, cond := range rule.Conditions {
		held, err := cond.Holds(scope)
		if err != nil {
			return false, battleErr.Wrapf(err, "rule %s condition %d failed", rule.ID, i).
				WithMeta("rule", rule.ID)
		}
		if !held {
			return false, nil
		}
	}
	return true, nil
}
