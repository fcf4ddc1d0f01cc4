package rules

import (
	"context"

	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
)

// EffectSink accepts effects produced by rules; effects.Applier is one
type EffectSink interface {
	Apply(ctx context.Context, list []effects.Effect) (*effects.Report, error)
}

// SetVariable assigns a table variable
type SetVariable struct {
	Name  string
	Value any
}

// Run implements Action
func (a SetVariable) Run(_ context.Context, scope *Scope) error {
	scope.SetVariable(a.Name, a.Value)
	return nil
}

// IncrementVariable adds By to a numeric variable, starting from zero
type IncrementVariable struct {
	Name string
	By   int
}

// Run implements Action
func (a IncrementVariable) Run(_ context.Context, scope *Scope) error {
	current := 0
	if v, ok := scope.Variable(a.Name); ok {
		f, isNum := asFloat(v)
		if !isNum {
			return battleErr.InvalidArgumentf("variable %s is %T, not a number", a.Name, v)
		}
		current = int(f)
	}
	scope.SetVariable(a.Name, current+a.By)
	return nil
}

// DisableRule turns another rule (or the firing rule itself) off
type DisableRule struct {
	RuleID string
}

// Run implements Action
func (a DisableRule) Run(_ context.Context, scope *Scope) error {
	return scope.table.Disable(a.RuleID)
}

// ApplyEffects hands effects to the table's sink
type ApplyEffects struct {
	Effects []effects.Effect
}

// Run implements Action
func (a ApplyEffects) Run(ctx context.Context, scope *Scope) error {
	if scope.table.sink == nil {
		return battleErr.Configurationf("rule table has no effect sink")
	}
	_, err := scope.table.sink.Apply(ctx, a.Effects)
	return err
}
