package effects

import (
	"context"

	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
)

// Report summarizes one Apply call
type Report struct {
	Applied   int
	ByKind    map[Kind]int
	Scheduled []TimerToken
}

// Applier hands effects to a world in order. It makes no decisions.
type Applier struct {
	world WorldMutator
}

// NewApplier creates an applier bound to world
func NewApplier(world WorldMutator) *Applier {
	return &Applier{world: world}
}

// Apply executes each effect exactly once in list order. Delayed effects
// are scheduled and their tokens reported. The first failure stops the
// pass; effects before it stay applied.
func (a *Applier) Apply(ctx context.Context, list []Effect) (*Report, error) {
	report := &Report{ByKind: make(map[Kind]int)}

	for i, e := range list {
		if err := ctx.Err(); err != nil {
			return report, battleErr.Wrapf(err, "apply interrupted before effect %d", i)
		}
		if e == nil {
			return report, battleErr.InvalidArgumentf("effect %d is nil", i)
		}

		if delayed, ok := e.(Delayed); ok {
			token, err := a.world.ScheduleDelayed(delayed.Effect, delayed.Delay)
			if err != nil {
				return report, battleErr.Wrapf(err, "failed to schedule effect %d (%s)", i, delayed.Effect.Kind()).
					WithMeta("index", i)
			}
			report.Scheduled = append(report.Scheduled, token)
		} else if err := e.Execute(a.world); err != nil {
			return report, battleErr.Wrapf(err, "failed to apply effect %d (%s)", i, e.Kind()).
				WithMeta("index", i).
				WithMeta("kind", string(e.Kind()))
		}

		report.Applied++
		report.ByKind[e.Kind()]++
	}

	return report, nil
}
