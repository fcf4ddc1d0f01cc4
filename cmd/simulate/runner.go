package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/creature-battler/internal/config"
	"github.com/KirkDiggler/creature-battler/internal/content"
	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
	"github.com/KirkDiggler/creature-battler/internal/events"
	"github.com/KirkDiggler/creature-battler/internal/repositories/stattables"
	"github.com/KirkDiggler/creature-battler/internal/sim"
	"github.com/KirkDiggler/creature-battler/internal/uuid"
)

// runner plays seeded battles in parallel. Each battle owns its bus, world
// and rule table; only the pack is shared.
type runner struct {
	pack   *content.Pack
	cfg    config.BattleConfig
	lineup []sim.Placement

	// repo persists end-of-battle stat tables when set
	repo stattables.Repository
}

type outcome struct {
	BattleID string
	Result   *sim.Result
	Tally    *events.Tally
	Log      []string
}

func (r *runner) runAll(ctx context.Context) ([]*outcome, error) {
	outcomes := make([]*outcome, r.cfg.Runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < r.cfg.Runs; i++ {
		i := i
		g.Go(func() error {
			o, err := r.runOne(ctx, r.cfg.Seed+uint64(i))
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (r *runner) runOne(ctx context.Context, seed uint64) (*outcome, error) {
	bus := events.NewBus()
	combatLog := events.NewCombatLog(nil)
	tally := events.NewTally()
	bus.SubscribeAll(combatLog)
	bus.SubscribeAll(tally)

	battle, err := sim.NewBattle(&sim.BattleConfig{
		Pack:     r.pack,
		Seed:     seed,
		Tick:     r.cfg.Tick,
		MaxTicks: r.cfg.MaxTicks,
		Bus:      bus,
		TimerIDs: uuid.NewSequentialGenerator("timer"),
	})
	if err != nil {
		return nil, err
	}
	for _, p := range r.lineup {
		if _, err := battle.Spawn(ctx, p); err != nil {
			return nil, fmt.Errorf("placing %s for %s: %w", p.Template, p.Team, err)
		}
	}

	result, err := battle.Run(ctx)
	if err != nil {
		return nil, err
	}

	battleID := fmt.Sprintf("seed-%d", seed)
	if r.repo != nil {
		for _, record := range battle.Records(battleID) {
			if err := r.repo.Save(ctx, record); err != nil {
				return nil, fmt.Errorf("saving %s: %w", record.EntityID, err)
			}
		}
	}

	return &outcome{
		BattleID: battleID,
		Result:   result,
		Tally:    tally,
		Log:      combatLog.Lines(),
	}, nil
}

// summary aggregates outcomes across runs
type summary struct {
	Runs   int
	Wins   map[shared.TeamID]int
	Draws  int
	Damage map[string]int
	Kills  map[string]int
}

// summarize folds per-creature totals by template so runs can be compared
func summarize(outcomes []*outcome) *summary {
	s := &summary{
		Runs:   len(outcomes),
		Wins:   make(map[shared.TeamID]int),
		Damage: make(map[string]int),
		Kills:  make(map[string]int),
	}
	for _, o := range outcomes {
		if o.Result.Winner == "" {
			s.Draws++
		} else {
			s.Wins[o.Result.Winner]++
		}
		for id, amount := range o.Tally.Damage {
			s.Damage[templateOf(id)] += amount
		}
		for id, kills := range o.Tally.Kills {
			s.Kills[templateOf(id)] += kills
		}
	}
	return s
}

// templateOf strips the spawn counter: wolf-3 is a wolf
func templateOf(id shared.EntityID) string {
	s := string(id)
	if i := strings.LastIndex(s, "-"); i > 0 {
		return s[:i]
	}
	return s
}

func (s *summary) write(w io.Writer) {
	fmt.Fprintf(w, "%d battles, %d draws\n", s.Runs, s.Draws)

	teams := make([]string, 0, len(s.Wins))
	for team := range s.Wins {
		teams = append(teams, string(team))
	}
	sort.Strings(teams)
	for _, team := range teams {
		fmt.Fprintf(w, "  %s won %d\n", team, s.Wins[shared.TeamID(team)])
	}

	templates := make([]string, 0, len(s.Damage))
	for t := range s.Damage {
		templates = append(templates, t)
	}
	sort.Slice(templates, func(i, j int) bool {
		if s.Damage[templates[i]] != s.Damage[templates[j]] {
			return s.Damage[templates[i]] > s.Damage[templates[j]]
		}
		return templates[i] < templates[j]
	})
	for _, t := range templates {
		fmt.Fprintf(w, "  %-12s dealt %6d, killed %d\n", t, s.Damage[t], s.Kills[t])
	}
}

func writeOutcome(w io.Writer, o *outcome, withLog bool) {
	winner := string(o.Result.Winner)
	if winner == "" {
		winner = "nobody (draw)"
	}
	fmt.Fprintf(w, "%s: %s won after %d ticks, survivors %v\n", o.BattleID, winner, o.Result.Ticks, o.Result.Survivors)
	if !withLog {
		return
	}
	for _, line := range o.Log {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
