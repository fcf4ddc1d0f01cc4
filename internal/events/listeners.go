package events

import (
	"io"
	"sync"

	"github.com/KirkDiggler/creature-battler/internal/domain/shared"
)

// CombatLog records a rendered line per event and optionally streams it
type CombatLog struct {
	out   io.Writer
	mu    sync.Mutex
	lines []string
}

// NewCombatLog creates a combat log; out may be nil
func NewCombatLog(out io.Writer) *CombatLog {
	return &CombatLog{out: out}
}

func (l *CombatLog) ID() string    { return "combat-log" }
func (l *CombatLog) Priority() int { return PriorityLogging }

func (l *CombatLog) HandleEvent(event Event) error {
	line := Describe(event)

	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()

	if l.out == nil {
		return nil
	}
	_, err := io.WriteString(l.out, line+"\n")
	return err
}

// Lines returns a copy of everything recorded so far
func (l *CombatLog) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tally keeps per-creature damage and kill totals
type Tally struct {
	mu      sync.Mutex
	Damage  map[shared.EntityID]int
	Healing map[shared.EntityID]int
	Kills   map[shared.EntityID]int
	Skills  map[string]int
}

// NewTally creates an empty tally
func NewTally() *Tally {
	return &Tally{
		Damage:  make(map[shared.EntityID]int),
		Healing: make(map[shared.EntityID]int),
		Kills:   make(map[shared.EntityID]int),
		Skills:  make(map[string]int),
	}
}

func (t *Tally) ID() string    { return "tally" }
func (t *Tally) Priority() int { return PriorityStatistics }

func (t *Tally) HandleEvent(event Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e := event.(type) {
	case *DamageDealtEvent:
		t.Damage[e.Actor] += e.Amount
	case *HealedEvent:
		t.Healing[e.Target] += e.Amount
	case *CreatureDiedEvent:
		if e.Actor != "" {
			t.Kills[e.Actor]++
		}
	case *SkillUsedEvent:
		t.Skills[e.Skill]++
	}
	return nil
}

// ListenerFunc adapts a function to EventListener
type ListenerFunc struct {
	Name     string
	Order    int
	Callback func(Event) error
}

func (f *ListenerFunc) ID() string    { return f.Name }
func (f *ListenerFunc) Priority() int { return f.Order }

func (f *ListenerFunc) HandleEvent(event Event) error {
	return f.Callback(event)
}
