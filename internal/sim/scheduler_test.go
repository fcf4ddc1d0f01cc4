package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/creature-battler/internal/domain/effects"
	"github.com/KirkDiggler/creature-battler/internal/uuid"
)

func TestScheduler_PopDue(t *testing.T) {
	s := NewScheduler(uuid.NewSequentialGenerator("timer"))

	late := s.add(&timer{due: Epoch.Add(300 * time.Millisecond), effect: effects.Heal{Target: "a", Amount: 1}})
	first := s.add(&timer{due: Epoch.Add(100 * time.Millisecond), effect: effects.Heal{Target: "b", Amount: 1}})
	second := s.add(&timer{due: Epoch.Add(100 * time.Millisecond), effect: effects.Heal{Target: "c", Amount: 1}})

	assert.Equal(t, effects.TimerToken("timer-1"), late)
	assert.Empty(t, s.popDue(Epoch))

	due := s.popDue(Epoch.Add(200 * time.Millisecond))
	require.Len(t, due, 2)
	assert.Equal(t, first, due[0].token)
	assert.Equal(t, second, due[1].token)
	assert.Equal(t, 1, s.Pending())

	due = s.popDue(Epoch.Add(time.Second))
	require.Len(t, due, 1)
	assert.Equal(t, late, due[0].token)
	assert.Zero(t, s.Pending())
}

func TestScheduler_Cancel(t *testing.T) {
	s := NewScheduler(uuid.NewSequentialGenerator("timer"))
	token := s.add(&timer{due: Epoch, effect: effects.Heal{Target: "a", Amount: 1}})

	assert.True(t, s.Cancel(token))
	assert.False(t, s.Cancel(token))
	assert.False(t, s.Cancel("unknown"))
	assert.Zero(t, s.Pending())
}

func TestScheduler_CancelFor(t *testing.T) {
	s := NewScheduler(uuid.NewSequentialGenerator("timer"))
	s.add(&timer{due: Epoch, flight: &flight{Caster: "archer-1"}, aim: "goblin-1"})
	s.add(&timer{due: Epoch, effect: effects.FireProjectile{Caster: "goblin-1"}, shooter: "goblin-1", aim: "archer-1"})
	kept := s.add(&timer{due: Epoch, flight: &flight{Caster: "archer-1"}, aim: "goblin-2"})

	assert.Equal(t, 2, s.CancelFor("goblin-1"))
	due := s.popDue(Epoch)
	require.Len(t, due, 1)
	assert.Equal(t, kept, due[0].token)
}

func TestScheduler_SpawnPending(t *testing.T) {
	s := NewScheduler(uuid.NewSequentialGenerator("timer"))
	assert.False(t, s.SpawnPending())

	s.add(&timer{due: Epoch, effect: effects.Heal{Target: "a", Amount: 1}})
	assert.False(t, s.SpawnPending())

	token := s.add(&timer{due: Epoch, effect: effects.CreateCreature{Template: "wolf", Team: "red"}})
	assert.True(t, s.SpawnPending())

	s.Cancel(token)
	assert.False(t, s.SpawnPending())
}

func TestClock_Advance(t *testing.T) {
	c := NewClock(Epoch)
	assert.Equal(t, Epoch, c.Now())
	assert.Equal(t, Epoch.Add(250*time.Millisecond), c.Advance(250*time.Millisecond))
	assert.Equal(t, Epoch.Add(250*time.Millisecond), c.Now())
}
