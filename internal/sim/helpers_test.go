package sim_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/creature-battler/internal/content"
	"github.com/KirkDiggler/creature-battler/internal/domain/rules"
	"github.com/KirkDiggler/creature-battler/internal/events"
)

// Every skill below always hits and never crits so outcomes are fixed
const testCreatures = `
skills:
  - key: jab
    category: melee
    damage:
      physical: 10
    stats:
      Radius: 2
      Cooldown: 500ms
      UsesAccuracy: false
      CanCrit: false

  - key: dart
    category: projectile
    damage:
      physical: 5
    stats:
      Radius: 1
      Cooldown: 1s
      ProjectileDelay: 300ms
      UsesAccuracy: false
      CanCrit: false

creatures:
  - key: brute
    stats:
      MaxHealth: 30
    skills: [jab]

  - key: archer
    stats:
      MaxHealth: 20
    skills: [dart]

  - key: post
    stats:
      MaxHealth: 25

  - key: dummy
    stats:
      MaxHealth: 10

  - key: egg
    stats:
      MaxHealth: 10
    behaviours:
      - name: summon_on_death
        params:
          template: hatchling
          count: 2

  - key: hatchling
    stats:
      MaxHealth: 5
`

const countDeaths = `
rules:
  - id: count_deaths
    event: creature_died
    then:
      - increment:
          name: deaths
`

const blueRevenge = `
rules:
  - id: blue_revenge
    event: creature_died
    one_time: true
    when:
      - expr: 'facts.team == "blue"'
    then:
      - effects:
          - spawn:
              template: dummy
              team: blue
              at: {x: 1, y: 0}
            delay: 300ms
`

func loadPack(t *testing.T, ruleText string) *content.Pack {
	t.Helper()
	registry, err := rules.NewRegistry()
	require.NoError(t, err)

	pack, err := content.NewLoader(&content.LoaderConfig{Registry: registry}).
		Load(strings.NewReader(testCreatures + ruleText))
	require.NoError(t, err)
	return pack
}

// recorder keeps every event published on a bus
type recorder struct {
	events []events.Event
}

func (r *recorder) ID() string    { return "recorder" }
func (r *recorder) Priority() int { return events.PriorityStatistics }

func (r *recorder) HandleEvent(e events.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) ofType(t events.EventType) []events.Event {
	var out []events.Event
	for _, e := range r.events {
		if e.GetType() == t {
			out = append(out, e)
		}
	}
	return out
}
