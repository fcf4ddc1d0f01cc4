package delegates_test

import (
	"testing"

	"github.com/KirkDiggler/creature-battler/internal/domain/delegates"
	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deathHandler interface {
	OnDeath(log *[]string) delegates.Propagation
}

type targetPicker interface {
	PickTarget() (string, bool)
}

type damageScaler interface {
	Scale(amount int) (int, delegates.Propagation)
}

type plain struct{ key string }

func (p plain) Key() string { return p.key }

type mourner struct {
	key  string
	next delegates.Propagation
}

func (m mourner) Key() string { return m.key }

func (m mourner) OnDeath(log *[]string) delegates.Propagation {
	*log = append(*log, m.key)
	return m.next
}

type picker struct {
	key    string
	target string
}

func (p picker) Key() string { return p.key }

func (p picker) PickTarget() (string, bool) {
	return p.target, p.target != ""
}

type doubler struct{ key string }

func (d doubler) Key() string { return d.key }

func (d doubler) Scale(amount int) (int, delegates.Propagation) {
	return amount * 2, delegates.Continue
}

type capper struct{ key string }

func (c capper) Key() string { return c.key }

func (c capper) Scale(amount int) (int, delegates.Propagation) {
	return min(amount, 15), delegates.Stop
}

type fallback struct{}

func (fallback) Key() string { return "default" }

func (fallback) OnDeath(log *[]string) delegates.Propagation {
	*log = append(*log, "default")
	return delegates.Continue
}

func (fallback) PickTarget() (string, bool) { return "nearest", true }

func (fallback) Scale(amount int) (int, delegates.Propagation) {
	return amount + 1, delegates.Continue
}

func requiredCapabilities() []delegates.Capability {
	return []delegates.Capability{
		delegates.Requires[deathHandler](),
		delegates.Requires[targetPicker](),
		delegates.Requires[damageScaler](),
	}
}

func onDeath(c *delegates.Chain) []string {
	var log []string
	delegates.Broadcast[deathHandler, struct{}](c, func(h deathHandler) ([]struct{}, delegates.Propagation) {
		return nil, h.OnDeath(&log)
	})
	return log
}

func TestStoppedHandlerHidesDefault(t *testing.T) {
	chain, err := delegates.New(fallback{}, []delegates.Delegate{
		plain{key: "A"},
		mourner{key: "B", next: delegates.Stop},
	}, requiredCapabilities()...)
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, onDeath(chain))
}

func TestBroadcastRunsEveryImplementerInOrder(t *testing.T) {
	chain, err := delegates.New(fallback{}, []delegates.Delegate{
		mourner{key: "A"},
		plain{key: "B"},
		mourner{key: "C"},
	}, requiredCapabilities()...)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "C", "default"}, onDeath(chain))
}

func TestBroadcastConcatenatesResults(t *testing.T) {
	chain, err := delegates.New(fallback{}, []delegates.Delegate{mourner{key: "A"}})
	require.NoError(t, err)

	out := delegates.Broadcast[deathHandler, string](chain, func(h deathHandler) ([]string, delegates.Propagation) {
		d := h.(delegates.Delegate)
		return []string{d.Key() + "-1", d.Key() + "-2"}, delegates.Continue
	})
	assert.Equal(t, []string{"A-1", "A-2", "default-1", "default-2"}, out)
}

func TestEmptyChainIsJustTheDefault(t *testing.T) {
	chain, err := delegates.New(fallback{}, nil, requiredCapabilities()...)
	require.NoError(t, err)

	assert.Equal(t, 1, chain.Len())
	assert.Equal(t, "default", chain.Default().Key())
	assert.Equal(t, []string{"default"}, onDeath(chain))
	assert.Equal(t, "nearest", delegates.FirstMatch[targetPicker, string](chain, func(h targetPicker) (string, bool) {
		return h.PickTarget()
	}))
}

func TestFirstMatchStopsAtFirstAnswer(t *testing.T) {
	chain, err := delegates.New(fallback{}, []delegates.Delegate{
		picker{key: "undecided"},
		picker{key: "sniper", target: "weakest"},
		picker{key: "never", target: "random"},
	})
	require.NoError(t, err)

	calls := 0
	got := delegates.FirstMatch[targetPicker, string](chain, func(h targetPicker) (string, bool) {
		calls++
		return h.PickTarget()
	})
	assert.Equal(t, "weakest", got)
	assert.Equal(t, 2, calls)
}

func TestFirstMatchPanicsWhenNobodyAnswers(t *testing.T) {
	chain, err := delegates.New(plain{key: "default"}, nil)
	require.NoError(t, err)

	assert.Panics(t, func() {
		delegates.FirstMatch[targetPicker, string](chain, func(h targetPicker) (string, bool) {
			return h.PickTarget()
		})
	})
}

func TestFoldThreadsAccumulator(t *testing.T) {
	chain, err := delegates.New(fallback{}, []delegates.Delegate{doubler{key: "double"}})
	require.NoError(t, err)

	scale := func(h damageScaler, acc int) (int, delegates.Propagation) { return h.Scale(acc) }

	// (5 * 2) + 1
	assert.Equal(t, 11, delegates.Fold(chain, 5, scale))
}

func TestFoldStopEndsPropagation(t *testing.T) {
	chain, err := delegates.New(fallback{}, []delegates.Delegate{
		doubler{key: "double"},
		capper{key: "cap"},
	})
	require.NoError(t, err)

	scale := func(h damageScaler, acc int) (int, delegates.Propagation) { return h.Scale(acc) }
	assert.Equal(t, 15, delegates.Fold(chain, 10, scale))
}

func TestFoldChainsRunsChainsInOrder(t *testing.T) {
	skill, err := delegates.New(fallback{}, []delegates.Delegate{doubler{key: "double"}})
	require.NoError(t, err)
	creature, err := delegates.New(fallback{}, nil)
	require.NoError(t, err)

	scale := func(h damageScaler, acc int) (int, delegates.Propagation) { return h.Scale(acc) }

	// skill: 3*2+1 = 7, creature: 7+1 = 8
	assert.Equal(t, 8, delegates.FoldChains(3, scale, skill, nil, creature))
}

func TestNewRejectsBadChains(t *testing.T) {
	tests := []struct {
		name      string
		def       delegates.Delegate
		delegates []delegates.Delegate
		required  []delegates.Capability
	}{
		{name: "missing default", def: nil},
		{name: "nil delegate", def: fallback{}, delegates: []delegates.Delegate{nil}},
		{name: "duplicate keys", def: fallback{}, delegates: []delegates.Delegate{plain{key: "A"}, mourner{key: "A"}}},
		{name: "key shared with default", def: fallback{}, delegates: []delegates.Delegate{plain{key: "default"}}},
		{
			name:     "default lacks capability",
			def:      plain{key: "default"},
			required: []delegates.Capability{delegates.Requires[deathHandler]()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := delegates.New(tt.def, tt.delegates, tt.required...)
			assert.Nil(t, chain)
			require.Error(t, err)
			assert.True(t, battleErr.IsConfiguration(err))
		})
	}
}

func TestDelegatesListsPriorityOrder(t *testing.T) {
	chain, err := delegates.New(fallback{}, []delegates.Delegate{plain{key: "A"}, plain{key: "B"}})
	require.NoError(t, err)

	var keys []string
	for _, d := range chain.Delegates() {
		keys = append(keys, d.Key())
	}
	assert.Equal(t, []string{"A", "B", "default"}, keys)
	assert.Len(t, delegates.Implementers[deathHandler](chain), 1)
}
