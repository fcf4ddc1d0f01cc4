package stats_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/creature-battler/internal/domain/damage"
	"github.com/KirkDiggler/creature-battler/internal/domain/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		id   stats.ID
		text string
		want int
	}{
		{name: "percentage", id: stats.IDCritChance, text: "25%", want: 2500},
		{name: "fractional percentage", id: stats.IDHealthDrain, text: "12.5%", want: 1250},
		{name: "raw basis points", id: stats.IDCritMultiplier, text: "20000", want: 20000},
		{name: "duration", id: stats.IDStunDuration, text: "1.5s", want: 1500},
		{name: "plain milliseconds", id: stats.IDCooldown, text: "750", want: 750},
		{name: "signed int", id: stats.IDEvasion, text: "+15", want: 15},
		{name: "flag", id: stats.IDCanStun, text: "true", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stats.ParseValue(tt.id, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseValueRejectsGarbage(t *testing.T) {
	_, err := stats.ParseValue(stats.IDAccuracy, "lots")
	assert.Error(t, err)

	_, err = stats.ParseValue(stats.IDCritChance, "x%")
	assert.Error(t, err)
}

func TestParseBaseEstablishesContentValue(t *testing.T) {
	table := stats.NewTable(nil)

	mods, err := stats.ParseBase(stats.IDMaxHealth, "250")
	require.NoError(t, err)
	table.InsertAll(stats.IDMaxHealth, mods)
	assert.Equal(t, 250, stats.MaxHealth.Get(table))

	mods, err = stats.ParseBase(stats.IDCooldown, "2s")
	require.NoError(t, err)
	table.InsertAll(stats.IDCooldown, mods)
	assert.Equal(t, 2*time.Second, stats.Cooldown.Get(table))

	mods, err = stats.ParseBase(stats.IDUsesAccuracy, "false")
	require.NoError(t, err)
	table.InsertAll(stats.IDUsesAccuracy, mods)
	assert.False(t, stats.UsesAccuracy.Get(table))

	mods, err = stats.ParseBase(stats.IDDamageReduction, "fire:10, physical:4")
	require.NoError(t, err)
	table.InsertAll(stats.IDDamageReduction, mods)
	reduction := stats.DamageReduction.Get(table)
	assert.Equal(t, 10, reduction.Get(damage.TypeFire))
	assert.Equal(t, 4, reduction.Get(damage.TypePhysical))
	assert.Equal(t, 0, reduction.Get(damage.TypeCold))
}

func TestParseBaseRejectsUnknownDamageType(t *testing.T) {
	_, err := stats.ParseBase(stats.IDDamageResistance, "plasma:5")
	assert.Error(t, err)
}

func TestBasisPoints(t *testing.T) {
	assert.InDelta(t, 0.25, stats.BasisPoints(2500).Fraction(), 1e-9)
	assert.Equal(t, "12.5%", stats.BasisPoints(1250).String())
}

func TestLookupName(t *testing.T) {
	def, ok := stats.LookupName("maxhealth")
	require.True(t, ok)
	assert.Equal(t, stats.IDMaxHealth, def.ID)
	assert.Equal(t, "MaxHealth", stats.IDMaxHealth.String())

	_, ok = stats.LookupName("Charisma")
	assert.False(t, ok)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		stats.Register(stats.Definition{ID: stats.IDMaxHealth, Name: "Again", Kind: stats.KindInt})
	})
}
