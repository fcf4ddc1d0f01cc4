package random_test

import (
	"testing"

	"github.com/KirkDiggler/creature-battler/internal/random"
	"github.com/stretchr/testify/assert"
)

func TestSeededSource_Deterministic(t *testing.T) {
	a := random.NewSeeded(42)
	b := random.NewSeeded(42)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Uniform01(), b.Uniform01())
		assert.Equal(t, a.UniformInt(1, 100), b.UniformInt(1, 100))
	}
}

func TestSeededSource_Bounds(t *testing.T) {
	src := random.NewSeeded(7)

	t.Run("uniform01 stays in [0,1)", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			v := src.Uniform01()
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	})

	t.Run("uniform int is inclusive", func(t *testing.T) {
		seen := map[int]bool{}
		for i := 0; i < 1000; i++ {
			v := src.UniformInt(3, 5)
			assert.GreaterOrEqual(t, v, 3)
			assert.LessOrEqual(t, v, 5)
			seen[v] = true
		}
		assert.Len(t, seen, 3)
	})

	t.Run("degenerate and swapped ranges", func(t *testing.T) {
		assert.Equal(t, 10, src.UniformInt(10, 10))
		v := src.UniformInt(9, 2)
		assert.GreaterOrEqual(t, v, 2)
		assert.LessOrEqual(t, v, 9)
	})
}
