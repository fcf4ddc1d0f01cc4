package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_DistanceTo(t *testing.T) {
	assert.Equal(t, 5.0, Point{X: 1, Y: 1}.DistanceTo(Point{X: 4, Y: 5}))
	assert.Zero(t, Point{X: 2, Y: 2}.DistanceTo(Point{X: 2, Y: 2}))
}

func TestPoint_Toward(t *testing.T) {
	assert.Equal(t, Point{X: 3, Y: 0}, Point{}.Toward(Point{X: 10}, 3))
	assert.Equal(t, Point{X: 0, Y: -2}, Point{}.Toward(Point{Y: -4}, 2))

	// same point
	assert.Equal(t, Point{X: 1, Y: 1}, Point{X: 1, Y: 1}.Toward(Point{X: 1, Y: 1}, 5))
}
