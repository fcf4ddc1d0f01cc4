package shared

import "math"

// EntityID identifies a creature, projectile or player inside a battle
type EntityID string

// TeamID identifies a side of the battle. Creatures never target their own team.
type TeamID string

// Point is a position on the battlefield plane
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// DistanceTo returns the euclidean distance between two points
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// Toward returns the point reached by moving distance units from p toward target.
// A zero-length direction returns p unchanged.
func (p Point) Toward(target Point, distance float64) Point {
	d := p.DistanceTo(target)
	if d == 0 {
		return p
	}
	ratio := distance / d
	return Point{
		X: p.X + (target.X-p.X)*ratio,
		Y: p.Y + (target.Y-p.Y)*ratio,
	}
}
