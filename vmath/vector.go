package vmath

import "math"

// Vec2 is a point or direction on the play field, in field pixels
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{x, y}
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2         { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2         { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2    { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64      { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Length() float64         { return math.Hypot(a.X, a.Y) }
func (a Vec2) Distance(b Vec2) float64 { return a.Sub(b).Length() }

// Perp returns the left-hand perpendicular (-y, x)
func (a Vec2) Perp() Vec2 { return Vec2{-a.Y, a.X} }

// Normalize returns the unit vector, or the zero vector and false when length is zero
func (a Vec2) Normalize() (Vec2, bool) {
	l := a.Length()
	if l == 0 {
		return Vec2{}, false
	}
	return Vec2{a.X / l, a.Y / l}, true
}

// Rotate rotates the vector counter-clockwise by deg degrees
func (a Vec2) Rotate(deg float64) Vec2 {
	rad := deg * math.Pi / 180
	s, c := math.Sincos(rad)
	return Vec2{a.X*c - a.Y*s, a.X*s + a.Y*c}
}

// FromAngle returns a vector of the given length pointing at rad radians
func FromAngle(rad, length float64) Vec2 {
	s, c := math.Sincos(rad)
	return Vec2{c * length, s * length}
}

// Clamp bounds v into [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite reports whether both components are finite
func (a Vec2) Finite() bool {
	return Finite(a.X) && Finite(a.Y)
}

// Finite reports whether f is neither NaN nor ±Inf
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
