package vmath

// Polygon is a convex polygon given by its vertices in winding order
type Polygon []Vec2

// Rect is an axis-aligned rectangle with its top-left corner at Min
type Rect struct {
	Min  Vec2
	W, H float64
}

// RectAt returns a w×h rectangle centered on c
func RectAt(c Vec2, w, h float64) Rect {
	return Rect{Min: Vec2{c.X - w/2, c.Y - h/2}, W: w, H: h}
}

// Max returns the bottom-right corner
func (r Rect) Max() Vec2 { return Vec2{r.Min.X + r.W, r.Min.Y + r.H} }

// Center returns the rectangle midpoint
func (r Rect) Center() Vec2 { return Vec2{r.Min.X + r.W/2, r.Min.Y + r.H/2} }

// Polygon returns the four corners clockwise from the top-left
func (r Rect) Polygon() Polygon {
	mx := r.Max()
	return Polygon{
		{r.Min.X, r.Min.Y},
		{mx.X, r.Min.Y},
		{mx.X, mx.Y},
		{r.Min.X, mx.Y},
	}
}

// Contains reports whether p lies inside or on the rectangle
func (r Rect) Contains(p Vec2) bool {
	mx := r.Max()
	return p.X >= r.Min.X && p.X <= mx.X && p.Y >= r.Min.Y && p.Y <= mx.Y
}

// Intersects is the axis-aligned overlap test, touching edges count
func (r Rect) Intersects(o Rect) bool {
	a, b := r.Max(), o.Max()
	return r.Min.X <= b.X && o.Min.X <= a.X && r.Min.Y <= b.Y && o.Min.Y <= a.Y
}

// RotatedRect returns the polygon of a w×h rectangle centered on c and
// rotated by deg degrees around its center
func RotatedRect(c Vec2, w, h, deg float64) Polygon {
	hw, hh := w/2, h/2
	corners := [4]Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	poly := make(Polygon, 4)
	for i, k := range corners {
		poly[i] = c.Add(k.Rotate(deg))
	}
	return poly
}

// Axes returns the unit edge normals of p
// Degenerate zero-length edges contribute no axis
func (p Polygon) Axes() []Vec2 {
	axes := make([]Vec2, 0, len(p))
	for i := range p {
		edge := p[(i+1)%len(p)].Sub(p[i])
		if n, ok := edge.Perp().Normalize(); ok {
			axes = append(axes, n)
		}
	}
	return axes
}

// Project returns the [min, max] interval of p projected onto axis
func (p Polygon) Project(axis Vec2) (min, max float64) {
	if len(p) == 0 {
		return 0, 0
	}
	min = p[0].Dot(axis)
	max = min
	for _, v := range p[1:] {
		d := v.Dot(axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// PolygonsIntersect is the separating-axis test for two convex polygons
// Every edge normal of both polygons is a candidate axis; a strict gap on any
// axis separates them. Touching shapes intersect
func PolygonsIntersect(a, b Polygon) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for _, poly := range [2]Polygon{a, b} {
		for _, axis := range poly.Axes() {
			minA, maxA := a.Project(axis)
			minB, maxB := b.Project(axis)
			if maxA < minB || maxB < minA {
				return false
			}
		}
	}
	return true
}
