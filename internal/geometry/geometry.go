package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Epsilon is the tolerance used for every floating point comparison.
const Epsilon = 1e-9

// Point is a 2D position or vector in galaxy space.
type Point = geom.Coord

// IntersectionKind classifies how two segments meet
type IntersectionKind int

const (
	// Parallel segments never meet (or are colinear)
	Parallel IntersectionKind = iota
	// OutsideSegment means the supporting lines cross outside at least one segment
	OutsideSegment
	// InsideSegment means the two segments actually cross
	InsideSegment
)

// String returns the name of the intersection kind
func (k IntersectionKind) String() string {
	switch k {
	case Parallel:
		return "parallel"
	case OutsideSegment:
		return "outside"
	case InsideSegment:
		return "inside"
	}
	return "unknown"
}

// Intersection is the result of Intersect. Point is only meaningful when
// Kind is not Parallel.
type Intersection struct {
	Kind  IntersectionKind
	Point Point
}

// Distance returns the euclidean distance between a and b
func Distance(a, b Point) float64 {
	return a.DistanceFrom(b)
}

// Vector returns the vector going from a to b
func Vector(a, b Point) Point {
	return b.Minus(a)
}

// Normal returns v rotated by a quarter turn counter-clockwise
func Normal(v Point) Point {
	return Point{X: -v.Y, Y: v.X}
}

// Dot returns the dot product of v and w
func Dot(v, w Point) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z component of the cross product of v and w
func Cross(v, w Point) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Value returns the signed area of p relative to the line going through a and b.
// Its sign tells on which side of the line p lies; zero means p is on the line.
func Value(p, a, b Point) float64 {
	d := Vector(a, b)
	return d.Y*p.X - d.X*p.Y + d.X*a.Y - d.Y*a.X
}

// Equal reports whether a and b are the same point within Epsilon
func Equal(a, b Point) bool {
	return math.Abs(a.X-b.X) < Epsilon && math.Abs(a.Y-b.Y) < Epsilon
}

// Intersect classifies segments [ab] and [cd]. The segments cross inside both
// extents iff the endpoints of each lie on opposite sides (or on) the other.
func Intersect(a, b, c, d Point) Intersection {
	ab := Vector(a, b)
	cd := Vector(c, d)

	den := Cross(ab, cd)
	if math.Abs(den) <= Epsilon*ab.Magnitude()*cd.Magnitude() || math.Abs(den) < Epsilon*Epsilon {
		return Intersection{Kind: Parallel}
	}

	t := Cross(Vector(a, c), cd) / den
	point := a.Plus(ab.Times(t))

	if Value(a, c, d)*Value(b, c, d) <= 0 && Value(c, a, b)*Value(d, a, b) <= 0 {
		return Intersection{Kind: InsideSegment, Point: point}
	}
	return Intersection{Kind: OutsideSegment, Point: point}
}

// Symmetrical returns the reflection of p across the line going through a and b.
// Points on the line, and degenerate lines, return p unchanged.
func Symmetrical(p, a, b Point) Point {
	d := Vector(a, b)
	lengthSquared := Dot(d, d)
	if lengthSquared < Epsilon || math.Abs(Value(p, a, b)) < Epsilon {
		return p
	}

	h := a.Plus(d.Times(Dot(Vector(a, p), d) / lengthSquared))
	return p.Plus(Vector(p, h).Times(2))
}

// FromPolar converts a bearing in degrees (0 is north, clockwise positive)
// and a radius into a cartesian offset.
func FromPolar(rho, theta float64) Point {
	rad := (90 - theta) * math.Pi / 180
	return Point{X: rho * math.Cos(rad), Y: rho * math.Sin(rad)}
}

// Bearing returns the direction from a to b in degrees, 0 being north and
// angles growing clockwise. The result is in [0, 360).
func Bearing(a, b Point) float64 {
	v := Vector(a, b)
	if math.Abs(v.X) < Epsilon && math.Abs(v.Y) < Epsilon {
		return 0
	}

	brg := math.Atan2(v.X, v.Y) * 180 / math.Pi
	if brg < 0 {
		brg += 360
	}
	if brg >= 360 {
		brg -= 360
	}
	return brg
}

// Centroid returns the average position of points
func Centroid(points []Point) Point {
	var c Point
	if len(points) == 0 {
		return c
	}
	for _, p := range points {
		c = c.Plus(p)
	}
	return c.Times(1 / float64(len(points)))
}

// Bounds returns the smallest rectangle containing every point
func Bounds(points []Point) geom.Rect {
	if len(points) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.ExpandToContainCoord(p)
	}
	return r
}

// SegmentDistance returns the distance from p to the closest point of [ab]
func SegmentDistance(p, a, b Point) float64 {
	d := Vector(a, b)
	lengthSquared := Dot(d, d)
	if lengthSquared < Epsilon {
		return Distance(p, a)
	}
	t := Dot(Vector(a, p), d) / lengthSquared
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Distance(p, a.Plus(d.Times(t)))
}
