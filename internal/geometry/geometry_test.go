package geometry

import (
	"math"
	"testing"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func sameAngle(a, b float64) bool {
	d := math.Mod(math.Abs(a-b), 360)
	return d < 1e-6 || 360-d < 1e-6
}

func TestDistance(t *testing.T) {
	d := Distance(Point{X: 0, Y: 0}, Point{X: 3, Y: 4})
	if !almost(d, 5) {
		t.Errorf("Distance = %f, want 5", d)
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d Point
		want       IntersectionKind
		point      Point
	}{
		{"cross", Point{X: -1, Y: 0}, Point{X: 1, Y: 0}, Point{X: 0, Y: -1}, Point{X: 0, Y: 1}, InsideSegment, Point{}},
		{"outside", Point{X: -1, Y: 0}, Point{X: 1, Y: 0}, Point{X: 3, Y: -1}, Point{X: 3, Y: 1}, OutsideSegment, Point{X: 3, Y: 0}},
		{"parallel", Point{X: 0, Y: 0}, Point{X: 1, Y: 1}, Point{X: 0, Y: 1}, Point{X: 1, Y: 2}, Parallel, Point{}},
		{"touching endpoint", Point{X: 0, Y: 0}, Point{X: 2, Y: 0}, Point{X: 2, Y: 0}, Point{X: 2, Y: 2}, InsideSegment, Point{X: 2, Y: 0}},
		{"diagonals", Point{X: 0, Y: 0}, Point{X: 4, Y: 4}, Point{X: 0, Y: 4}, Point{X: 4, Y: 0}, InsideSegment, Point{X: 2, Y: 2}},
	}

	for _, tc := range tests {
		got := Intersect(tc.a, tc.b, tc.c, tc.d)
		if got.Kind != tc.want {
			t.Errorf("%s: Kind = %s, want %s", tc.name, got.Kind, tc.want)
			continue
		}
		if tc.want != Parallel && (!almost(got.Point.X, tc.point.X) || !almost(got.Point.Y, tc.point.Y)) {
			t.Errorf("%s: Point = %v, want %v", tc.name, got.Point, tc.point)
		}
	}
}

func TestIntersectIsSymmetric(t *testing.T) {
	segments := [][4]Point{
		{{X: 0, Y: 0}, {X: 10, Y: 3}, {X: 2, Y: 5}, {X: 7, Y: -4}},
		{{X: -3, Y: 1}, {X: 8, Y: 2}, {X: 1, Y: 9}, {X: 2, Y: 8}},
		{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 5, Y: 5.5}, {X: 9, Y: -1}},
	}

	for i, s := range segments {
		first := Intersect(s[0], s[1], s[2], s[3])
		second := Intersect(s[2], s[3], s[0], s[1])
		if first.Kind != second.Kind {
			t.Errorf("case %d: kinds differ: %s vs %s", i, first.Kind, second.Kind)
			continue
		}
		if first.Kind == InsideSegment && !Equal(first.Point, second.Point) {
			if !almost(first.Point.X, second.Point.X) || !almost(first.Point.Y, second.Point.Y) {
				t.Errorf("case %d: points differ: %v vs %v", i, first.Point, second.Point)
			}
		}
	}
}

func TestSymmetrical(t *testing.T) {
	p := Symmetrical(Point{X: 1, Y: 2}, Point{X: -5, Y: 0}, Point{X: 5, Y: 0})
	if !almost(p.X, 1) || !almost(p.Y, -2) {
		t.Errorf("Symmetrical = %v, want (1, -2)", p)
	}

	onLine := Symmetrical(Point{X: 3, Y: 0}, Point{X: -5, Y: 0}, Point{X: 5, Y: 0})
	if !almost(onLine.X, 3) || !almost(onLine.Y, 0) {
		t.Errorf("Symmetrical of point on line = %v, want (3, 0)", onLine)
	}
}

func TestPolarAndBearing(t *testing.T) {
	tests := []struct {
		theta float64
		x, y  float64
	}{
		{0, 0, 10},
		{90, 10, 0},
		{180, 0, -10},
		{270, -10, 0},
	}

	origin := Point{}
	for _, tc := range tests {
		p := FromPolar(10, tc.theta)
		if !almost(p.X, tc.x) || !almost(p.Y, tc.y) {
			t.Errorf("FromPolar(10, %v) = %v, want (%v, %v)", tc.theta, p, tc.x, tc.y)
		}
		if b := Bearing(origin, p); !sameAngle(b, tc.theta) {
			t.Errorf("Bearing to FromPolar(10, %v) = %v", tc.theta, b)
		}
	}
}

func TestBearingRoundTrip(t *testing.T) {
	center := Point{X: 3, Y: -2}
	for theta := 0.0; theta < 360; theta += 17.5 {
		p := center.Plus(FromPolar(4, theta))
		if b := Bearing(center, p); !sameAngle(b, theta) {
			t.Errorf("Bearing = %v, want %v", b, theta)
		}
	}
}

func TestCentroidAndBounds(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 2}}

	c := Centroid(points)
	if !almost(c.X, 2) || !almost(c.Y, 1) {
		t.Errorf("Centroid = %v, want (2, 1)", c)
	}

	r := Bounds(points)
	if !almost(r.Width(), 4) || !almost(r.Height(), 2) {
		t.Errorf("Bounds = %vx%v, want 4x2", r.Width(), r.Height())
	}
}

func TestSegmentDistance(t *testing.T) {
	d := SegmentDistance(Point{X: 5, Y: 3}, Point{X: 0, Y: 0}, Point{X: 10, Y: 0})
	if !almost(d, 3) {
		t.Errorf("SegmentDistance = %v, want 3", d)
	}
	d = SegmentDistance(Point{X: -3, Y: 4}, Point{X: 0, Y: 0}, Point{X: 10, Y: 0})
	if !almost(d, 5) {
		t.Errorf("SegmentDistance beyond end = %v, want 5", d)
	}
}
