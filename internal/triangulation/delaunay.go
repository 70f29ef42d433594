// Package triangulation computes Delaunay triangulations of labeled point sets.
package triangulation

import (
	"errors"

	"github.com/lawnchairsociety/galaxygen/internal/geometry"
)

var (
	ErrTooFewPoints = errors.New("triangulation: need at least three vertices")
)

// superScale controls how far outside the point bounds the super triangle lies.
// A large triangle keeps hull edges from being lost to the synthetic vertices.
const superScale = 20.0

// Vertex is an input point. Label is carried through untouched so callers can
// map triangle corners back to their own objects.
type Vertex struct {
	Point geometry.Point
	Label int
}

// Triangle references three vertices by their index in the input slice
type Triangle struct {
	A, B, C int
}

// Edge is an undirected pair of vertex indices with A < B
type Edge struct {
	A, B int
}

func newEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Edges returns the three edges of the triangle
func (t Triangle) Edges() [3]Edge {
	return [3]Edge{newEdge(t.A, t.B), newEdge(t.B, t.C), newEdge(t.C, t.A)}
}

// Touches reports whether the triangle uses vertex i
func (t Triangle) Touches(i int) bool {
	return t.A == i || t.B == i || t.C == i
}

// Triangulate returns the Delaunay triangulation of vertices using incremental
// Bowyer-Watson insertion. Vertices closer than geometry.Epsilon to an already
// inserted vertex are skipped.
func Triangulate(vertices []Vertex) ([]Triangle, error) {
	n := len(vertices)
	if n < 3 {
		return nil, ErrTooFewPoints
	}

	points := make([]geometry.Point, 0, n+3)
	for _, v := range vertices {
		points = append(points, v.Point)
	}

	bounds := geometry.Bounds(points)
	dmax := bounds.Width()
	if bounds.Height() > dmax {
		dmax = bounds.Height()
	}
	if dmax < geometry.Epsilon {
		dmax = 1
	}
	mid := bounds.Min.Plus(bounds.Max).Times(0.5)

	points = append(points,
		geometry.Point{X: mid.X - superScale*dmax, Y: mid.Y - superScale*dmax},
		geometry.Point{X: mid.X, Y: mid.Y + superScale*dmax},
		geometry.Point{X: mid.X + superScale*dmax, Y: mid.Y - superScale*dmax},
	)

	triangles := []Triangle{{A: n, B: n + 1, C: n + 2}}

	for i := 0; i < n; i++ {
		if isDuplicate(points, i) {
			continue
		}

		var edges []Edge
		kept := triangles[:0]
		for _, t := range triangles {
			if inCircle(points[i], points[t.A], points[t.B], points[t.C]) {
				es := t.Edges()
				edges = append(edges, es[:]...)
				continue
			}
			kept = append(kept, t)
		}
		triangles = kept

		for _, e := range uniqueEdges(edges) {
			triangles = append(triangles, Triangle{A: e.A, B: e.B, C: i})
		}
	}

	result := make([]Triangle, 0, len(triangles))
	for _, t := range triangles {
		if t.A >= n || t.B >= n || t.C >= n {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// Edges returns every distinct edge of triangles in first-seen order
func Edges(triangles []Triangle) []Edge {
	seen := make(map[Edge]bool)
	var edges []Edge
	for _, t := range triangles {
		for _, e := range t.Edges() {
			if seen[e] {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}
	return edges
}

// Circumcircle returns the center and squared radius of the circle going
// through a, b and c. ok is false for colinear points.
func Circumcircle(a, b, c geometry.Point) (center geometry.Point, radiusSquared float64, ok bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if d > -geometry.Epsilon && d < geometry.Epsilon {
		return geometry.Point{}, 0, false
	}

	aa := a.X*a.X + a.Y*a.Y
	bb := b.X*b.X + b.Y*b.Y
	cc := c.X*c.X + c.Y*c.Y
	center = geometry.Point{
		X: (aa*(b.Y-c.Y) + bb*(c.Y-a.Y) + cc*(a.Y-b.Y)) / d,
		Y: (aa*(c.X-b.X) + bb*(a.X-c.X) + cc*(b.X-a.X)) / d,
	}
	dx, dy := a.X-center.X, a.Y-center.Y
	return center, dx*dx + dy*dy, true
}

// inCircle reports whether p lies inside or on the circumcircle of a, b, c
func inCircle(p, a, b, c geometry.Point) bool {
	center, r2, ok := Circumcircle(a, b, c)
	if !ok {
		return false
	}
	dx, dy := p.X-center.X, p.Y-center.Y
	return dx*dx+dy*dy <= r2*(1+geometry.Epsilon)
}

// uniqueEdges drops every edge that appears more than once. Shared edges are
// the interior of the cavity left by removed triangles.
func uniqueEdges(edges []Edge) []Edge {
	count := make(map[Edge]int, len(edges))
	for _, e := range edges {
		count[e]++
	}
	out := edges[:0]
	for _, e := range edges {
		if count[e] == 1 {
			out = append(out, e)
		}
	}
	return out
}

func isDuplicate(points []geometry.Point, i int) bool {
	for j := 0; j < i; j++ {
		if geometry.Equal(points[i], points[j]) {
			return true
		}
	}
	return false
}
