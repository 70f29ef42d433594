package triangulation

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/lawnchairsociety/galaxygen/internal/geometry"
)

func vertices(points ...geometry.Point) []Vertex {
	vs := make([]Vertex, len(points))
	for i, p := range points {
		vs[i] = Vertex{Point: p, Label: i}
	}
	return vs
}

func TestTriangulateTooFewPoints(t *testing.T) {
	_, err := Triangulate(vertices(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 1, Y: 1}))
	if !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("Triangulate with 2 points error = %v, want ErrTooFewPoints", err)
	}
}

func TestTriangulateSingleTriangle(t *testing.T) {
	tris, err := Triangulate(vertices(
		geometry.Point{X: 0, Y: 0},
		geometry.Point{X: 4, Y: 0},
		geometry.Point{X: 1, Y: 3},
	))
	if err != nil {
		t.Fatalf("Triangulate() failed: %v", err)
	}
	if len(tris) != 1 {
		t.Fatalf("len(triangles) = %d, want 1", len(tris))
	}
	for i := 0; i < 3; i++ {
		if !tris[0].Touches(i) {
			t.Errorf("triangle %v does not use vertex %d", tris[0], i)
		}
	}
}

func TestTriangulateSquare(t *testing.T) {
	tris, err := Triangulate(vertices(
		geometry.Point{X: 0, Y: 0},
		geometry.Point{X: 1, Y: 0},
		geometry.Point{X: 1, Y: 1},
		geometry.Point{X: 0, Y: 1},
	))
	if err != nil {
		t.Fatalf("Triangulate() failed: %v", err)
	}
	if len(tris) != 2 {
		t.Errorf("len(triangles) = %d, want 2", len(tris))
	}
	if e := Edges(tris); len(e) != 5 {
		t.Errorf("len(edges) = %d, want 5", len(e))
	}
}

func TestTriangulateEmptyCircle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var points []geometry.Point
	for i := 0; i < 150; i++ {
		points = append(points, geometry.Point{X: rng.Float64() * 100, Y: rng.Float64() * 100})
	}

	tris, err := Triangulate(vertices(points...))
	if err != nil {
		t.Fatalf("Triangulate() failed: %v", err)
	}
	if len(tris) < len(points) {
		t.Fatalf("len(triangles) = %d, want at least %d", len(tris), len(points))
	}

	for _, tri := range tris {
		center, r2, ok := Circumcircle(points[tri.A], points[tri.B], points[tri.C])
		if !ok {
			t.Errorf("degenerate triangle %v", tri)
			continue
		}
		for i, p := range points {
			if tri.Touches(i) {
				continue
			}
			dx, dy := p.X-center.X, p.Y-center.Y
			if dx*dx+dy*dy < r2*(1-1e-7) {
				t.Errorf("point %d lies inside circumcircle of %v", i, tri)
			}
		}
	}
}

func TestTriangulateEveryVertexUsed(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var points []geometry.Point
	for i := 0; i < 60; i++ {
		points = append(points, geometry.Point{X: rng.Float64()*50 - 25, Y: rng.Float64()*50 - 25})
	}

	tris, err := Triangulate(vertices(points...))
	if err != nil {
		t.Fatalf("Triangulate() failed: %v", err)
	}

	used := make(map[int]bool)
	for _, tri := range tris {
		used[tri.A], used[tri.B], used[tri.C] = true, true, true
	}
	if len(used) != len(points) {
		t.Errorf("vertices used = %d, want %d", len(used), len(points))
	}
}

func TestEdgesAreNormalized(t *testing.T) {
	edges := Edges([]Triangle{{A: 2, B: 0, C: 1}, {A: 1, B: 2, C: 3}})
	if len(edges) != 5 {
		t.Fatalf("len(edges) = %d, want 5", len(edges))
	}
	for _, e := range edges {
		if e.A >= e.B {
			t.Errorf("edge %v is not normalized", e)
		}
	}
}
