package rng

import "testing"

func TestNextRange(t *testing.T) {
	r := New(42)
	for i := 0; i < 200; i++ {
		v := r.Next(7)
		if v < 0 || v >= 7 {
			t.Errorf("Next(7) = %d, expected 0-6", v)
		}
	}
	if v := r.Next(0); v != 0 {
		t.Errorf("Next(0) = %d, want 0", v)
	}
}

func TestNextDoubleRange(t *testing.T) {
	r := New(42)
	for i := 0; i < 200; i++ {
		v := r.NextDouble()
		if v < 0 || v >= 1 {
			t.Errorf("NextDouble() = %f, expected [0, 1)", v)
		}
	}
}

func TestDeterministic(t *testing.T) {
	a := New(1234)
	b := New(1234)
	for i := 0; i < 50; i++ {
		if x, y := a.Next(1000), b.Next(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestZeroSeedIsReplaced(t *testing.T) {
	r := New(0)
	if r.Seed() == 0 {
		t.Error("Seed() = 0, want time-derived seed")
	}
}

func TestD100(t *testing.T) {
	r := New(3)
	for i := 0; i < 100; i++ {
		result := D100(r)
		if result < 1 || result > 100 {
			t.Errorf("D100() = %d, expected 1-100", result)
		}
	}
}

func TestPercentBounds(t *testing.T) {
	r := New(5)
	for i := 0; i < 100; i++ {
		if Percent(r, 0) {
			t.Fatal("Percent(0) returned true")
		}
		if !Percent(r, 100) {
			t.Fatal("Percent(100) returned false")
		}
	}
}

func TestWeighted(t *testing.T) {
	r := New(9)

	tests := []struct {
		name    string
		weights []int
		allowed map[int]bool
	}{
		{"single", []int{0, 5, 0}, map[int]bool{1: true}},
		{"negative ignored", []int{-3, 0, 2}, map[int]bool{2: true}},
		{"mixed", []int{1, 1}, map[int]bool{0: true, 1: true}},
	}

	for _, tc := range tests {
		for i := 0; i < 50; i++ {
			got := Weighted(r, tc.weights)
			if !tc.allowed[got] {
				t.Errorf("%s: Weighted = %d, not allowed", tc.name, got)
			}
		}
	}

	if got := Weighted(r, []int{0, 0}); got != -1 {
		t.Errorf("Weighted(zero weights) = %d, want -1", got)
	}
}

func TestShuffleKeepsElements(t *testing.T) {
	r := New(11)
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(r, len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	sum := 0
	for _, v := range items {
		sum += v
	}
	if sum != 36 {
		t.Errorf("sum after shuffle = %d, want 36", sum)
	}
}
