package galaxy

import "github.com/lawnchairsociety/galaxygen/internal/rng"

// NamePool hands out random names without repeats. Once every name is taken
// the pool starts over.
type NamePool struct {
	names []string
	taken []bool
	left  int
}

// NewNamePool creates a pool over names
func NewNamePool(names []string) *NamePool {
	return &NamePool{
		names: names,
		taken: make([]bool, len(names)),
		left:  len(names),
	}
}

// Next draws a name. It returns "" for an empty pool.
func (p *NamePool) Next(src rng.Source) string {
	if len(p.names) == 0 {
		return ""
	}
	if p.left == 0 {
		for i := range p.taken {
			p.taken[i] = false
		}
		p.left = len(p.names)
	}

	n := src.Next(p.left)
	for i, taken := range p.taken {
		if taken {
			continue
		}
		if n == 0 {
			p.taken[i] = true
			p.left--
			return p.names[i]
		}
		n--
	}
	return ""
}
