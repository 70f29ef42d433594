package warps

import (
	"math"
	"sort"

	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
)

// link is a candidate warp between stars a < b
type link struct {
	a, b     int
	wormhole bool
}

func newLink(a, b int) link {
	if a > b {
		a, b = b, a
	}
	return link{a: a, b: b}
}

// scope is a set of stars that must stay connected through the links whose
// endpoints both belong to it.
type scope struct {
	name    string
	stars   []int
	members []bool
}

func newScope(name string, n int, stars []int) scope {
	s := scope{name: name, stars: stars, members: make([]bool, n)}
	for _, id := range stars {
		s.members[id] = true
	}
	return s
}

func (s scope) contains(l link) bool {
	return s.members[l.a] && s.members[l.b]
}

// network is the mutable link set worked on by the two passes
type network struct {
	g      *galaxy.Galaxy
	links  []link
	index  map[[2]int]bool
	scopes []scope
}

func newNetwork(g *galaxy.Galaxy) *network {
	return &network{g: g, index: make(map[[2]int]bool)}
}

func (n *network) has(a, b int) bool {
	l := newLink(a, b)
	return n.index[[2]int{l.a, l.b}]
}

// add inserts a link unless it already exists
func (n *network) add(l link) bool {
	key := [2]int{l.a, l.b}
	if n.index[key] {
		return false
	}
	n.index[key] = true
	n.links = append(n.links, l)
	return true
}

// remove drops the links for which drop returns true and returns them
func (n *network) remove(drop func(int, link) bool) []link {
	var removed []link
	kept := n.links[:0]
	for i, l := range n.links {
		if drop(i, l) {
			removed = append(removed, l)
			delete(n.index, [2]int{l.a, l.b})
			continue
		}
		kept = append(kept, l)
	}
	n.links = kept
	return removed
}

func (n *network) removeAt(i int) link {
	return n.remove(func(j int, _ link) bool { return j == i })[0]
}

// adjacency lists neighbor and link index per star, restricted to s
func (n *network) adjacency(s scope) [][][2]int {
	adj := make([][][2]int, len(n.g.Stars))
	for i, l := range n.links {
		if !s.contains(l) {
			continue
		}
		adj[l.a] = append(adj[l.a], [2]int{l.b, i})
		adj[l.b] = append(adj[l.b], [2]int{l.a, i})
	}
	return adj
}

// blocks returns the connected components of s, in order of first member
func (n *network) blocks(s scope) [][]int {
	adj := n.adjacency(s)
	seen := make([]bool, len(n.g.Stars))
	var out [][]int
	for _, start := range s.stars {
		if seen[start] {
			continue
		}
		seen[start] = true
		block := []int{start}
		for i := 0; i < len(block); i++ {
			for _, e := range adj[block[i]] {
				if !seen[e[0]] {
					seen[e[0]] = true
					block = append(block, e[0])
				}
			}
		}
		out = append(out, block)
	}
	return out
}

func (n *network) connected(s scope) bool {
	return len(s.stars) <= 1 || len(n.blocks(s)) == 1
}

// fullyConnected checks every registered scope
func (n *network) fullyConnected() bool {
	for _, s := range n.scopes {
		if !n.connected(s) {
			return false
		}
	}
	return true
}

// forceConnect links the closest pair of stars across the two largest blocks
// of s until a single block remains. It returns the number of links added.
func (n *network) forceConnect(s scope) int {
	added := 0
	for {
		blocks := n.blocks(s)
		if len(blocks) <= 1 {
			return added
		}
		sort.SliceStable(blocks, func(i, j int) bool { return len(blocks[i]) > len(blocks[j]) })

		a, b := closestPair(n.g, blocks[0], blocks[1])
		l := newLink(a, b)
		l.wormhole = n.g.IsWormhole(a, b)
		n.add(l)
		added++
	}
}

func closestPair(g *galaxy.Galaxy, xs, ys []int) (int, int) {
	bestA, bestB := xs[0], ys[0]
	best := math.Inf(1)
	for _, a := range xs {
		for _, b := range ys {
			if d := g.Distance(a, b); d < best {
				best, bestA, bestB = d, a, b
			}
		}
	}
	return bestA, bestB
}

// critical marks every link whose removal would disconnect a scope. When the
// network is not fully connected to begin with, every link is critical.
//
// A link is critical exactly when it is a bridge of some scope's subgraph, so
// bridges are found once per scope instead of re-checking connectivity for
// every link.
func (n *network) critical() []bool {
	crit := make([]bool, len(n.links))
	if !n.fullyConnected() {
		for i := range crit {
			crit[i] = true
		}
		return crit
	}
	for _, s := range n.scopes {
		n.markBridges(s, crit)
	}
	return crit
}

// markBridges runs Tarjan's bridge search over the subgraph of s
func (n *network) markBridges(s scope, crit []bool) {
	adj := n.adjacency(s)
	order := make([]int, len(n.g.Stars))
	low := make([]int, len(n.g.Stars))
	for i := range order {
		order[i] = -1
	}
	counter := 0

	var visit func(v, viaLink int)
	visit = func(v, viaLink int) {
		order[v] = counter
		low[v] = counter
		counter++
		for _, e := range adj[v] {
			w, li := e[0], e[1]
			if li == viaLink {
				continue
			}
			if order[w] < 0 {
				visit(w, li)
				if low[w] < low[v] {
					low[v] = low[w]
				}
				if low[w] > order[v] {
					crit[li] = true
				}
			} else if order[w] < low[v] {
				low[v] = order[w]
			}
		}
	}

	for _, v := range s.stars {
		if order[v] < 0 {
			visit(v, -1)
		}
	}
}

// crossings returns, per link index, the indices of the links it crosses.
// Links sharing an endpoint never cross.
func (n *network) crossings() [][]int {
	out := make([][]int, len(n.links))
	for i := 0; i < len(n.links); i++ {
		li := n.links[i]
		a, b := n.g.Stars[li.a].Position, n.g.Stars[li.b].Position
		for j := i + 1; j < len(n.links); j++ {
			lj := n.links[j]
			if li.a == lj.a || li.a == lj.b || li.b == lj.a || li.b == lj.b {
				continue
			}
			c, d := n.g.Stars[lj.a].Position, n.g.Stars[lj.b].Position
			if intersects(a, b, c, d) {
				out[i] = append(out[i], j)
				out[j] = append(out[j], i)
			}
		}
	}
	return out
}

// averageDegree is 2·normal links / stars
func (n *network) averageDegree() float64 {
	if len(n.g.Stars) == 0 {
		return 0
	}
	count := 0
	for _, l := range n.links {
		if !l.wormhole {
			count++
		}
	}
	return 2 * float64(count) / float64(len(n.g.Stars))
}

func (n *network) wormholes() int {
	count := 0
	for _, l := range n.links {
		if l.wormhole {
			count++
		}
	}
	return count
}
