// Package graph builds immutable constraint graphs from peer relations.
//
// A Relation enumerates, for a puzzle family, every pair of nodes whose
// values must differ. New freezes that enumeration into a Graph: a stable,
// deduplicated edge list over a fixed node set. The Graph carries structure
// only; colorings (per-node values) travel separately and are validated
// with CheckColoring.
package graph

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

var (
	// ErrInvalidRelation is returned by New when a relation enumerates a
	// malformed pair (self-loop, duplicate or out-of-range node).
	ErrInvalidRelation = errors.New("invalid relation")

	// ErrInvalidPuzzle is returned by CheckColoring when a node value is
	// unfilled or out of range.
	ErrInvalidPuzzle = errors.New("invalid puzzle")

	// ErrEdgeNotInGraph reports a challenge naming a pair that is not an
	// edge, endpoints out of range included.
	ErrEdgeNotInGraph = errors.New("edge not in graph")
)

// Edge is an unordered pair of node indices whose values must differ.
type Edge struct {
	A uint32
	B uint32
}

func (e Edge) canonical() Edge {
	if e.A > e.B {
		return Edge{A: e.B, B: e.A}
	}
	return e
}

// A Relation enumerates the must-differ pairs of a puzzle family.
//
// Pairs must be deterministic: the edge order of the resulting graph, and
// with it the default challenge count of a verification pass, follows it.
type Relation interface {
	// Nodes returns the number of nodes.
	Nodes() int

	// Colors returns the size of the value alphabet; valid node values are
	// 1 through Colors.
	Colors() int

	// Pairs returns the must-differ node pairs in enumeration order.
	Pairs() [][2]int
}

// Graph is an immutable constraint graph; safe for concurrent use.
type Graph struct {
	nbNodes  int
	nbColors int
	edges    []Edge
	index    map[Edge]int // canonical edge to position in edges
	degrees  []int
}

// New freezes rel into a Graph. It fails if rel enumerates a self-loop, an
// out-of-range node or the same pair twice; a given relation therefore
// always produces the same graph with the same edge order.
func New(rel Relation) (*Graph, error) {
	n := rel.Nodes()
	if n <= 0 {
		return nil, fmt.Errorf("%w: node count %d", ErrInvalidRelation, n)
	}
	if rel.Colors() < 2 {
		return nil, fmt.Errorf("%w: color count %d", ErrInvalidRelation, rel.Colors())
	}
	pairs := rel.Pairs()
	g := &Graph{
		nbNodes:  n,
		nbColors: rel.Colors(),
		edges:    make([]Edge, 0, len(pairs)),
		index:    make(map[Edge]int, len(pairs)),
		degrees:  make([]int, n),
	}
	seen := bitset.New(uint(n) * uint(n))
	for _, p := range pairs {
		a, b := p[0], p[1]
		if a < 0 || a >= n || b < 0 || b >= n {
			return nil, fmt.Errorf("%w: pair (%d,%d) out of range [0,%d)", ErrInvalidRelation, a, b, n)
		}
		if a == b {
			return nil, fmt.Errorf("%w: self-loop on node %d", ErrInvalidRelation, a)
		}
		e := Edge{A: uint32(a), B: uint32(b)}
		c := e.canonical()
		bit := uint(c.A)*uint(n) + uint(c.B)
		if seen.Test(bit) {
			return nil, fmt.Errorf("%w: duplicate pair (%d,%d)", ErrInvalidRelation, a, b)
		}
		seen.Set(bit)
		g.index[c] = len(g.edges)
		g.edges = append(g.edges, e)
		g.degrees[a]++
		g.degrees[b]++
	}
	return g, nil
}

// NbNodes returns the number of nodes.
func (g *Graph) NbNodes() int { return g.nbNodes }

// NbColors returns the size of the value alphabet.
func (g *Graph) NbColors() int { return g.nbColors }

// NbEdges returns the number of edges.
func (g *Graph) NbEdges() int { return len(g.edges) }

// Edge returns the i-th edge in enumeration order.
func (g *Graph) Edge(i int) Edge { return g.edges[i] }

// Edges returns a copy of the edge list in enumeration order.
func (g *Graph) Edges() []Edge {
	r := make([]Edge, len(g.edges))
	copy(r, g.edges)
	return r
}

// Degree returns the number of peers of node i.
func (g *Graph) Degree(i int) int { return g.degrees[i] }

// EdgeIndex returns the position of e in the edge list, ignoring endpoint
// order. ok is false when e is not an edge of the graph.
func (g *Graph) EdgeIndex(e Edge) (int, bool) {
	if int(e.A) >= g.nbNodes || int(e.B) >= g.nbNodes {
		return 0, false
	}
	i, ok := g.index[e.canonical()]
	return i, ok
}

// Contains reports whether e is an edge of the graph, ignoring endpoint order.
func (g *Graph) Contains(e Edge) bool {
	_, ok := g.EdgeIndex(e)
	return ok
}
