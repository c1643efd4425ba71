// Package prover implements the committing side of the protocol: rounds,
// sessions and the server-side session registry.
//
// A session holds the statement (graph plus coloring) and walks a two-state
// cycle. Commit generates a batch of independent rounds and moves the
// session to Ready; Reveal answers exactly one challenge per round,
// consumes the batch and moves the session back to Idle. Rounds are
// single-use: each fresh permutation and key set answers one challenge,
// then its remaining material is wiped.
package prover

import (
	"errors"
	"fmt"
	"io"

	"github.com/consensys/chroma/commitment"
	"github.com/consensys/chroma/graph"
	"github.com/consensys/chroma/internal/debug"
	"github.com/consensys/chroma/internal/randutil"
	"github.com/consensys/chroma/wire"
)

// ErrRoundSpent is returned by Reveal when a round already answered a
// challenge.
var ErrRoundSpent = errors.New("round already spent")

// Round blinds one coloring under a fresh color permutation and fresh
// per-node keys. Not safe for concurrent use; Session provides locking.
type Round struct {
	scheme   commitment.Scheme
	g        *graph.Graph
	permuted []uint8  // image of the coloring under this round's permutation
	keys     [][]byte // per-node commitment keys
	digests  [][]byte
	spent    bool
}

// NewRound draws a permutation of the color alphabet and one key per node
// from rng, then commits to the permuted coloring of g node by node.
func NewRound(g *graph.Graph, values []uint8, scheme commitment.Scheme, rng io.Reader) (*Round, error) {
	r, err := draw(g, values, scheme, rng)
	if err != nil {
		return nil, err
	}
	r.commit()
	return r, nil
}

// draw consumes rng; commit hashes. Session keeps the two apart so that
// randomness is drawn sequentially while hashing runs in parallel.
func draw(g *graph.Graph, values []uint8, scheme commitment.Scheme, rng io.Reader) (*Round, error) {
	if err := graph.CheckColoring(g, values); err != nil {
		return nil, err
	}
	sigma, err := randutil.Perm(rng, g.NbColors())
	if err != nil {
		return nil, fmt.Errorf("prover: drawing permutation: %w", err)
	}
	n := g.NbNodes()
	r := &Round{
		scheme:   scheme,
		g:        g,
		permuted: make([]uint8, n),
		keys:     make([][]byte, n),
	}
	for i := 0; i < n; i++ {
		key, err := randutil.Bytes(rng, scheme.KeySize())
		if err != nil {
			return nil, fmt.Errorf("prover: drawing key for node %d: %w", i, err)
		}
		r.permuted[i] = sigma[values[i]-1]
		r.keys[i] = key
	}
	return r, nil
}

func (r *Round) commit() {
	n := len(r.permuted)
	r.digests = make([][]byte, n)
	for i := 0; i < n; i++ {
		r.digests[i] = r.scheme.Commit(r.permuted[i], r.keys[i])
	}
	debug.Assert(len(r.digests) == r.g.NbNodes())
}

// Commitments returns the per-node digests in node order. The returned
// slices are shared and must not be modified.
func (r *Round) Commitments() [][]byte { return r.digests }

// Spent reports whether the round already answered a challenge.
func (r *Round) Spent() bool { return r.spent }

// Reveal opens the two endpoints of e and spends the round; every other
// key is wiped. A second call fails with ErrRoundSpent. An edge that is
// not part of the graph fails with graph.ErrEdgeNotInGraph and leaves the
// round live.
func (r *Round) Reveal(e graph.Edge) (wire.Opening, error) {
	if r.spent {
		return wire.Opening{}, ErrRoundSpent
	}
	if !r.g.Contains(e) {
		return wire.Opening{}, fmt.Errorf("%w: (%d,%d)", graph.ErrEdgeNotInGraph, e.A, e.B)
	}
	r.spent = true
	op := wire.Opening{
		ValueA: r.permuted[e.A],
		KeyA:   r.keys[e.A],
		ValueB: r.permuted[e.B],
		KeyB:   r.keys[e.B],
	}
	r.wipe(e)
	return op, nil
}

// wipe zeroes all key material except the two endpoints just revealed.
func (r *Round) wipe(keep graph.Edge) {
	for i := range r.keys {
		if uint32(i) == keep.A || uint32(i) == keep.B {
			continue
		}
		for j := range r.keys[i] {
			r.keys[i][j] = 0
		}
		r.keys[i] = nil
		r.permuted[i] = 0
	}
}
