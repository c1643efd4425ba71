package prover

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/consensys/chroma/commitment"
	"github.com/consensys/chroma/graph"
	"github.com/consensys/chroma/sudoku"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(sudoku.Relation())
	require.NoError(t, err)
	return g
}

func testSession(t *testing.T, seed uint64, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(seed)))}, opts...)
	s, err := NewSession(testGraph(t), sudoku.DemoSolution().Values(), opts...)
	require.NoError(t, err)
	return s
}

func TestOpeningsRecommitAndDiffer(t *testing.T) {
	s := testSession(t, 1)
	g := s.Graph()

	batches, err := s.Commit(g.NbEdges())
	require.NoError(t, err)
	require.Len(t, batches, 810)

	selections := g.Edges()
	openings, err := s.Reveal(selections)
	require.NoError(t, err)
	require.Len(t, openings, 810)

	scheme := s.Scheme()
	for i, op := range openings {
		e := selections[i]
		require.NotEqual(t, op.ValueA, op.ValueB, "edge %d (%d,%d)", i, e.A, e.B)
		require.True(t, commitment.Open(scheme, batches[i][e.A], op.ValueA, op.KeyA), "edge %d endpoint A", i)
		require.True(t, commitment.Open(scheme, batches[i][e.B], op.ValueB, op.KeyB), "edge %d endpoint B", i)
	}
}

func TestRoundsDrawFreshRandomness(t *testing.T) {
	g := testGraph(t)
	values := sudoku.DemoSolution().Values()
	scheme, err := commitment.SHA256.New()
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	const n = 32
	permutations := make(map[string]struct{})
	keys := make(map[string]struct{})
	digests := make(map[string]struct{})
	for i := 0; i < n; i++ {
		r, err := NewRound(g, values, scheme, rng)
		require.NoError(t, err)
		permutations[string(r.permuted)] = struct{}{}
		for _, k := range r.keys {
			keys[string(k)] = struct{}{}
		}
		digests[string(r.digests[0])] = struct{}{}
	}

	require.Len(t, permutations, n)
	require.Len(t, keys, n*g.NbNodes())
	require.Len(t, digests, n)
}

func TestRoundIsSingleUse(t *testing.T) {
	g := testGraph(t)
	scheme, err := commitment.SHA256.New()
	require.NoError(t, err)
	r, err := NewRound(g, sudoku.DemoSolution().Values(), scheme, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	e := g.Edge(0)
	_, err = r.Reveal(e)
	require.NoError(t, err)
	require.True(t, r.Spent())

	_, err = r.Reveal(e)
	require.ErrorIs(t, err, ErrRoundSpent)

	_, err = r.Reveal(g.Edge(1))
	require.ErrorIs(t, err, ErrRoundSpent)
}

func TestRoundRejectsForeignEdges(t *testing.T) {
	g := testGraph(t)
	scheme, err := commitment.SHA256.New()
	require.NoError(t, err)
	r, err := NewRound(g, sudoku.DemoSolution().Values(), scheme, rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	// cells 0 and 80 share no row, column or sub-grid
	_, err = r.Reveal(graph.Edge{A: 0, B: 80})
	require.ErrorIs(t, err, graph.ErrEdgeNotInGraph)
	require.False(t, r.Spent())

	_, err = r.Reveal(graph.Edge{A: 0, B: 200})
	require.ErrorIs(t, err, graph.ErrEdgeNotInGraph)

	_, err = r.Reveal(g.Edge(0))
	require.NoError(t, err)
}

func TestRevealWipesUnopenedKeys(t *testing.T) {
	g := testGraph(t)
	scheme, err := commitment.SHA256.New()
	require.NoError(t, err)
	r, err := NewRound(g, sudoku.DemoSolution().Values(), scheme, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	e := g.Edge(0) // (0, 1)
	_, err = r.Reveal(e)
	require.NoError(t, err)

	for i := range r.keys {
		if uint32(i) == e.A || uint32(i) == e.B {
			require.NotNil(t, r.keys[i])
			continue
		}
		require.Nil(t, r.keys[i], "node %d key survived reveal", i)
		require.Zero(t, r.permuted[i], "node %d value survived reveal", i)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := testSession(t, 2)
	g := s.Graph()

	state, n := s.State()
	require.Equal(t, Idle, state)
	require.Zero(t, n)

	_, err := s.Reveal([]graph.Edge{})
	require.ErrorIs(t, err, ErrNoPendingBatch)

	_, err = s.Commit(0)
	require.ErrorIs(t, err, ErrInvalidCount)
	_, err = s.Commit(-4)
	require.ErrorIs(t, err, ErrInvalidCount)
	_, err = s.Commit(4*g.NbEdges() + 1)
	require.ErrorIs(t, err, ErrInvalidCount)

	batches, err := s.Commit(3)
	require.NoError(t, err)
	require.Len(t, batches, 3)

	state, n = s.State()
	require.Equal(t, Ready, state)
	require.Equal(t, 3, n)

	_, err = s.Reveal([]graph.Edge{g.Edge(0), g.Edge(1)})
	require.ErrorIs(t, err, ErrBatchSizeMismatch)

	// the failed reveal left the batch pending
	state, n = s.State()
	require.Equal(t, Ready, state)
	require.Equal(t, 3, n)

	openings, err := s.Reveal([]graph.Edge{g.Edge(0), g.Edge(5), g.Edge(7)})
	require.NoError(t, err)
	require.Len(t, openings, 3)

	state, _ = s.State()
	require.Equal(t, Idle, state)

	_, err = s.Reveal([]graph.Edge{g.Edge(0), g.Edge(5), g.Edge(7)})
	require.ErrorIs(t, err, ErrNoPendingBatch)
}

func TestCommitReplacesPendingBatch(t *testing.T) {
	s := testSession(t, 3)
	g := s.Graph()

	first, err := s.Commit(3)
	require.NoError(t, err)

	second, err := s.Commit(2)
	require.NoError(t, err)
	require.NotEqual(t, first[0][0], second[0][0])

	state, n := s.State()
	require.Equal(t, Ready, state)
	require.Equal(t, 2, n)

	_, err = s.Reveal([]graph.Edge{g.Edge(0), g.Edge(1)})
	require.NoError(t, err)
}

func TestRevealValidatesBeforeSpending(t *testing.T) {
	s := testSession(t, 6)
	g := s.Graph()

	_, err := s.Commit(2)
	require.NoError(t, err)

	_, err = s.Reveal([]graph.Edge{g.Edge(0), {A: 0, B: 80}})
	require.ErrorIs(t, err, graph.ErrEdgeNotInGraph)

	state, n := s.State()
	require.Equal(t, Ready, state)
	require.Equal(t, 2, n)

	_, err = s.Reveal([]graph.Edge{g.Edge(0), g.Edge(1)})
	require.NoError(t, err)
}

func TestNewSessionValidation(t *testing.T) {
	g := testGraph(t)
	solution := sudoku.DemoSolution().Values()

	_, err := NewSession(g, []uint8{1, 2, 3})
	require.ErrorIs(t, err, graph.ErrInvalidPuzzle)

	// improper colorings are accepted here; the verifier rejects them later
	_, err = NewSession(g, bytes.Repeat([]byte{5}, 81))
	require.NoError(t, err)

	_, err = NewSession(g, solution, WithScheme(commitment.UNKNOWN))
	require.Error(t, err)

	_, err = NewSession(g, solution, WithRand(nil))
	require.Error(t, err)

	_, err = NewSession(g, solution, WithMaxRounds(-1))
	require.Error(t, err)
}

func TestSeededSessionsReproduceBatches(t *testing.T) {
	b1, err := testSession(t, 42).Commit(2)
	require.NoError(t, err)
	b2, err := testSession(t, 42).Commit(2)
	require.NoError(t, err)
	b3, err := testSession(t, 43).Commit(2)
	require.NoError(t, err)

	require.Equal(t, b1, b2)
	require.NotEqual(t, b1, b3)
}
