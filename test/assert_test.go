package test

import (
	"testing"

	"github.com/consensys/chroma/commitment"
	"github.com/consensys/chroma/graph"
	"github.com/consensys/chroma/sudoku"
	"github.com/consensys/chroma/verifier"
)

func TestProverSucceededWithDemoSolution(t *testing.T) {
	assert := NewAssert(t)

	g, err := graph.New(sudoku.Relation())
	assert.NoError(err)

	// every implemented scheme carries the full conversation
	assert.ProverSucceeded(g, sudoku.DemoSolution().Values())
}

func TestProverFailedWithCorruptedSolution(t *testing.T) {
	assert := NewAssert(t)

	g, err := graph.New(sudoku.Relation())
	assert.NoError(err)

	bad := sudoku.DemoSolution()
	bad.Set(0, 0, bad.Value(1, 0))
	assert.ProverFailed(g, bad.Values(), verifier.RejectEqualValues,
		WithSchemes(commitment.SHA256))
}

func TestAnchorsBindTheDecoy(t *testing.T) {
	assert := NewAssert(t)

	// the decoy is a proper coloring, so the bare statement accepts it
	plain, err := graph.New(sudoku.Relation())
	assert.NoError(err)
	decoy := sudoku.DecoySolution()
	assert.ProverSucceeded(plain, decoy.Values(), WithSchemes(commitment.SHA256))

	// anchoring the demo givens is what exposes it
	anchored, err := graph.New(sudoku.AnchoredRelation(sudoku.DemoPuzzle()))
	assert.NoError(err)
	assert.ProverFailed(anchored, sudoku.AnchoredValues(decoy), verifier.RejectEqualValues,
		WithSchemes(commitment.SHA256))
}
