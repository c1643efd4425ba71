// Package chroma implements an interactive zero-knowledge proof system for
// graph-coloring statements. A prover holding a proper coloring of a
// constraint graph convinces a verifier of that fact, one randomly chosen
// edge at a time, without ever revealing the coloring itself.
//
// chroma supports the following commitment schemes:
//   - SHA256
//   - BLAKE2B
//   - MIMC_BN254
//
// A 9x9 sudoku solution is shipped as the reference statement: the grid
// reduces to a 9-coloring of an 81-node graph with 810 must-differ edges.
// Any puzzle expressible as a graph coloring can be plugged in through
// the graph.Relation interface.
package chroma

import (
	"github.com/blang/semver/v4"

	"github.com/consensys/chroma/commitment"
)

var Version = semver.MustParse("0.3.0")

// Schemes returns the commitment schemes supported by chroma.
func Schemes() []commitment.SchemeID {
	return commitment.Implemented()
}
