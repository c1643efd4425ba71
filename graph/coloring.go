package graph

import "fmt"

// CheckColoring validates that values assigns one in-range value to every
// node of g. It does not check properness: a prover may well hold an
// improper coloring, and catching that is the verifier's job.
func CheckColoring(g *Graph, values []uint8) error {
	if len(values) != g.nbNodes {
		return fmt.Errorf("%w: %d values for %d nodes", ErrInvalidPuzzle, len(values), g.nbNodes)
	}
	for i, v := range values {
		if v == 0 {
			return fmt.Errorf("%w: node %d unfilled", ErrInvalidPuzzle, i)
		}
		if int(v) > g.nbColors {
			return fmt.Errorf("%w: node %d value %d out of range [1,%d]", ErrInvalidPuzzle, i, v, g.nbColors)
		}
	}
	return nil
}

// IsProper reports whether values is a proper coloring of g, that is every
// edge joins two distinct values. Intended for tests and diagnostics; the
// protocol itself never needs it.
func IsProper(g *Graph, values []uint8) bool {
	if CheckColoring(g, values) != nil {
		return false
	}
	for _, e := range g.edges {
		if values[e.A] == values[e.B] {
			return false
		}
	}
	return true
}
