package sudoku

import "github.com/consensys/chroma/graph"

// Node count of the plain statement: one node per cell. The anchored
// statement adds nine value anchors at indices 81 through 89, where anchor
// 80+v permanently holds value v.
const (
	nbCells   = 81
	nbAnchors = 9
)

// Relation returns the peer relation of the plain 9-coloring statement: 81
// cell nodes and one must-differ pair per row, column and sub-grid peer,
// 810 pairs in all.
//
// Pairs are enumerated cell by cell in row-major order; each cell first
// lists its row partners to the right, then its column partners below, then
// its sub-grid partners in lower rows and different columns. Partners above
// or to the left were already listed by an earlier cell, so every pair
// appears exactly once.
func Relation() graph.Relation {
	return plainRelation{}
}

// AnchoredRelation returns the relation of the anchored statement for
// puzzle p: the plain relation, nine anchor nodes, and for each given cell
// a pair with every anchor except the one holding the given value. A
// coloring satisfies those pairs only when the cell holds exactly its given
// value, which binds the proof to the published puzzle.
func AnchoredRelation(p *Grid) graph.Relation {
	return anchoredRelation{cells: p.cells, givens: p.Givens()}
}

// AnchoredValues extends a solution to the anchored node set, appending the
// nine fixed anchor values to the 81 cell values.
func AnchoredValues(solution *Grid) []uint8 {
	values := solution.Values()
	for v := uint8(1); v <= 9; v++ {
		values = append(values, v)
	}
	return values
}

type plainRelation struct{}

func (plainRelation) Nodes() int  { return nbCells }
func (plainRelation) Colors() int { return 9 }

func (plainRelation) Pairs() [][2]int {
	pairs := make([][2]int, 0, 810)
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			n := 9*y + x

			for i := x + 1; i < 9; i++ {
				pairs = append(pairs, [2]int{n, 9*y + i})
			}

			for j := y + 1; j < 9; j++ {
				pairs = append(pairs, [2]int{n, 9*j + x})
			}

			// sub-grid partners not sharing a row or column with (x, y)
			for j := y + 1; j < (y+3)/3*3; j++ {
				for i := x / 3 * 3; i < x/3*3+3; i++ {
					if i == x {
						continue
					}
					pairs = append(pairs, [2]int{n, 9*j + i})
				}
			}
		}
	}
	return pairs
}

type anchoredRelation struct {
	cells  [9][9]uint8
	givens []Cell
}

func (r anchoredRelation) Nodes() int  { return nbCells + nbAnchors }
func (r anchoredRelation) Colors() int { return 9 }

func (r anchoredRelation) Pairs() [][2]int {
	pairs := plainRelation{}.Pairs()
	for _, c := range r.givens {
		n := 9*c.Y + c.X
		value := r.cells[c.Y][c.X]
		for v := 1; v <= 9; v++ {
			if uint8(v) == value {
				continue
			}
			pairs = append(pairs, [2]int{n, 80 + v})
		}
	}
	return pairs
}
