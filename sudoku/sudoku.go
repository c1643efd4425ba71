// Package sudoku maps 9x9 sudoku grids onto graph-coloring statements.
//
// [Sudoku] is a popular puzzle to fill a 9x9 grid with digits so that each
// column, each row, and each of the nine 3x3 sub-grids that compose the grid
// contain all of the digits from 1 to 9. A filled grid is exactly a proper
// 9-coloring of the 81-cell graph whose edges join every pair of cells that
// share a row, a column or a sub-grid; that reduction is what this package
// provides, along with grid parsing and rendering.
//
// [Sudoku]: https://en.wikipedia.org/wiki/Sudoku
package sudoku

import (
	"fmt"
	"strings"
)

// Cell addresses a grid cell by column (X) and row (Y), both 0-based.
type Cell struct {
	X int
	Y int
}

// Grid is a 9x9 sudoku grid. Cell values are 1 through 9; zero marks a
// blank. Grids serve both as puzzles (with blanks) and as solutions.
type Grid struct {
	cells  [9][9]uint8 // [row][column]
	givens []Cell
}

// Parse reads a grid from a 9-line text block. Digits 1-9 fill a cell;
// '_', '.' and '0' leave it blank; spaces, tabs and empty lines are
// ignored. Every non-blank cell is recorded as a given.
func Parse(s string) (*Grid, error) {
	g := &Grid{}
	y := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if y == 9 {
			return nil, fmt.Errorf("sudoku: more than 9 rows")
		}
		x := 0
		for _, r := range line {
			if r == ' ' || r == '\t' {
				continue
			}
			if x == 9 {
				return nil, fmt.Errorf("sudoku: row %d has more than 9 cells", y)
			}
			switch {
			case r == '_' || r == '.' || r == '0':
				// blank
			case r >= '1' && r <= '9':
				g.cells[y][x] = uint8(r - '0')
				g.givens = append(g.givens, Cell{X: x, Y: y})
			default:
				return nil, fmt.Errorf("sudoku: row %d: unexpected character %q", y, r)
			}
			x++
		}
		if x != 9 {
			return nil, fmt.Errorf("sudoku: row %d has %d cells, want 9", y, x)
		}
		y++
	}
	if y != 9 {
		return nil, fmt.Errorf("sudoku: got %d rows, want 9", y)
	}
	return g, nil
}

// MustParse is like Parse but panics on error. It simplifies fixture
// declarations.
func MustParse(s string) *Grid {
	g, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return g
}

// Value returns the value of the cell at column x, row y; zero means blank.
func (g *Grid) Value(x, y int) uint8 {
	return g.cells[y][x]
}

// Set fills the cell at column x, row y with v. It does not touch the given
// list, so overwriting a parsed cell keeps it a given.
func (g *Grid) Set(x, y int, v uint8) {
	g.cells[y][x] = v
}

// Givens returns the cells that were filled when the grid was parsed.
func (g *Grid) Givens() []Cell {
	r := make([]Cell, len(g.givens))
	copy(r, g.givens)
	return r
}

// Filled reports whether every cell holds a value.
func (g *Grid) Filled() bool {
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			if g.cells[y][x] == 0 {
				return false
			}
		}
	}
	return true
}

// Solved reports whether the grid is filled and every row, column and
// sub-grid contains each digit 1 through 9 exactly once.
func (g *Grid) Solved() bool {
	const full = 0x3fe // bits 1..9
	for i := 0; i < 9; i++ {
		var row, col, box uint16
		for j := 0; j < 9; j++ {
			row |= 1 << g.cells[i][j]
			col |= 1 << g.cells[j][i]
			box |= 1 << g.cells[i/3*3+j/3][i%3*3+j%3]
		}
		if row != full || col != full || box != full {
			return false
		}
	}
	return true
}

// Values returns the 81 cell values in row-major order, the node order of
// the coloring statement.
func (g *Grid) Values() []uint8 {
	r := make([]uint8, 0, 81)
	for y := 0; y < 9; y++ {
		r = append(r, g.cells[y][:]...)
	}
	return r
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{cells: g.cells}
	c.givens = make([]Cell, len(g.givens))
	copy(c.givens, g.givens)
	return c
}

// String renders the grid with box-drawing characters, blanks left empty.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.WriteString("╔═══╤═══╤═══╦═══╤═══╤═══╦═══╤═══╤═══╗\n")
	for y := 0; y < 9; y++ {
		if y == 3 || y == 6 {
			sb.WriteString("╠═══╪═══╪═══╬═══╪═══╪═══╬═══╪═══╪═══╣\n")
		} else if y > 0 {
			sb.WriteString("╟───┼───┼───╫───┼───┼───╫───┼───┼───╢\n")
		}
		sb.WriteString("║")
		for x := 0; x < 9; x++ {
			if x == 3 || x == 6 {
				sb.WriteString("║")
			} else if x > 0 {
				sb.WriteString("│")
			}
			if v := g.cells[y][x]; v == 0 {
				sb.WriteString("   ")
			} else {
				fmt.Fprintf(&sb, " %d ", v)
			}
		}
		sb.WriteString("║\n")
	}
	sb.WriteString("╚═══╧═══╧═══╩═══╧═══╧═══╩═══╧═══╧═══╝")
	return sb.String()
}
