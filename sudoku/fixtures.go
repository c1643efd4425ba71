package sudoku

// DemoPuzzle returns the puzzle served in demo mode.
func DemoPuzzle() *Grid {
	return MustParse(`
		4 _ _ _ 9 6 2 _ 8
		3 _ 8 1 _ _ _ 9 _
		9 6 1 _ _ _ 7 _ _
		_ _ 3 4 _ 5 9 6 _
		6 _ _ 9 2 8 _ 7 4
		_ _ 4 7 _ _ 1 _ _
		_ _ 9 _ _ 2 _ _ 1
		_ _ _ 8 3 1 6 4 _
		_ _ _ _ 4 _ _ 2 7
	`)
}

// DemoSolution returns the solution of DemoPuzzle.
func DemoSolution() *Grid {
	return MustParse(`
		4 5 7 3 9 6 2 1 8
		3 2 8 1 5 7 4 9 6
		9 6 1 2 8 4 7 5 3
		7 8 3 4 1 5 9 6 2
		6 1 5 9 2 8 3 7 4
		2 9 4 7 6 3 1 8 5
		8 4 9 6 7 2 5 3 1
		5 7 2 8 3 1 6 4 9
		1 3 6 5 4 9 8 2 7
	`)
}

// DecoySolution returns a filled grid that satisfies every row, column and
// sub-grid constraint yet contradicts DemoPuzzle's givens. The plain
// relation accepts it; only the anchored relation tells it apart.
func DecoySolution() *Grid {
	return MustParse(`
		1 2 3 4 5 6 7 8 9
		4 5 6 7 8 9 1 2 3
		7 8 9 1 2 3 4 5 6
		2 3 4 5 6 7 8 9 1
		5 6 7 8 9 1 2 3 4
		8 9 1 2 3 4 5 6 7
		3 4 5 6 7 8 9 1 2
		6 7 8 9 1 2 3 4 5
		9 1 2 3 4 5 6 7 8
	`)
}
