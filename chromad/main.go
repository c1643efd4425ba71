// chromad hosts a prover for a sudoku statement and drives verification
// passes against it.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/consensys/chroma"
	"github.com/consensys/chroma/graph"
	"github.com/consensys/chroma/sudoku"
)

// flags shared between serve and verify: both ends must agree on the
// public statement.
var (
	fDebug      bool
	fPuzzlePath string
	fDemo       bool
	fAnchored   bool
)

var rootCmd = &cobra.Command{
	Use:   "chromad",
	Short: "chromad serves and checks interactive graph-coloring proofs",
	Long: `chromad hosts a prover for a sudoku statement and runs verification
passes against it. The prover never discloses its solution: every round
commits to a freshly permuted coloring and opens exactly one edge.`,
	Version: chroma.Version.String(),
	PersistentPreRun: func(*cobra.Command, []string) {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if fDebug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&fDebug, "debug", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadPuzzle returns the public puzzle grid, or nil when none was named.
func loadPuzzle() (*sudoku.Grid, error) {
	if fDemo {
		return sudoku.DemoPuzzle(), nil
	}
	if fPuzzlePath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(fPuzzlePath)
	if err != nil {
		return nil, err
	}
	return sudoku.Parse(string(data))
}

// statement builds the public graph both ends verify against.
func statement(puzzle *sudoku.Grid) (*graph.Graph, error) {
	if fAnchored {
		if puzzle == nil {
			return nil, errors.New("anchored statements need --puzzle or --demo")
		}
		return graph.New(sudoku.AnchoredRelation(puzzle))
	}
	return graph.New(sudoku.Relation())
}
