package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/consensys/chroma/logger"
	"github.com/consensys/chroma/server"
	"github.com/consensys/chroma/sudoku"
)

var (
	fConfigPath   string
	fListenAddr   string
	fSolutionPath string
	fDecoy        bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "hosts a prover over HTTP",
	Run:   cmdServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.PersistentFlags().StringVar(&fConfigPath, "config", "", "yaml configuration file")
	serveCmd.PersistentFlags().StringVar(&fListenAddr, "listen", "", "listen address, overrides the config")
	serveCmd.PersistentFlags().StringVar(&fPuzzlePath, "puzzle", "", "puzzle grid file, the public statement")
	serveCmd.PersistentFlags().StringVar(&fSolutionPath, "solution", "", "solution grid file, the witness")
	serveCmd.PersistentFlags().BoolVar(&fDemo, "demo", false, "serve the built-in demo puzzle and solution")
	serveCmd.PersistentFlags().BoolVar(&fDecoy, "decoy", false, "serve the built-in decoy: a proper coloring that contradicts the demo givens")
	serveCmd.PersistentFlags().BoolVar(&fAnchored, "anchored", false, "bind the proof to the puzzle givens with anchor nodes")
}

func cmdServe(cmd *cobra.Command, args []string) {
	log := logger.With("chromad")

	cfg := server.Config{}.WithDefaults()
	if fConfigPath != "" {
		var err error
		if cfg, err = server.LoadConfig(fConfigPath); err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
	}
	if fListenAddr != "" {
		cfg.ListenAddr = fListenAddr
	}

	puzzle, solution, err := grids()
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	g, err := statement(puzzle)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	if !solution.Solved() {
		// legitimate when demonstrating rejection, worth a warning otherwise
		log.Warn().Msg("solution grid breaks sudoku constraints; verifiers will reject it")
	}
	values := solution.Values()
	if fAnchored {
		values = sudoku.AnchoredValues(solution)
	}

	srv, err := server.New(cfg, g, values)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start("") }()

	select {
	case err := <-errc:
		if err != nil {
			fmt.Println("error:", err)
			os.Exit(-1)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
		<-errc
	}
}

// grids resolves the puzzle and witness from flags.
func grids() (puzzle, solution *sudoku.Grid, err error) {
	if fDecoy {
		return sudoku.DemoPuzzle(), sudoku.DecoySolution(), nil
	}
	if fDemo {
		return sudoku.DemoPuzzle(), sudoku.DemoSolution(), nil
	}

	if fSolutionPath == "" {
		return nil, nil, errors.New("missing --solution (or --demo)")
	}
	data, err := os.ReadFile(fSolutionPath)
	if err != nil {
		return nil, nil, err
	}
	if solution, err = sudoku.Parse(string(data)); err != nil {
		return nil, nil, err
	}
	if !solution.Filled() {
		return nil, nil, errors.New("solution grid is incomplete")
	}
	if puzzle, err = loadPuzzle(); err != nil {
		return nil, nil, err
	}
	return puzzle, solution, nil
}
