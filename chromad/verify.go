package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/consensys/chroma/client"
	"github.com/consensys/chroma/commitment"
	"github.com/consensys/chroma/verifier"
)

var (
	fURL        string
	fRounds     uint
	fScheme     string
	fInterval   time.Duration
	fExhaustive bool
	fPasses     uint
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "runs verification passes against a chromad server",
	Run:   cmdVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.PersistentFlags().StringVar(&fURL, "url", "http://127.0.0.1:8909", "server base url")
	verifyCmd.PersistentFlags().UintVar(&fRounds, "rounds", 0, "rounds per pass, 0 means one per edge")
	verifyCmd.PersistentFlags().StringVar(&fScheme, "scheme", "sha256", "commitment scheme to check against")
	verifyCmd.PersistentFlags().DurationVar(&fInterval, "interval", 2*time.Second, "pause between passes")
	verifyCmd.PersistentFlags().BoolVar(&fExhaustive, "exhaustive", false, "challenge every edge instead of sampling")
	verifyCmd.PersistentFlags().UintVar(&fPasses, "passes", 0, "stop after this many passes, 0 means run until interrupted")
	verifyCmd.PersistentFlags().StringVar(&fPuzzlePath, "puzzle", "", "puzzle grid file, the public statement")
	verifyCmd.PersistentFlags().BoolVar(&fDemo, "demo", false, "verify against the built-in demo puzzle")
	verifyCmd.PersistentFlags().BoolVar(&fAnchored, "anchored", false, "expect a proof bound to the puzzle givens")
}

func cmdVerify(cmd *cobra.Command, args []string) {
	scheme, err := commitment.IDFromString(fScheme)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	puzzle, err := loadPuzzle()
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	g, err := statement(puzzle)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	cl, err := client.New(fURL)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		rejected atomic.Bool
		passes   atomic.Uint64
	)
	onResult := func(res verifier.Result) {
		if res.Accepted {
			fmt.Printf("%-20s %d rounds in %s\n", "pass accepted", res.Rounds, res.Elapsed)
		} else {
			rejected.Store(true)
			fmt.Printf("%-20s %s at round %d, edge (%d,%d)\n",
				"pass REJECTED", res.Reject, res.Round, res.Edge.A, res.Edge.B)
		}
		if fPasses > 0 && passes.Add(1) >= uint64(fPasses) {
			cancel()
		}
	}

	opts := []verifier.Option{
		verifier.WithScheme(scheme),
		verifier.WithResultFunc(onResult),
	}
	if fRounds > 0 {
		opts = append(opts, verifier.WithRounds(int(fRounds)))
	}
	if fExhaustive {
		opts = append(opts, verifier.WithExhaustive())
	}

	v, err := verifier.New(g, cl, opts...)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	if err := v.Run(ctx, fInterval); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	if rejected.Load() {
		os.Exit(1)
	}
}
