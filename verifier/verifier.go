// Package verifier implements the challenging side of the protocol: it
// requests commitment batches, picks one edge per round, and checks the
// openings against the issued digests.
//
// A verification pass either accepts, rejects (the prover failed a
// challenge), or errors. Rejection is a normal outcome carried by Result;
// errors report transport or protocol faults only, so a flaky network can
// never masquerade as a failed proof.
package verifier

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/consensys/chroma/commitment"
	"github.com/consensys/chroma/graph"
	"github.com/consensys/chroma/internal/randutil"
	"github.com/consensys/chroma/logger"
	"github.com/consensys/chroma/wire"
)

// Transport carries the two protocol exchanges to a prover.
type Transport interface {
	// Commitments asks the prover for count fresh rounds and returns the
	// session identifier, the prover's commitment scheme and one digest
	// batch per round.
	Commitments(ctx context.Context, count int) (session string, scheme commitment.SchemeID, batches [][][]byte, err error)

	// Reveal asks the prover to open one edge per pending round.
	Reveal(ctx context.Context, session string, edges []graph.Edge) ([]wire.Opening, error)
}

// Reject names the check a rejected pass failed.
type Reject uint8

const (
	// RejectNone marks an accepted pass.
	RejectNone Reject = iota
	// RejectDigestMismatch means an opening did not recommit to the issued
	// digest.
	RejectDigestMismatch
	// RejectEqualValues means both endpoints of the challenged edge
	// revealed the same value.
	RejectEqualValues
)

// String returns the string representation of a rejection reason
func (r Reject) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectDigestMismatch:
		return "digest mismatch"
	case RejectEqualValues:
		return "equal values"
	default:
		return "unknown"
	}
}

// Result is the outcome of one verification pass.
type Result struct {
	Accepted bool
	Rounds   int
	Reject   Reject     // RejectNone when accepted
	Round    int        // failing round index when rejected
	Edge     graph.Edge // challenged edge of the failing round
	Elapsed  time.Duration
}

// Verifier drives passes against one prover. Each pass draws fresh
// challenges; nothing carries over between passes.
type Verifier struct {
	g          *graph.Graph
	transport  Transport
	scheme     commitment.Scheme
	rng        io.Reader
	rounds     int
	exhaustive bool
	onResult   func(Result)
	log        zerolog.Logger
}

// New returns a verifier for the statement graph g, reaching its prover
// through transport.
func New(g *graph.Graph, transport Transport, opts ...Option) (*Verifier, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	scheme, err := cfg.Scheme.New()
	if err != nil {
		return nil, err
	}
	return &Verifier{
		g:          g,
		transport:  transport,
		scheme:     scheme,
		rng:        cfg.Rand,
		rounds:     cfg.Rounds,
		exhaustive: cfg.Exhaustive,
		onResult:   cfg.OnResult,
		log:        logger.With("verifier"),
	}, nil
}

// Pass runs one full pass: request commitments, challenge one edge per
// round, check every opening. The pass count defaults to the number of
// graph edges. The first failing round rejects the whole pass.
func (v *Verifier) Pass(ctx context.Context) (Result, error) {
	start := time.Now()
	count := v.rounds
	if count == 0 {
		count = v.g.NbEdges()
	}

	session, scheme, batches, err := v.transport.Commitments(ctx, count)
	if err != nil {
		return Result{}, fmt.Errorf("verifier: requesting commitments: %w", err)
	}
	if scheme != v.scheme.ID() {
		return Result{}, fmt.Errorf("verifier: prover commits with %s, expected %s", scheme, v.scheme.ID())
	}
	if len(batches) != count {
		return Result{}, fmt.Errorf("verifier: got %d batches, want %d", len(batches), count)
	}
	for i, b := range batches {
		if len(b) != v.g.NbNodes() {
			return Result{}, fmt.Errorf("verifier: batch %d has %d digests, want %d", i, len(b), v.g.NbNodes())
		}
	}

	edges, err := v.challenges(count)
	if err != nil {
		return Result{}, err
	}

	openings, err := v.transport.Reveal(ctx, session, edges)
	if err != nil {
		return Result{}, fmt.Errorf("verifier: requesting openings: %w", err)
	}
	if len(openings) != count {
		return Result{}, fmt.Errorf("verifier: got %d openings, want %d", len(openings), count)
	}

	res := Result{Accepted: true, Rounds: count}
	for i, op := range openings {
		if reject := v.check(batches[i], edges[i], op); reject != RejectNone {
			res = Result{Rounds: count, Reject: reject, Round: i, Edge: edges[i]}
			break
		}
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

// challenges picks one edge per round: uniform draws by default, or a
// shuffled enumeration covering every edge before any repeats when the
// verifier is exhaustive.
func (v *Verifier) challenges(count int) ([]graph.Edge, error) {
	edges := make([]graph.Edge, count)
	if v.exhaustive {
		var order []int
		for i := range edges {
			if len(order) == 0 {
				var err error
				order, err = randutil.Shuffle(v.rng, v.g.NbEdges())
				if err != nil {
					return nil, fmt.Errorf("verifier: shuffling edges: %w", err)
				}
			}
			edges[i] = v.g.Edge(order[0])
			order = order[1:]
		}
		return edges, nil
	}
	for i := range edges {
		j, err := randutil.Intn(v.rng, v.g.NbEdges())
		if err != nil {
			return nil, fmt.Errorf("verifier: sampling edge: %w", err)
		}
		edges[i] = v.g.Edge(j)
	}
	return edges, nil
}

// check recomputes both endpoint digests and compares the revealed values.
func (v *Verifier) check(batch [][]byte, e graph.Edge, op wire.Opening) Reject {
	if !commitment.Open(v.scheme, batch[e.A], op.ValueA, op.KeyA) {
		return RejectDigestMismatch
	}
	if !commitment.Open(v.scheme, batch[e.B], op.ValueB, op.KeyB) {
		return RejectDigestMismatch
	}
	if op.ValueA == op.ValueB {
		return RejectEqualValues
	}
	return RejectNone
}

// Run verifies continuously, sleeping interval between passes, until ctx
// is cancelled. Rejected passes are reported and the loop carries on; the
// first transport error ends it. Cancellation is honored between passes
// and, through ctx, inside in-flight transport calls.
func (v *Verifier) Run(ctx context.Context, interval time.Duration) error {
	for {
		res, err := v.Pass(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		v.observe(res)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func (v *Verifier) observe(res Result) {
	if v.onResult != nil {
		v.onResult(res)
	}
	if res.Accepted {
		v.log.Debug().Int("rounds", res.Rounds).Dur("took", res.Elapsed).Msg("pass accepted")
		return
	}
	v.log.Warn().
		Int("rounds", res.Rounds).
		Int("round", res.Round).
		Uint32("edgeA", res.Edge.A).
		Uint32("edgeB", res.Edge.B).
		Str("reject", res.Reject.String()).
		Msg("pass rejected")
}
