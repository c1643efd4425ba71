package prover

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/consensys/chroma/commitment"
	"github.com/consensys/chroma/graph"
	"github.com/consensys/chroma/wire"
)

var (
	// ErrInvalidCount is returned by Commit for a round count that is not
	// positive or exceeds the session's cap.
	ErrInvalidCount = errors.New("invalid round count")

	// ErrNoPendingBatch is returned by Reveal when no commitment batch is
	// outstanding.
	ErrNoPendingBatch = errors.New("no pending commitment batch")

	// ErrBatchSizeMismatch is returned by Reveal when the selection count
	// differs from the pending batch size.
	ErrBatchSizeMismatch = errors.New("selection count does not match batch size")
)

// State describes where a session stands in the commit/reveal cycle.
type State uint8

const (
	// Idle means no commitments are outstanding.
	Idle State = iota
	// Ready means a batch awaits its challenges.
	Ready
)

// String returns the string representation of a session state
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Session holds one prover's state across a verification dialogue: the
// statement, the commitment scheme, and at most one pending batch of
// unspent rounds. Safe for concurrent use; Commit and Reveal are mutually
// exclusive so two reveals can never spend the same round.
type Session struct {
	mu        sync.Mutex
	g         *graph.Graph
	values    []uint8
	scheme    commitment.Scheme
	rng       io.Reader
	maxRounds int

	rounds []*Round // pending batch; nil when idle
}

// NewSession validates the coloring against the statement graph and
// returns an idle session.
func NewSession(g *graph.Graph, values []uint8, opts ...Option) (*Session, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if err := graph.CheckColoring(g, values); err != nil {
		return nil, err
	}
	scheme, err := cfg.Scheme.New()
	if err != nil {
		return nil, err
	}
	maxRounds := cfg.MaxRounds
	if maxRounds == 0 {
		maxRounds = 4 * g.NbEdges()
	}
	vals := make([]uint8, len(values))
	copy(vals, values)
	return &Session{
		g:         g,
		values:    vals,
		scheme:    scheme,
		rng:       cfg.Rand,
		maxRounds: maxRounds,
	}, nil
}

// Graph returns the statement graph.
func (s *Session) Graph() *graph.Graph { return s.g }

// Scheme returns the session's commitment scheme.
func (s *Session) Scheme() commitment.Scheme { return s.scheme }

// State returns the current state and, when Ready, the pending round count.
func (s *Session) State() (State, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rounds == nil {
		return Idle, 0
	}
	return Ready, len(s.rounds)
}

// Commit generates count fresh rounds and returns their digest batches,
// one per round in node order. Any pending batch is discarded first:
// commitments that were never challenged are dropped, not reused. A count
// that is not positive, or exceeds the session cap, fails with
// ErrInvalidCount.
func (s *Session) Commit(count int) ([][][]byte, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if count > s.maxRounds {
		return nil, fmt.Errorf("%w: %d exceeds cap %d", ErrInvalidCount, count, s.maxRounds)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// randomness is drawn sequentially so seeded sources reproduce the
	// same batches; only the hashing fans out
	rounds := make([]*Round, count)
	for i := range rounds {
		r, err := draw(s.g, s.values, s.scheme, s.rng)
		if err != nil {
			return nil, err
		}
		rounds[i] = r
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for _, r := range rounds {
		r := r // per-iteration copy; required for correctness under go <= 1.21
		eg.Go(func() error {
			r.commit()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	batches := make([][][]byte, count)
	for i, r := range rounds {
		batches[i] = r.Commitments()
	}
	s.rounds = rounds
	return batches, nil
}

// Reveal answers one challenge per pending round: selection i spends round
// i. The batch is validated up front, so a failing request leaves every
// round intact and the batch pending; on success the batch is consumed and
// the session returns to Idle.
func (s *Session) Reveal(selections []graph.Edge) ([]wire.Opening, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rounds == nil {
		return nil, ErrNoPendingBatch
	}
	if len(selections) != len(s.rounds) {
		return nil, fmt.Errorf("%w: %d selections for %d rounds", ErrBatchSizeMismatch, len(selections), len(s.rounds))
	}
	for i, e := range selections {
		if !s.g.Contains(e) {
			return nil, fmt.Errorf("%w: selection %d references (%d,%d)", graph.ErrEdgeNotInGraph, i, e.A, e.B)
		}
		if s.rounds[i].Spent() {
			return nil, fmt.Errorf("%w: round %d", ErrRoundSpent, i)
		}
	}

	openings := make([]wire.Opening, len(selections))
	for i, e := range selections {
		op, err := s.rounds[i].Reveal(e)
		if err != nil {
			// validated above; a failure here leaves the batch torn
			s.rounds = nil
			return nil, err
		}
		openings[i] = op
	}
	s.rounds = nil
	return openings, nil
}
