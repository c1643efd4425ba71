package verifier

import (
	"context"

	"github.com/consensys/chroma/commitment"
	"github.com/consensys/chroma/graph"
	"github.com/consensys/chroma/prover"
	"github.com/consensys/chroma/wire"
)

// Local runs the protocol against an in-process prover session, with no
// transport between the two ends. It serves tests and embedders that want
// a self-check without standing up a server.
type Local struct {
	session *prover.Session
}

// NewLocal wraps s as a Transport.
func NewLocal(s *prover.Session) *Local {
	return &Local{session: s}
}

// Commitments implements Transport.
func (l *Local) Commitments(ctx context.Context, count int) (string, commitment.SchemeID, [][][]byte, error) {
	if err := ctx.Err(); err != nil {
		return "", commitment.UNKNOWN, nil, err
	}
	batches, err := l.session.Commit(count)
	if err != nil {
		return "", commitment.UNKNOWN, nil, err
	}
	return "local", l.session.Scheme().ID(), batches, nil
}

// Reveal implements Transport.
func (l *Local) Reveal(ctx context.Context, _ string, edges []graph.Edge) ([]wire.Opening, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.session.Reveal(edges)
}
