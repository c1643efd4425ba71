// Package test provides helpers to exercise proving statements end to end.
//
// An Assert drives a full conversation per check: fresh session, local
// transport, one exhaustive verification pass. Exhaustive challenges make
// the negative checks deterministic: a flawed coloring cannot dodge the
// edge that exposes it.
package test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/chroma/commitment"
	"github.com/consensys/chroma/graph"
	"github.com/consensys/chroma/prover"
	"github.com/consensys/chroma/verifier"
)

// Assert is a helper to test proving statements
type Assert struct {
	t *testing.T
	*require.Assertions
}

// NewAssert returns an Assert helper embedding a testify/require object for convenience
func NewAssert(t *testing.T) *Assert {
	t.Helper()
	return &Assert{t: t, Assertions: require.New(t)}
}

// Run runs fn as a subtest of the Assert
func (assert *Assert) Run(fn func(assert *Assert), descs ...string) {
	desc := strings.Join(descs, "/")
	assert.t.Run(desc, func(t *testing.T) {
		fn(&Assert{t: t, Assertions: require.New(t)})
	})
}

// ProverSucceeded checks that a session holding values survives an
// exhaustive verification pass over g, once per configured scheme.
func (assert *Assert) ProverSucceeded(g *graph.Graph, values []uint8, opts ...Option) {
	assert.t.Helper()
	cfg, err := newConfig(opts...)
	assert.NoError(err)

	for _, scheme := range cfg.schemes {
		assert.Run(func(a *Assert) {
			res := a.pass(g, values, scheme)
			a.True(res.Accepted, "pass rejected: %s at round %d, edge (%d,%d)",
				res.Reject, res.Round, res.Edge.A, res.Edge.B)
		}, scheme.String())
	}
}

// ProverFailed checks that an exhaustive verification pass over g rejects
// a session holding values for the given reason, once per configured
// scheme.
func (assert *Assert) ProverFailed(g *graph.Graph, values []uint8, want verifier.Reject, opts ...Option) {
	assert.t.Helper()
	cfg, err := newConfig(opts...)
	assert.NoError(err)

	for _, scheme := range cfg.schemes {
		assert.Run(func(a *Assert) {
			res := a.pass(g, values, scheme)
			a.False(res.Accepted, "pass accepted, want rejection (%s)", want)
			a.Equal(want, res.Reject)
		}, scheme.String())
	}
}

func (assert *Assert) pass(g *graph.Graph, values []uint8, scheme commitment.SchemeID) verifier.Result {
	assert.t.Helper()

	s, err := prover.NewSession(g, values, prover.WithScheme(scheme))
	assert.NoError(err)
	v, err := verifier.New(g, verifier.NewLocal(s),
		verifier.WithScheme(scheme),
		verifier.WithExhaustive(),
	)
	assert.NoError(err)

	res, err := v.Pass(context.Background())
	assert.NoError(err)
	return res
}
