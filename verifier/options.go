package verifier

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/consensys/chroma/commitment"
)

// Option defines option for altering the behavior of a Verifier. See the
// descriptions of functions returning instances of this type for
// particular options.
type Option func(*Config) error

// Config is the configuration for a verification loop.
// Config are instantiated using/extending NewConfig
type Config struct {
	Scheme     commitment.SchemeID
	Rand       io.Reader
	Rounds     int
	Exhaustive bool
	OnResult   func(Result)
}

// NewConfig returns a default Config with given options applied. By
// default challenges are drawn from crypto/rand and digests are checked
// against the SHA256 scheme.
func NewConfig(opts ...Option) (Config, error) {
	cfg := Config{
		Scheme: commitment.SHA256,
		Rand:   crand.Reader,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// WithScheme sets the commitment scheme openings are checked against. It
// must match the prover's; Pass fails with an error when it does not.
func WithScheme(id commitment.SchemeID) Option {
	return func(cfg *Config) error {
		if _, err := id.New(); err != nil {
			return err
		}
		cfg.Scheme = id
		return nil
	}
}

// WithRand sets the source challenges are drawn from. It defaults to
// crypto/rand; tests inject seeded sources to replay passes.
func WithRand(r io.Reader) Option {
	return func(cfg *Config) error {
		if r == nil {
			return errors.New("verifier: nil random source")
		}
		cfg.Rand = r
		return nil
	}
}

// WithRounds sets the number of rounds per pass. It defaults to the
// number of edges of the statement graph.
func WithRounds(n int) Option {
	return func(cfg *Config) error {
		if n <= 0 {
			return fmt.Errorf("verifier: rounds must be positive, got %d", n)
		}
		cfg.Rounds = n
		return nil
	}
}

// WithExhaustive switches challenge sampling from uniform draws to a
// shuffled enumeration of all edges, so that a pass of at least one full
// enumeration challenges every edge at least once.
func WithExhaustive() Option {
	return func(cfg *Config) error {
		cfg.Exhaustive = true
		return nil
	}
}

// WithResultFunc registers f to be called with the outcome of every pass
// Run completes.
func WithResultFunc(f func(Result)) Option {
	return func(cfg *Config) error {
		cfg.OnResult = f
		return nil
	}
}
