package prover

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/consensys/chroma/commitment"
)

// Option defines option for altering the behavior of a prover session. See
// the descriptions of functions returning instances of this type for
// particular options.
type Option func(*Config) error

// Config is the configuration for a prover session with options applied.
type Config struct {
	Scheme    commitment.SchemeID
	Rand      io.Reader
	MaxRounds int
}

// NewConfig returns a default configuration with opts applied.
func NewConfig(opts ...Option) (Config, error) {
	cfg := Config{
		Scheme: commitment.SHA256,
		Rand:   rand.Reader,
	}
	for _, option := range opts {
		if err := option(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// WithScheme selects the commitment scheme used by every round of the
// session.
func WithScheme(id commitment.SchemeID) Option {
	return func(cfg *Config) error {
		if _, err := id.New(); err != nil {
			return err
		}
		cfg.Scheme = id
		return nil
	}
}

// WithRand sets the randomness source consumed by round generation. The
// default is crypto/rand. Seeded sources make sessions reproducible in
// tests; a source must never be shared between concurrently used sessions.
func WithRand(rng io.Reader) Option {
	return func(cfg *Config) error {
		if rng == nil {
			return errors.New("prover: nil randomness source")
		}
		cfg.Rand = rng
		return nil
	}
}

// WithMaxRounds caps the number of rounds a single Commit may generate.
// The default cap is four times the edge count of the statement.
func WithMaxRounds(n int) Option {
	return func(cfg *Config) error {
		if n <= 0 {
			return fmt.Errorf("prover: round cap must be positive, got %d", n)
		}
		cfg.MaxRounds = n
		return nil
	}
}
