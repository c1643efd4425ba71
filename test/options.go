package test

import (
	"fmt"

	"github.com/consensys/chroma/commitment"
)

// Option defines option for altering the behavior of Assert checks. See
// the descriptions of functions returning instances of this type for
// particular options.
type Option func(*config) error

type config struct {
	schemes []commitment.SchemeID
}

func newConfig(opts ...Option) (config, error) {
	cfg := config{schemes: commitment.Implemented()}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// WithSchemes restricts a check to the given commitment schemes. By
// default checks run once per implemented scheme.
func WithSchemes(schemes ...commitment.SchemeID) Option {
	return func(cfg *config) error {
		if len(schemes) == 0 {
			return fmt.Errorf("test: no schemes given")
		}
		for _, id := range schemes {
			if _, err := id.New(); err != nil {
				return err
			}
		}
		cfg.schemes = schemes
		return nil
	}
}
