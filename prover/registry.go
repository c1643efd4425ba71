package prover

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/consensys/chroma/logger"
)

// Registry tracks the live sessions of a server: a bounded store with idle
// expiry, keyed by opaque identifiers. Sessions leave on completion
// (Drop), when their TTL lapses, or when capacity evicts the least
// recently used. Safe for concurrent use.
type Registry struct {
	sessions *expirable.LRU[string, *Session]
	onEvict  func(id string)
	log      zerolog.Logger
}

// NewRegistry returns a registry holding at most capacity sessions for at
// most ttl each; capacity <= 0 leaves the size unbounded. onEvict, when
// not nil, observes every eviction and removal.
func NewRegistry(capacity int, ttl time.Duration, onEvict func(id string)) *Registry {
	r := &Registry{
		onEvict: onEvict,
		log:     logger.With("registry"),
	}
	r.sessions = expirable.NewLRU[string, *Session](capacity, r.evicted, ttl)
	return r
}

func (r *Registry) evicted(id string, _ *Session) {
	r.log.Debug().Str("session", id).Msg("session evicted")
	if r.onEvict != nil {
		r.onEvict(id)
	}
}

// Create registers a fresh session and returns its identifier.
func (r *Registry) Create(s *Session) string {
	id := uuid.NewString()
	r.sessions.Add(id, s)
	r.log.Debug().Str("session", id).Msg("session created")
	return id
}

// Get returns the session registered under id.
func (r *Registry) Get(id string) (*Session, bool) {
	return r.sessions.Get(id)
}

// Drop removes a session, typically after its proof dialogue completed.
func (r *Registry) Drop(id string) {
	r.sessions.Remove(id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.sessions.Len()
}
