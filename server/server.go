// Package server exposes a proving session registry over HTTP.
//
// Two routes carry the protocol: GET /nodes issues commitment batches and
// POST /verify opens challenged edges. The server holds the solution;
// verifiers only ever see digests and single-edge openings, so transcripts
// leak nothing beyond the statement being provable.
package server

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/consensys/chroma"
	"github.com/consensys/chroma/commitment"
	"github.com/consensys/chroma/debug"
	"github.com/consensys/chroma/graph"
	"github.com/consensys/chroma/logger"
	"github.com/consensys/chroma/prover"
	"github.com/consensys/chroma/wire"
)

const contentType = "application/cbor"

// maxRequestBytes caps how much of a request body is read. Reveal
// requests are a session id plus a compressed edge block, far below this.
const maxRequestBytes = 1 << 20

// Option defines option for altering the behavior of a Server.
type Option func(*Server) error

// WithRand sets the randomness source handed to new sessions. The default
// is crypto/rand. The source is shared by every session, so a custom one
// must tolerate concurrent draws unless requests are serialized.
func WithRand(rng io.Reader) Option {
	return func(s *Server) error {
		if rng == nil {
			return fmt.Errorf("server: nil randomness source")
		}
		s.rng = rng
		return nil
	}
}

// Server hosts one proving statement: a constraint graph and the witness
// coloring sessions prove knowledge of.
type Server struct {
	cfg      Config
	g        *graph.Graph
	values   []uint8
	scheme   commitment.SchemeID
	rng      io.Reader
	registry *prover.Registry
	log      zerolog.Logger

	mu       sync.Mutex
	listener net.Listener
	srv      *http.Server
}

// New returns a server proving values over g, configured by cfg.
func New(cfg Config, g *graph.Graph, values []uint8, opts ...Option) (*Server, error) {
	cfg = cfg.WithDefaults()
	scheme, err := cfg.SchemeID()
	if err != nil {
		return nil, err
	}
	if err := graph.CheckColoring(g, values); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		g:      g,
		values: append([]uint8(nil), values...),
		scheme: scheme,
		rng:    crand.Reader,
		log:    logger.With("server"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.registry = prover.NewRegistry(cfg.SessionCapacity, cfg.SessionTTL, func(string) {
		sessionsClosedTotal.Inc()
		activeSessionsGauge.Dec()
	})
	return s, nil
}

// Handler returns the route table, ready to serve.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/nodes", s.handleNodes)
	mux.HandleFunc("/verify", s.handleVerify)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
	return s.recoverer(mux)
}

// Start listens on addr and serves until Stop. An empty addr falls back to
// the configured listen address. Start blocks; it returns nil after a
// graceful Stop.
func (s *Server) Start(addr string) error {
	if addr == "" {
		addr = s.cfg.ListenAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}

	s.mu.Lock()
	s.listener = ln
	s.srv = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	srv := s.srv
	s.mu.Unlock()

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("scheme", s.scheme.String()).
		Int("nbNodes", s.g.NbNodes()).
		Int("nbEdges", s.g.NbEdges()).
		Msg("serving")
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}

// Addr returns the listener address, useful when started on port 0.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) newSession() (*prover.Session, error) {
	opts := []prover.Option{
		prover.WithScheme(s.scheme),
		prover.WithRand(s.rng),
	}
	if s.cfg.MaxRounds > 0 {
		opts = append(opts, prover.WithMaxRounds(s.cfg.MaxRounds))
	}
	return prover.NewSession(s.g, s.values, opts...)
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, wire.CodeBadRequest, "method not allowed")
		return
	}

	count := s.g.NbEdges()
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, wire.CodeInvalidCount, "count must be an integer")
			return
		}
		count = n
	}

	id := r.URL.Query().Get("session")
	fresh := id == ""
	var sess *prover.Session
	if fresh {
		var err error
		if sess, err = s.newSession(); err != nil {
			s.log.Error().Err(err).Msg("creating session")
			s.writeError(w, http.StatusInternalServerError, wire.CodeInternal, "internal error")
			return
		}
	} else {
		var ok bool
		if sess, ok = s.registry.Get(id); !ok {
			s.writeError(w, http.StatusNotFound, wire.CodeUnknownSession, "unknown session "+id)
			return
		}
	}

	batches, err := sess.Commit(count)
	if err != nil {
		s.writeProverError(w, err)
		return
	}
	if fresh {
		id = s.registry.Create(sess)
		activeSessionsGauge.Inc()
	}

	batchesIssuedTotal.Inc()
	roundsGeneratedTotal.Add(float64(count))
	s.log.Debug().Str("session", id).Int("rounds", count).Msg("batch issued")
	s.writeMessage(w, wire.KindCommitments, wire.CommitmentsResponse{
		Session: id,
		Scheme:  s.scheme,
		Batches: batches,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, wire.CodeBadRequest, "method not allowed")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, wire.CodeBadRequest, "reading request body")
		return
	}
	var req wire.RevealRequest
	if err := wire.Unmarshal(data, wire.KindReveal, &req); err != nil {
		revealsTotal.WithLabelValues("malformed").Inc()
		s.writeError(w, http.StatusBadRequest, wire.CodeBadRequest, "malformed reveal request: "+err.Error())
		return
	}

	if req.Session == "" {
		// no session named at all: the caller never requested commitments
		revealsTotal.WithLabelValues(wire.CodeNoPendingBatch).Inc()
		s.writeError(w, http.StatusConflict, wire.CodeNoPendingBatch, "no commitment batch requested")
		return
	}
	sess, ok := s.registry.Get(req.Session)
	if !ok {
		revealsTotal.WithLabelValues(wire.CodeUnknownSession).Inc()
		s.writeError(w, http.StatusNotFound, wire.CodeUnknownSession, "unknown session "+req.Session)
		return
	}

	openings, err := sess.Reveal(req.Edges)
	if err != nil {
		revealsTotal.WithLabelValues(errorCode(err)).Inc()
		s.writeProverError(w, err)
		return
	}

	// the session served its purpose; a new pass starts from scratch
	s.registry.Drop(req.Session)
	revealsTotal.WithLabelValues("ok").Inc()
	s.log.Debug().Str("session", req.Session).Int("rounds", len(openings)).Msg("openings served")
	s.writeMessage(w, wire.KindOpenings, wire.RevealResponse{Openings: openings})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Version  string `json:"version"`
		Scheme   string `json:"scheme"`
		Nodes    int    `json:"nodes"`
		Edges    int    `json:"edges"`
		Colors   int    `json:"colors"`
		Sessions int    `json:"sessions"`
	}{
		Version:  chroma.Version.String(),
		Scheme:   s.scheme.String(),
		Nodes:    s.g.NbNodes(),
		Edges:    s.g.NbEdges(),
		Colors:   s.g.NbColors(),
		Sessions: s.registry.Len(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error().Err(err).Msg("writing healthz response")
	}
}

// recoverer turns handler panics into 500 responses instead of dropped
// connections.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error().
					Interface("panic", rec).
					Str("stack", debug.Stack()).
					Msg("handler panicked")
				s.writeError(w, http.StatusInternalServerError, wire.CodeInternal, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeMessage(w http.ResponseWriter, kind wire.Kind, body any) {
	data, err := wire.Marshal(kind, body)
	if err != nil {
		s.log.Error().Err(err).Stringer("kind", kind).Msg("encoding response")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(data); err != nil {
		s.log.Debug().Err(err).Msg("writing response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	data, err := wire.Marshal(wire.KindError, wire.ErrorResponse{Code: code, Message: message})
	if err != nil {
		s.log.Error().Err(err).Msg("encoding error response")
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.log.Debug().Err(err).Msg("writing error response")
	}
}

// writeProverError maps session errors onto the wire taxonomy. Spent
// rounds and missing batches are conflicts: the request was well formed
// but arrived against a session in the wrong state.
func (s *Server) writeProverError(w http.ResponseWriter, err error) {
	code := errorCode(err)
	status := http.StatusBadRequest
	switch code {
	case wire.CodeNoPendingBatch, wire.CodeRoundSpent:
		status = http.StatusConflict
	case wire.CodeInternal:
		s.log.Error().Err(err).Msg("session failure")
		status = http.StatusInternalServerError
	}
	s.writeError(w, status, code, err.Error())
}

// errorCode names a session error for the wire and for metric labels.
func errorCode(err error) string {
	switch {
	case errors.Is(err, prover.ErrInvalidCount):
		return wire.CodeInvalidCount
	case errors.Is(err, prover.ErrNoPendingBatch):
		return wire.CodeNoPendingBatch
	case errors.Is(err, prover.ErrBatchSizeMismatch):
		return wire.CodeBatchSizeMismatch
	case errors.Is(err, prover.ErrRoundSpent):
		return wire.CodeRoundSpent
	case errors.Is(err, graph.ErrEdgeNotInGraph):
		return wire.CodeEdgeNotInGraph
	default:
		return wire.CodeInternal
	}
}
