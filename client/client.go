// Package client reaches a remote prover over HTTP.
//
// Client implements verifier.Transport, so a verifier drives a remote
// prover exactly like an in-process one. Server-side request failures
// surface as *APIError carrying the wire error code; proof rejections
// never do, those are the verifier's Result.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/consensys/chroma"
	"github.com/consensys/chroma/commitment"
	"github.com/consensys/chroma/graph"
	"github.com/consensys/chroma/wire"
)

const contentType = "application/cbor"

// maxResponseBytes caps how much of a response body is read. The largest
// legitimate response is a full commitment batch, well under this.
const maxResponseBytes = 32 << 20

// APIError is an error response decoded from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: server returned %s (http %d): %s", e.Code, e.Status, e.Message)
}

// Client talks the wire protocol to one server.
type Client struct {
	base      string
	http      *http.Client
	userAgent string
}

// Option defines option for altering the behavior of a Client. See the
// descriptions of functions returning instances of this type for
// particular options.
type Option func(*Client) error

// WithHTTPClient replaces the underlying HTTP client, e.g. to set
// timeouts or a custom transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("client: nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithUserAgent sets the User-Agent header attached to every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// New returns a client for the server at baseURL, e.g.
// "http://localhost:8909".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("client: unsupported url scheme %q", u.Scheme)
	}
	c := &Client{
		base:      strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 30 * time.Second},
		userAgent: "chroma/" + chroma.Version.String(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Commitments implements verifier.Transport.
func (c *Client) Commitments(ctx context.Context, count int) (string, commitment.SchemeID, [][][]byte, error) {
	target := fmt.Sprintf("%s/nodes?count=%d", c.base, count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", commitment.UNKNOWN, nil, fmt.Errorf("client: building request: %w", err)
	}

	var body wire.CommitmentsResponse
	if err := c.do(req, wire.KindCommitments, &body); err != nil {
		return "", commitment.UNKNOWN, nil, err
	}
	return body.Session, body.Scheme, body.Batches, nil
}

// Reveal implements verifier.Transport.
func (c *Client) Reveal(ctx context.Context, session string, edges []graph.Edge) ([]wire.Opening, error) {
	payload, err := wire.Marshal(wire.KindReveal, wire.RevealRequest{
		Session: session,
		Edges:   wire.EdgeList(edges),
	})
	if err != nil {
		return nil, fmt.Errorf("client: encoding reveal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/verify", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("client: building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	var body wire.RevealResponse
	if err := c.do(req, wire.KindOpenings, &body); err != nil {
		return nil, err
	}
	return body.Openings, nil
}

func (c *Client) do(req *http.Request, kind wire.Kind, out any) error {
	req.Header.Set("Accept", contentType)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("client: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp.StatusCode, data)
	}
	if err := wire.Unmarshal(data, kind, out); err != nil {
		return fmt.Errorf("client: decoding %s response: %w", kind, err)
	}
	return nil
}

// decodeError turns a non-200 response into an *APIError, falling back on
// the HTTP status when the body is not an error envelope.
func decodeError(status int, data []byte) error {
	var body wire.ErrorResponse
	if err := wire.Unmarshal(data, wire.KindError, &body); err != nil {
		return &APIError{Status: status, Code: wire.CodeInternal, Message: http.StatusText(status)}
	}
	return &APIError{Status: status, Code: body.Code, Message: body.Message}
}
