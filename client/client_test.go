package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/chroma/commitment"
	"github.com/consensys/chroma/graph"
	"github.com/consensys/chroma/wire"
)

func TestNewValidatesBaseURL(t *testing.T) {
	_, err := New("ftp://example.com")
	require.Error(t, err)

	_, err = New("http://example.com/")
	require.NoError(t, err)
}

func TestCommitmentsRequest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/nodes", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("count"))

		data, err := wire.Marshal(wire.KindCommitments, wire.CommitmentsResponse{
			Session: "abc",
			Scheme:  commitment.SHA256,
			Batches: [][][]byte{{{0x01}}},
		})
		require.NoError(t, err)
		w.Write(data)
	}))
	defer ts.Close()

	cl, err := New(ts.URL)
	require.NoError(t, err)

	session, scheme, batches, err := cl.Commitments(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, "abc", session)
	require.Equal(t, commitment.SHA256, scheme)
	require.Len(t, batches, 1)
}

func TestRevealRequest(t *testing.T) {
	want := []wire.Opening{{ValueA: 1, KeyA: []byte{2}, ValueB: 3, KeyB: []byte{4}}}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/verify", r.URL.Path)
		require.Equal(t, "application/cbor", r.Header.Get("Content-Type"))

		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req wire.RevealRequest
		require.NoError(t, wire.Unmarshal(data, wire.KindReveal, &req))
		require.Equal(t, "abc", req.Session)
		require.Equal(t, wire.EdgeList{{A: 0, B: 1}}, req.Edges)

		resp, err := wire.Marshal(wire.KindOpenings, wire.RevealResponse{Openings: want})
		require.NoError(t, err)
		w.Write(resp)
	}))
	defer ts.Close()

	cl, err := New(ts.URL)
	require.NoError(t, err)

	openings, err := cl.Reveal(context.Background(), "abc", []graph.Edge{{A: 0, B: 1}})
	require.NoError(t, err)
	require.Equal(t, want, openings)
}

func TestDecodesAPIErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := wire.Marshal(wire.KindError, wire.ErrorResponse{
			Code:    wire.CodeRoundSpent,
			Message: "round 3 already opened",
		})
		require.NoError(t, err)
		w.WriteHeader(http.StatusConflict)
		w.Write(data)
	}))
	defer ts.Close()

	cl, err := New(ts.URL)
	require.NoError(t, err)

	_, _, _, err = cl.Commitments(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, wire.CodeRoundSpent, apiErr.Code)
	require.Contains(t, apiErr.Error(), wire.CodeRoundSpent)
}

func TestFallsBackOnOpaqueErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	cl, err := New(ts.URL)
	require.NoError(t, err)

	_, err = cl.Reveal(context.Background(), "abc", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.Status)
	require.Equal(t, wire.CodeInternal, apiErr.Code)
}

func TestHonorsContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()

	cl, err := New(ts.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err = cl.Commitments(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSetsUserAgent(t *testing.T) {
	seen := make(chan string, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get("User-Agent")
		data, _ := wire.Marshal(wire.KindCommitments, wire.CommitmentsResponse{})
		w.Write(data)
	}))
	defer ts.Close()

	cl, err := New(ts.URL, WithUserAgent("chroma-test/1.0"))
	require.NoError(t, err)

	_, _, _, err = cl.Commitments(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "chroma-test/1.0", <-seen)
}
