// Package wire defines the messages exchanged between prover and verifier
// and their canonical encoding.
//
// Every message travels inside an envelope carrying the protocol version
// and a message kind; payloads use deterministic CBOR. The encoding is
// opaque to both ends of the protocol: nothing outside this package depends
// on the byte layout.
package wire

import (
	"github.com/consensys/chroma/commitment"
	"github.com/consensys/chroma/graph"
)

// Kind tags the payload carried by an envelope.
type Kind uint8

const (
	KindCommitments Kind = iota + 1
	KindReveal
	KindOpenings
	KindError
)

// String returns the string representation of a message kind
func (k Kind) String() string {
	switch k {
	case KindCommitments:
		return "commitments"
	case KindReveal:
		return "reveal"
	case KindOpenings:
		return "openings"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// CommitmentsResponse carries the digest batches of freshly generated
// rounds: one batch per round, one digest per node, in fixed node order.
type CommitmentsResponse struct {
	Session string              `cbor:"session"`
	Scheme  commitment.SchemeID `cbor:"scheme"`
	Batches [][][]byte          `cbor:"batches"`
}

// RevealRequest selects one edge to open per pending round.
type RevealRequest struct {
	Session string   `cbor:"session"`
	Edges   EdgeList `cbor:"edges"`
}

// RevealResponse carries one opening per requested round.
type RevealResponse struct {
	Openings []Opening `cbor:"openings"`
}

// Opening discloses the two endpoint values of one edge together with the
// keys needed to recheck their digests.
type Opening struct {
	ValueA uint8  `cbor:"va"`
	KeyA   []byte `cbor:"ka"`
	ValueB uint8  `cbor:"vb"`
	KeyB   []byte `cbor:"kb"`
}

// ErrorResponse reports a request failure with a stable machine code.
type ErrorResponse struct {
	Code    string `cbor:"code"`
	Message string `cbor:"message"`
}

// Error codes carried by ErrorResponse.
const (
	CodeBadRequest        = "bad_request"
	CodeInvalidCount      = "invalid_count"
	CodeNoPendingBatch    = "no_pending_batch"
	CodeBatchSizeMismatch = "batch_size_mismatch"
	CodeRoundSpent        = "round_spent"
	CodeEdgeNotInGraph    = "edge_not_in_graph"
	CodeUnknownSession    = "unknown_session"
	CodeInternal          = "internal"
)

// EdgeList is a batch of edge selections. On the wire it is a single
// integer-compressed block rather than a CBOR array: batches routinely name
// hundreds of small node indices, which pack well.
type EdgeList []graph.Edge
