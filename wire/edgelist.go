package wire

import (
	"bytes"
	"fmt"

	"github.com/consensys/chroma/graph"
	"github.com/consensys/chroma/internal/ioutils"
)

// MarshalCBOR flattens the edge endpoints into one uint32 run and encodes
// the integer-compressed block as a CBOR byte string.
func (el EdgeList) MarshalCBOR() ([]byte, error) {
	flat := make([]uint32, 0, 2*len(el))
	for _, e := range el {
		flat = append(flat, e.A, e.B)
	}
	var buf bytes.Buffer
	if _, err := ioutils.CompressAndWriteUints32(&buf, flat, nil); err != nil {
		return nil, fmt.Errorf("wire: compress edges: %w", err)
	}
	return encMode.Marshal(buf.Bytes())
}

// UnmarshalCBOR decodes and decompresses an edge block.
func (el *EdgeList) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("wire: decode edge block: %w", err)
	}
	_, flat, err := ioutils.ReadAndDecompressUints32(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("wire: decompress edges: %w", err)
	}
	if len(flat)%2 != 0 {
		return fmt.Errorf("wire: odd endpoint count %d in edge block", len(flat))
	}
	*el = make(EdgeList, len(flat)/2)
	for i := range *el {
		(*el)[i] = graph.Edge{A: flat[2*i], B: flat[2*i+1]}
	}
	return nil
}
