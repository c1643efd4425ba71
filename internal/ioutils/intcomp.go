// Package ioutils implements the integer-compressed framing used for edge
// batches on the wire.
package ioutils

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ronanh/intcomp"
)

// maxCompressedWords caps the length prefix at a megabyte of payload;
// blocks come from untrusted network input.
const maxCompressedWords = 1 << 18

// CompressAndWriteUints32 compresses a slice of uint32 and writes it to w.
// It returns the scratch buffer (possibly extended) for future use.
func CompressAndWriteUints32(w io.Writer, input []uint32, buffer []uint32) ([]uint32, error) {
	buffer = buffer[:0]
	buffer = intcomp.CompressUint32(input, buffer)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(buffer))); err != nil {
		return nil, err
	}
	if err := binary.Write(w, binary.LittleEndian, buffer); err != nil {
		return nil, err
	}
	return buffer, nil
}

// ReadAndDecompressUints32 reads a compressed slice of uint32 from r and
// decompresses it. It returns the number of bytes read, the decompressed
// slice and an error.
func ReadAndDecompressUints32(r io.Reader) (int, []uint32, error) {
	var length uint64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return 0, nil, err
	}
	if length > maxCompressedWords {
		return 8, nil, fmt.Errorf("compressed block of %d words exceeds limit", length)
	}
	// in-memory readers know how many payload bytes remain
	if br, ok := r.(interface{ Len() int }); ok && uint64(br.Len()) < 4*length {
		return 8, nil, fmt.Errorf("compressed block of %d words exceeds remaining input", length)
	}
	buffer := make([]uint32, length)
	if err := binary.Read(r, binary.LittleEndian, buffer); err != nil {
		return 8, nil, err
	}
	return 8 + 4*int(length), intcomp.UncompressUint32(buffer, nil), nil
}
