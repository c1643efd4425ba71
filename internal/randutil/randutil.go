// Package randutil draws uniform values from an arbitrary randomness
// source, typically crypto/rand.Reader, or a seeded source in tests.
package randutil

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Bytes fills a fresh n-byte slice from r.
func Bytes(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("randutil: %w", err)
	}
	return b, nil
}

// Intn returns a uniform integer in [0, n). It rejection-samples to avoid
// modulo bias.
func Intn(r io.Reader, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("randutil: n must be positive, got %d", n)
	}
	max := uint64(n)
	// values at or above limit would skew the low residues
	limit := (^uint64(0) / max) * max
	var buf [8]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("randutil: %w", err)
		}
		if v := binary.LittleEndian.Uint64(buf[:]); v < limit {
			return int(v % max), nil
		}
	}
}

// Perm returns a uniform permutation of {1, ..., k} as uint8 values, with
// Perm[i-1] giving the image of i.
func Perm(r io.Reader, k int) ([]uint8, error) {
	if k <= 0 || k > 255 {
		return nil, fmt.Errorf("randutil: permutation size %d out of range [1,255]", k)
	}
	p := make([]uint8, k)
	for i := range p {
		p[i] = uint8(i + 1)
	}
	// Fisher-Yates
	for i := k - 1; i > 0; i-- {
		j, err := Intn(r, i+1)
		if err != nil {
			return nil, err
		}
		p[i], p[j] = p[j], p[i]
	}
	return p, nil
}

// Shuffle permutes the integers 0 through n-1 uniformly.
func Shuffle(r io.Reader, n int) ([]int, error) {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := Intn(r, i+1)
		if err != nil {
			return nil, err
		}
		s[i], s[j] = s[j], s[i]
	}
	return s, nil
}
