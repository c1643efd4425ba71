// Package commitment provides the binding, hiding digests that blind node
// values during a proof round.
//
// A scheme is a black box to the rest of the engine: Commit must be
// deterministic so openings can be rechecked byte for byte, binding so a
// digest cannot be opened to two different values, and hiding so a digest
// alone reveals nothing about the committed value. Hiding rests entirely on
// the key being fresh, uniform and single-use; key handling is the caller's
// responsibility.
package commitment

import (
	"crypto/subtle"
	"fmt"
)

// SchemeID represents a unique ID for a commitment scheme
type SchemeID uint16

const (
	UNKNOWN SchemeID = iota
	SHA256
	BLAKE2B
	MIMC_BN254
)

// Implemented return the list of commitment schemes implemented in chroma
func Implemented() []SchemeID {
	return []SchemeID{SHA256, BLAKE2B, MIMC_BN254}
}

// String returns the string representation of a commitment scheme
func (id SchemeID) String() string {
	switch id {
	case SHA256:
		return "sha256"
	case BLAKE2B:
		return "blake2b"
	case MIMC_BN254:
		return "mimc-bn254"
	default:
		return "unknown"
	}
}

// IDFromString returns the scheme whose string representation is s.
func IDFromString(s string) (SchemeID, error) {
	for _, id := range Implemented() {
		if id.String() == s {
			return id, nil
		}
	}
	return UNKNOWN, fmt.Errorf("commitment: unknown scheme %q", s)
}

// New instantiates the scheme.
func (id SchemeID) New() (Scheme, error) {
	switch id {
	case SHA256:
		return sha256Scheme{}, nil
	case BLAKE2B:
		return blake2bScheme{}, nil
	case MIMC_BN254:
		return mimcScheme{}, nil
	default:
		return nil, fmt.Errorf("commitment: no scheme registered for ID %d", id)
	}
}

// A Scheme turns a node value and a fresh random key into a digest.
type Scheme interface {
	// ID returns the scheme identifier.
	ID() SchemeID

	// Commit returns the digest binding value under key. key must be
	// exactly KeySize bytes; Commit panics otherwise.
	Commit(value uint8, key []byte) []byte

	// KeySize returns the required key length in bytes.
	KeySize() int

	// Size returns the digest length in bytes.
	Size() int
}

// Open reports whether digest commits to value under key. The comparison is
// constant time; a key or digest of the wrong length opens nothing.
func Open(s Scheme, digest []byte, value uint8, key []byte) bool {
	if len(key) != s.KeySize() || len(digest) != s.Size() {
		return false
	}
	return subtle.ConstantTimeCompare(digest, s.Commit(value, key)) == 1
}
