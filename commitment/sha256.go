package commitment

import "crypto/sha256"

// domain separation tag; changing it invalidates every issued digest
var sha256Tag = []byte("chroma/commit/sha256/v1")

type sha256Scheme struct{}

func (sha256Scheme) ID() SchemeID { return SHA256 }
func (sha256Scheme) KeySize() int { return 32 }
func (sha256Scheme) Size() int    { return sha256.Size }

func (s sha256Scheme) Commit(value uint8, key []byte) []byte {
	if len(key) != s.KeySize() {
		panic("commitment: sha256 key must be 32 bytes")
	}
	h := sha256.New()
	h.Write(sha256Tag)
	h.Write(key)
	h.Write([]byte{value})
	return h.Sum(nil)
}
