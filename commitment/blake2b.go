package commitment

import "golang.org/x/crypto/blake2b"

type blake2bScheme struct{}

func (blake2bScheme) ID() SchemeID { return BLAKE2B }
func (blake2bScheme) KeySize() int { return 32 }
func (blake2bScheme) Size() int    { return blake2b.Size256 }

func (s blake2bScheme) Commit(value uint8, key []byte) []byte {
	if len(key) != s.KeySize() {
		panic("commitment: blake2b key must be 32 bytes")
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// New256 only fails on oversized keys
		panic(err)
	}
	h.Write([]byte{value})
	return h.Sum(nil)
}
