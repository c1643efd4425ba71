package commitment

import "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

type mimcScheme struct{}

func (mimcScheme) ID() SchemeID { return MIMC_BN254 }

// Keys are 31 bytes: left-padded to a field block they always stay below
// the BN254 scalar modulus, so MiMC accepts them as canonical elements.
func (mimcScheme) KeySize() int { return mimc.BlockSize - 1 }
func (mimcScheme) Size() int    { return mimc.BlockSize }

func (s mimcScheme) Commit(value uint8, key []byte) []byte {
	if len(key) != s.KeySize() {
		panic("commitment: mimc-bn254 key must be 31 bytes")
	}
	var block [mimc.BlockSize]byte
	copy(block[1:], key)

	h := mimc.NewMiMC()
	if _, err := h.Write(block[:]); err != nil {
		panic(err)
	}
	block = [mimc.BlockSize]byte{}
	block[mimc.BlockSize-1] = value
	if _, err := h.Write(block[:]); err != nil {
		panic(err)
	}
	return h.Sum(nil)
}
