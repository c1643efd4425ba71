package randutil

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b, err := Bytes(rng, 32)
	require.NoError(t, err)
	require.Len(t, b, 32)

	_, err = Bytes(bytes.NewReader(nil), 8)
	require.Error(t, err)
}

func TestIntnBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	seen := make(map[int]int)
	for i := 0; i < 6000; i++ {
		v, err := Intn(rng, 6)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 6)
		seen[v]++
	}
	// all residues reachable
	require.Len(t, seen, 6)

	_, err := Intn(rng, 0)
	require.Error(t, err)
	_, err = Intn(rng, -3)
	require.Error(t, err)
}

func TestPermIsABijection(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("permutations hit every value once", prop.ForAll(
		func(seed uint64) bool {
			rng := rand.New(rand.NewSource(seed))
			p, err := Perm(rng, 9)
			if err != nil || len(p) != 9 {
				return false
			}
			var seen [10]bool
			for _, v := range p {
				if v < 1 || v > 9 || seen[v] {
					return false
				}
				seen[v] = true
			}
			return true
		},
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPermRejectsBadSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	_, err := Perm(rng, 0)
	require.Error(t, err)
	_, err = Perm(rng, 256)
	require.Error(t, err)
}

func TestShuffleCoversRange(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	s, err := Shuffle(rng, 810)
	require.NoError(t, err)
	require.Len(t, s, 810)

	var seen [810]bool
	for _, v := range s {
		require.False(t, seen[v])
		seen[v] = true
	}
}
