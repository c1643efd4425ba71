package commitment

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSchemeIDs(t *testing.T) {
	for _, id := range Implemented() {
		s, err := id.New()
		require.NoError(t, err)
		require.Equal(t, id, s.ID())

		back, err := IDFromString(id.String())
		require.NoError(t, err)
		require.Equal(t, id, back)
	}

	require.Equal(t, "unknown", UNKNOWN.String())
	_, err := UNKNOWN.New()
	require.Error(t, err)
	_, err = IDFromString("md5")
	require.Error(t, err)
}

func TestCommitIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, id := range Implemented() {
		s, err := id.New()
		require.NoError(t, err)

		key := make([]byte, s.KeySize())
		_, err = rng.Read(key)
		require.NoError(t, err)

		d1 := s.Commit(5, key)
		d2 := s.Commit(5, key)
		require.Equal(t, d1, d2, "scheme %s", id)
		require.Len(t, d1, s.Size(), "scheme %s", id)

		other := make([]byte, s.KeySize())
		_, err = rng.Read(other)
		require.NoError(t, err)
		require.NotEqual(t, d1, s.Commit(5, other), "scheme %s", id)
		require.NotEqual(t, d1, s.Commit(6, key), "scheme %s", id)
	}
}

func TestOpen(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, id := range Implemented() {
		s, err := id.New()
		require.NoError(t, err)

		key := make([]byte, s.KeySize())
		_, err = rng.Read(key)
		require.NoError(t, err)
		d := s.Commit(7, key)

		require.True(t, Open(s, d, 7, key), "scheme %s", id)
		require.False(t, Open(s, d, 8, key), "scheme %s", id)
		require.False(t, Open(s, d, 7, key[:len(key)-1]), "scheme %s", id)
		require.False(t, Open(s, d[:len(d)-1], 7, key), "scheme %s", id)

		d[0] ^= 1
		require.False(t, Open(s, d, 7, key), "scheme %s", id)
	}
}

func TestOpenProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	for _, id := range Implemented() {
		s, err := id.New()
		require.NoError(t, err)

		properties := gopter.NewProperties(parameters)
		properties.Property("opening recommits to the issued digest", prop.ForAll(
			func(value uint8, seed uint64) bool {
				v := value%9 + 1
				rng := rand.New(rand.NewSource(seed))
				key := make([]byte, s.KeySize())
				if _, err := rng.Read(key); err != nil {
					return false
				}
				return Open(s, s.Commit(v, key), v, key)
			},
			gen.UInt8(),
			gen.UInt64(),
		))
		properties.TestingRun(t, gopter.ConsoleReporter(false))
	}
}
