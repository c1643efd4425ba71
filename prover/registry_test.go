package prover

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	var evicted []string
	r := NewRegistry(2, time.Hour, func(id string) { evicted = append(evicted, id) })

	s := testSession(t, 1)
	id := r.Create(s)
	require.NotEmpty(t, id)

	got, ok := r.Get(id)
	require.True(t, ok)
	require.Same(t, s, got)

	_, ok = r.Get("not-a-session")
	require.False(t, ok)

	id2 := r.Create(testSession(t, 2))
	require.Equal(t, 2, r.Len())

	// capacity is 2; a third session evicts the stalest
	r.Create(testSession(t, 3))
	require.Equal(t, 2, r.Len())
	require.Contains(t, evicted, id)

	r.Drop(id2)
	_, ok = r.Get(id2)
	require.False(t, ok)
	require.Contains(t, evicted, id2)
}

func TestRegistryExpiresSessions(t *testing.T) {
	r := NewRegistry(0, 50*time.Millisecond, nil)
	id := r.Create(testSession(t, 4))

	_, ok := r.Get(id)
	require.True(t, ok)

	require.Eventually(t, func() bool {
		_, ok := r.Get(id)
		return !ok
	}, 5*time.Second, 20*time.Millisecond)
}
