package session

import (
	"bytes"
	"math/rand"
	"testing"

	"quiz/internal/pkg/prompt"

	"github.com/stretchr/testify/require"
)

type closeCounter struct {
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	s := New("127.0.0.1:1", prompt.NewChannel(&bytes.Buffer{}))
	require.True(t, s.Idle())

	c := &closeCounter{}
	require.NoError(t, r.Add(s, c))
	require.ErrorIs(t, r.Add(s, c), ErrSessionAlreadyExists)
	require.Equal(t, 1, r.Len())

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	require.Same(t, s, got)

	require.NoError(t, r.CloseAll())
	require.Equal(t, 1, c.closed)

	require.NoError(t, r.Remove(s.ID))
	require.ErrorIs(t, r.Remove(s.ID), ErrSessionNotFound)
	_, err = r.Get(s.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
	require.Zero(t, r.Len())
}

func TestPool(t *testing.T) {
	p := NewPool(3, 1, 3, 2, 1)
	require.Equal(t, 3, p.Len())
	require.Equal(t, "3 1 2", p.String())

	require.True(t, p.Remove(3))
	require.False(t, p.Remove(3))
	require.ElementsMatch(t, []int64{1, 2}, []int64(p))
}

func TestPoolPickIsUniform(t *testing.T) {
	p := NewPool(1, 2, 3, 4)
	r := rand.New(rand.NewSource(7))
	counts := map[int64]int{}
	const draws = 40000
	for i := 0; i < draws; i++ {
		counts[p.Pick(r)]++
	}
	for _, id := range p {
		require.InDelta(t, draws/4, counts[id], draws/40, "id %d drawn %d times", id, counts[id])
	}
}
