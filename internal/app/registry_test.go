package app

import (
	"testing"

	"github.com/dkeye/muc/internal/domain"
	"github.com/stretchr/testify/require"
)

func mustBare(t *testing.T, local string) domain.BareAddress {
	t.Helper()
	addr, err := domain.NewBare(local, "conference.example.org")
	require.NoError(t, err)
	return addr
}

func TestRegistry_CreateGetRemove(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	addr := mustBare(t, "lounge")

	room, err := reg.Create(addr)
	req.NoError(err)
	req.NotEmpty(room.Session())
	req.Equal(addr, room.Address())

	got, ok := reg.Get(addr)
	req.True(ok)
	req.Equal(addr, got.Address())

	_, err = reg.Create(addr)
	req.ErrorIs(err, ErrConferenceExists)

	removed, ok := reg.Remove(addr)
	req.True(ok)
	req.Equal(addr, removed.Address())
	_, ok = reg.Get(addr)
	req.False(ok)
	_, ok = reg.Remove(addr)
	req.False(ok)
}

func TestRegistry_SessionsAreDistinct(t *testing.T) {
	reg := NewRegistry()
	a, err := reg.Create(mustBare(t, "a"))
	require.NoError(t, err)
	b, err := reg.Create(mustBare(t, "b"))
	require.NoError(t, err)

	require.NotEqual(t, a.Session(), b.Session())
}

func TestRegistry_ListSorted(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	for _, n := range []string{"zeta", "alpha", "mid"} {
		_, err := reg.Create(mustBare(t, n))
		req.NoError(err)
	}

	list := reg.List()

	req.Len(list, 3)
	req.Equal("alpha@conference.example.org", list[0].Address.String())
	req.Equal("mid@conference.example.org", list[1].Address.String())
	req.Equal("zeta@conference.example.org", list[2].Address.String())
	req.Equal(3, reg.Len())
}
