package core

import (
	"sync"
	"testing"

	"github.com/dkeye/muc/internal/domain"
	"github.com/stretchr/testify/require"
)

func loungeAddress(t *testing.T) domain.BareAddress {
	t.Helper()
	addr, err := domain.NewBare("lounge", "conference.example.org")
	require.NoError(t, err)
	return addr
}

func newLounge(t *testing.T) *Room {
	t.Helper()
	return NewRoom(loungeAddress(t), "session-1")
}

func newMember(t *testing.T, nickname string) *domain.Member {
	t.Helper()
	addr, err := domain.NewFull(loungeAddress(t), nickname)
	require.NoError(t, err)
	return domain.NewMember(addr)
}

// recorder implements every listener interface and keeps what it saw.
type recorder struct {
	mu        sync.Mutex
	presence  []PresenceEvent
	lifecycle []string
	localRole []LocalRoleEvent
}

func (r *recorder) MemberPresenceChanged(e PresenceEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presence = append(r.presence, e)
}

func (r *recorder) MemberJoined(m *domain.Member) { r.lifecycleCall("joined:" + m.Nickname()) }
func (r *recorder) MemberLeft(m *domain.Member)   { r.lifecycleCall("left:" + m.Nickname()) }
func (r *recorder) MemberKicked(m *domain.Member) { r.lifecycleCall("kicked:" + m.Nickname()) }

func (r *recorder) lifecycleCall(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lifecycle = append(r.lifecycle, s)
}

func (r *recorder) LocalRoleChanged(e LocalRoleEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.localRole = append(r.localRole, e)
}

func (r *recorder) presenceKinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.presence))
	for _, e := range r.presence {
		out = append(out, string(e.Kind())+":"+e.Member().Nickname())
	}
	return out
}

func (r *recorder) lifecycleCalls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lifecycle...)
}

func (r *recorder) localRoles() []LocalRoleEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LocalRoleEvent(nil), r.localRole...)
}

func (r *recorder) attach(room *Room) {
	room.AddPresenceListener(r)
	room.AddLifecycleListener(r)
	room.AddLocalRoleListener(r)
}
