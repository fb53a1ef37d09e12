package core

import "github.com/dkeye/muc/internal/domain"

// PresenceKind names a PresenceEvent variant.
type PresenceKind string

const (
	KindJoined PresenceKind = "joined"
	KindLeft   PresenceKind = "left"
	KindKicked PresenceKind = "kicked"
)

// PresenceEvent is one of Joined, Left or Kicked. The set is closed:
// each variant delivers itself to a LifecycleListener, so a new variant
// has to pick a LifecycleListener method to compile.
type PresenceEvent interface {
	Member() *domain.Member
	Kind() PresenceKind
	deliver(LifecycleListener)
}

type Joined struct{ M *domain.Member }
type Left struct{ M *domain.Member }
type Kicked struct{ M *domain.Member }

func (e Joined) Member() *domain.Member { return e.M }
func (e Left) Member() *domain.Member   { return e.M }
func (e Kicked) Member() *domain.Member { return e.M }

func (Joined) Kind() PresenceKind { return KindJoined }
func (Left) Kind() PresenceKind   { return KindLeft }
func (Kicked) Kind() PresenceKind { return KindKicked }

func (e Joined) deliver(l LifecycleListener) { l.MemberJoined(e.M) }
func (e Left) deliver(l LifecycleListener)   { l.MemberLeft(e.M) }
func (e Kicked) deliver(l LifecycleListener) { l.MemberKicked(e.M) }

// LocalRoleEvent reports the role of the room's own participant.
// Initial is true for the role granted by Join.
type LocalRoleEvent struct {
	Role    domain.Role
	Initial bool
}

// LifecycleListener gets one typed callback per presence kind.
type LifecycleListener interface {
	MemberJoined(*domain.Member)
	MemberLeft(*domain.Member)
	MemberKicked(*domain.Member)
}

type PresenceListener interface {
	MemberPresenceChanged(PresenceEvent)
}

type LocalRoleListener interface {
	LocalRoleChanged(LocalRoleEvent)
}

type PresenceListenerFunc func(PresenceEvent)

func (f PresenceListenerFunc) MemberPresenceChanged(e PresenceEvent) { f(e) }

type LocalRoleListenerFunc func(LocalRoleEvent)

func (f LocalRoleListenerFunc) LocalRoleChanged(e LocalRoleEvent) { f(e) }

// LifecycleFuncs adapts optional callbacks to LifecycleListener. Nil fields are skipped.
type LifecycleFuncs struct {
	OnJoined func(*domain.Member)
	OnLeft   func(*domain.Member)
	OnKicked func(*domain.Member)
}

func (f LifecycleFuncs) MemberJoined(m *domain.Member) {
	if f.OnJoined != nil {
		f.OnJoined(m)
	}
}

func (f LifecycleFuncs) MemberLeft(m *domain.Member) {
	if f.OnLeft != nil {
		f.OnLeft(m)
	}
}

func (f LifecycleFuncs) MemberKicked(m *domain.Member) {
	if f.OnKicked != nil {
		f.OnKicked(m)
	}
}
