package core

import "github.com/dkeye/muc/internal/domain"

// ChatRoom is the room surface the application layer works against.
// *Room implements it.
type ChatRoom interface {
	Address() domain.BareAddress
	Info() RoomInfo

	Join() error
	Leave()
	IsJoined() bool
	LocalRole() domain.Role

	CreateMember(nickname string) (*domain.Member, error)
	AddMember(m *domain.Member) error
	RemoveByNickname(nickname string) error
	KickMember(nickname string) error
	Members() []*domain.Member
	MemberCount() int
	FindByNickname(nickname string) (*domain.Member, bool)

	GrantOwnership(address string)

	AddLifecycleListener(LifecycleListener) ListenerID
	RemoveLifecycleListener(ListenerID) bool
	AddPresenceListener(PresenceListener) ListenerID
	RemovePresenceListener(ListenerID) bool
	AddLocalRoleListener(LocalRoleListener) ListenerID
	RemoveLocalRoleListener(ListenerID) bool
}

// RoomInfo is a read-only summary for APIs.
type RoomInfo struct {
	Address     domain.BareAddress `json:"address"`
	MemberCount int                `json:"member_count"`
	Joined      bool               `json:"joined"`
}

var _ ChatRoom = (*Room)(nil)
