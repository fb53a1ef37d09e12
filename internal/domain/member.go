// Package domain contains room entities and address handling, no room logic.
package domain

import "sync/atomic"

// Member is a participant present in a room.
// Identity is the nickname; the role is the only mutable field.
type Member struct {
	nickname string
	address  FullAddress
	role     atomic.Int32
}

// NewMember builds a member at address with the default participant role.
func NewMember(address FullAddress) *Member {
	m := &Member{nickname: address.Resource(), address: address}
	m.role.Store(int32(RoleMember))
	return m
}

func (m *Member) Nickname() string     { return m.nickname }
func (m *Member) Address() FullAddress { return m.address }
func (m *Member) Role() Role           { return Role(m.role.Load()) }
func (m *Member) SetRole(r Role)       { m.role.Store(int32(r)) }

// Same reports whether both members carry the same nickname.
func (m *Member) Same(o *Member) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.nickname == o.nickname
}

func (m *Member) String() string { return m.address.String() }

// MemberView is a read-only copy for APIs and event payloads.
type MemberView struct {
	Nickname string      `json:"nickname"`
	Address  FullAddress `json:"address"`
	Role     Role        `json:"role"`
}

func (m *Member) View() MemberView {
	return MemberView{Nickname: m.nickname, Address: m.address, Role: m.Role()}
}
