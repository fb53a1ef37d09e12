package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRole_Ordering(t *testing.T) {
	req := require.New(t)
	req.True(RoleOwner.HasModeratorRights())
	req.True(RoleModerator.HasModeratorRights())
	req.False(RoleMember.HasModeratorRights())
	req.False(RoleVisitor.HasModeratorRights())
}

func TestRole_JSON(t *testing.T) {
	req := require.New(t)

	b, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{RoleModerator})
	req.NoError(err)
	req.JSONEq(`{"role":"moderator"}`, string(b))

	var out struct {
		Role Role `json:"role"`
	}
	req.NoError(json.Unmarshal([]byte(`{"role":"owner"}`), &out))
	req.Equal(RoleOwner, out.Role)

	req.Error(json.Unmarshal([]byte(`{"role":"admin"}`), &out))
}

func TestMember_DefaultsAndIdentity(t *testing.T) {
	req := require.New(t)
	room, err := NewBare("lounge", "conference.example.org")
	req.NoError(err)
	a1, err := NewFull(room, "alice")
	req.NoError(err)

	// Given two members built from the same nickname
	m1 := NewMember(a1)
	m2 := NewMember(a1)

	// Then they start as plain members and compare equal by nickname
	req.Equal(RoleMember, m1.Role())
	req.True(m1.Same(m2))

	// When the role changes
	m1.SetRole(RoleOwner)

	// Then the view reflects it
	req.Equal(MemberView{Nickname: "alice", Address: a1, Role: RoleOwner}, m1.View())
}
