package core

import (
	"github.com/dkeye/muc/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoleManager assigns member roles. Unlike MembershipStore it is lenient:
// a missing member or a malformed address is logged and otherwise ignored.
type RoleManager struct {
	room    domain.BareAddress
	members *MembershipStore
}

func NewRoleManager(room domain.BareAddress, members *MembershipStore) *RoleManager {
	return &RoleManager{room: room, members: members}
}

// SetRole updates the role of a member that is currently in the room.
// It does not emit an event.
func (rm *RoleManager) SetRole(m *domain.Member, role domain.Role) {
	current, ok := rm.members.FindByNickname(m.Nickname())
	if !ok {
		log.Warn().
			Str("module", "core.roles").
			Str("room", rm.room.String()).
			Str("nickname", m.Nickname()).
			Stringer("role", role).
			Msg("member not found, role not set")
		return
	}
	current.SetRole(role)
	log.Debug().
		Str("module", "core.roles").
		Str("room", rm.room.String()).
		Str("nickname", m.Nickname()).
		Stringer("role", role).
		Msg("role set")
}

// GrantOwnership makes the member at address (room/nickname) an owner.
// Only the nickname is used for the lookup.
func (rm *RoleManager) GrantOwnership(address string) {
	full, err := domain.ParseFull(address)
	if err != nil {
		log.Warn().Err(err).
			Str("module", "core.roles").
			Str("room", rm.room.String()).
			Str("address", address).
			Msg("invalid address to grant ownership")
		return
	}
	m, ok := rm.members.FindByNickname(full.Resource())
	if !ok {
		log.Warn().
			Str("module", "core.roles").
			Str("room", rm.room.String()).
			Str("address", address).
			Msg("member not found for ownership grant")
		return
	}
	rm.SetRole(m, domain.RoleOwner)
}

// IsMemberAllowedToUnmute always allows; media moderation lives elsewhere.
func (rm *RoleManager) IsMemberAllowedToUnmute(*domain.Member, domain.MediaType) bool {
	return true
}
