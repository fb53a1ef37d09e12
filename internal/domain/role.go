package domain

import "fmt"

// Role is a member's authorization level in a room, ordered by privilege.
// It is informational only; enforcement happens outside this module.
type Role int32

const (
	RoleVisitor Role = iota
	RoleMember
	RoleModerator
	RoleOwner
)

var roleNames = [...]string{
	RoleVisitor:   "visitor",
	RoleMember:    "member",
	RoleModerator: "moderator",
	RoleOwner:     "owner",
}

func (r Role) String() string {
	if r < RoleVisitor || r > RoleOwner {
		return fmt.Sprintf("role(%d)", int32(r))
	}
	return roleNames[r]
}

// HasModeratorRights reports whether r is Moderator or above.
func (r Role) HasModeratorRights() bool { return r >= RoleModerator }

func (r Role) MarshalText() ([]byte, error) {
	if r < RoleVisitor || r > RoleOwner {
		return nil, fmt.Errorf("unknown role %d", int32(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	role, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// MediaType is the kind of media a member may publish.
type MediaType string

const (
	MediaAudio   MediaType = "audio"
	MediaVideo   MediaType = "video"
	MediaDesktop MediaType = "desktop"
)
