package core

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dkeye/muc/internal/domain"
	"github.com/rs/zerolog/log"
)

// Room is an in-memory multi-user room: membership, roles and events.
//
// Membership changes and their notifications run under one room lock, so a
// listener sees events in mutation order and only if it was registered before
// the event's listener snapshot. Listeners may read the room but must not
// add, remove or kick members of the same room from a callback; that
// deadlocks. Join and Leave follow the same rule for local-role listeners.
type Room struct {
	address domain.BareAddress
	session SessionID

	mu      sync.Mutex
	members *MembershipStore
	roles   *RoleManager
	events  *Dispatcher

	joinMu    sync.Mutex
	joined    atomic.Bool
	localRole atomic.Int32
}

func NewRoom(address domain.BareAddress, session SessionID) *Room {
	members := NewMembershipStore()
	r := &Room{
		address: address,
		session: session,
		members: members,
		roles:   NewRoleManager(address, members),
		events:  NewDispatcher(),
	}
	r.localRole.Store(int32(domain.RoleVisitor))
	return r
}

func (r *Room) Address() domain.BareAddress { return r.address }
func (r *Room) Session() SessionID          { return r.session }
func (r *Room) IsJoined() bool              { return r.joined.Load() }

// LocalRole is the role of the room's own participant: Owner while joined,
// Visitor otherwise.
func (r *Room) LocalRole() domain.Role { return domain.Role(r.localRole.Load()) }

// Join enters the room as owner and notifies local-role listeners.
func (r *Room) Join() error {
	r.joinMu.Lock()
	defer r.joinMu.Unlock()
	if r.joined.Load() {
		return fmt.Errorf("%w: %s", ErrAlreadyJoined, r.address)
	}
	r.joined.Store(true)
	// no authorization handshake: joining always grants ownership
	r.localRole.Store(int32(domain.RoleOwner))
	log.Info().Str("module", "core.room").Str("room", r.address.String()).Msg("joined")
	r.events.fireLocalRole(LocalRoleEvent{Role: domain.RoleOwner, Initial: true})
	return nil
}

// Leave exits the room. Members stay in place and no Left events are sent.
func (r *Room) Leave() {
	r.joinMu.Lock()
	defer r.joinMu.Unlock()
	if !r.joined.Load() {
		return
	}
	r.joined.Store(false)
	r.localRole.Store(int32(domain.RoleVisitor))
	log.Info().Str("module", "core.room").Str("room", r.address.String()).Msg("left")
}

// CreateMember builds a member addressed at room/nickname without adding it.
func (r *Room) CreateMember(nickname string) (*domain.Member, error) {
	addr, err := domain.NewFull(r.address, nickname)
	if err != nil {
		return nil, err
	}
	return domain.NewMember(addr), nil
}

func (r *Room) AddMember(m *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.members.Add(m); err != nil {
		return err
	}
	log.Info().Str("module", "core.room").Str("room", r.address.String()).Str("nickname", m.Nickname()).Msg("member added")
	r.events.capturePresence(Joined{M: m}).run()
	return nil
}

func (r *Room) RemoveMember(m *domain.Member) error {
	return r.remove(m.Nickname(), func(m *domain.Member) PresenceEvent { return Left{M: m} })
}

func (r *Room) RemoveByNickname(nickname string) error {
	return r.remove(nickname, func(m *domain.Member) PresenceEvent { return Left{M: m} })
}

func (r *Room) KickMember(nickname string) error {
	return r.remove(nickname, func(m *domain.Member) PresenceEvent { return Kicked{M: m} })
}

func (r *Room) remove(nickname string, event func(*domain.Member) PresenceEvent) error {
	nickname, err := domain.NormalizeNickname(nickname)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members.FindByNickname(nickname)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, nickname)
	}
	if err := r.members.Remove(m); err != nil {
		return err
	}
	e := event(m)
	log.Info().Str("module", "core.room").Str("room", r.address.String()).Str("nickname", nickname).Str("kind", string(e.Kind())).Msg("member removed")
	r.events.capturePresence(e).run()
	return nil
}

func (r *Room) Members() []*domain.Member { return r.members.List() }
func (r *Room) MemberCount() int          { return r.members.Count() }

// FindByNickname matches nicknames the same way CreateMember stores them.
func (r *Room) FindByNickname(nickname string) (*domain.Member, bool) {
	nickname, err := domain.NormalizeNickname(nickname)
	if err != nil {
		return nil, false
	}
	return r.members.FindByNickname(nickname)
}

// FindMember looks a member up by the resource of its full address.
func (r *Room) FindMember(addr domain.FullAddress) (*domain.Member, bool) {
	if addr.Resource() == "" {
		return nil, false
	}
	return r.members.FindByNickname(addr.Resource())
}

func (r *Room) SetRole(m *domain.Member, role domain.Role) { r.roles.SetRole(m, role) }
func (r *Room) GrantOwnership(address string)               { r.roles.GrantOwnership(address) }

func (r *Room) IsMemberAllowedToUnmute(m *domain.Member, media domain.MediaType) bool {
	return r.roles.IsMemberAllowedToUnmute(m, media)
}

func (r *Room) AddLifecycleListener(l LifecycleListener) ListenerID {
	return r.events.AddLifecycleListener(l)
}

func (r *Room) RemoveLifecycleListener(id ListenerID) bool {
	return r.events.RemoveLifecycleListener(id)
}

func (r *Room) AddPresenceListener(l PresenceListener) ListenerID {
	return r.events.AddPresenceListener(l)
}

func (r *Room) RemovePresenceListener(id ListenerID) bool {
	return r.events.RemovePresenceListener(id)
}

func (r *Room) AddLocalRoleListener(l LocalRoleListener) ListenerID {
	return r.events.AddLocalRoleListener(l)
}

func (r *Room) RemoveLocalRoleListener(id ListenerID) bool {
	return r.events.RemoveLocalRoleListener(id)
}

func (r *Room) Info() RoomInfo {
	return RoomInfo{Address: r.address, MemberCount: r.MemberCount(), Joined: r.IsJoined()}
}

func (r *Room) String() string {
	return fmt.Sprintf("Room[%s, %s]", r.address, r.session)
}
