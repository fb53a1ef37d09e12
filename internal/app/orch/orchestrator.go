// Package orch drives conference lifecycle on top of the room registry.
package orch

import (
	"errors"
	"fmt"

	"github.com/dkeye/muc/internal/app"
	"github.com/dkeye/muc/internal/core"
	"github.com/dkeye/muc/internal/domain"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	Registry *app.Registry
	Gateway  *app.RoomGateway
	// AutoOwner grants ownership to the first member of a room without a moderator.
	AutoOwner bool
}

func New(reg *app.Registry, conferenceDomain string, autoOwner bool) *Orchestrator {
	return &Orchestrator{
		Registry:  reg,
		Gateway:   app.NewRoomGateway(conferenceDomain, reg),
		AutoOwner: autoOwner,
	}
}

// StartConference creates the room for name and joins it.
func (o *Orchestrator) StartConference(name string) (core.ChatRoom, error) {
	addr, err := o.Gateway.Address(name)
	if err != nil {
		return nil, err
	}
	room, err := o.Registry.Create(addr)
	if err != nil {
		return nil, err
	}
	if o.AutoOwner {
		room.AddLifecycleListener(core.LifecycleFuncs{
			OnJoined: func(m *domain.Member) { o.autoOwner(room, m) },
		})
	}
	if err := room.Join(); err != nil {
		o.Registry.Remove(addr)
		return nil, err
	}
	log.Info().Str("module", "orch").Str("room", addr.String()).Msg("conference started")
	return room, nil
}

// EndConference leaves the room and forgets it. Members are not evicted.
func (o *Orchestrator) EndConference(name string) error {
	addr, err := o.Gateway.Address(name)
	if err != nil {
		return err
	}
	room, ok := o.Registry.Remove(addr)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrConferenceNotFound, addr)
	}
	room.Leave()
	log.Info().Str("module", "orch").Str("room", addr.String()).Int("members", room.MemberCount()).Msg("conference ended")
	return nil
}

// Room resolves name to an active conference.
func (o *Orchestrator) Room(name string) (core.ChatRoom, error) {
	addr, err := o.Gateway.Address(name)
	if err != nil {
		return nil, err
	}
	room, ok := o.Registry.Get(addr)
	if !ok {
		return nil, fmt.Errorf("%w: %s", app.ErrConferenceNotFound, addr)
	}
	return room, nil
}

// autoOwner promotes joined unless someone else already moderates the room.
// It runs inside the room's join dispatch, so it only reads membership and
// uses the role path.
func (o *Orchestrator) autoOwner(room core.ChatRoom, joined *domain.Member) {
	for _, m := range room.Members() {
		if m.Role().HasModeratorRights() && !m.Same(joined) {
			return
		}
	}
	room.GrantOwnership(joined.Address().String())
	log.Info().Str("module", "orch").Str("room", room.Address().String()).Str("nickname", joined.Nickname()).Msg("auto owner granted")
}

// IsInvalidInput reports whether err came from a malformed room or nickname.
func IsInvalidInput(err error) bool {
	return errors.Is(err, domain.ErrInvalidAddress)
}
