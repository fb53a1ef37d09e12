package orch

import (
	"github.com/dkeye/muc/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) AddParticipant(roomName, nickname string) (*domain.Member, error) {
	room, err := o.Room(roomName)
	if err != nil {
		return nil, err
	}
	m, err := room.CreateMember(nickname)
	if err != nil {
		return nil, err
	}
	if err := room.AddMember(m); err != nil {
		return nil, err
	}
	log.Info().Str("module", "orch").Str("room", room.Address().String()).Str("nickname", m.Nickname()).Msg("participant added")
	return m, nil
}

func (o *Orchestrator) RemoveParticipant(roomName, nickname string) error {
	room, err := o.Room(roomName)
	if err != nil {
		return err
	}
	return room.RemoveByNickname(nickname)
}

func (o *Orchestrator) KickParticipant(roomName, nickname string) error {
	room, err := o.Room(roomName)
	if err != nil {
		return err
	}
	if err := room.KickMember(nickname); err != nil {
		return err
	}
	log.Info().Str("module", "orch").Str("room", room.Address().String()).Str("nickname", nickname).Msg("participant kicked")
	return nil
}

// GrantOwnership fails only when the room is unknown; the grant itself is
// best effort.
func (o *Orchestrator) GrantOwnership(roomName, nickname string) error {
	room, err := o.Room(roomName)
	if err != nil {
		return err
	}
	room.GrantOwnership(room.Address().String() + "/" + nickname)
	return nil
}
