package app

import (
	"github.com/dkeye/muc/internal/core"
	"github.com/dkeye/muc/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomStatus is the answer to a room existence query.
type RoomStatus int

const (
	RoomInvalid RoomStatus = iota
	RoomNotFound
	RoomFound
)

func (s RoomStatus) String() string {
	switch s {
	case RoomFound:
		return "found"
	case RoomNotFound:
		return "not_found"
	default:
		return "invalid"
	}
}

// ConferenceLookup finds an active conference by address.
type ConferenceLookup interface {
	Get(addr domain.BareAddress) (core.ChatRoom, bool)
}

// RoomGateway answers whether a room name maps to an active conference
// under a fixed conference domain.
type RoomGateway struct {
	domain string
	rooms  ConferenceLookup
}

func NewRoomGateway(conferenceDomain string, rooms ConferenceLookup) *RoomGateway {
	return &RoomGateway{domain: conferenceDomain, rooms: rooms}
}

// Address normalizes a room name into a bare address in the gateway's domain.
func (g *RoomGateway) Address(name string) (domain.BareAddress, error) {
	return domain.NewBare(name, g.domain)
}

func (g *RoomGateway) CheckRoom(name string) RoomStatus {
	if name == "" {
		return RoomInvalid
	}
	addr, err := g.Address(name)
	if err != nil {
		log.Debug().Err(err).Str("module", "app.gateway").Str("room", name).Msg("room name rejected")
		return RoomInvalid
	}
	if _, ok := g.rooms.Get(addr); !ok {
		return RoomNotFound
	}
	return RoomFound
}
