package feed

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/muc/internal/app"
	"github.com/dkeye/muc/internal/core"
	"github.com/dkeye/muc/internal/domain"
	"github.com/rs/zerolog/log"
)

type presenceMessage struct {
	Type   string             `json:"type"`
	Room   domain.BareAddress `json:"room"`
	Member domain.MemberView  `json:"member"`
}

type localRoleMessage struct {
	Type    string             `json:"type"`
	Room    domain.BareAddress `json:"room"`
	Role    domain.Role        `json:"role"`
	Initial bool               `json:"initial"`
}

type roomStateMessage struct {
	Type    string              `json:"type"`
	Room    core.RoomInfo       `json:"room"`
	Members []domain.MemberView `json:"members"`
}

type subscription struct {
	room      core.ChatRoom
	presence  core.ListenerID
	localRole core.ListenerID
}

func (s subscription) cancel() {
	s.room.RemovePresenceListener(s.presence)
	s.room.RemoveLocalRoleListener(s.localRole)
}

// subscribe registers listeners that run inside the room's dispatch; they
// only encode and enqueue.
func (ctl *Controller) subscribe(room core.ChatRoom, conn *wsFeedConn) subscription {
	addr := room.Address()
	return subscription{
		room: room,
		presence: room.AddPresenceListener(core.PresenceListenerFunc(func(e core.PresenceEvent) {
			ctl.publish(room, conn, presenceMessage{
				Type:   "member_" + string(e.Kind()),
				Room:   addr,
				Member: e.Member().View(),
			})
		})),
		localRole: room.AddLocalRoleListener(core.LocalRoleListenerFunc(func(e core.LocalRoleEvent) {
			ctl.publish(room, conn, localRoleMessage{
				Type:    "local_role",
				Room:    addr,
				Role:    e.Role,
				Initial: e.Initial,
			})
		})),
	}
}

func (ctl *Controller) publish(room core.ChatRoom, conn *wsFeedConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "feed").Msg("marshal event")
		return
	}
	err = conn.TrySend(b)
	if !errors.Is(err, ErrBackpressure) {
		return
	}
	switch ctl.opts.Policy.OnBackPressure(room, conn) {
	case app.Disconnect:
		log.Warn().Str("module", "feed").Str("room", room.Address().String()).Msg("slow subscriber disconnected")
		conn.Close()
	case app.DropEvent:
		log.Debug().Str("module", "feed").Str("room", room.Address().String()).Msg("event dropped for slow subscriber")
	}
}

func roomState(room core.ChatRoom) roomStateMessage {
	members := room.Members()
	views := make([]domain.MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, m.View())
	}
	return roomStateMessage{Type: "room_state", Room: room.Info(), Members: views}
}
