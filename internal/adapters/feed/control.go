package feed

import "github.com/dkeye/muc/internal/core"

func (ctl *Controller) handlePing(conn *wsFeedConn) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	ctl.sendJSON(conn, resp)
}

func (ctl *Controller) handleMembers(room core.ChatRoom, conn *wsFeedConn) {
	ctl.sendJSON(conn, roomState(room))
}
