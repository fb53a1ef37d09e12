package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/muc/internal/core"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const writeWait = 5 * time.Second

func (ctl *Controller) writePump(ctx context.Context, c *wsFeedConn, ws *websocket.Conn, logger *zerolog.Logger) {
	ticker := time.NewTicker(ctl.opts.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logger.Debug().Err(err).Msg("writePump ping")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				logger.Debug().Msg("writePump channel closed")
				return
			}
			if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Error().Err(err).Msg("writePump set deadline")
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Warn().Err(err).Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, room core.ChatRoom, c *wsFeedConn, ws *websocket.Conn, logger *zerolog.Logger) {
	defer func() {
		logger.Info().Msg("feed closed")
		c.Close()
	}()

	pongWait := ctl.opts.PingPeriod * 10 / 9
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn().Err(err).Msg("readPump read error")
			}
			return
		}
		ctl.handleRequest(room, c, data, logger)
	}
}

func (ctl *Controller) handleRequest(room core.ChatRoom, c *wsFeedConn, data []byte, logger *zerolog.Logger) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		logger.Warn().Err(err).Msg("bad json")
		return
	}

	switch env.Type {
	case "ping":
		ctl.handlePing(c)
	case "members":
		ctl.handleMembers(room, c)
	default:
		logger.Warn().Str("type", env.Type).Msg("unknown request")
	}
}

func (ctl *Controller) sendJSON(c *wsFeedConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.TrySend(b)
}
