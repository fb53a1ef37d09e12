// Package feed streams room presence and local-role events over websocket.
package feed

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/muc/internal/app"
	"github.com/dkeye/muc/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

type Options struct {
	Buffer     int
	ReadLimit  int64
	PingPeriod time.Duration
	Policy     app.Policy
}

type Controller struct {
	opts     Options
	upgrader websocket.Upgrader
}

func NewController(opts Options) *Controller {
	if opts.Policy == nil {
		opts.Policy = app.SimplePolicy{}
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 32
	}
	if opts.PingPeriod <= 0 {
		opts.PingPeriod = 54 * time.Second
	}
	return &Controller{
		opts: opts,
		upgrader: websocket.Upgrader{
			// TODO: restrict origins once the admin UI has a fixed host.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// wsFeedConn is a bounded outbound queue in front of a websocket.
// It may be written to before the socket is attached.
type wsFeedConn struct {
	send chan core.Frame

	mu     sync.RWMutex
	ws     *websocket.Conn
	closed bool
}

func newFeedConn(buffer int) *wsFeedConn {
	return &wsFeedConn{send: make(chan core.Frame, buffer)}
}

func (c *wsFeedConn) attach(ws *websocket.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		_ = ws.Close()
		return false
	}
	c.ws = ws
	return true
}

func (c *wsFeedConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsFeedConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	if c.ws != nil {
		_ = c.ws.Close()
	}
}

// HandleFeed subscribes to room before upgrading, so every event after the
// handshake response is delivered.
func (ctl *Controller) HandleFeed(ctx context.Context, c *gin.Context, room core.ChatRoom) {
	token := c.GetString("client_token")
	logger := log.With().
		Str("module", "feed").
		Str("room", room.Address().String()).
		Str("client", token).
		Logger()

	conn := newFeedConn(ctl.opts.Buffer)
	sub := ctl.subscribe(room, conn)

	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sub.cancel()
		conn.Close()
		logger.Warn().Err(err).Msg("ws upgrade")
		return
	}
	if !conn.attach(ws) {
		sub.cancel()
		return
	}
	ws.SetReadLimit(ctl.opts.ReadLimit)
	logger.Info().Msg("feed subscribed")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn, ws, &logger)
	go func() {
		defer cancel()
		defer sub.cancel()
		ctl.readPump(ctx, room, conn, ws, &logger)
	}()
}
