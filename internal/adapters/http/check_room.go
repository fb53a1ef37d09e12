package http

import (
	"net/http"

	"github.com/dkeye/muc/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RoomChecker answers room existence queries.
type RoomChecker interface {
	CheckRoom(name string) app.RoomStatus
}

// CheckRoomHandler serves GET ?room=<name> with an empty body:
// 200 active, 404 inactive, 400 missing or malformed name.
func CheckRoomHandler(rooms RoomChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, ok := c.GetQuery("room")
		if !ok {
			log.Debug().Str("module", "adapters.http").Msg("check_room: room parameter missing")
			c.Status(http.StatusBadRequest)
			return
		}

		status := rooms.CheckRoom(name)
		log.Debug().Str("module", "adapters.http").Str("room", name).Stringer("status", status).Msg("check_room")
		switch status {
		case app.RoomFound:
			c.Status(http.StatusOK)
		case app.RoomNotFound:
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusBadRequest)
		}
	}
}
