package http

import (
	"context"
	"net/http"

	"github.com/dkeye/muc/internal/adapters/feed"
	"github.com/dkeye/muc/internal/app/orch"
	"github.com/dkeye/muc/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func genClientToken() string {
	return uuid.NewString()
}

func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

// recovery turns panics into an empty 500 and logs them.
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Error().
			Str("module", "adapters.http").
			Str("path", c.Request.URL.Path).
			Interface("panic", err).
			Msg("request failed")
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, feeds *feed.Controller) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(recovery())
	r.Use(ClientTokenMiddleware())

	api := r.Group("/api")
	checkRoom := CheckRoomHandler(o.Gateway)
	api.GET("/check_room", checkRoom)
	api.GET("/check_room/", checkRoom)

	rooms := &roomHandlers{orch: o}
	api.GET("/rooms", rooms.list)
	api.POST("/rooms", rooms.create)
	api.GET("/rooms/:room", rooms.get)
	api.DELETE("/rooms/:room", rooms.end)
	api.GET("/rooms/:room/members", rooms.members)
	api.POST("/rooms/:room/members", rooms.addMember)
	api.DELETE("/rooms/:room/members/:nick", rooms.removeMember)
	api.POST("/rooms/:room/members/:nick/kick", rooms.kickMember)
	api.POST("/rooms/:room/members/:nick/owner", rooms.grantOwner)

	api.GET("/rooms/:room/events", func(c *gin.Context) {
		room, err := o.Room(c.Param("room"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		feeds.HandleFeed(ctx, c, room)
	})

	log.Info().Str("module", "adapters.http").Str("domain", cfg.ConferenceDomain).Msg("router setup")
	return r
}
