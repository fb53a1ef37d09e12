package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/muc/internal/app"
	"github.com/dkeye/muc/internal/app/orch"
	"github.com/dkeye/muc/internal/core"
	"github.com/dkeye/muc/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type roomHandlers struct {
	orch *orch.Orchestrator
}

func statusFor(err error) int {
	switch {
	case orch.IsInvalidInput(err):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrConferenceNotFound), errors.Is(err, core.ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrConferenceExists), errors.Is(err, core.ErrDuplicateMember):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	code := statusFor(err)
	ev := log.Debug()
	if code == http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Str("module", "adapters.http").Str("path", c.Request.URL.Path).Int("status", code).Msg("request rejected")
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}

// GET /api/rooms
func (h *roomHandlers) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.orch.Registry.List()})
}

// POST /api/rooms {"name": "..."}
func (h *roomHandlers) create(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid name"})
		return
	}
	room, err := h.orch.StartConference(req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room.Info())
}

func (h *roomHandlers) get(c *gin.Context) {
	room, err := h.orch.Room(c.Param("room"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, room.Info())
}

func (h *roomHandlers) end(c *gin.Context) {
	if err := h.orch.EndConference(c.Param("room")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *roomHandlers) members(c *gin.Context) {
	room, err := h.orch.Room(c.Param("room"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	members := room.Members()
	out := make([]domain.MemberView, 0, len(members))
	for _, m := range members {
		out = append(out, m.View())
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/rooms/:room/members {"nickname": "..."}
func (h *roomHandlers) addMember(c *gin.Context) {
	var req struct {
		Nickname string `json:"nickname"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Nickname == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nickname"})
		return
	}
	m, err := h.orch.AddParticipant(c.Param("room"), req.Nickname)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m.View())
}

func (h *roomHandlers) removeMember(c *gin.Context) {
	if err := h.orch.RemoveParticipant(c.Param("room"), c.Param("nick")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *roomHandlers) kickMember(c *gin.Context) {
	if err := h.orch.KickParticipant(c.Param("room"), c.Param("nick")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Role grants are best effort: an unknown nickname still answers 204.
func (h *roomHandlers) grantOwner(c *gin.Context) {
	if err := h.orch.GrantOwnership(c.Param("room"), c.Param("nick")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
