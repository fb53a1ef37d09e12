package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/muc/internal/adapters/feed"
	"github.com/dkeye/muc/internal/app"
	"github.com/dkeye/muc/internal/app/orch"
	"github.com/dkeye/muc/internal/config"
	"github.com/dkeye/muc/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Mode:             "test",
		ConferenceDomain: "conference.example.org",
		PingPeriod:       time.Second,
		FeedBuffer:       8,
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *orch.Orchestrator) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	o := orch.New(app.NewRegistry(), "conference.example.org", false)
	feeds := feed.NewController(feed.Options{Buffer: 8, PingPeriod: time.Second})
	return SetupRouter(context.Background(), testConfig(), o, feeds), o
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckRoom_StatusMapping(t *testing.T) {
	r, o := newTestRouter(t)
	_, err := o.StartConference("lounge")
	require.NoError(t, err)

	cases := []struct {
		name   string
		target string
		want   int
	}{
		{"missing parameter", "/api/check_room", http.StatusBadRequest},
		{"empty parameter", "/api/check_room?room=", http.StatusBadRequest},
		{"malformed name", "/api/check_room?room=a%40b", http.StatusBadRequest},
		{"inactive room", "/api/check_room?room=kitchen", http.StatusNotFound},
		{"active room", "/api/check_room?room=lounge", http.StatusOK},
		{"missing parameter, trailing slash", "/api/check_room/", http.StatusBadRequest},
		{"inactive room, trailing slash", "/api/check_room/?room=kitchen", http.StatusNotFound},
		{"active room, trailing slash", "/api/check_room/?room=lounge", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tc.target, "")
			require.Equal(t, tc.want, w.Code)
			require.Empty(t, w.Body.String())
		})
	}
}

type panickingChecker struct{}

func (panickingChecker) CheckRoom(string) app.RoomStatus { panic("registry unavailable") }

func TestCheckRoom_InternalFaultIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(recovery())
	r.GET("/api/check_room", CheckRoomHandler(panickingChecker{}))

	w := do(r, http.MethodGet, "/api/check_room?room=lounge", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Empty(t, w.Body.String())
}

func TestRooms_Lifecycle(t *testing.T) {
	req := require.New(t)
	r, _ := newTestRouter(t)

	// Given a new conference
	w := do(r, http.MethodPost, "/api/rooms", `{"name":"Lounge"}`)
	req.Equal(http.StatusCreated, w.Code)
	req.JSONEq(`{"address":"lounge@conference.example.org","member_count":0,"joined":true}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/rooms", `{"name":"lounge"}`)
	req.Equal(http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/rooms", `{"name":"bad/name"}`)
	req.Equal(http.StatusBadRequest, w.Code)

	// When members join
	w = do(r, http.MethodPost, "/api/rooms/lounge/members", `{"nickname":"alice"}`)
	req.Equal(http.StatusCreated, w.Code)
	req.JSONEq(`{"nickname":"alice","address":"lounge@conference.example.org/alice","role":"member"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/rooms/lounge/members", `{"nickname":"alice"}`)
	req.Equal(http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/rooms/lounge/members", `{"nickname":"bob"}`)
	req.Equal(http.StatusCreated, w.Code)

	// And ownership is granted
	w = do(r, http.MethodPost, "/api/rooms/lounge/members/alice/owner", "")
	req.Equal(http.StatusNoContent, w.Code)
	w = do(r, http.MethodPost, "/api/rooms/lounge/members/ghost/owner", "")
	req.Equal(http.StatusNoContent, w.Code)

	// Then the member list reflects both
	w = do(r, http.MethodGet, "/api/rooms/lounge/members", "")
	req.Equal(http.StatusOK, w.Code)
	var members []domain.MemberView
	req.NoError(json.Unmarshal(w.Body.Bytes(), &members))
	req.Len(members, 2)
	req.Equal("alice", members[0].Nickname)
	req.Equal(domain.RoleOwner, members[0].Role)
	req.Equal(domain.RoleMember, members[1].Role)

	// When members leave or are kicked
	req.Equal(http.StatusNoContent, do(r, http.MethodDelete, "/api/rooms/lounge/members/alice", "").Code)
	req.Equal(http.StatusNotFound, do(r, http.MethodDelete, "/api/rooms/lounge/members/alice", "").Code)
	req.Equal(http.StatusNoContent, do(r, http.MethodPost, "/api/rooms/lounge/members/bob/kick", "").Code)
	req.Equal(http.StatusNotFound, do(r, http.MethodPost, "/api/rooms/lounge/members/bob/kick", "").Code)

	w = do(r, http.MethodGet, "/api/rooms", "")
	req.Equal(http.StatusOK, w.Code)
	req.JSONEq(`{"rooms":[{"address":"lounge@conference.example.org","member_count":0,"joined":true}]}`, w.Body.String())

	// When the conference ends
	req.Equal(http.StatusNoContent, do(r, http.MethodDelete, "/api/rooms/lounge", "").Code)
	req.Equal(http.StatusNotFound, do(r, http.MethodGet, "/api/rooms/lounge", "").Code)
	req.Equal(http.StatusNotFound, do(r, http.MethodGet, "/api/check_room?room=lounge", "").Code)
}

func TestRooms_MemberNicknameSpellings(t *testing.T) {
	req := require.New(t)
	r, o := newTestRouter(t)
	_, err := o.StartConference("lounge")
	req.NoError(err)

	// Given a member whose nickname arrives precomposed
	req.Equal(http.StatusCreated, do(r, http.MethodPost, "/api/rooms/lounge/members", `{"nickname":"\u00e9"}`).Code)

	// Then the decomposed spelling addresses the same member
	req.Equal(http.StatusConflict, do(r, http.MethodPost, "/api/rooms/lounge/members", `{"nickname":"e\u0301"}`).Code)
	req.Equal(http.StatusNoContent, do(r, http.MethodDelete, "/api/rooms/lounge/members/e%CC%81", "").Code)
	req.Equal(http.StatusNotFound, do(r, http.MethodDelete, "/api/rooms/lounge/members/%C3%A9", "").Code)
	req.Equal(http.StatusCreated, do(r, http.MethodPost, "/api/rooms/lounge/members", `{"nickname":"\u00e9"}`).Code)
}

func TestRooms_UnknownRoom(t *testing.T) {
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/rooms/kitchen/members", "").Code)
	require.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/api/rooms/kitchen/members", `{"nickname":"alice"}`).Code)
	require.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/rooms/kitchen/events", "").Code)
	require.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/rooms/kitchen/members", `{}`).Code)
}

func TestClientTokenMiddleware_SetsCookie(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/rooms", "")

	require.Contains(t, w.Header().Get("Set-Cookie"), "ct=")
}
