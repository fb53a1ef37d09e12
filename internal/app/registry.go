package app

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dkeye/muc/internal/core"
	"github.com/dkeye/muc/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrConferenceExists   = errors.New("conference already exists")
	ErrConferenceNotFound = errors.New("conference not found")
)

type conferenceEntry struct {
	room    *core.Room
	created time.Time
}

// Registry holds the active conferences by room address.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.BareAddress]*conferenceEntry
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.BareAddress]*conferenceEntry)}
}

// Create registers a new room owned by a fresh session.
func (r *Registry) Create(addr domain.BareAddress) (*core.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[addr]; ok {
		return nil, fmt.Errorf("%w: %s", ErrConferenceExists, addr)
	}
	sid := core.SessionID(uuid.NewString())
	room := core.NewRoom(addr, sid)
	r.rooms[addr] = &conferenceEntry{room: room, created: time.Now()}
	log.Info().Str("module", "app.registry").Str("room", addr.String()).Str("sid", string(sid)).Msg("conference created")
	return room, nil
}

func (r *Registry) Get(addr domain.BareAddress) (core.ChatRoom, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rooms[addr]
	if !ok {
		return nil, false
	}
	return e.room, true
}

// Remove drops the room from the registry; the caller decides whether to
// leave it first.
func (r *Registry) Remove(addr domain.BareAddress) (core.ChatRoom, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rooms[addr]
	if !ok {
		return nil, false
	}
	delete(r.rooms, addr)
	log.Info().Str("module", "app.registry").Str("room", addr.String()).Dur("age", time.Since(e.created)).Msg("conference removed")
	return e.room, true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// List returns room summaries sorted by address.
func (r *Registry) List() []core.RoomInfo {
	r.mu.RLock()
	out := make([]core.RoomInfo, 0, len(r.rooms))
	for _, e := range r.rooms {
		out = append(out, e.room.Info())
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Address.String() < out[j].Address.String()
	})
	return out
}
