package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/meetnexa/meetnexa/internal/core"
	"github.com/meetnexa/meetnexa/internal/domain"
)

type connEntry struct {
	conn        core.SignalConnection
	participant domain.Participant
	media       domain.MediaState
	room        domain.RoomCode
}

// ConnectionInfo is the read-only view of one registered connection.
type ConnectionInfo struct {
	ID          domain.ConnID
	Participant domain.Participant
	MediaState  domain.MediaState
	Room        domain.RoomCode
}

// Registry tracks every live connection: its transport endpoint, declared
// identity, reported media state, and current room. Entries are keyed by
// connection and rarely contended across rooms, so a single RWMutex is enough.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ConnID]*connEntry)}
}

// Register creates an entry with no room membership.
func (r *Registry) Register(id domain.ConnID, conn core.SignalConnection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; ok {
		return domain.ErrDuplicateConnection
	}
	r.conns[id] = &connEntry{conn: conn}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("connection registered")
	return nil
}

// Unregister removes the entry and reports the room it was in, if any,
// so the caller can drive room cleanup. Unregistering an unknown id is a no-op.
func (r *Registry) Unregister(id domain.ConnID) (domain.RoomCode, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[id]
	if !ok {
		return "", false
	}
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("connection unregistered")
	return e.room, e.room != ""
}

func (r *Registry) SetIdentity(id domain.ConnID, p domain.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		e.participant = p
	}
}

func (r *Registry) SetMediaState(id domain.ConnID, state domain.MediaState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		e.media = state
	}
}

func (r *Registry) SetRoom(id domain.ConnID, code domain.RoomCode) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[id]
	if !ok {
		return false
	}
	e.room = code
	return true
}

func (r *Registry) ClearRoom(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		e.room = ""
	}
}

func (r *Registry) Lookup(id domain.ConnID) (ConnectionInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok {
		return ConnectionInfo{}, false
	}
	return ConnectionInfo{ID: id, Participant: e.participant, MediaState: e.media, Room: e.room}, true
}

// Conn returns the transport endpoint for fan-out.
func (r *Registry) Conn(id domain.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok {
		return nil, false
	}
	return e.conn, true
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
