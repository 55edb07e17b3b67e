package app

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/meetnexa/meetnexa/internal/core"
	"github.com/meetnexa/meetnexa/internal/domain"
)

// room is the mutable state of one meeting. Every read-then-write sequence
// on it runs under mu; the coordinator also composes a room's broadcasts
// under mu, which is what totally orders them per room.
//
// members keeps join order, so "earliest joined" is well-defined for host
// succession. pending is always a subset of members.
type room struct {
	mu      sync.Mutex
	code    domain.RoomCode
	members []domain.ConnID
	pending map[domain.ConnID]struct{}
	hostID  domain.ConnID
	active  bool
	closed  bool
}

func newRoom(code domain.RoomCode) *room {
	return &room{code: code, pending: make(map[domain.ConnID]struct{})}
}

// reset returns the room to its freshly-created state. Called under mu when
// the last member leaves, so a concurrent join that still holds the old
// pointer sees a brand-new room rather than stale flags.
func (rm *room) reset() {
	rm.members = nil
	rm.pending = make(map[domain.ConnID]struct{})
	rm.hostID = ""
	rm.active = false
}

func (rm *room) isMember(id domain.ConnID) bool {
	for _, m := range rm.members {
		if m == id {
			return true
		}
	}
	return false
}

func (rm *room) removeMember(id domain.ConnID) {
	for i, m := range rm.members {
		if m == id {
			rm.members = append(rm.members[:i], rm.members[i+1:]...)
			break
		}
	}
	delete(rm.pending, id)
}

// Rooms is the room registry: code -> live room. Rooms exist iff they have
// at least one member; creation is lazy on first join and deletion happens
// the instant the member set empties.
//
// Lock order is registry mu before room mu, never the reverse.
type Rooms struct {
	mu    sync.RWMutex
	rooms map[domain.RoomCode]*room
}

func NewRooms() *Rooms {
	return &Rooms{rooms: make(map[domain.RoomCode]*room)}
}

// getOrCreate returns the live room for code, creating an empty one if
// needed. The returned room is not locked; callers must take rm.mu and
// re-check rm.closed before mutating.
func (r *Rooms) getOrCreate(code domain.RoomCode) *room {
	r.mu.RLock()
	rm, ok := r.rooms[code]
	r.mu.RUnlock()
	if ok {
		return rm
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if rm, ok = r.rooms[code]; ok {
		return rm
	}
	rm = newRoom(code)
	r.rooms[code] = rm
	log.Info().Str("module", "app.rooms").Str("room", string(code)).Msg("room created")
	return rm
}

func (r *Rooms) get(code domain.RoomCode) (*room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[code]
	return rm, ok
}

// Delete removes a room. Only valid once its member set is empty; calling
// it on a populated room is a programming error.
func (r *Rooms) Delete(code domain.RoomCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[code]
	if !ok {
		return nil
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if len(rm.members) > 0 {
		return fmt.Errorf("%w: delete of room %q with %d members", domain.ErrInvariantViolation, code, len(rm.members))
	}
	rm.closed = true
	delete(r.rooms, code)
	log.Info().Str("module", "app.rooms").Str("room", string(code)).Msg("room deleted")
	return nil
}

// deleteIfEmpty is the lifecycle path: it tolerates the race where a join
// repopulated the room between the last leave and this call.
func (r *Rooms) deleteIfEmpty(code domain.RoomCode) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[code]
	if !ok {
		return false
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if len(rm.members) > 0 {
		return false
	}
	rm.closed = true
	delete(r.rooms, code)
	log.Info().Str("module", "app.rooms").Str("room", string(code)).Msg("room deleted")
	return true
}

// Status reports the diagnostics view of a code with no side effects.
func (r *Rooms) Status(code domain.RoomCode) core.RoomStatus {
	rm, ok := r.get(code)
	if !ok {
		return core.RoomStatus{}
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return core.RoomStatus{Exists: true, Active: rm.active, MemberCount: len(rm.members)}
}

func (r *Rooms) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
