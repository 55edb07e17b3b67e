package app

import (
	"time"

	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/meetnexa/meetnexa/internal/core"
	"github.com/meetnexa/meetnexa/internal/domain"
	"github.com/meetnexa/meetnexa/internal/protocol"
)

// Coordinator owns the two registries and every rule that mutates them:
// room lifecycle (creation, host failover, activation, teardown), the
// waiting room, and message relay. One instance per process; constructing
// a second one gives a fully isolated world, which is how the tests run.
//
// All outbound delivery is fire-and-forget: a peer that cannot be reached
// never rolls back a mutation that was already applied.
type Coordinator struct {
	registry *Registry
	rooms    *Rooms
}

func NewCoordinator() *Coordinator {
	return &Coordinator{
		registry: NewRegistry(),
		rooms:    NewRooms(),
	}
}

// Connect registers a fresh connection with no room membership.
func (c *Coordinator) Connect(id domain.ConnID, conn core.SignalConnection) error {
	return c.registry.Register(id, conn)
}

// Disconnect is the transport-level teardown path. It is idempotent and
// always wins over any in-flight action from the same connection.
func (c *Coordinator) Disconnect(id domain.ConnID) {
	code, inRoom := c.registry.Unregister(id)
	if inRoom {
		c.removeFromRoom(code, id)
	}
}

// Join puts the connection into the room, creating it lazily. The first
// joiner becomes host regardless of declared intent, so a room can never
// have members without a host. Before the meeting is active, non-host
// joiners land in the waiting room and only the host hears about them;
// once active, joiners enter directly and receive a full roster snapshot.
//
// A connection that is already in a different room leaves it first.
func (c *Coordinator) Join(id domain.ConnID, roomCode, displayName, contactHint string, hostIntent bool) error {
	info, ok := c.registry.Lookup(id)
	if !ok {
		return domain.ErrUnknownConnection
	}
	p, err := domain.NewParticipant(displayName, contactHint)
	if err != nil {
		return err
	}
	c.registry.SetIdentity(id, p)

	code := domain.NormalizeRoomCode(roomCode)
	if info.Room == code {
		return nil
	}
	if info.Room != "" {
		c.removeFromRoom(info.Room, id)
		c.registry.ClearRoom(id)
	}

	for {
		rm := c.rooms.getOrCreate(code)
		rm.mu.Lock()
		if rm.closed {
			// Lost the race against teardown of the previous incarnation.
			rm.mu.Unlock()
			continue
		}

		// Claim the registry slot before touching room state. If the
		// connection disconnected mid-join, its cleanup saw no room
		// association, so no membership may be created here.
		if !c.registry.SetRoom(id, code) {
			rm.mu.Unlock()
			c.rooms.deleteIfEmpty(code)
			return domain.ErrUnknownConnection
		}

		if rm.hostID == "" {
			rm.hostID = id
		}
		rm.members = append(rm.members, id)

		if isHost := rm.hostID == id; !rm.active && !isHost {
			rm.pending[id] = struct{}{}
			c.send(rm.hostID, protocol.ParticipantPending{
				Type:        protocol.TypeParticipantPending,
				ID:          id,
				DisplayName: p.Name,
				ContactHint: p.ContactHint,
			})
			log.Info().Str("module", "app.coordinator").
				Str("conn", string(id)).Str("room", string(code)).Msg("joined waiting room")
		} else {
			joined := protocol.ParticipantJoined{
				Type:        protocol.TypeParticipantJoined,
				ID:          id,
				DisplayName: p.Name,
			}
			for _, m := range rm.members {
				if m != id {
					c.send(m, joined)
				}
			}
			c.send(id, c.snapshotLocked(rm, id))
			log.Info().Str("module", "app.coordinator").
				Str("conn", string(id)).Str("room", string(code)).
				Bool("host", rm.hostID == id).Msg("joined room")
		}
		rm.mu.Unlock()
		return nil
	}
}

// snapshotLocked builds the roster handed to a newly admitted member.
// Caller holds rm.mu. Waiting-room members are not part of the roster
// a client renders, and neither is the recipient itself.
func (c *Coordinator) snapshotLocked(rm *room, recipient domain.ConnID) protocol.RoomSnapshot {
	members := make([]core.MemberDTO, 0, len(rm.members))
	for _, m := range rm.members {
		if m == recipient {
			continue
		}
		if _, pending := rm.pending[m]; pending {
			continue
		}
		info, ok := c.registry.Lookup(m)
		if !ok {
			continue
		}
		members = append(members, core.MemberDTO{
			ID:         m,
			Name:       info.Participant.Name,
			MediaState: info.MediaState,
		})
	}
	return protocol.RoomSnapshot{
		Type:    protocol.TypeRoomSnapshot,
		Room:    rm.code,
		HostID:  rm.hostID,
		Active:  rm.active,
		Members: members,
	}
}

// Admit lets the host pull one participant out of the waiting room.
// Non-host callers and unknown targets are silent no-ops.
func (c *Coordinator) Admit(from, target domain.ConnID) bool {
	info, ok := c.registry.Lookup(from)
	if !ok || info.Room == "" {
		return false
	}
	rm, ok := c.rooms.get(info.Room)
	if !ok {
		return false
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.closed || rm.hostID != from {
		return false
	}
	if _, pending := rm.pending[target]; !pending {
		return false
	}
	delete(rm.pending, target)

	c.send(target, protocol.Admitted{Type: protocol.TypeAdmitted})
	tinfo, _ := c.registry.Lookup(target)
	joined := protocol.ParticipantJoined{
		Type:        protocol.TypeParticipantJoined,
		ID:          target,
		DisplayName: tinfo.Participant.Name,
	}
	for _, m := range rm.members {
		if m != target {
			c.send(m, joined)
		}
	}
	log.Info().Str("module", "app.coordinator").
		Str("conn", string(target)).Str("room", string(rm.code)).Msg("participant admitted")
	return true
}

// StartMeeting activates the room. Host-only; already-active rooms are a
// no-op. Participants still in the waiting room stay pending — admission
// remains a distinct host decision even after the meeting starts.
func (c *Coordinator) StartMeeting(from domain.ConnID) bool {
	info, ok := c.registry.Lookup(from)
	if !ok || info.Room == "" {
		return false
	}
	rm, ok := c.rooms.get(info.Room)
	if !ok {
		return false
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.closed || rm.hostID != from {
		return false
	}
	if rm.active {
		return true
	}
	rm.active = true
	started := protocol.MeetingStarted{Type: protocol.TypeMeetingStarted}
	for _, m := range rm.members {
		c.send(m, started)
	}
	log.Info().Str("module", "app.coordinator").Str("room", string(rm.code)).Msg("meeting started")
	return true
}

// Leave removes the connection from its room but keeps the connection
// itself alive; a later Join re-enters as a fresh member.
func (c *Coordinator) Leave(id domain.ConnID) {
	info, ok := c.registry.Lookup(id)
	if !ok || info.Room == "" {
		return
	}
	c.removeFromRoom(info.Room, id)
	c.registry.ClearRoom(id)
}

// removeFromRoom applies the departure rules: drop membership, tear the
// room down when it empties, otherwise fail the host over to the earliest
// joined remaining member and tell everyone who is left.
func (c *Coordinator) removeFromRoom(code domain.RoomCode, id domain.ConnID) {
	rm, ok := c.rooms.get(code)
	if !ok {
		return
	}
	rm.mu.Lock()
	if rm.closed || !rm.isMember(id) {
		rm.mu.Unlock()
		return
	}
	rm.removeMember(id)

	if len(rm.members) == 0 {
		rm.reset()
		rm.mu.Unlock()
		c.rooms.deleteIfEmpty(code)
		return
	}

	if rm.hostID == id {
		rm.hostID = rm.members[0]
		hc := protocol.HostChanged{Type: protocol.TypeHostChanged, NewHostID: rm.hostID}
		for _, m := range rm.members {
			c.send(m, hc)
		}
		log.Info().Str("module", "app.coordinator").
			Str("room", string(code)).Str("host", string(rm.hostID)).Msg("host changed")
	}

	left := protocol.ParticipantLeft{Type: protocol.TypeParticipantLeft, ID: id}
	for _, m := range rm.members {
		c.send(m, left)
	}
	rm.mu.Unlock()
	log.Info().Str("module", "app.coordinator").
		Str("conn", string(id)).Str("room", string(code)).Msg("left room")
}

// RelayDirected forwards one negotiation message to a named target.
// Both ends must be registered and share a room; anything else is dropped
// without telling the sender — a stale target is normal during churn.
// The payload passes through opaque and unmodified.
func (c *Coordinator) RelayDirected(kind string, from, to domain.ConnID, sdp *webrtc.SessionDescription, candidate *webrtc.ICECandidateInit) {
	finfo, fok := c.registry.Lookup(from)
	tinfo, tok := c.registry.Lookup(to)
	if !fok || !tok || finfo.Room == "" || finfo.Room != tinfo.Room {
		log.Debug().Str("module", "app.coordinator").
			Str("kind", kind).Str("from", string(from)).Str("to", string(to)).
			Msg("directed relay dropped")
		return
	}
	c.send(to, protocol.Relayed{Type: kind, From: from, SDP: sdp, Candidate: candidate})
}

// RelayChat stamps the message server-side and broadcasts it to every
// member, sender included, so all clients render the same authoritative copy.
func (c *Coordinator) RelayChat(from domain.ConnID, body string) {
	info, ok := c.registry.Lookup(from)
	if !ok || info.Room == "" {
		return
	}
	rm, ok := c.rooms.get(info.Room)
	if !ok {
		return
	}
	ev := protocol.ChatMessage{
		Type: protocol.TypeChatMessage,
		ChatMessage: domain.ChatMessage{
			ID:         uuid.NewString(),
			SenderID:   from,
			SenderName: info.Participant.Name,
			Body:       body,
			SentAt:     time.Now().UTC(),
		},
	}
	rm.mu.Lock()
	if !rm.closed {
		for _, m := range rm.members {
			c.send(m, ev)
		}
	}
	rm.mu.Unlock()
}

// RelayMediaState records the sender's reported flags and tells its peers.
func (c *Coordinator) RelayMediaState(from domain.ConnID, state domain.MediaState) {
	info, ok := c.registry.Lookup(from)
	if !ok || info.Room == "" {
		return
	}
	c.registry.SetMediaState(from, state)
	rm, ok := c.rooms.get(info.Room)
	if !ok {
		return
	}
	ev := protocol.MediaChange{Type: protocol.TypeMediaChange, ID: from, State: state}
	rm.mu.Lock()
	if !rm.closed {
		for _, m := range rm.members {
			if m != from {
				c.send(m, ev)
			}
		}
	}
	rm.mu.Unlock()
}

// RoomStatus is the read-only diagnostics surface; callers need no prior
// relationship to the room.
func (c *Coordinator) RoomStatus(code string) core.RoomStatus {
	return c.rooms.Status(domain.NormalizeRoomCode(code))
}

func (c *Coordinator) ConnectionCount() int { return c.registry.Count() }

func (c *Coordinator) RoomCount() int { return c.rooms.Count() }

func (c *Coordinator) send(id domain.ConnID, v any) {
	conn, ok := c.registry.Conn(id)
	if !ok {
		return
	}
	frame, err := protocol.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Msg("encode event")
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Debug().Err(err).Str("module", "app.coordinator").
			Str("conn", string(id)).Msg("send dropped")
	}
}
