package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/meetnexa/meetnexa/internal/core"
	"github.com/meetnexa/meetnexa/internal/domain"
)

// Outbound event type tags (coordinator -> client).
const (
	TypeRoomSnapshot       = "room-snapshot"
	TypeParticipantPending = "participant-pending"
	TypeParticipantJoined  = "participant-joined"
	TypeParticipantLeft    = "participant-left"
	TypeAdmitted           = "admitted"
	TypeHostChanged        = "host-changed"
	TypeMeetingStarted     = "meeting-started"
	TypeChatMessage        = "chat-message"
	TypeMediaChange        = "participant-media-change"
)

// RoomSnapshot is the full roster handed to a member on admitted entry,
// so a client never reconciles partial state. Later events are additive
// on top of it.
type RoomSnapshot struct {
	Type    string           `json:"type"`
	Room    domain.RoomCode  `json:"roomCode"`
	HostID  domain.ConnID    `json:"hostId"`
	Active  bool             `json:"isActive"`
	Members []core.MemberDTO `json:"members"`
}

type ParticipantPending struct {
	Type        string        `json:"type"`
	ID          domain.ConnID `json:"connectionId"`
	DisplayName string        `json:"displayName"`
	ContactHint string        `json:"contactHint,omitempty"`
}

type ParticipantJoined struct {
	Type        string        `json:"type"`
	ID          domain.ConnID `json:"connectionId"`
	DisplayName string        `json:"displayName"`
}

type ParticipantLeft struct {
	Type string        `json:"type"`
	ID   domain.ConnID `json:"connectionId"`
}

type Admitted struct {
	Type string `json:"type"`
}

type HostChanged struct {
	Type      string        `json:"type"`
	NewHostID domain.ConnID `json:"newHostId"`
}

type MeetingStarted struct {
	Type string `json:"type"`
}

type ChatMessage struct {
	Type string `json:"type"`
	domain.ChatMessage
}

type MediaChange struct {
	Type  string            `json:"type"`
	ID    domain.ConnID     `json:"connectionId"`
	State domain.MediaState `json:"mediaState"`
}

// Relayed is a directed negotiation message forwarded to its target.
// Exactly one of SDP or Candidate is set depending on Type.
type Relayed struct {
	Type      string                     `json:"type"`
	From      domain.ConnID              `json:"fromConnectionId"`
	SDP       *webrtc.SessionDescription `json:"sdp,omitempty"`
	Candidate *webrtc.ICECandidateInit   `json:"candidate,omitempty"`
}

// Encode marshals an outbound event into a wire frame.
func Encode(v any) (core.Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	return core.Frame(b), nil
}
