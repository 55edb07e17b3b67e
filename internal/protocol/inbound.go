// Package protocol defines the closed set of events the coordinator
// consumes and produces. Every wire message is a JSON object with a "type"
// discriminator; unknown or malformed events are rejected at the boundary
// instead of being silently misinterpreted.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/meetnexa/meetnexa/internal/domain"
)

// Inbound event type tags (client -> coordinator).
const (
	TypeJoin         = "join"
	TypeOffer        = "offer"
	TypeAnswer       = "answer"
	TypeICECandidate = "ice-candidate"
	TypeChat         = "chat"
	TypeMediaState   = "media-state"
	TypeStartMeeting = "start-meeting"
	TypeAdmit        = "admit"
	TypeLeave        = "leave"
)

var ErrUnknownEvent = errors.New("unknown event type")

// Inbound is the closed union of client events. Only types in this
// package implement it.
type Inbound interface{ inbound() }

type Join struct {
	RoomCode    string `json:"roomCode"`
	DisplayName string `json:"displayName"`
	ContactHint string `json:"contactHint,omitempty"`
	IsHost      bool   `json:"isHostIntent,omitempty"`
}

// Offer carries one peer's SDP offer to a named target. The coordinator
// relays the description verbatim and never interprets it.
type Offer struct {
	Target string                    `json:"targetConnectionId"`
	SDP    webrtc.SessionDescription `json:"sdp"`
}

type Answer struct {
	Target string                    `json:"targetConnectionId"`
	SDP    webrtc.SessionDescription `json:"sdp"`
}

type ICECandidate struct {
	Target    string                  `json:"targetConnectionId"`
	Candidate webrtc.ICECandidateInit `json:"candidate"`
}

type Chat struct {
	Body string `json:"body"`
}

type MediaState struct {
	domain.MediaState
}

type StartMeeting struct{}

type Admit struct {
	Target string `json:"targetConnectionId"`
}

type Leave struct{}

func (Join) inbound()         {}
func (Offer) inbound()        {}
func (Answer) inbound()       {}
func (ICECandidate) inbound() {}
func (Chat) inbound()         {}
func (MediaState) inbound()   {}
func (StartMeeting) inbound() {}
func (Admit) inbound()        {}
func (Leave) inbound()        {}

// DecodeInbound parses one wire message into its typed variant.
func DecodeInbound(data []byte) (Inbound, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	var (
		ev  Inbound
		err error
	)
	switch env.Type {
	case TypeJoin:
		var p Join
		err = json.Unmarshal(data, &p)
		ev = p
	case TypeOffer:
		var p Offer
		err = json.Unmarshal(data, &p)
		ev = p
	case TypeAnswer:
		var p Answer
		err = json.Unmarshal(data, &p)
		ev = p
	case TypeICECandidate:
		var p ICECandidate
		err = json.Unmarshal(data, &p)
		ev = p
	case TypeChat:
		var p Chat
		err = json.Unmarshal(data, &p)
		ev = p
	case TypeMediaState:
		var p MediaState
		err = json.Unmarshal(data, &p)
		ev = p
	case TypeStartMeeting:
		ev = StartMeeting{}
	case TypeAdmit:
		var p Admit
		err = json.Unmarshal(data, &p)
		ev = p
	case TypeLeave:
		ev = Leave{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return ev, nil
}
